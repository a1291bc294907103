package menu

// Scheduler runs continuations on a later turn of the UI loop.
type Scheduler interface {
	Defer(func())
}

// Queue is a Scheduler whose continuations run when the owner calls Drain,
// typically once per UI turn.
type Queue struct {
	pending []func()
}

func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Pending returns the number of queued continuations.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Drain runs the continuations queued so far. Continuations deferred while
// draining wait for the next Drain. It returns the number run.
func (q *Queue) Drain() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
