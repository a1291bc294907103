package backend

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/atomicstack/llamabar/internal/notify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindServerMemory Kind = iota
	KindDownloads
)

// Notification is the bus kind posted when a sample of this kind changes.
func (k Kind) Notification() notify.Kind {
	switch k {
	case KindDownloads:
		return notify.DownloadsChanged
	default:
		return notify.ServerMemoryChanged
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Probe samples one kind of external state.
type Probe func(ctx context.Context) (interface{}, error)

// Watcher polls its probes at a fixed interval and publishes events.
type Watcher struct {
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that runs every probe each interval.
func NewWatcher(interval time.Duration, probes map[Kind]Probe) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for kind, probe := range probes {
		w.startPoller(kind, probe)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// Forward posts a notification to bus each time a kind's sample differs from
// the previous one, until the watcher's channel closes. Errors are handed to
// onError and do not reset the last sample.
func (w *Watcher) Forward(bus *notify.Bus, onError func(error)) {
	last := make(map[Kind]interface{})
	for evt := range w.events {
		if evt.Err != nil {
			if onError != nil {
				onError(evt.Err)
			}
			continue
		}
		prev, seen := last[evt.Kind]
		last[evt.Kind] = evt.Data
		if seen && reflect.DeepEqual(prev, evt.Data) {
			continue
		}
		bus.Post(notify.Event{Kind: evt.Kind.Notification()})
	}
}

func (w *Watcher) startPoller(kind Kind, probe Probe) {
	throttle := newThrottle(w.interval / 2)
	w.wg.Add(1)
	go w.poll(kind, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return probe(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
