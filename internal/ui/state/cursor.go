package state

// MoveCursorHome moves the cursor to the first enabled item.
func (l *Level) MoveCursorHome() bool {
	old := l.Cursor
	l.Cursor = l.nextEnabled(-1, 1)
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last enabled item.
func (l *Level) MoveCursorEnd() bool {
	old := l.Cursor
	l.Cursor = l.nextEnabled(len(l.Items), -1)
	return old != l.Cursor
}

// MoveCursorUp moves to the previous enabled item, skipping separators and
// disabled rows. From no cursor it lands on the last enabled item.
func (l *Level) MoveCursorUp() bool {
	from := l.Cursor
	if from < 0 {
		from = len(l.Items)
	}
	return l.stepTo(l.nextEnabled(from, -1))
}

// MoveCursorDown moves to the next enabled item. From no cursor it lands on
// the first enabled item.
func (l *Level) MoveCursorDown() bool {
	return l.stepTo(l.nextEnabled(l.Cursor, 1))
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorBy(-l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorBy(l.pageSize(maxVisible))
}

func (l *Level) stepTo(idx int) bool {
	if idx < 0 {
		return false
	}
	old := l.Cursor
	l.Cursor = idx
	return old != idx
}

// nextEnabled scans from (exclusive) in direction dir and returns the first
// enabled index, or -1.
func (l *Level) nextEnabled(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(l.Items); i += dir {
		if l.Items[i].Enabled() {
			return i
		}
	}
	return -1
}

func (l *Level) moveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = -1
		return false
	}
	old := l.Cursor
	target := l.Cursor
	if target < 0 {
		target = 0
	}
	target += delta
	if target < 0 {
		target = 0
	}
	if target >= len(l.Items) {
		target = len(l.Items) - 1
	}
	if !l.Items[target].Enabled() {
		dir := 1
		if delta < 0 {
			dir = -1
		}
		next := l.nextEnabled(target, dir)
		if next < 0 {
			next = l.nextEnabled(target, -dir)
		}
		target = next
	}
	if target < 0 {
		return false
	}
	l.Cursor = target
	return l.Cursor != old
}

func (l *Level) pageSize(maxVisible int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	if len(l.Items) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := len(l.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
	if l.Cursor < 0 {
		return
	}
	if l.Cursor < l.ViewportOffset {
		l.ViewportOffset = l.Cursor
	}
	upper := l.ViewportOffset + maxVisible - 1
	if l.Cursor > upper {
		l.ViewportOffset = l.Cursor - maxVisible + 1
		if l.ViewportOffset < 0 {
			l.ViewportOffset = 0
		}
		if l.ViewportOffset > maxOffset {
			l.ViewportOffset = maxOffset
		}
	}
}
