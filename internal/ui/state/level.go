package state

import "github.com/atomicstack/llamabar/internal/menu"

// Level tracks the cursor and viewport over the items of the open menu.
// Cursor is -1 while no row has been reached.
type Level struct {
	Items          []*menu.Item
	Cursor         int
	ViewportOffset int
}

// NewLevel constructs a Level over items with no cursor.
func NewLevel(items []*menu.Item) *Level {
	l := &Level{Cursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id menu.ItemID) int {
	if id == 0 {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the items, keeping the cursor and offset within range.
func (l *Level) UpdateItems(items []*menu.Item) {
	l.Items = items
	if len(l.Items) == 0 {
		l.Cursor = -1
		l.ViewportOffset = 0
		return
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// Current returns the item under the cursor, nil when none.
func (l *Level) Current() *menu.Item {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil
	}
	return l.Items[l.Cursor]
}
