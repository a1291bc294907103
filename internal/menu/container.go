package menu

import "github.com/atomicstack/llamabar/internal/state"

// ItemID addresses an item in a Container. Zero is never issued.
type ItemID uint64

// Row is the view carried by a non-separator item.
type Row interface {
	state.Handle
	Enabled() bool
	Label() string
}

// Item is one entry of the menu: either a separator or a row.
type Item struct {
	ID        ItemID
	Separator bool
	Row       Row
}

// Enabled reports whether the item can take the highlight.
func (it *Item) Enabled() bool {
	return it != nil && !it.Separator && it.Row != nil && it.Row.Enabled()
}

// Container is the ordered list of menu items. Items are addressed by ID so
// that sections can hold anchors without owning the item; an anchor is valid
// exactly while Contains reports true for it.
type Container struct {
	next  ItemID
	order []*Item
	index map[ItemID]*Item
	gen   uint64
}

// NewContainer returns an empty menu.
func NewContainer() *Container {
	return &Container{index: make(map[ItemID]*Item)}
}

// NewItem allocates a row item. It is not part of the menu until inserted.
func (c *Container) NewItem(row Row) *Item {
	c.next++
	return &Item{ID: c.next, Row: row}
}

// NewSeparator allocates a separator item.
func (c *Container) NewSeparator() *Item {
	c.next++
	return &Item{ID: c.next, Separator: true}
}

// Append adds items at the end.
func (c *Container) Append(items ...*Item) {
	c.Insert(len(c.order), items...)
}

// Insert places items starting at position at, clamped to the valid range.
func (c *Container) Insert(at int, items ...*Item) {
	if len(items) == 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(c.order) {
		at = len(c.order)
	}
	tail := append([]*Item(nil), c.order[at:]...)
	c.order = append(c.order[:at], items...)
	c.order = append(c.order, tail...)
	for _, it := range items {
		c.index[it.ID] = it
	}
	c.gen++
}

// RemoveAt deletes the item at position i and returns it.
func (c *Container) RemoveAt(i int) *Item {
	if i < 0 || i >= len(c.order) {
		return nil
	}
	it := c.order[i]
	c.order = append(c.order[:i], c.order[i+1:]...)
	delete(c.index, it.ID)
	c.gen++
	return it
}

// RemoveAfter deletes the items following position i up to, but not
// including, the next separator or the end of the menu. It returns the
// number of items removed.
func (c *Container) RemoveAfter(i int) int {
	removed := 0
	for i+1 < len(c.order) && !c.order[i+1].Separator {
		c.RemoveAt(i + 1)
		removed++
	}
	return removed
}

// RemoveAll empties the menu. IDs are never reused, so anchors held from
// before stay invalid.
func (c *Container) RemoveAll() {
	c.order = nil
	c.index = make(map[ItemID]*Item)
	c.gen++
}

// Contains reports whether id is currently in the menu.
func (c *Container) Contains(id ItemID) bool {
	if id == 0 {
		return false
	}
	_, ok := c.index[id]
	return ok
}

// IndexOf returns the position of id, or -1 when absent.
func (c *Container) IndexOf(id ItemID) int {
	if !c.Contains(id) {
		return -1
	}
	for i, it := range c.order {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// IndexOfRow returns the position of the item carrying row, or -1.
func (c *Container) IndexOfRow(row state.Handle) int {
	if row == nil {
		return -1
	}
	for i, it := range c.order {
		if it.Row != nil && state.Handle(it.Row) == row {
			return i
		}
	}
	return -1
}

// Lookup returns the item for id.
func (c *Container) Lookup(id ItemID) (*Item, bool) {
	it, ok := c.index[id]
	return it, ok
}

// At returns the item at position i.
func (c *Container) At(i int) *Item {
	if i < 0 || i >= len(c.order) {
		return nil
	}
	return c.order[i]
}

// Len returns the number of items.
func (c *Container) Len() int {
	return len(c.order)
}

// Items returns a snapshot of the menu in display order.
func (c *Container) Items() []*Item {
	dup := make([]*Item, len(c.order))
	copy(dup, c.order)
	return dup
}

// Generation increments on every structural change.
func (c *Container) Generation() uint64 {
	return c.gen
}

// FirstSeparator returns the position of the first separator, or -1.
func (c *Container) FirstSeparator() int {
	for i, it := range c.order {
		if it.Separator {
			return i
		}
	}
	return -1
}

// LastSeparator returns the position of the last separator, or -1.
func (c *Container) LastSeparator() int {
	for i := len(c.order) - 1; i >= 0; i-- {
		if c.order[i].Separator {
			return i
		}
	}
	return -1
}

// Highlighted returns the live rows that currently report highlighted.
func (c *Container) Highlighted() []Row {
	var rows []Row
	for _, it := range c.order {
		if it.Row != nil && it.Row.Highlighted() {
			rows = append(rows, it.Row)
		}
	}
	return rows
}
