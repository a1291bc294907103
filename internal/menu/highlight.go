package menu

import (
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/state"
)

// HighlightState is the coordinator's externally visible state.
type HighlightState int

const (
	HighlightIdle HighlightState = iota
	HighlightActive
	HighlightRebuildPending
)

func (s HighlightState) String() string {
	switch s {
	case HighlightActive:
		return "highlighted"
	case HighlightRebuildPending:
		return "rebuild-pending"
	default:
		return "idle"
	}
}

// Highlighter keeps at most one row highlighted and carries the highlight of
// a family header across the catalog rebuild that recreates it.
type Highlighter struct {
	session state.SessionStore
}

func NewHighlighter(session state.SessionStore) *Highlighter {
	return &Highlighter{session: session}
}

// State reports the current state.
func (h *Highlighter) State() HighlightState {
	switch {
	case h.session.PreservedGroup() != "":
		return HighlightRebuildPending
	case h.session.Highlighted() != nil:
		return HighlightActive
	default:
		return HighlightIdle
	}
}

// Current returns the highlighted row handle, nil when none.
func (h *Highlighter) Current() state.Handle {
	return h.session.Highlighted()
}

// WillHighlight moves the highlight to row. A nil row clears the highlight,
// except while a family is preserved across a rebuild, where the host's null
// transition is ignored. A non-nil row supersedes the preserved family.
func (h *Highlighter) WillHighlight(row Row) {
	if preserved := h.session.PreservedGroup(); preserved != "" {
		if row == nil {
			return
		}
		h.session.SetPreservedGroup("")
		events.Highlight.Abandon(preserved, "superseded")
	}
	var next state.Handle
	if row != nil {
		next = row
	}
	current := h.session.Highlighted()
	if current == next {
		return
	}
	if current != nil {
		current.SetHighlighted(false)
	}
	if next != nil {
		next.SetHighlighted(true)
		events.Highlight.Move(row.Label())
	}
	h.session.SetHighlighted(next)
}

// Preserve records the family of the highlighted row when it is a family
// header, ahead of a rebuild that will destroy it. It returns the family, or
// "" when there is nothing to carry over.
func (h *Highlighter) Preserve() string {
	header, ok := h.session.Highlighted().(*FamilyHeaderRow)
	if !ok || header == nil {
		h.session.SetPreservedGroup("")
		return ""
	}
	h.session.SetPreservedGroup(header.Family)
	events.Highlight.Preserve(header.Family)
	return header.Family
}

// Restore highlights the rebuilt header for family and clears the preserved
// marker. It reports whether a header was found. Nothing happens when family
// is no longer the preserved one, as after a newer hover.
func (h *Highlighter) Restore(family string, c *Container) bool {
	if h.session.PreservedGroup() != family {
		return false
	}
	defer h.session.SetPreservedGroup("")
	for _, it := range c.Items() {
		header, ok := it.Row.(*FamilyHeaderRow)
		if !ok || header.Family != family {
			continue
		}
		if current := h.session.Highlighted(); current != nil && current != state.Handle(header) {
			current.SetHighlighted(false)
		}
		header.SetHighlighted(true)
		h.session.SetHighlighted(header)
		events.Highlight.Restore(family, true)
		return true
	}
	events.Highlight.Restore(family, false)
	return false
}

// Close unhighlights unconditionally and returns to idle.
func (h *Highlighter) Close() {
	if current := h.session.Highlighted(); current != nil {
		current.SetHighlighted(false)
	}
	h.session.SetHighlighted(nil)
	h.session.SetPreservedGroup("")
}
