package ui

import (
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/menu"
	"github.com/atomicstack/llamabar/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	open := m.ctrl.IsOpen()
	events.UI.Key(keyMsg.String(), open)

	if key.Matches(keyMsg, m.keys.Quit) {
		if open {
			m.closeMenu()
		}
		return tea.Quit
	}
	if !open {
		switch {
		case key.Matches(keyMsg, m.keys.Open):
			m.openMenu()
		case key.Matches(keyMsg, m.keys.Close):
			return tea.Quit
		}
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Close):
		m.closeMenu()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(m.level.MoveCursorUp)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(m.level.MoveCursorDown)
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(m.level.MoveCursorHome)
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(m.level.MoveCursorEnd)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func() bool { return m.level.MoveCursorPageUp(m.pageSize()) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func() bool { return m.level.MoveCursorPageDown(m.pageSize()) })
	case key.Matches(keyMsg, m.keys.Activate):
		return m.activateHighlighted()
	case key.Matches(keyMsg, m.keys.Secondary):
		return m.secondaryHighlighted()
	case key.Matches(keyMsg, m.keys.Settings):
		m.ctrl.ToggleSettings()
	}
	return nil
}

// moveCursor steps the cursor and hands the new row to the highlighter as a
// hover would.
func (m *Model) moveCursor(step func() bool) {
	m.syncLevel()
	if !step() {
		return
	}
	item := m.level.Current()
	if item == nil {
		return
	}
	events.UI.Cursor(m.level.Cursor)
	m.ctrl.Highlight(item.ID)
	m.errMsg = ""
}

func (m *Model) pageSize() int {
	if n := m.maxVisibleItems(); n > 0 {
		return n
	}
	return 10
}

func (m *Model) highlightedItem() (*menu.Item, bool) {
	id := m.ctrl.HighlightedID()
	if id == 0 {
		return nil, false
	}
	return m.ctrl.Container().Lookup(id)
}

func (m *Model) activateHighlighted() tea.Cmd {
	it, ok := m.highlightedItem()
	if !ok {
		return nil
	}
	id := it.ID
	m.errMsg = ""
	return m.commands.Execute(command.Request{
		ID:      "activate",
		Label:   it.Row.Label(),
		Handler: func() error { return m.ctrl.Activate(id) },
	})
}

func (m *Model) secondaryHighlighted() tea.Cmd {
	it, ok := m.highlightedItem()
	if !ok {
		return nil
	}
	if _, ok := it.Row.(menu.SecondaryActivator); !ok {
		return nil
	}
	id := it.ID
	m.errMsg = ""
	return m.commands.Execute(command.Request{
		ID:      "secondary",
		Label:   it.Row.Label(),
		Handler: func() error { return m.ctrl.Secondary(id) },
	})
}
