package ui

import (
	"github.com/atomicstack/llamabar/internal/notify"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBusEvent(bus *notify.Bus) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-bus.Events()
		if !ok {
			return busDoneMsg{}
		}
		return busEventMsg{event: evt}
	}
}

type busEventMsg struct {
	event notify.Event
}

type busDoneMsg struct{}

// handleBusEventMsg dispatches one notification on the UI goroutine, where
// the menu router's subscriptions run, and waits for the next one.
func (m *Model) handleBusEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(busEventMsg)
	if !ok || m.bus == nil {
		return nil
	}
	m.bus.Dispatch(eventMsg.event)
	m.clearInfo()
	if m.listen {
		return waitForBusEvent(m.bus)
	}
	return nil
}

func (m *Model) handleBusDoneMsg(tea.Msg) tea.Cmd {
	m.listen = false
	return nil
}
