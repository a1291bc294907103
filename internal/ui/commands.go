package ui

import (
	"fmt"

	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	info := fmt.Sprintf("%s: %s", result.ID, result.Label)
	if m.verbose {
		m.setInfo(info)
	}
	events.Action.Success(info)
	return nil
}
