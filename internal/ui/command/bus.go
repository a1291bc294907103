package command

import (
	"github.com/atomicstack/llamabar/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a row action invocation.
type Request struct {
	ID      string
	Label   string
	Handler func() error
}

// Result reports the outcome of a Request on the update after it ran.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of row actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the handler immediately on the calling goroutine, since
// actions mutate menu state owned by the UI loop, and returns a command that
// delivers the Result as a message.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	err := req.Handler()
	events.Command.Result(req.ID, req.Label, err)
	res := Result{ID: req.ID, Label: req.Label, Err: err}
	return func() tea.Msg {
		return res
	}
}
