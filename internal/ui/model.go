package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/menu"
	"github.com/atomicstack/llamabar/internal/notify"
	"github.com/atomicstack/llamabar/internal/theme"
	"github.com/atomicstack/llamabar/internal/ui/command"
	uistate "github.com/atomicstack/llamabar/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Status is what the closed status item shows.
type Status interface {
	Running() bool
	ActiveModel() string
	Address() string
}

// Options wires the model to the menu controller and its event sources.
type Options struct {
	Controller  *menu.Controller
	Bus         *notify.Bus
	Scheduler   *menu.Queue
	Status      Status
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	OpenOnStart bool
}

// Model implements the Bubble Tea model for the status item and its menu.
type Model struct {
	ctrl     *menu.Controller
	bus      *notify.Bus
	queue    *menu.Queue
	status   Status
	commands *command.Bus

	level    *level
	keys     keyMap
	help     help.Model
	progress progress.Model

	// listen is false under the test harness, which pumps the bus itself.
	listen      bool
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state. The menu starts closed unless
// OpenOnStart is set.
func NewModel(opts Options) *Model {
	m := &Model{
		ctrl:       opts.Controller,
		bus:        opts.Bus,
		queue:      opts.Scheduler,
		status:     opts.Status,
		commands:   command.New(),
		level:      uistate.NewLevel(nil),
		keys:       defaultKeyMap(),
		help:       help.New(),
		listen:     opts.Bus != nil,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		progress: progress.New(
			progress.WithGradient(styles.ProgressStart, styles.ProgressEnd),
			progress.WithWidth(progressWidth),
			progress.WithoutPercentage(),
		),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	if opts.OpenOnStart {
		m.openMenu()
	}
	m.syncLevel()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.listen {
		return waitForBusEvent(m.bus)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
		reflect.TypeOf(busEventMsg{}):       m.handleBusEventMsg,
		reflect.TypeOf(busDoneMsg{}):        m.handleBusDoneMsg,
		reflect.TypeOf(turnMsg{}):           m.handleTurnMsg,
		reflect.TypeOf(progress.FrameMsg{}): m.handleProgressFrameMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate realigns the cursor with the menu and, when continuations are
// waiting, schedules the next turn so they run after this frame renders.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.syncLevel()
	if m.queue != nil && m.queue.Pending() > 0 {
		events.UI.Turn(m.queue.Pending())
		cmds = append(cmds, nextTurn)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

type turnMsg struct{}

func nextTurn() tea.Msg {
	return turnMsg{}
}

func (m *Model) handleTurnMsg(tea.Msg) tea.Cmd {
	if m.queue != nil {
		m.queue.Drain()
	}
	return nil
}

func (m *Model) handleProgressFrameMsg(msg tea.Msg) tea.Cmd {
	updated, cmd := m.progress.Update(msg)
	if p, ok := updated.(progress.Model); ok {
		m.progress = p
	}
	return cmd
}

// syncLevel mirrors the container into the cursor level and moves the cursor
// onto the highlighted row when there is one.
func (m *Model) syncLevel() {
	c := m.ctrl.Container()
	if c == nil {
		m.level.UpdateItems(nil)
		return
	}
	m.level.UpdateItems(c.Items())
	if idx := m.level.IndexOf(m.ctrl.HighlightedID()); idx >= 0 {
		m.level.Cursor = idx
	}
	m.level.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) openMenu() {
	m.ctrl.Open()
	m.level = uistate.NewLevel(nil)
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) closeMenu() {
	m.ctrl.Close()
	m.level = uistate.NewLevel(nil)
}
