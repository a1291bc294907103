package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/llamabar/internal/backend"
	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging"
	"github.com/atomicstack/llamabar/internal/menu"
	"github.com/atomicstack/llamabar/internal/models"
	"github.com/atomicstack/llamabar/internal/notify"
	"github.com/atomicstack/llamabar/internal/prefs"
	"github.com/atomicstack/llamabar/internal/server"
	"github.com/atomicstack/llamabar/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	ModelsDir    string
	CatalogPath  string
	PrefsPath    string
	ConfigDir    string
	ServerBin    string
	Port         int
	MaxDownloads int
	PollInterval time.Duration
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Open         bool
	Version      string
}

// Run bootstraps the collaborators and executes the Bubble Tea program.
func Run(cfg Config) error {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	bus := notify.New(0)

	store, err := prefs.Open(cfg.PrefsPath, bus)
	if err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		logging.Warnf("resolve executable for login item: %v", err)
		exe = "llamabar"
	}
	login := prefs.NewLoginItem(cfg.ConfigDir, exe)

	mgr := models.New(models.Options{
		Dir:          cfg.ModelsDir,
		Catalog:      cat,
		Bus:          bus,
		MaxDownloads: cfg.MaxDownloads,
	})
	defer mgr.Close()
	mgr.Refresh()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := mgr.Watch(ctx); err != nil {
			logging.Error(err)
		}
	}()

	srv := server.New(server.Options{Binary: cfg.ServerBin, Port: cfg.Port, Bus: bus})
	defer func() {
		if err := srv.Close(); err != nil {
			logging.Error(err)
		}
	}()

	watcher := backend.NewWatcher(cfg.PollInterval, map[backend.Kind]backend.Probe{
		backend.KindServerMemory: func(context.Context) (interface{}, error) {
			return srv.SampleMemory()
		},
		backend.KindDownloads: func(context.Context) (interface{}, error) {
			return mgr.Snapshot(), nil
		},
	})
	defer watcher.Stop()
	go watcher.Forward(bus, logging.Error)

	queue := &menu.Queue{}
	ctrl := menu.NewController(menu.Options{
		Catalog:     cat,
		Models:      mgr,
		Server:      srv,
		Preferences: store,
		LoginItem:   login,
		Bus:         bus,
		Scheduler:   queue,
		Version:     cfg.Version,
	})
	model := ui.NewModel(ui.Options{
		Controller:  ctrl,
		Bus:         bus,
		Scheduler:   queue,
		Status:      srv,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Verbose:     cfg.Verbose,
		OpenOnStart: cfg.Open,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if ctrl.IsOpen() {
		ctrl.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
