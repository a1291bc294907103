package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atomicstack/llamabar/internal/app"
	"github.com/atomicstack/llamabar/internal/config"
	"github.com/atomicstack/llamabar/internal/logging"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	defer logging.Close()

	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	err := app.Run(cfg.App)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload records the resolved configuration and the environment
// the menu bar was launched from.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"paths":  probePaths(cfg.App),
		"tty":    collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

type pathProbe struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// probePaths resolves the server binary on PATH and checks the models
// directory, the two things a first launch most often gets wrong.
func probePaths(cfg app.Config) map[string]pathProbe {
	out := make(map[string]pathProbe, 2)
	bin := pathProbe{Path: cfg.ServerBin}
	if resolved, err := exec.LookPath(cfg.ServerBin); err == nil {
		bin.Path = resolved
		bin.Exists = true
	} else {
		bin.Error = err.Error()
	}
	out["serverBin"] = bin

	dir := pathProbe{Path: cfg.ModelsDir}
	if info, err := os.Stat(cfg.ModelsDir); err == nil {
		dir.Exists = info.IsDir()
	} else if !os.IsNotExist(err) {
		dir.Error = err.Error()
	}
	out["modelsDir"] = dir
	return out
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals. The
// first one with a readable size is the one Bubble Tea will draw on.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbe, 0, len(files))}
	for i, f := range files {
		probe := ttyProbe{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			if w, h, err := term.GetSize(fd); err != nil {
				probe.Error = err.Error()
			} else {
				probe.Width, probe.Height = w, h
				if details.Detected == nil {
					detected := probe
					details.Detected = &detected
				}
			}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}
