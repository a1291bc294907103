package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/llamabar/internal/app"
	"github.com/atomicstack/llamabar/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ModelsDir:    "/models",
			PrefsPath:    "/prefs.yaml",
			ServerBin:    "llama-server",
			Port:         8080,
			MaxDownloads: 2,
			PollInterval: time.Second,
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Verbose:      true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"modelsDir": "/models",
			"port":      "8080",
			"width":     "80",
			"height":    "24",
			"footer":    "true",
			"verbose":   "true",
		},
		Args: []string{"-models-dir", "/models"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["modelsDir"] != "/models" {
		t.Fatalf("expected models dir flag %q, got %v", "/models", flagsValue["modelsDir"])
	}
	if flagsValue["port"] != "8080" {
		t.Fatalf("expected port 8080, got %v", flagsValue["port"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["paths"].(map[string]pathProbe); !ok {
		t.Fatalf("expected path probes in payload")
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestProbePathsReportsMissingBinaryAndDir(t *testing.T) {
	dir := t.TempDir()
	probes := probePaths(app.Config{
		ServerBin: filepath.Join(dir, "no-such-server"),
		ModelsDir: filepath.Join(dir, "models"),
	})
	if bin := probes["serverBin"]; bin.Exists || bin.Error == "" {
		t.Fatalf("expected missing server binary, got %#v", bin)
	}
	if models := probes["modelsDir"]; models.Exists || models.Error != "" {
		t.Fatalf("expected absent models dir without error, got %#v", models)
	}

	if err := os.Mkdir(filepath.Join(dir, "models"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	probes = probePaths(app.Config{ServerBin: "sh", ModelsDir: filepath.Join(dir, "models")})
	if !probes["modelsDir"].Exists {
		t.Fatalf("expected models dir to exist")
	}
}
