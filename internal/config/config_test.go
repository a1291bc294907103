package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"HOME=/home/u"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.ModelsDir != filepath.Join("/home/u", ".cache", "llamabar", "models") {
		t.Fatalf("unexpected models dir %q", cfg.App.ModelsDir)
	}
	if cfg.App.PrefsPath != filepath.Join("/home/u", ".config", "llamabar", "prefs.yaml") {
		t.Fatalf("unexpected prefs path %q", cfg.App.PrefsPath)
	}
	if cfg.App.Port != 8080 || cfg.App.MaxDownloads != 2 || cfg.App.PollInterval != time.Second {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if cfg.App.ServerBin != "llama-server" || cfg.App.Open {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsEnvironmentAndFlags(t *testing.T) {
	env := []string{
		"XDG_CONFIG_HOME=/cfg",
		"XDG_CACHE_HOME=/cache",
		"LLAMABAR_PORT=9000",
		"LLAMABAR_OPEN=true",
		"LLAMABAR_POLL_INTERVAL=250ms",
		"LLAMABAR_MAX_DOWNLOADS=nope",
	}
	cfg, err := LoadArgs([]string{"-port", "9100", "-footer", "-models-dir", "/m"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Port != 9100 {
		t.Fatalf("expected flag to override env, got %d", cfg.App.Port)
	}
	if !cfg.App.Open || !cfg.App.ShowFooter {
		t.Fatalf("expected open and footer set")
	}
	if cfg.App.PollInterval != 250*time.Millisecond {
		t.Fatalf("unexpected poll interval %s", cfg.App.PollInterval)
	}
	if cfg.App.MaxDownloads != 2 {
		t.Fatalf("expected malformed env to fall back, got %d", cfg.App.MaxDownloads)
	}
	if cfg.App.ModelsDir != "/m" || cfg.App.ConfigDir != "/cfg" {
		t.Fatalf("unexpected dirs %#v", cfg.App)
	}
	if cfg.Flags["port"] != "9100" || cfg.Flags["poll"] != "250ms" {
		t.Fatalf("unexpected flags %#v", cfg.Flags)
	}
}

func TestLoadArgsRejectsNegativeDimensions(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidateRanges(t *testing.T) {
	base, err := LoadArgs(nil, []string{"HOME=/h"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]func(*Config){
		"port":      func(c *Config) { c.App.Port = 0 },
		"downloads": func(c *Config) { c.App.MaxDownloads = 0 },
		"poll":      func(c *Config) { c.App.PollInterval = time.Millisecond },
		"models":    func(c *Config) { c.App.ModelsDir = " " },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
