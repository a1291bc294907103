package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/llamabar/internal/notify"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.yaml"), notify.New(4))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.ShowQuantized() {
		t.Fatalf("show quantized should default to false")
	}
}

func TestSetShowQuantizedPersistsAndNotifies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	bus := notify.New(4)
	s, err := Open(path, bus)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetShowQuantized(true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetShowQuantized(true); err != nil {
		t.Fatalf("set again: %v", err)
	}
	if n := len(bus.Events()); n != 1 {
		t.Fatalf("expected one notification, got %d", n)
	}
	if evt := <-bus.Events(); evt.Kind != notify.PreferencesChanged {
		t.Fatalf("kind = %s", evt.Kind)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.ShowQuantized() {
		t.Fatalf("value not persisted")
	}
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("show_quantized: [nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoginItemToggle(t *testing.T) {
	dir := t.TempDir()
	l := NewLoginItem(dir, "/usr/local/bin/llamabar -open")
	if l.Enabled() {
		t.Fatalf("enabled before creation")
	}
	if err := l.SetEnabled(true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "autostart", "llamabar.desktop"))
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if !strings.Contains(string(data), "Exec=/usr/local/bin/llamabar -open\n") {
		t.Fatalf("entry = %q", data)
	}
	if !l.Enabled() {
		t.Fatalf("not enabled after creation")
	}
	if err := l.SetEnabled(false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if err := l.SetEnabled(false); err != nil {
		t.Fatalf("disable twice: %v", err)
	}
	if l.Enabled() {
		t.Fatalf("still enabled")
	}
}
