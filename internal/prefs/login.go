package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoginItem toggles an XDG autostart entry that launches the binary at
// login.
type LoginItem struct {
	path string
	exec string
}

// NewLoginItem returns a login item whose desktop file lives under
// configDir/autostart. exec is the command line the entry runs.
func NewLoginItem(configDir, exec string) *LoginItem {
	return &LoginItem{
		path: filepath.Join(configDir, "autostart", "llamabar.desktop"),
		exec: exec,
	}
}

// Path returns the desktop file location.
func (l *LoginItem) Path() string {
	return l.path
}

func (l *LoginItem) Enabled() bool {
	info, err := os.Stat(l.path)
	return err == nil && info.Mode().IsRegular()
}

func (l *LoginItem) SetEnabled(v bool) error {
	if !v {
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove autostart entry: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create autostart entry: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(l.desktopEntry()), 0o644); err != nil {
		return fmt.Errorf("create autostart entry: %w", err)
	}
	return nil
}

func (l *LoginItem) desktopEntry() string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=llamabar\n")
	b.WriteString("Comment=Local model control panel\n")
	fmt.Fprintf(&b, "Exec=%s\n", l.exec)
	b.WriteString("Terminal=true\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}
