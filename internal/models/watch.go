package models

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/llamabar/internal/logging"
	"github.com/atomicstack/llamabar/internal/logging/events"
)

// Watch rescans the models directory whenever a file in it is created,
// removed or renamed, until ctx is done. In-flight .partial files are
// ignored.
func (m *Manager) Watch(ctx context.Context) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("watch %s: %w", m.dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", m.dir, err)
	}
	defer w.Close()
	if err := w.Add(m.dir); err != nil {
		return fmt.Errorf("watch %s: %w", m.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if strings.HasSuffix(evt.Name, partialSuffix) {
				continue
			}
			if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			events.Models.WatchEvent(evt.Name, evt.Op.String())
			m.Refresh()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Error(fmt.Errorf("watch %s: %w", m.dir, err))
		}
	}
}
