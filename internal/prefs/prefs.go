package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/llamabar/internal/notify"
)

// Values is the on-disk preferences document.
type Values struct {
	ShowQuantized bool `yaml:"show_quantized"`
}

// Store persists user preferences as YAML and announces changes on the bus.
type Store struct {
	path string
	bus  *notify.Bus

	mu     sync.Mutex
	values Values
}

// Open loads preferences from path. A missing file yields the defaults.
func Open(path string, bus *notify.Bus) (*Store, error) {
	s := &Store{path: path, bus: bus}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Values returns a copy of the current preferences.
func (s *Store) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

func (s *Store) ShowQuantized() bool {
	return s.Values().ShowQuantized
}

// SetShowQuantized persists the flag and posts PreferencesChanged when it
// differs from the current value.
func (s *Store) SetShowQuantized(v bool) error {
	return s.update(func(vals *Values) { vals.ShowQuantized = v })
}

func (s *Store) update(mutate func(*Values)) error {
	s.mu.Lock()
	next := s.values
	mutate(&next)
	if next == s.values {
		s.mu.Unlock()
		return nil
	}
	if err := s.save(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.values = next
	s.mu.Unlock()

	s.bus.Post(notify.Event{Kind: notify.PreferencesChanged})
	return nil
}

func (s *Store) save(vals Values) error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(vals)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
