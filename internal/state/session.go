package state

import "github.com/google/uuid"

// Handle is a rendered row that can carry the highlight.
type Handle interface {
	SetHighlighted(bool)
	Highlighted() bool
}

// SessionStore holds the transient state of one menu-open session.
type SessionStore interface {
	ID() uuid.UUID
	Active() bool
	Begin() uuid.UUID
	End()
	Groups() *Groups
	Highlighted() Handle
	SetHighlighted(Handle)
	PreservedGroup() string
	SetPreservedGroup(string)
	SettingsVisible() bool
	SetSettingsVisible(bool)
}

type sessionStore struct {
	id              uuid.UUID
	groups          Groups
	highlighted     Handle
	preservedGroup  string
	settingsVisible bool
}

// NewSessionStore returns an inactive store.
func NewSessionStore() SessionStore {
	s := &sessionStore{}
	s.groups.Reset()
	return s
}

func (s *sessionStore) ID() uuid.UUID {
	return s.id
}

func (s *sessionStore) Active() bool {
	return s.id != uuid.Nil
}

// Begin starts a fresh session and returns its identity.
func (s *sessionStore) Begin() uuid.UUID {
	s.reset()
	s.id = uuid.New()
	return s.id
}

// End discards all session state. Continuations holding the previous ID will
// no longer match.
func (s *sessionStore) End() {
	s.reset()
}

func (s *sessionStore) reset() {
	s.id = uuid.Nil
	s.groups.Reset()
	s.highlighted = nil
	s.preservedGroup = ""
	s.settingsVisible = false
}

func (s *sessionStore) Groups() *Groups {
	return &s.groups
}

func (s *sessionStore) Highlighted() Handle {
	return s.highlighted
}

func (s *sessionStore) SetHighlighted(h Handle) {
	s.highlighted = h
}

func (s *sessionStore) PreservedGroup() string {
	return s.preservedGroup
}

func (s *sessionStore) SetPreservedGroup(group string) {
	s.preservedGroup = group
}

func (s *sessionStore) SettingsVisible() bool {
	return s.settingsVisible
}

func (s *sessionStore) SetSettingsVisible(visible bool) {
	s.settingsVisible = visible
}
