package menu

import (
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/notify"
)

// Scope is how much of the menu a notification may disturb.
type Scope int

const (
	// ScopeRefresh updates row values in place.
	ScopeRefresh Scope = iota
	// ScopeSections rebuilds the Installed and Catalog runs.
	ScopeSections
	// ScopeMenu rebuilds the whole menu.
	ScopeMenu
)

func (s Scope) String() string {
	switch s {
	case ScopeSections:
		return "sections"
	case ScopeMenu:
		return "menu"
	default:
		return "refresh"
	}
}

// ScopeFor maps a notification kind to its fixed handling scope.
func ScopeFor(kind notify.Kind) Scope {
	switch kind {
	case notify.InstalledListChanged:
		return ScopeSections
	case notify.SettingsVisibilityToggled, notify.PreferencesChanged:
		return ScopeMenu
	default:
		return ScopeRefresh
	}
}

// Router holds the session's subscriptions. The bag is empty whenever the
// menu is closed.
type Router struct {
	bus  *notify.Bus
	subs []notify.Subscription
}

func NewRouter(bus *notify.Bus) *Router {
	return &Router{bus: bus}
}

// Attach subscribes handle to every notification kind, replacing any previous
// bag.
func (r *Router) Attach(handle func(notify.Event, Scope)) {
	r.Detach()
	if r.bus == nil {
		return
	}
	for _, kind := range notify.Kinds() {
		scope := ScopeFor(kind)
		r.subs = append(r.subs, r.bus.Subscribe(kind, func(evt notify.Event) {
			events.Router.Dispatch(evt.Kind.String(), scope.String())
			handle(evt, scope)
		}))
	}
	events.Router.Attach(len(r.subs))
}

// Detach unsubscribes everything.
func (r *Router) Detach() {
	if len(r.subs) == 0 {
		return
	}
	for _, sub := range r.subs {
		r.bus.Unsubscribe(sub)
	}
	events.Router.Detach(len(r.subs))
	r.subs = nil
}

// Active reports whether the router currently holds subscriptions.
func (r *Router) Active() bool {
	return len(r.subs) > 0
}
