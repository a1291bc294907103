package menu

import (
	"fmt"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/notify"
	"github.com/atomicstack/llamabar/internal/state"
)

// Options wires a Controller to its collaborators.
type Options struct {
	Catalog     Catalog
	Models      Models
	Server      Server
	Preferences Preferences
	LoginItem   LoginItem
	Bus         *notify.Bus
	Scheduler   Scheduler
	Session     state.SessionStore
	Version     string
}

// Controller assembles the menu on open, routes notifications to the right
// rebuild scope while open, and tears everything down on close. All methods
// must be called from the UI goroutine.
type Controller struct {
	models    Models
	bus       *notify.Bus
	scheduler Scheduler
	session   state.SessionStore

	highlight *Highlighter
	router    *Router
	container *Container

	header    *HeaderSection
	installed *InstalledSection
	catalog   *CatalogSection
	footer    *FooterSection
	settings  *SettingsSection
}

func NewController(opts Options) *Controller {
	if opts.Session == nil {
		opts.Session = state.NewSessionStore()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = &Queue{}
	}
	c := &Controller{
		models:    opts.Models,
		bus:       opts.Bus,
		scheduler: opts.Scheduler,
		session:   opts.Session,
		highlight: NewHighlighter(opts.Session),
		router:    NewRouter(opts.Bus),
	}
	changed := func(catalog.Entry) { c.RebuildSections() }
	c.header = NewHeaderSection(opts.Server)
	c.footer = NewFooterSection(opts.Version, opts.Bus)
	c.installed = NewInstalledSection(opts.Models, opts.Server, opts.Catalog, c.header.InsertionPoint, changed)
	c.catalog = NewCatalogSection(opts.Catalog, opts.Models, opts.Preferences, opts.Session.Groups(), c.footer.InsertionPoint, changed, c.RebuildCatalog)
	c.settings = NewSettingsSection(opts.Preferences, opts.LoginItem)
	return c
}

// IsOpen reports whether a session is active.
func (c *Controller) IsOpen() bool {
	return c.container != nil && c.session.Active()
}

// Container returns the live menu, nil while closed.
func (c *Controller) Container() *Container {
	return c.container
}

// Session exposes the session store.
func (c *Controller) Session() state.SessionStore {
	return c.session
}

// Highlighter exposes the highlight coordinator.
func (c *Controller) Highlighter() *Highlighter {
	return c.highlight
}

// Router exposes the event router.
func (c *Controller) Router() *Router {
	return c.router
}

// Catalog exposes the catalog section.
func (c *Controller) Catalog() *CatalogSection {
	return c.catalog
}

// Installed exposes the installed section.
func (c *Controller) Installed() *InstalledSection {
	return c.installed
}

// Open starts a session and builds the menu. Opening an open menu is a no-op.
func (c *Controller) Open() {
	if c.IsOpen() {
		return
	}
	id := c.session.Begin()
	c.container = NewContainer()
	if c.models != nil {
		c.models.Refresh()
	}
	events.Menu.Open(id.String())
	c.RebuildMenu()
	c.router.Attach(c.route)
	c.Refresh()
}

// Close unhighlights, drops every subscription, and discards the session.
// Pending continuations from this session become no-ops.
func (c *Controller) Close() {
	if c.container == nil {
		return
	}
	id := c.session.ID()
	c.highlight.Close()
	c.router.Detach()
	c.catalog.Reset()
	c.session.End()
	c.container = nil
	events.Menu.Close(id.String())
}

// RebuildMenu recreates the whole menu in fixed section order.
func (c *Controller) RebuildMenu() {
	if !c.IsOpen() {
		return
	}
	c.container.RemoveAll()
	c.header.Add(c.container)
	c.installed.Add(c.container)
	c.catalog.Add(c.container)
	c.footer.Add(c.container)
	visible := c.session.SettingsVisible()
	if visible {
		c.container.Append(c.container.NewSeparator())
		c.settings.Add(c.container)
	}
	events.Menu.Build(c.container.Len(), visible)
	c.settle()
}

// RebuildSections reconciles the Installed and Catalog runs and refreshes
// row values.
func (c *Controller) RebuildSections() {
	if !c.IsOpen() {
		return
	}
	c.installed.Rebuild(c.container)
	c.catalog.Rebuild(c.container)
	c.settle()
	c.Refresh()
}

// RebuildCatalog reconciles only the Catalog run. A highlighted family header
// is carried over: the null transition is suppressed during the rebuild and
// the rebuilt header is highlighted on the next scheduler turn.
func (c *Controller) RebuildCatalog() {
	if !c.IsOpen() {
		return
	}
	family := c.highlight.Preserve()
	c.catalog.Rebuild(c.container)
	c.settle()
	if family == "" {
		return
	}
	session, container := c.session.ID(), c.container
	c.scheduler.Defer(func() {
		if c.session.ID() != session || c.container != container {
			events.Highlight.Abandon(family, "stale session")
			return
		}
		c.highlight.Restore(family, c.container)
		c.settle()
	})
}

// Refresh updates row values in place.
func (c *Controller) Refresh() {
	if !c.IsOpen() {
		return
	}
	c.header.Refresh()
	c.installed.Refresh()
	c.catalog.Refresh()
	if c.session.SettingsVisible() {
		c.settings.Refresh()
	}
}

// Highlight is the host's hover transition. A zero, unknown, separator or
// disabled id clears the highlight.
func (c *Controller) Highlight(id ItemID) {
	if !c.IsOpen() {
		return
	}
	it, ok := c.container.Lookup(id)
	if !ok || !it.Enabled() {
		c.highlight.WillHighlight(nil)
		return
	}
	c.highlight.WillHighlight(it.Row)
}

// ClearHighlight issues the null hover transition.
func (c *Controller) ClearHighlight() {
	if !c.IsOpen() {
		return
	}
	c.highlight.WillHighlight(nil)
}

// HighlightedID returns the item carrying the highlight, zero when none is
// in the menu.
func (c *Controller) HighlightedID() ItemID {
	if !c.IsOpen() {
		return 0
	}
	idx := c.container.IndexOfRow(c.highlight.Current())
	if idx < 0 {
		return 0
	}
	return c.container.At(idx).ID
}

// Activate runs the primary action of the row at id, highlighting it first
// as a click would.
func (c *Controller) Activate(id ItemID) error {
	if !c.IsOpen() {
		return nil
	}
	it, ok := c.container.Lookup(id)
	if !ok || !it.Enabled() {
		return nil
	}
	act, ok := it.Row.(Activator)
	if !ok {
		return nil
	}
	c.highlight.WillHighlight(it.Row)
	events.Menu.Activate(rowKind(it.Row), it.Row.Label())
	if err := act.Activate(); err != nil {
		return fmt.Errorf("%s: %w", it.Row.Label(), err)
	}
	return nil
}

// Secondary runs the secondary action (cancel or delete) of the row at id.
func (c *Controller) Secondary(id ItemID) error {
	if !c.IsOpen() {
		return nil
	}
	it, ok := c.container.Lookup(id)
	if !ok || !it.Enabled() {
		return nil
	}
	act, ok := it.Row.(SecondaryActivator)
	if !ok {
		return nil
	}
	events.Menu.Activate("secondary", it.Row.Label())
	if err := act.Secondary(); err != nil {
		return fmt.Errorf("%s: %w", it.Row.Label(), err)
	}
	return nil
}

// ToggleSettings posts the same notification the footer row does.
func (c *Controller) ToggleSettings() {
	if !c.IsOpen() {
		return
	}
	c.bus.Post(notify.Event{Kind: notify.SettingsVisibilityToggled})
}

// route handles one notification on the UI goroutine.
func (c *Controller) route(evt notify.Event, scope Scope) {
	if !c.IsOpen() {
		return
	}
	switch scope {
	case ScopeRefresh:
		c.Refresh()
	case ScopeSections:
		c.RebuildSections()
	case ScopeMenu:
		if evt.Kind == notify.SettingsVisibilityToggled {
			c.session.SetSettingsVisible(!c.session.SettingsVisible())
		}
		c.RebuildMenu()
		c.Refresh()
	}
}

// settle mirrors the host clearing the highlight when the highlighted item
// leaves the menu.
func (c *Controller) settle() {
	current := c.highlight.Current()
	if current == nil {
		return
	}
	if c.container.IndexOfRow(current) < 0 {
		c.highlight.WillHighlight(nil)
	}
}

func rowKind(row Row) string {
	switch row.(type) {
	case *InstalledRow:
		return "installed"
	case *CatalogRow:
		return "catalog"
	case *FamilyHeaderRow:
		return "family"
	case *FooterRow:
		return "footer"
	case *SettingRow:
		return "setting"
	default:
		return "row"
	}
}
