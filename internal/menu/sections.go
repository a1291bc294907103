package menu

import (
	"slices"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/notify"
)

// Section owns one contiguous run of the menu.
type Section interface {
	Add(c *Container)
	Rebuild(c *Container)
	Refresh()
}

// Reconciliation branches, reported to the trace log and returned for tests.
const (
	branchReplaced = "replaced"
	branchRemoved  = "removed"
	branchCreated  = "created"
	branchAbsent   = "absent"
)

// run tracks a section's anchor item and converges the rows that follow it.
type run struct {
	name      string
	anchor    ItemID
	newAnchor func(c *Container) *Item
	insertAt  func(c *Container) int
}

func (r *run) add(c *Container, rows []*Item) {
	r.anchor = 0
	if len(rows) == 0 {
		return
	}
	anchor := r.newAnchor(c)
	r.anchor = anchor.ID
	c.Append(anchor)
	c.Append(rows...)
	events.Menu.Rebuild(r.name, "add", len(rows))
}

// reconcile replaces the run in place when its anchor is still in the menu,
// tears it down when rows is empty, and otherwise creates it at the
// section's structural insertion point.
func (r *run) reconcile(c *Container, rows []*Item) string {
	branch := r.apply(c, rows)
	events.Menu.Rebuild(r.name, branch, len(rows))
	return branch
}

func (r *run) apply(c *Container, rows []*Item) string {
	if idx := c.IndexOf(r.anchor); idx >= 0 {
		c.RemoveAfter(idx)
		if len(rows) == 0 {
			c.RemoveAt(idx)
			r.anchor = 0
			return branchRemoved
		}
		c.Insert(idx+1, rows...)
		return branchReplaced
	}
	r.anchor = 0
	if len(rows) == 0 {
		return branchAbsent
	}
	at := r.insertAt(c)
	anchor := r.newAnchor(c)
	r.anchor = anchor.ID
	c.Insert(at, append([]*Item{anchor}, rows...)...)
	return branchCreated
}

// Anchor returns the ID of the section's marker item, zero when none.
func (r *run) Anchor() ItemID {
	return r.anchor
}

// HeaderSection is the title row plus the separator beneath it.
type HeaderSection struct {
	server    Server
	row       *HeaderRow
	separator ItemID
}

func NewHeaderSection(server Server) *HeaderSection {
	return &HeaderSection{server: server}
}

func (s *HeaderSection) Add(c *Container) {
	s.row = newHeaderRow(s.server)
	sep := c.NewSeparator()
	s.separator = sep.ID
	c.Append(c.NewItem(s.row), sep)
}

// Rebuild is a no-op: the header has a fixed shape.
func (s *HeaderSection) Rebuild(*Container) {}

func (s *HeaderSection) Refresh() {
	if s.row != nil {
		s.row.Refresh()
	}
}

// InsertionPoint is the position right after the header separator, falling
// back to just after the first separator in the menu.
func (s *HeaderSection) InsertionPoint(c *Container) int {
	if idx := c.IndexOf(s.separator); idx >= 0 {
		return idx + 1
	}
	if idx := c.FirstSeparator(); idx >= 0 {
		return idx + 1
	}
	return 0
}

// InstalledSection lists downloaded and downloading models under an
// "Installed" header.
type InstalledSection struct {
	models   Models
	server   Server
	catalog  Catalog
	onChange func(catalog.Entry)

	run  run
	rows []*InstalledRow
}

// NewInstalledSection wires the section. insertAt locates the position used
// when the section has to be created after the initial build.
func NewInstalledSection(models Models, server Server, cat Catalog, insertAt func(*Container) int, onChange func(catalog.Entry)) *InstalledSection {
	s := &InstalledSection{models: models, server: server, catalog: cat, onChange: onChange}
	s.run = run{
		name: "installed",
		newAnchor: func(c *Container) *Item {
			return c.NewItem(&SectionHeaderRow{Title: "Installed"})
		},
		insertAt: insertAt,
	}
	return s
}

// Desired returns installed plus downloading models in display order.
func (s *InstalledSection) Desired() []catalog.Entry {
	seen := make(map[string]struct{})
	var entries []catalog.Entry
	for _, group := range [][]catalog.Entry{s.models.Installed(), s.models.Downloading()} {
		for _, e := range group {
			if _, dup := seen[e.ID]; dup {
				continue
			}
			seen[e.ID] = struct{}{}
			entries = append(entries, e)
		}
	}
	slices.SortStableFunc(entries, s.catalog.Order)
	return entries
}

func (s *InstalledSection) Add(c *Container) {
	s.run.add(c, s.build(c, s.Desired()))
}

func (s *InstalledSection) Rebuild(c *Container) {
	s.run.reconcile(c, s.build(c, s.Desired()))
}

func (s *InstalledSection) Refresh() {
	for _, r := range s.rows {
		r.Refresh()
	}
}

// Anchor returns the ID of the "Installed" header, zero when absent.
func (s *InstalledSection) Anchor() ItemID {
	return s.run.Anchor()
}

func (s *InstalledSection) build(c *Container, entries []catalog.Entry) []*Item {
	s.rows = s.rows[:0]
	items := make([]*Item, 0, len(entries))
	for _, e := range entries {
		row := &InstalledRow{Entry: e, models: s.models, server: s.server, onChange: s.onChange}
		row.Refresh()
		s.rows = append(s.rows, row)
		items = append(items, c.NewItem(row))
	}
	return items
}

// FooterSection is the separator and version row closing the main menu.
type FooterSection struct {
	version   string
	bus       *notify.Bus
	separator ItemID
}

func NewFooterSection(version string, bus *notify.Bus) *FooterSection {
	return &FooterSection{version: version, bus: bus}
}

func (s *FooterSection) Add(c *Container) {
	sep := c.NewSeparator()
	s.separator = sep.ID
	c.Append(sep, c.NewItem(&FooterRow{Version: s.version, bus: s.bus}))
}

func (s *FooterSection) Rebuild(*Container) {}

func (s *FooterSection) Refresh() {}

// InsertionPoint is the position of the footer separator, falling back to the
// last separator and then to the end of the menu.
func (s *FooterSection) InsertionPoint(c *Container) int {
	if idx := c.IndexOf(s.separator); idx >= 0 {
		return idx
	}
	if idx := c.LastSeparator(); idx >= 0 {
		return idx
	}
	return c.Len()
}

// SettingsSection is the trailing run of preference toggles.
type SettingsSection struct {
	prefs Preferences
	login LoginItem
	rows  []*SettingRow
}

func NewSettingsSection(prefs Preferences, login LoginItem) *SettingsSection {
	return &SettingsSection{prefs: prefs, login: login}
}

func (s *SettingsSection) Add(c *Container) {
	s.rows = s.rows[:0]
	if s.login != nil {
		s.rows = append(s.rows, &SettingRow{Title: "Launch at login", get: s.login.Enabled, set: s.login.SetEnabled})
	}
	if s.prefs != nil {
		s.rows = append(s.rows, &SettingRow{Title: "Show quantized models", get: s.prefs.ShowQuantized, set: s.prefs.SetShowQuantized})
	}
	for _, r := range s.rows {
		r.Refresh()
		c.Append(c.NewItem(r))
	}
}

func (s *SettingsSection) Rebuild(*Container) {}

func (s *SettingsSection) Refresh() {
	for _, r := range s.rows {
		r.Refresh()
	}
}
