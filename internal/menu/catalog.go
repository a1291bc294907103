package menu

import (
	"slices"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/state"
)

// CatalogSection lists models available for download, grouped by family
// under collapsible headers. Its run is anchored by a separator.
type CatalogSection struct {
	catalog  Catalog
	models   Models
	prefs    Preferences
	groups   *state.Groups
	onChange func(catalog.Entry)
	onToggle func()

	run     run
	rows    []*CatalogRow
	headers []*FamilyHeaderRow
}

// NewCatalogSection wires the section. groups is the session's collapse
// state; onToggle requests a catalog-only rebuild after a family flips.
func NewCatalogSection(cat Catalog, models Models, prefs Preferences, groups *state.Groups, insertAt func(*Container) int, onChange func(catalog.Entry), onToggle func()) *CatalogSection {
	s := &CatalogSection{
		catalog:  cat,
		models:   models,
		prefs:    prefs,
		groups:   groups,
		onChange: onChange,
		onToggle: onToggle,
	}
	s.run = run{
		name:      "catalog",
		newAnchor: func(c *Container) *Item { return c.NewSeparator() },
		insertAt:  insertAt,
	}
	return s
}

// Available returns the compatible entries that are neither installed nor
// downloading, honouring the show-quantized preference, in display order.
func (s *CatalogSection) Available() []catalog.Entry {
	showQuantized := s.prefs != nil && s.prefs.ShowQuantized()
	var out []catalog.Entry
	for _, e := range s.catalog.Entries() {
		if s.models.IsInstalled(e) || s.models.IsDownloading(e) {
			continue
		}
		if !s.catalog.Compatible(e) {
			continue
		}
		if !showQuantized && !e.FullPrecision() {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, s.catalog.Order)
	return out
}

func (s *CatalogSection) Add(c *Container) {
	s.run.add(c, s.build(c, s.Available()))
}

func (s *CatalogSection) Rebuild(c *Container) {
	s.run.reconcile(c, s.build(c, s.Available()))
}

func (s *CatalogSection) Refresh() {
	for _, r := range s.rows {
		r.Refresh()
	}
}

// Reset forgets collapse state so the next session starts with every family
// collapsed.
func (s *CatalogSection) Reset() {
	s.groups.Reset()
	s.rows = nil
	s.headers = nil
	s.run.anchor = 0
}

// Anchor returns the ID of the catalog separator, zero when absent.
func (s *CatalogSection) Anchor() ItemID {
	return s.run.Anchor()
}

// Groups exposes the collapse state.
func (s *CatalogSection) Groups() *state.Groups {
	return s.groups
}

// Toggle flips the collapse flag of family and requests a rebuild.
func (s *CatalogSection) Toggle(family string) {
	s.groups.Toggle(family)
	events.Menu.Toggle(family, s.groups.IsCollapsed(family))
	if s.onToggle != nil {
		s.onToggle()
	}
}

// build reconciles collapse state against the families present in entries
// and emits one header per family followed by its rows when expanded. An
// empty entry list yields no items.
func (s *CatalogSection) build(c *Container, entries []catalog.Entry) []*Item {
	s.rows = nil
	s.headers = nil

	current := state.NewSet()
	sizes := make(map[string][]string)
	for _, e := range entries {
		current[e.Family] = struct{}{}
		if !slices.Contains(sizes[e.Family], e.Size) {
			sizes[e.Family] = append(sizes[e.Family], e.Size)
		}
	}
	s.groups.Reconcile(current)

	items := make([]*Item, 0, len(entries)+len(sizes))
	previous := ""
	for i, e := range entries {
		collapsed := s.groups.IsCollapsed(e.Family)
		if i == 0 || e.Family != previous {
			header := &FamilyHeaderRow{
				Family:    e.Family,
				Sizes:     sizes[e.Family],
				Collapsed: collapsed,
				onToggle:  s.Toggle,
			}
			s.headers = append(s.headers, header)
			items = append(items, c.NewItem(header))
		}
		previous = e.Family
		if collapsed {
			continue
		}
		row := &CatalogRow{Entry: e, models: s.models, onChange: s.onChange}
		s.rows = append(s.rows, row)
		items = append(items, c.NewItem(row))
	}
	return items
}
