package menu

import (
	"fmt"
	"slices"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/notify"
)

var (
	entryA7  = catalog.Entry{ID: "a-7b", Family: "A", Size: "7B", Quantization: "Q4_K_M", Order: 1}
	entryA13 = catalog.Entry{ID: "a-13b", Family: "A", Size: "13B", Order: 2}
	entryB7  = catalog.Entry{ID: "b-7b", Family: "B", Size: "7B", Order: 3}
	entryC3  = catalog.Entry{ID: "c-3b", Family: "C", Size: "3B", Order: 4}
)

type fakeModels struct {
	installed   []catalog.Entry
	downloading []catalog.Entry
	progress    map[string]float64
	refreshes   int
	downloadErr error
}

func newFakeModels() *fakeModels {
	return &fakeModels{progress: make(map[string]float64)}
}

func hasEntry(list []catalog.Entry, e catalog.Entry) bool {
	return slices.ContainsFunc(list, func(x catalog.Entry) bool { return x.ID == e.ID })
}

func withoutEntry(list []catalog.Entry, e catalog.Entry) []catalog.Entry {
	return slices.DeleteFunc(slices.Clone(list), func(x catalog.Entry) bool { return x.ID == e.ID })
}

func (m *fakeModels) Installed() []catalog.Entry   { return slices.Clone(m.installed) }
func (m *fakeModels) Downloading() []catalog.Entry { return slices.Clone(m.downloading) }

func (m *fakeModels) IsInstalled(e catalog.Entry) bool   { return hasEntry(m.installed, e) }
func (m *fakeModels) IsDownloading(e catalog.Entry) bool { return hasEntry(m.downloading, e) }

func (m *fakeModels) Progress(e catalog.Entry) (float64, bool) {
	p, ok := m.progress[e.ID]
	return p, ok
}

func (m *fakeModels) Path(e catalog.Entry) string { return "/models/" + e.FileName() }

func (m *fakeModels) Download(e catalog.Entry) error {
	if m.downloadErr != nil {
		return m.downloadErr
	}
	m.downloading = append(m.downloading, e)
	m.progress[e.ID] = 0
	return nil
}

func (m *fakeModels) Cancel(e catalog.Entry) {
	m.downloading = withoutEntry(m.downloading, e)
	delete(m.progress, e.ID)
}

func (m *fakeModels) Delete(e catalog.Entry) error {
	if !hasEntry(m.installed, e) {
		return fmt.Errorf("%s is not installed", e.ID)
	}
	m.installed = withoutEntry(m.installed, e)
	return nil
}

func (m *fakeModels) Refresh() { m.refreshes++ }

func (m *fakeModels) install(e catalog.Entry) {
	m.downloading = withoutEntry(m.downloading, e)
	delete(m.progress, e.ID)
	if !hasEntry(m.installed, e) {
		m.installed = append(m.installed, e)
	}
}

type fakeServer struct {
	active string
	path   string
	memory uint64
	stops  int
}

func (s *fakeServer) Running() bool       { return s.active != "" }
func (s *fakeServer) ActiveModel() string { return s.active }
func (s *fakeServer) Address() string     { return "localhost:8080" }
func (s *fakeServer) MemoryBytes() uint64 { return s.memory }

func (s *fakeServer) IsActive(e catalog.Entry) bool { return s.active != "" && s.active == e.ID }

func (s *fakeServer) Start(e catalog.Entry, path string) error {
	s.active = e.ID
	s.path = path
	return nil
}

func (s *fakeServer) Stop() error {
	s.active = ""
	s.stops++
	return nil
}

type fakePrefs struct {
	showQuantized bool
	bus           *notify.Bus
}

func (p *fakePrefs) ShowQuantized() bool { return p.showQuantized }

func (p *fakePrefs) SetShowQuantized(v bool) error {
	if p.showQuantized == v {
		return nil
	}
	p.showQuantized = v
	p.bus.Post(notify.Event{Kind: notify.PreferencesChanged})
	return nil
}

type fakeLogin struct{ enabled bool }

func (l *fakeLogin) Enabled() bool { return l.enabled }

func (l *fakeLogin) SetEnabled(v bool) error {
	l.enabled = v
	return nil
}

type fixture struct {
	ctrl   *Controller
	models *fakeModels
	server *fakeServer
	prefs  *fakePrefs
	login  *fakeLogin
	bus    *notify.Bus
	queue  *Queue
}

func newFixture(entries ...catalog.Entry) *fixture {
	if len(entries) == 0 {
		entries = []catalog.Entry{entryA7, entryA13, entryB7}
	}
	bus := notify.New(64)
	f := &fixture{
		models: newFakeModels(),
		server: &fakeServer{},
		prefs:  &fakePrefs{bus: bus},
		login:  &fakeLogin{},
		bus:    bus,
		queue:  &Queue{},
	}
	f.ctrl = NewController(Options{
		Catalog:     catalog.New(entries, 0),
		Models:      f.models,
		Server:      f.server,
		Preferences: f.prefs,
		LoginItem:   f.login,
		Bus:         bus,
		Scheduler:   f.queue,
		Version:     "llamabar test",
	})
	return f
}

// pump dispatches queued notifications the way the UI loop does.
func (f *fixture) pump() {
	for {
		select {
		case evt := <-f.bus.Events():
			f.bus.Dispatch(evt)
		default:
			return
		}
	}
}

func (f *fixture) layout() []string {
	return layoutOf(f.ctrl.Container())
}

// id finds the item whose layout label equals want.
func (f *fixture) id(want string) ItemID {
	c := f.ctrl.Container()
	for _, it := range c.Items() {
		if describe(it) == want {
			return it.ID
		}
	}
	return 0
}

func layoutOf(c *Container) []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, c.Len())
	for _, it := range c.Items() {
		out = append(out, describe(it))
	}
	return out
}

func describe(it *Item) string {
	if it.Separator {
		return "---"
	}
	switch r := it.Row.(type) {
	case *HeaderRow:
		return "header"
	case *SectionHeaderRow:
		return "section:" + r.Title
	case *InstalledRow:
		return "installed:" + r.Entry.ID
	case *CatalogRow:
		return "catalog:" + r.Entry.ID
	case *FamilyHeaderRow:
		if r.Collapsed {
			return "family:" + r.Family + "+"
		}
		return "family:" + r.Family + "-"
	case *FooterRow:
		return "footer"
	case *SettingRow:
		return "setting:" + r.Title
	}
	return "?"
}
