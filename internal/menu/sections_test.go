package menu

import (
	"testing"

	"github.com/atomicstack/llamabar/internal/notify"
)

func TestOpenBuildsCollapsedFamiliesWithoutQuantized(t *testing.T) {
	f := newFixture()
	f.ctrl.Open()

	want := []string{"header", "---", "---", "family:A+", "family:B+", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	it, _ := f.ctrl.Container().Lookup(f.id("family:A+"))
	header := it.Row.(*FamilyHeaderRow)
	if !equalStrings(header.Sizes, []string{"13B"}) || header.SizeSummary() != "13B" {
		t.Fatalf("family A sizes = %v summary %q", header.Sizes, header.SizeSummary())
	}

	f.ctrl.Activate(f.id("family:A+"))
	f.ctrl.Activate(f.id("family:B+"))
	want = []string{"header", "---", "---", "family:A-", "catalog:a-13b", "family:B-", "catalog:b-7b", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("expanded layout = %v, want %v", got, want)
	}
	if f.models.refreshes != 1 {
		t.Fatalf("expected installed list refreshed once on open, got %d", f.models.refreshes)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	f := newFixture(entryA7, entryA13, entryB7, entryC3)
	f.models.install(entryC3)
	f.ctrl.Open()
	f.ctrl.Activate(f.id("family:A+"))

	before := f.layout()
	for i := 0; i < 3; i++ {
		f.ctrl.RebuildSections()
		f.ctrl.RebuildCatalog()
		f.queue.Drain()
	}
	if got := f.layout(); !equalStrings(got, before) {
		t.Fatalf("layout drifted: %v, want %v", got, before)
	}
}

func TestInstalledSectionDisappearsWithLastEntry(t *testing.T) {
	f := newFixture()
	f.models.install(entryA13)
	f.models.install(entryB7)
	f.ctrl.Open()

	want := []string{"header", "---", "section:Installed", "installed:a-13b", "installed:b-7b", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	if f.ctrl.Catalog().Anchor() != 0 {
		t.Fatalf("empty catalog should have no anchor")
	}

	if err := f.ctrl.Secondary(f.id("installed:b-7b")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want = []string{"header", "---", "section:Installed", "installed:a-13b", "---", "family:B+", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("after last-but-one = %v, want %v", got, want)
	}

	if err := f.ctrl.Secondary(f.id("installed:a-13b")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want = []string{"header", "---", "---", "family:A+", "family:B+", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("after last = %v, want %v", got, want)
	}
	if f.ctrl.Installed().Anchor() != 0 {
		t.Fatalf("installed anchor should be cleared")
	}
}

func TestInstalledSectionCreatedAfterHeader(t *testing.T) {
	f := newFixture()
	f.ctrl.Open()
	f.ctrl.Activate(f.id("family:B+"))
	if err := f.ctrl.Activate(f.id("catalog:b-7b")); err != nil {
		t.Fatalf("download: %v", err)
	}
	want := []string{"header", "---", "section:Installed", "installed:b-7b", "---", "family:A+", "---", "footer"}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	it, _ := f.ctrl.Container().Lookup(f.id("installed:b-7b"))
	if !it.Row.(*InstalledRow).Downloading {
		t.Fatalf("new installed row should report downloading")
	}
}

func TestCatalogCreatedBeforeFooterWithSettingsVisible(t *testing.T) {
	f := newFixture()
	f.models.install(entryA13)
	f.models.install(entryB7)
	f.ctrl.Open()
	f.ctrl.Activate(f.id("footer"))
	f.pump()

	f.models.Delete(entryB7)
	f.bus.Post(notify.Event{Kind: notify.InstalledListChanged})
	f.pump()

	want := []string{
		"header", "---", "section:Installed", "installed:a-13b",
		"---", "family:B+",
		"---", "footer",
		"---", "setting:Launch at login", "setting:Show quantized models",
	}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
}

func TestRefreshUpdatesRowsInPlace(t *testing.T) {
	f := newFixture()
	f.models.install(entryA13)
	f.models.downloading = append(f.models.downloading, entryB7)
	f.models.progress[entryB7.ID] = 0.25
	f.ctrl.Open()

	id := f.id("installed:b-7b")
	f.ctrl.Highlight(id)
	gen := f.ctrl.Container().Generation()

	f.models.progress[entryB7.ID] = 0.5
	f.server.Start(entryA13, f.models.Path(entryA13))
	f.server.memory = 4 << 30
	f.bus.Post(notify.Event{Kind: notify.DownloadsChanged})
	f.bus.Post(notify.Event{Kind: notify.ServerStateChanged})
	f.pump()

	if f.ctrl.Container().Generation() != gen {
		t.Fatalf("refresh changed structure")
	}
	if f.ctrl.HighlightedID() != id {
		t.Fatalf("refresh disturbed highlight")
	}
	it, _ := f.ctrl.Container().Lookup(id)
	if p := it.Row.(*InstalledRow).Progress; p != 0.5 {
		t.Fatalf("progress = %v", p)
	}
	it, _ = f.ctrl.Container().Lookup(f.id("installed:a-13b"))
	row := it.Row.(*InstalledRow)
	if !row.Active || row.MemoryBytes != 4<<30 {
		t.Fatalf("active row not refreshed: %+v", row)
	}
	header, _ := f.ctrl.Container().Lookup(f.id("header"))
	if status := header.Row.(*HeaderRow).Status; status != "a-13b is running on localhost:8080" {
		t.Fatalf("status = %q", status)
	}
}

func TestInstalledRowActions(t *testing.T) {
	f := newFixture()
	f.models.install(entryA13)
	f.models.downloading = append(f.models.downloading, entryB7)
	f.ctrl.Open()

	if err := f.ctrl.Activate(f.id("installed:a-13b")); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !f.server.IsActive(entryA13) || f.server.path != "/models/a-13b.gguf" {
		t.Fatalf("server not started on model: %+v", f.server)
	}
	if err := f.ctrl.Activate(f.id("installed:b-7b")); err != nil || f.server.active != "a-13b" {
		t.Fatalf("downloading row should not start the server")
	}
	if err := f.ctrl.Secondary(f.id("installed:b-7b")); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if f.models.IsDownloading(entryB7) || f.id("installed:b-7b") != 0 {
		t.Fatalf("cancelled download still listed")
	}
	if err := f.ctrl.Secondary(f.id("installed:a-13b")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.server.Running() || f.server.stops != 1 {
		t.Fatalf("deleting the active model should stop the server")
	}
}

func TestPreferenceChangeRebuildsMenu(t *testing.T) {
	f := newFixture()
	f.ctrl.Open()
	f.ctrl.Activate(f.id("footer"))
	f.pump()
	f.ctrl.Activate(f.id("family:A+"))

	if err := f.ctrl.Activate(f.id("setting:Show quantized models")); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	f.pump()

	want := []string{
		"header", "---", "---",
		"family:A-", "catalog:a-7b", "catalog:a-13b", "family:B+",
		"---", "footer", "---", "setting:Launch at login", "setting:Show quantized models",
	}
	if got := f.layout(); !equalStrings(got, want) {
		t.Fatalf("layout = %v, want %v", got, want)
	}
	it, _ := f.ctrl.Container().Lookup(f.id("setting:Show quantized models"))
	if !it.Row.(*SettingRow).On {
		t.Fatalf("setting row not refreshed")
	}
}
