package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/menu"
)

func newBareModel() *Model {
	return NewModel(Options{Controller: menu.NewController(menu.Options{})})
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("llamabar", 5); got != "llam…" {
		t.Fatalf("expected llam…, got %q", got)
	}
	if got := truncateText("A 7B", 10); got != "A 7B" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := truncateText("abc", 1); got != "a" {
		t.Fatalf("expected single rune, got %q", got)
	}
}

func TestLimitHeightAddsEllipsis(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	got := limitHeight(lines, 2, 10)
	if len(got) != 2 || got[0].text != "a" || got[1].text != "…" {
		t.Fatalf("unexpected lines %#v", got)
	}
	if len(limitHeight(lines, 0, 10)) != 3 {
		t.Fatalf("expected no limit for zero height")
	}
}

func TestRowColumns(t *testing.T) {
	c := menu.NewContainer()
	entry := catalog.Entry{ID: "a-7b", Family: "A", Size: "7B", FileSize: 4_000_000_000}

	body, detail, ok := rowColumns(c.NewItem(&menu.CatalogRow{Entry: entry}))
	if !ok || body != "    A 7B" || detail != "4.0 GB" {
		t.Fatalf("unexpected catalog columns %q %q %v", body, detail, ok)
	}
	body, detail, ok = rowColumns(c.NewItem(&menu.FamilyHeaderRow{Family: "A", Sizes: []string{"7B", "13B"}, Collapsed: true}))
	if !ok || body != "▸ A" || detail != "7B · 13B" {
		t.Fatalf("unexpected family columns %q %q %v", body, detail, ok)
	}
	body, detail, ok = rowColumns(c.NewItem(&menu.InstalledRow{Entry: entry, Active: true, MemoryBytes: 3 << 30}))
	if !ok || body != "● A 7B" || detail != "3.0 GiB" {
		t.Fatalf("unexpected installed columns %q %q %v", body, detail, ok)
	}
	if _, _, ok := rowColumns(c.NewItem(&menu.InstalledRow{Entry: entry, Downloading: true})); ok {
		t.Fatalf("expected downloading rows excluded from columns")
	}
	if _, _, ok := rowColumns(c.NewSeparator()); ok {
		t.Fatalf("expected separators excluded from columns")
	}
}

func TestDownloadLineShowsProgress(t *testing.T) {
	m := newBareModel()
	c := menu.NewContainer()
	entry := catalog.Entry{ID: "a-7b", Family: "A", Size: "7B"}
	item := c.NewItem(&menu.InstalledRow{Entry: entry, Downloading: true, Progress: 0.42})
	line := m.buildItemLine(item, "", 0)
	if !line.raw {
		t.Fatalf("expected a pre-styled line")
	}
	if !strings.Contains(line.text, "A 7B") || !strings.Contains(line.text, "42%") {
		t.Fatalf("unexpected download line %q", line.text)
	}
}

func TestSettingAndFooterLines(t *testing.T) {
	m := newBareModel()
	c := menu.NewContainer()
	if got := m.buildItemLine(c.NewItem(&menu.SettingRow{Title: "Launch at login", On: true}), "", 0).text; got != "▌ [x] Launch at login" {
		t.Fatalf("unexpected setting line %q", got)
	}
	if got := m.buildItemLine(c.NewItem(&menu.FooterRow{Version: "v1"}), "", 0).text; got != "▌ v1  ⚙" {
		t.Fatalf("unexpected footer line %q", got)
	}
	if got := m.buildItemLine(c.NewSeparator(), "", 4).text; got != "────" {
		t.Fatalf("unexpected separator %q", got)
	}
}
