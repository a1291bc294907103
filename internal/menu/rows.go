package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/notify"
)

const appTitle = "llamabar"

type rowBase struct {
	highlighted bool
}

func (r *rowBase) SetHighlighted(v bool) { r.highlighted = v }

func (r *rowBase) Highlighted() bool { return r.highlighted }

// HeaderRow shows the application name and server status.
type HeaderRow struct {
	rowBase
	server  Server
	Title   string
	Status  string
	Running bool
}

func newHeaderRow(server Server) *HeaderRow {
	r := &HeaderRow{server: server, Title: appTitle}
	r.Refresh()
	return r
}

func (r *HeaderRow) Enabled() bool { return false }

func (r *HeaderRow) Label() string { return r.Title }

// Refresh re-reads the server state.
func (r *HeaderRow) Refresh() {
	r.Running = r.server != nil && r.server.Running()
	if !r.Running {
		r.Status = "Select a model to run"
		return
	}
	model := r.server.ActiveModel()
	if model == "" {
		model = "model"
	}
	r.Status = fmt.Sprintf("%s is running on %s", model, r.server.Address())
}

// SectionHeaderRow titles a section.
type SectionHeaderRow struct {
	rowBase
	Title string
}

func (r *SectionHeaderRow) Enabled() bool { return false }

func (r *SectionHeaderRow) Label() string { return r.Title }

// InstalledRow is a downloaded or downloading model.
type InstalledRow struct {
	rowBase
	Entry       catalog.Entry
	Downloading bool
	Progress    float64
	Active      bool
	MemoryBytes uint64

	models   Models
	server   Server
	onChange func(catalog.Entry)
}

func (r *InstalledRow) Enabled() bool { return true }

func (r *InstalledRow) Label() string { return r.Entry.DisplayName() }

// Refresh updates progress and running state in place.
func (r *InstalledRow) Refresh() {
	r.Downloading = r.models.IsDownloading(r.Entry)
	r.Progress = 0
	if p, ok := r.models.Progress(r.Entry); ok {
		r.Progress = p
	}
	r.Active = r.server != nil && r.server.IsActive(r.Entry)
	r.MemoryBytes = 0
	if r.Active {
		r.MemoryBytes = r.server.MemoryBytes()
	}
}

// Activate starts the server on this model, or stops it when already active.
// Downloading rows have no primary action.
func (r *InstalledRow) Activate() error {
	if r.Downloading || r.server == nil {
		return nil
	}
	if r.server.IsActive(r.Entry) {
		return r.server.Stop()
	}
	return r.server.Start(r.Entry, r.models.Path(r.Entry))
}

// Secondary cancels a download in progress or deletes the installed model.
// Either way the model leaves the Installed section.
func (r *InstalledRow) Secondary() error {
	if r.models.IsDownloading(r.Entry) {
		r.models.Cancel(r.Entry)
		r.notify()
		return nil
	}
	if r.server != nil && r.server.IsActive(r.Entry) {
		if err := r.server.Stop(); err != nil {
			return fmt.Errorf("stop server: %w", err)
		}
	}
	if err := r.models.Delete(r.Entry); err != nil {
		return err
	}
	r.notify()
	return nil
}

func (r *InstalledRow) notify() {
	if r.onChange != nil {
		r.onChange(r.Entry)
	}
}

// CatalogRow is an available model that can be downloaded.
type CatalogRow struct {
	rowBase
	Entry       catalog.Entry
	Downloading bool

	models   Models
	onChange func(catalog.Entry)
}

func (r *CatalogRow) Enabled() bool { return true }

func (r *CatalogRow) Label() string { return r.Entry.DisplayName() }

func (r *CatalogRow) Refresh() {
	r.Downloading = r.models.IsDownloading(r.Entry)
}

// Activate starts the download; the model moves to the Installed section.
func (r *CatalogRow) Activate() error {
	if r.Downloading {
		return nil
	}
	if err := r.models.Download(r.Entry); err != nil {
		return err
	}
	r.Downloading = true
	if r.onChange != nil {
		r.onChange(r.Entry)
	}
	return nil
}

// FamilyHeaderRow is the collapsible header of a catalog family.
type FamilyHeaderRow struct {
	rowBase
	Family    string
	Sizes     []string
	Collapsed bool

	onToggle func(string)
}

func (r *FamilyHeaderRow) Enabled() bool { return true }

func (r *FamilyHeaderRow) Label() string { return r.Family }

// SizeSummary is shown next to the family name while collapsed.
func (r *FamilyHeaderRow) SizeSummary() string {
	if !r.Collapsed || len(r.Sizes) == 0 {
		return ""
	}
	return strings.Join(r.Sizes, " · ")
}

func (r *FamilyHeaderRow) Activate() error {
	if r.onToggle != nil {
		r.onToggle(r.Family)
	}
	return nil
}

// FooterRow shows the version and opens the settings run.
type FooterRow struct {
	rowBase
	Version string

	bus *notify.Bus
}

func (r *FooterRow) Enabled() bool { return true }

func (r *FooterRow) Label() string { return r.Version }

// Activate requests the settings run be shown or hidden.
func (r *FooterRow) Activate() error {
	r.bus.Post(notify.Event{Kind: notify.SettingsVisibilityToggled})
	return nil
}

// SettingRow is a boolean preference in the settings run.
type SettingRow struct {
	rowBase
	Title string
	On    bool

	get func() bool
	set func(bool) error
}

func (r *SettingRow) Enabled() bool { return true }

func (r *SettingRow) Label() string { return r.Title }

func (r *SettingRow) Refresh() {
	r.On = r.get()
}

func (r *SettingRow) Activate() error {
	if err := r.set(!r.get()); err != nil {
		return fmt.Errorf("%s: %w", strings.ToLower(r.Title), err)
	}
	r.On = r.get()
	return nil
}
