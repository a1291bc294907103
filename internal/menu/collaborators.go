package menu

import "github.com/atomicstack/llamabar/internal/catalog"

// Catalog enumerates downloadable entries and supplies their display order.
type Catalog interface {
	Entries() []catalog.Entry
	Compatible(catalog.Entry) bool
	Order(a, b catalog.Entry) int
}

// Models answers installation and download queries and performs the
// corresponding commands.
type Models interface {
	Installed() []catalog.Entry
	Downloading() []catalog.Entry
	IsInstalled(catalog.Entry) bool
	IsDownloading(catalog.Entry) bool
	Progress(catalog.Entry) (float64, bool)
	Path(catalog.Entry) string
	Download(catalog.Entry) error
	Cancel(catalog.Entry)
	Delete(catalog.Entry) error
	Refresh()
}

// Server is the inference server supervisor.
type Server interface {
	Running() bool
	ActiveModel() string
	Address() string
	MemoryBytes() uint64
	IsActive(catalog.Entry) bool
	Start(e catalog.Entry, path string) error
	Stop() error
}

// Preferences exposes the user settings the menu reads and edits.
type Preferences interface {
	ShowQuantized() bool
	SetShowQuantized(bool) error
}

// LoginItem toggles launching at login.
type LoginItem interface {
	Enabled() bool
	SetEnabled(bool) error
}

// Activator is implemented by rows with a primary action.
type Activator interface {
	Activate() error
}

// SecondaryActivator is implemented by rows with a secondary action such as
// delete or cancel.
type SecondaryActivator interface {
	Secondary() error
}

// Refresher is implemented by rows whose display fields track external state.
type Refresher interface {
	Refresh()
}
