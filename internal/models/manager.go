package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/atomicstack/llamabar/internal/catalog"
	"github.com/atomicstack/llamabar/internal/logging"
	"github.com/atomicstack/llamabar/internal/logging/events"
	"github.com/atomicstack/llamabar/internal/notify"
)

const partialSuffix = ".partial"

// ErrBusy is returned when a download is requested for an entry that is
// already installed or downloading.
var ErrBusy = errors.New("model already installed or downloading")

// Catalog is the subset of the catalog the manager needs.
type Catalog interface {
	Entries() []catalog.Entry
	Order(a, b catalog.Entry) int
}

// Options configures a Manager.
type Options struct {
	Dir          string
	Catalog      Catalog
	Bus          *notify.Bus
	Client       *http.Client
	MaxDownloads int
}

type download struct {
	entry    catalog.Entry
	cancel   context.CancelFunc
	received atomic.Int64
	total    atomic.Int64
}

// Manager tracks which catalog entries are on disk and runs downloads.
// Queries are safe from any goroutine.
type Manager struct {
	dir     string
	catalog Catalog
	bus     *notify.Bus
	client  *http.Client
	sem     *semaphore.Weighted

	mu        sync.Mutex
	installed map[string]catalog.Entry
	downloads map[string]*download
	wg        sync.WaitGroup
}

func New(opts Options) *Manager {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.MaxDownloads <= 0 {
		opts.MaxDownloads = 2
	}
	return &Manager{
		dir:       opts.Dir,
		catalog:   opts.Catalog,
		bus:       opts.Bus,
		client:    opts.Client,
		sem:       semaphore.NewWeighted(int64(opts.MaxDownloads)),
		installed: make(map[string]catalog.Entry),
		downloads: make(map[string]*download),
	}
}

// Dir returns the models directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Path is where the artifact for e lives once installed.
func (m *Manager) Path(e catalog.Entry) string {
	return filepath.Join(m.dir, e.FileName())
}

// Refresh rescans the models directory, logging failures.
func (m *Manager) Refresh() {
	if err := m.Scan(); err != nil {
		logging.Error(err)
	}
}

// Scan rebuilds the installed set from the directory and posts
// InstalledListChanged when it differs from the previous scan.
func (m *Manager) Scan() error {
	found := make(map[string]catalog.Entry)
	for _, e := range m.catalog.Entries() {
		info, err := os.Stat(m.Path(e))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("scan %s: %w", e.ID, err)
		}
		if info.Mode().IsRegular() {
			found[e.ID] = e
		}
	}

	m.mu.Lock()
	changed := !sameKeys(m.installed, found)
	m.installed = found
	m.mu.Unlock()

	events.Models.Scan(m.dir, len(found))
	if changed {
		m.post(notify.InstalledListChanged, "")
	}
	return nil
}

func sameKeys(a, b map[string]catalog.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Installed returns the installed entries in catalog order.
func (m *Manager) Installed() []catalog.Entry {
	m.mu.Lock()
	out := make([]catalog.Entry, 0, len(m.installed))
	for _, e := range m.installed {
		out = append(out, e)
	}
	m.mu.Unlock()
	slices.SortFunc(out, m.catalog.Order)
	return out
}

// Downloading returns the entries with a download in flight or queued.
func (m *Manager) Downloading() []catalog.Entry {
	m.mu.Lock()
	out := make([]catalog.Entry, 0, len(m.downloads))
	for _, d := range m.downloads {
		out = append(out, d.entry)
	}
	m.mu.Unlock()
	slices.SortFunc(out, m.catalog.Order)
	return out
}

func (m *Manager) IsInstalled(e catalog.Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.installed[e.ID]
	return ok
}

func (m *Manager) IsDownloading(e catalog.Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.downloads[e.ID]
	return ok
}

// Progress reports the completed fraction of a download. The second result
// is false when e is not downloading.
func (m *Manager) Progress(e catalog.Entry) (float64, bool) {
	m.mu.Lock()
	d, ok := m.downloads[e.ID]
	m.mu.Unlock()
	if !ok {
		return 0, false
	}
	total := d.total.Load()
	if total <= 0 {
		return 0, true
	}
	return min(float64(d.received.Load())/float64(total), 1), true
}

// Snapshot returns the progress of every download keyed by entry ID, rounded
// to whole percent so that pollers only see meaningful changes.
func (m *Manager) Snapshot() map[string]int {
	m.mu.Lock()
	ids := make([]catalog.Entry, 0, len(m.downloads))
	for _, d := range m.downloads {
		ids = append(ids, d.entry)
	}
	m.mu.Unlock()
	out := make(map[string]int, len(ids))
	for _, e := range ids {
		if p, ok := m.Progress(e); ok {
			out[e.ID] = int(p * 100)
		}
	}
	return out
}

// Download starts fetching e in the background. Downloads beyond the
// concurrency cap wait for a slot.
func (m *Manager) Download(e catalog.Entry) error {
	if strings.TrimSpace(e.URL) == "" {
		return fmt.Errorf("download %s: no url", e.ID)
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &download{entry: e, cancel: cancel}

	m.mu.Lock()
	_, installed := m.installed[e.ID]
	_, active := m.downloads[e.ID]
	if installed || active {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("download %s: %w", e.ID, ErrBusy)
	}
	m.downloads[e.ID] = d
	m.wg.Add(1)
	m.mu.Unlock()

	events.Models.DownloadStart(e.ID, e.URL)
	m.post(notify.InstalledListChanged, e.ID)
	go m.run(ctx, d)
	return nil
}

func (m *Manager) run(ctx context.Context, d *download) {
	defer m.wg.Done()
	defer d.cancel()

	err := m.fetch(ctx, d)
	if ctx.Err() != nil {
		// Cancel has already removed the entry and notified.
		events.Models.DownloadCancel(d.entry.ID)
		return
	}

	m.mu.Lock()
	if m.downloads[d.entry.ID] == d {
		delete(m.downloads, d.entry.ID)
	}
	if err == nil {
		m.installed[d.entry.ID] = d.entry
	}
	m.mu.Unlock()

	events.Models.DownloadDone(d.entry.ID, err)
	if err != nil {
		logging.Error(err)
	}
	m.post(notify.InstalledListChanged, d.entry.ID)
}

func (m *Manager) fetch(ctx context.Context, d *download) error {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer m.sem.Release(1)

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.entry.URL, nil)
	if err != nil {
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", d.entry.ID, resp.Status)
	}
	total := resp.ContentLength
	if total <= 0 {
		total = d.entry.FileSize
	}
	d.total.Store(total)

	final := m.Path(d.entry)
	partial := final + partialSuffix
	f, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	_, copyErr := io.Copy(f, &countingReader{r: resp.Body, n: &d.received})
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(partial)
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	if err := os.Rename(partial, final); err != nil {
		os.Remove(partial)
		return fmt.Errorf("download %s: %w", d.entry.ID, err)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n *atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// Cancel aborts a download in progress. The model leaves the downloading set
// immediately.
func (m *Manager) Cancel(e catalog.Entry) {
	m.mu.Lock()
	d, ok := m.downloads[e.ID]
	if ok {
		delete(m.downloads, e.ID)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	d.cancel()
	m.post(notify.InstalledListChanged, e.ID)
}

// Delete removes an installed artifact from disk.
func (m *Manager) Delete(e catalog.Entry) error {
	if err := os.Remove(m.Path(e)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", e.ID, err)
	}
	m.mu.Lock()
	_, ok := m.installed[e.ID]
	delete(m.installed, e.ID)
	m.mu.Unlock()
	events.Models.Delete(e.ID)
	if ok {
		m.post(notify.InstalledListChanged, e.ID)
	}
	return nil
}

// Wait blocks until every started download has finished or been cancelled.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Close cancels all downloads and waits for them to unwind.
func (m *Manager) Close() {
	m.mu.Lock()
	for id, d := range m.downloads {
		d.cancel()
		delete(m.downloads, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) post(kind notify.Kind, subject string) {
	m.bus.Post(notify.Event{Kind: kind, Subject: subject})
}
