package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// runtimeOverhead is the fraction added to an artifact's file size to account
// for context and compute buffers once loaded.
const runtimeOverhead = 0.2

// memoryBudget is the share of physical memory a model may occupy.
const memoryBudget = 0.75

type document struct {
	Models []Entry `yaml:"models"`
}

// Catalog is the immutable set of downloadable entries.
type Catalog struct {
	entries []Entry
	memory  uint64
}

// New builds a catalog over entries. A zero memory value disables the
// compatibility check.
func New(entries []Entry, memory uint64) *Catalog {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	for i := range dup {
		if dup[i].ID == "" {
			dup[i].ID = defaultID(dup[i])
		}
		if dup[i].Order == 0 {
			dup[i].Order = i + 1
		}
	}
	slices.SortStableFunc(dup, Compare)
	return &Catalog{entries: dup, memory: memory}
}

// Load reads a YAML catalog file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(doc.Models))
	for i, e := range doc.Models {
		if strings.TrimSpace(e.Family) == "" || strings.TrimSpace(e.Size) == "" {
			return nil, fmt.Errorf("catalog entry %d: family and size are required", i)
		}
		if strings.TrimSpace(e.URL) == "" {
			return nil, fmt.Errorf("catalog entry %d (%s %s): url is required", i, e.Family, e.Size)
		}
		id := e.ID
		if id == "" {
			id = defaultID(e)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
	}
	return New(doc.Models, MemoryBytes()), nil
}

// Entries returns every entry in display order.
func (c *Catalog) Entries() []Entry {
	dup := make([]Entry, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Compatible reports whether e fits in this machine's memory budget.
func (c *Catalog) Compatible(e Entry) bool {
	if c.memory == 0 || e.FileSize <= 0 {
		return true
	}
	need := float64(e.FileSize) * (1 + runtimeOverhead)
	return need <= float64(c.memory)*memoryBudget
}

// Order is the external total ordering consumed by the menu.
func (c *Catalog) Order(a, b Entry) int {
	return Compare(a, b)
}

func defaultID(e Entry) string {
	id := strings.ToLower(strings.Join([]string{e.Family, e.Size, e.Quantization}, "-"))
	id = strings.TrimSuffix(id, "-")
	return strings.ReplaceAll(id, " ", "-")
}
