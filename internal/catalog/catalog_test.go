package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCompareOrdersFamilySizeThenPrecision(t *testing.T) {
	entries := []Entry{
		{ID: "b7", Family: "B", Size: "7B"},
		{ID: "a13", Family: "A", Size: "13B"},
		{ID: "a7q", Family: "A", Size: "7B", Quantization: "Q4_K_M"},
		{ID: "a7", Family: "A", Size: "7B"},
		{ID: "a270m", Family: "A", Size: "270M"},
	}
	c := New(entries, 0)
	got := c.Entries()
	want := []string{"a270m", "a7", "a7q", "a13", "b7"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (%v)", i, id, got[i].ID, got)
		}
	}
}

func TestParamsB(t *testing.T) {
	cases := map[string]float64{"7B": 7, "270M": 0.27, "8x7B": 56, "0.6B": 0.6, "huge": 0, "": 0}
	for label, want := range cases {
		if got := (Entry{Size: label}).ParamsB(); got != want {
			t.Fatalf("%q: expected %v, got %v", label, want, got)
		}
	}
}

func TestFullPrecisionAndDisplayName(t *testing.T) {
	full := Entry{Family: "Qwen3", Size: "4B", Quantization: "f16"}
	if !full.FullPrecision() {
		t.Fatalf("expected f16 to be full precision")
	}
	if full.DisplayName() != "Qwen3 4B" {
		t.Fatalf("unexpected name %q", full.DisplayName())
	}
	quant := Entry{Family: "Qwen3", Size: "8B", Quantization: "Q4_K_M"}
	if quant.FullPrecision() {
		t.Fatalf("expected Q4_K_M to be quantized")
	}
	if quant.DisplayName() != "Qwen3 8B Q4_K_M" {
		t.Fatalf("unexpected name %q", quant.DisplayName())
	}
}

func TestCompatibleUsesMemoryBudget(t *testing.T) {
	c := New(nil, 10_000)
	if !c.Compatible(Entry{FileSize: 6_000}) {
		t.Fatalf("expected 6000*1.2 within 7500 budget")
	}
	if c.Compatible(Entry{FileSize: 7_000}) {
		t.Fatalf("expected 7000*1.2 to exceed budget")
	}
	if !New(nil, 0).Compatible(Entry{FileSize: 1 << 40}) {
		t.Fatalf("expected unknown memory to accept everything")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `models:
  - family: A
    size: 13B
    url: https://example.com/a-13b.gguf
  - family: A
    size: 7B
    quantization: Q4_K_M
    url: https://example.com/a-7b-q4.gguf
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := c.Entries()
	if len(entries) != 2 || entries[0].ID != "a-7b-q4_k_m" {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if entries[1].FileName() != "a-13b.gguf" {
		t.Fatalf("unexpected file name %q", entries[1].FileName())
	}
	if _, ok := c.Lookup("a-13b"); !ok {
		t.Fatalf("expected lookup by derived id")
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	if _, err := Parse([]byte("models:\n  - family: A\n")); err == nil {
		t.Fatalf("expected missing size error")
	}
	dup := "models:\n  - {id: x, family: A, size: 1B, url: u}\n  - {id: x, family: B, size: 1B, url: u}\n"
	if _, err := Parse([]byte(dup)); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestProbeMemorySimulated(t *testing.T) {
	if got := probeMemory("2"); got != 2*1024*1024*1024 {
		t.Fatalf("unexpected simulated memory %d", got)
	}
}

func TestDefaultCatalogIsSorted(t *testing.T) {
	entries := Default().Entries()
	for i := 1; i < len(entries); i++ {
		if Compare(entries[i-1], entries[i]) > 0 {
			t.Fatalf("entries out of order at %d: %s > %s", i, entries[i-1].ID, entries[i].ID)
		}
	}
}
