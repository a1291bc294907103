package catalog

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Entry describes a downloadable model artifact.
type Entry struct {
	ID           string `yaml:"id"`
	Family       string `yaml:"family"`
	Size         string `yaml:"size"`
	Quantization string `yaml:"quantization,omitempty"`
	FileSize     int64  `yaml:"file_size"`
	URL          string `yaml:"url"`
	File         string `yaml:"file,omitempty"`
	Order        int    `yaml:"order,omitempty"`
}

// FullPrecision reports whether the entry is an unquantized build.
func (e Entry) FullPrecision() bool {
	q := strings.ToUpper(strings.TrimSpace(e.Quantization))
	switch q {
	case "", "F16", "BF16", "F32":
		return true
	}
	return false
}

// DisplayName is the row label for the entry.
func (e Entry) DisplayName() string {
	name := strings.TrimSpace(e.Family + " " + e.Size)
	if !e.FullPrecision() {
		name = fmt.Sprintf("%s %s", name, e.Quantization)
	}
	return name
}

// FileName is the on-disk name of the artifact.
func (e Entry) FileName() string {
	if e.File != "" {
		return e.File
	}
	if idx := strings.LastIndex(e.URL, "/"); idx >= 0 && idx < len(e.URL)-1 {
		return e.URL[idx+1:]
	}
	return e.ID + ".gguf"
}

// ParamsB parses the parameter count in billions from the size label, e.g.
// "7B" → 7, "270M" → 0.27, "8x7B" → 56. Unparseable labels return 0.
func (e Entry) ParamsB() float64 {
	label := strings.ToUpper(strings.TrimSpace(e.Size))
	if label == "" {
		return 0
	}
	mult := 1.0
	if idx := strings.Index(label, "X"); idx > 0 {
		experts, err := strconv.ParseFloat(label[:idx], 64)
		if err != nil {
			return 0
		}
		mult = experts
		label = label[idx+1:]
	}
	div := 1.0
	switch {
	case strings.HasSuffix(label, "B"):
		label = strings.TrimSuffix(label, "B")
	case strings.HasSuffix(label, "M"):
		label = strings.TrimSuffix(label, "M")
		div = 1000
	default:
		return 0
	}
	n, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return 0
	}
	return n / div * mult
}

// Compare is the display ordering over entries: family, then parameter
// count, then full precision before quantized, then the catalog order key.
func Compare(a, b Entry) int {
	if c := cmp.Compare(strings.ToLower(a.Family), strings.ToLower(b.Family)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ParamsB(), b.ParamsB()); c != 0 {
		return c
	}
	if a.FullPrecision() != b.FullPrecision() {
		if a.FullPrecision() {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
