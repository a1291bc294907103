package catalog

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

const envSimulateMemory = "LLAMABAR_SIMULATE_MEM_GB"

var (
	memoryOnce  sync.Once
	memoryBytes uint64
)

// MemoryBytes returns the physical memory of this machine, cached for the
// process lifetime. LLAMABAR_SIMULATE_MEM_GB overrides the probe.
func MemoryBytes() uint64 {
	memoryOnce.Do(func() {
		memoryBytes = probeMemory(os.Getenv(envSimulateMemory))
	})
	return memoryBytes
}

func probeMemory(simulated string) uint64 {
	if v := strings.TrimSpace(simulated); v != "" {
		if gb, err := strconv.ParseFloat(v, 64); err == nil && gb > 0 {
			return uint64(gb * 1024 * 1024 * 1024)
		}
	}
	return systemMemory()
}
