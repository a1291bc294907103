//go:build darwin

package catalog

import "golang.org/x/sys/unix"

func systemMemory() uint64 {
	size, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return 0
	}
	return size
}
