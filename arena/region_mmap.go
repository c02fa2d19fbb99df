//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package arena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// mapRegion maps n bytes of anonymous private memory. Mappings are
// page-aligned, so no padding is needed.
func mapRegion(n int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrRegion, n, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data[:n:n], release, nil
}
