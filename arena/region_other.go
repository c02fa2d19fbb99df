//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package arena

// mapRegion falls back to the Go heap where anonymous mappings are not wired up.
func mapRegion(n int) ([]byte, func() error, error) {
	return heapRegion(n)
}
