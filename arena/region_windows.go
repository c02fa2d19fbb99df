//go:build windows

package arena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mapRegion reserves and commits n bytes with VirtualAlloc.
func mapRegion(n int) ([]byte, func() error, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: VirtualAlloc %d bytes: %v", ErrRegion, n, err)
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
	release := func() error {
		if addr == 0 {
			return nil
		}
		err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		addr = 0
		return err
	}
	return data, release, nil
}
