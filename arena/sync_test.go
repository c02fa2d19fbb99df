package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynchronized_ConcurrentHost(t *testing.T) {
	a, h := newTestArena(t, 16, 64, 32, 16)
	fn, ud := h.Allocator()
	hook := Synchronized(fn)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				size := 1 + (g*31+i)%80
				p := hook(ud, nil, 0, size)
				if p == nil {
					t.Errorf("goroutine %d: nil block", g)
					return
				}
				fill(p, size, byte(g))
				p = hook(ud, p, size, size/2+1)
				hook(ud, p, size/2+1, 0)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, a.Diagnostics().Live())
	require.Zero(t, h.heap.Blocks())
}
