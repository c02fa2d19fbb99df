package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocator_Contract(t *testing.T) {
	h := NewHeapAllocator(0)

	p := h.Realloc(nil, 0, 10)
	require.NotNil(t, p)
	require.Equal(t, 10, h.Live())
	require.Equal(t, 1, h.Blocks())
	fill(p, 10, 3)

	q := h.Realloc(p, 10, 40)
	requirePattern(t, q, 10, 3)
	require.Equal(t, 40, h.Live())
	require.Equal(t, 1, h.Blocks())

	r := h.Realloc(q, 40, 4)
	requirePattern(t, r, 4, 3)
	require.Equal(t, 4, h.Live())

	require.Nil(t, h.Realloc(r, 4, 0))
	require.Zero(t, h.Live())
	require.Zero(t, h.Blocks())

	require.Nil(t, h.Realloc(nil, 0, 0))
	require.Equal(t, 5, h.Calls())
}

func TestHeapAllocator_LimitKeepsOldBlock(t *testing.T) {
	h := NewHeapAllocator(32)

	p := HeapAlloc(h, nil, 0, 16)
	fill(p, 16, 1)

	require.Nil(t, HeapAlloc(h, p, 16, 64))
	require.Equal(t, 1, h.Failures())
	requirePattern(t, p, 16, 1)
	require.Equal(t, 16, h.Live())

	q := HeapAlloc(h, p, 16, 32)
	require.NotNil(t, q, "growing to exactly the limit is allowed")
}
