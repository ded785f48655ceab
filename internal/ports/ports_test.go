package ports

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateCountAndRange(t *testing.T) {
	got := AllocateRange(3, RangeStart, RangeEnd)
	require.Len(t, got, 3)

	seen := make(map[int]bool)
	for _, p := range got {
		assert.GreaterOrEqual(t, p, RangeStart)
		assert.Less(t, p, RangeEnd)
		assert.False(t, seen[p], "duplicate port %d", p)
		seen[p] = true
	}
}

func TestAllocateSkipsBoundPort(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()
	bound := l.Addr().(*net.TCPAddr).Port

	got := AllocateRange(1, bound, bound+1)
	assert.Empty(t, got, "bound port must not be allocated")
}

func TestAllocateShortListOnExhaustion(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()
	bound := l.Addr().(*net.TCPAddr).Port

	// A one-port range that is occupied yields fewer ports than asked.
	got := AllocateRange(5, bound, bound+1)
	assert.Empty(t, got)
}

func TestAllocateZero(t *testing.T) {
	assert.Empty(t, Allocate(0))
}
