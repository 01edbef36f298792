package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestStreamZeroMatchesNew(t *testing.T) {
	a, b := New(7), NewStream(7, 0)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestStreamsDiverge(t *testing.T) {
	seen := map[uint64]uint64{}
	for stream := range uint64(8) {
		v := NewStream(1, stream).Uint64()
		prev, dup := seen[v]
		assert.False(t, dup, "stream %d repeats first draw of stream %d", stream, prev)
		seen[v] = stream
	}
}
