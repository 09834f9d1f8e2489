package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedProducesSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNewPerWorkerProducesDistinctSequences(t *testing.T) {
	sources := NewPerWorker(1, 4)
	seen := map[uint64]bool{}
	for _, s := range sources {
		v := s.Next()
		assert.False(t, seen[v], "expected distinct first draw per worker")
		seen[v] = true
	}
}

func TestFloat64InUnitInterval(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestUniformRangeStaysInBounds(t *testing.T) {
	s := New(9)
	for i := 0; i < 1000; i++ {
		v := s.UniformRange(1, 5)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 5)
	}
}
