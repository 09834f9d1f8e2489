package sample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tversky-labs/skipgram/internal/rng"
)

func TestNewTableFrequencyApproximatesUnigramDistribution(t *testing.T) {
	entries := []Counts{
		{Index: 0, Count: 100},
		{Index: 1, Count: 50},
		{Index: 2, Count: 10},
		{Index: 3, Count: 1},
	}
	const size = 200_000
	table := NewTable(entries, size)

	var powSum float64
	for _, e := range entries {
		powSum += math.Pow(float64(e.Count), UnigramPower)
	}

	const eps = 0.01
	for _, e := range entries {
		want := math.Pow(float64(e.Count), UnigramPower) / powSum
		got := table.Frequency(e.Index)
		assert.Less(t, math.Abs(got-want), 1.0/float64(size)+eps)
	}
}

func TestSampleOnlyReturnsKnownIndices(t *testing.T) {
	entries := []Counts{{Index: 7, Count: 3}, {Index: 9, Count: 1}}
	table := NewTable(entries, 1000)
	r := rng.New(42)

	for i := 0; i < 100; i++ {
		idx := table.Sample(r)
		assert.Contains(t, []int32{7, 9}, idx)
	}
}

func TestNewTableSingleEntry(t *testing.T) {
	entries := []Counts{{Index: 3, Count: 5}}
	table := NewTable(entries, 10)
	require.Len(t, table.indices, 10)
	for _, idx := range table.indices {
		assert.Equal(t, int32(3), idx)
	}
}
