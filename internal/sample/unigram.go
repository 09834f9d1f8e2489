// Package sample implements the unigram noise table used to draw
// negative samples in O(1), grounded on alexandres-lexvec/sampling.go's
// newUnigramDist/sample pair (itself a port of word2vec's
// InitUnigramTable), generalized to spec.md §4.3's fixed exponent 0.75
// and table size U = 1e8 while keeping the table size an explicit
// constructor parameter the way the teacher does, so tests can build a
// small table cheaply.
package sample

import (
	"math"

	"github.com/tversky-labs/skipgram/internal/rng"
)

// DefaultTableSize is U from spec.md §3.
const DefaultTableSize = 100_000_000

// UnigramPower is the fixed exponent count^0.75 from spec.md §4.3.
const UnigramPower = 0.75

// Table is the precomputed index table: table[i] holds a vocabulary
// index, and the fraction of entries equal to i approximates
// count_i^0.75 / sum_j count_j^0.75.
type Table struct {
	indices []int32
}

// Counts is the minimal view over the vocabulary NewTable needs:
// indices and counts of the entries eligible for sampling. Sentence-id
// entries must be excluded by the caller before building the table,
// per spec.md §4.3.
type Counts struct {
	Index int32
	Count uint64
}

// NewTable builds a length-size table proportional to count^0.75 over
// entries. entries must be non-empty.
func NewTable(entries []Counts, size int) *Table {
	var powSum float64
	for _, e := range entries {
		powSum += math.Pow(float64(e.Count), UnigramPower)
	}

	indices := make([]int32, size)
	i := 0
	cumulative := math.Pow(float64(entries[i].Count), UnigramPower) / powSum
	for a := 0; a < size; a++ {
		indices[a] = entries[i].Index
		if float64(a)/float64(size) > cumulative {
			i++
			if i >= len(entries) {
				i = len(entries) - 1
			} else {
				cumulative += math.Pow(float64(entries[i].Count), UnigramPower) / powSum
			}
		}
	}
	return &Table{indices: indices}
}

// Sample draws a vocabulary index in O(1) using r.
func (t *Table) Sample(r *rng.Source) int32 {
	return t.indices[r.Intn(len(t.indices))]
}

// Frequency returns the empirical fraction of table entries equal to
// idx, used by the testable unigram-table invariant in spec.md §8.
func (t *Table) Frequency(idx int32) float64 {
	var n int
	for _, v := range t.indices {
		if v == idx {
			n++
		}
	}
	return float64(n) / float64(len(t.indices))
}
