// Package infer implements the read-only operations over a trained
// model spec.md §4.7 describes: word vector lookup under one of four
// composition policies, pairwise word similarity, aligned-sequence
// similarity, and vector normalization. Grounded on
// alexandres-lexvec/association.go's Similarity/SimilarityPhrase,
// generalized from lexvec's single-vector lookup to word2vec's
// policy-selectable composition of W_in/W_out_ns.
package infer

import (
	"math"

	"github.com/tversky-labs/skipgram/internal/params"
	"github.com/tversky-labs/skipgram/internal/train"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

// Vector composition policies for WordVec, per spec.md §4.7.
const (
	PolicyInput          = 0 // W_in row only
	PolicyOutputNegative = 1 // W_out_ns row only — requires negative sampling to have been trained
	PolicyAverage        = 2 // elementwise average of W_in and W_out_ns
	PolicyConcat         = 3 // concatenation of W_in and W_out_ns, 2D-wide
)

// Engine wraps a trained model with the read-only inference
// operations spec.md §4.7 describes.
type Engine struct {
	m *train.Model
}

// New wraps m for inference.
func New(m *train.Model) *Engine {
	return &Engine{m: m}
}

// WordVec returns word's vector under the given composition policy.
// Policy 1 requires the model to have been trained with negative
// sampling; using it otherwise is an InvalidConfig, not a silent
// fallback (spec.md's policy Open Question).
func (e *Engine) WordVec(word string, policy int) ([]float32, error) {
	entry, ok := e.m.Vocab.Lookup(word)
	if !ok || entry.IsUnknown {
		return nil, &werrors.NotInVocabulary{Word: word}
	}

	switch policy {
	case PolicyInput:
		return cloneRow(e.m.Params.WIn.Row(entry.Index)), nil
	case PolicyOutputNegative:
		if e.m.Params.WOutNS == nil {
			return nil, &werrors.InvalidConfig{Reason: "policy 1 (output vector) requires negative sampling to have been trained"}
		}
		return cloneRow(e.m.Params.WOutNS.Row(entry.Index)), nil
	case PolicyAverage:
		if e.m.Params.WOutNS == nil {
			return nil, &werrors.InvalidConfig{Reason: "average policy requires negative sampling to have been trained"}
		}
		in := e.m.Params.WIn.Row(entry.Index)
		out := e.m.Params.WOutNS.Row(entry.Index)
		avg := make([]float32, len(in))
		for i := range avg {
			avg[i] = (in[i] + out[i]) / 2
		}
		return avg, nil
	case PolicyConcat:
		if e.m.Params.WOutNS == nil {
			return nil, &werrors.InvalidConfig{Reason: "concat policy requires negative sampling to have been trained"}
		}
		in := e.m.Params.WIn.Row(entry.Index)
		out := e.m.Params.WOutNS.Row(entry.Index)
		cat := make([]float32, 0, len(in)+len(out))
		cat = append(cat, in...)
		cat = append(cat, out...)
		return cat, nil
	default:
		return nil, &werrors.InvalidConfig{Reason: "unknown vector policy"}
	}
}

func cloneRow(row []float32) []float32 {
	out := make([]float32, len(row))
	copy(out, row)
	return out
}

// Similarity returns the cosine similarity of w1 and w2 under policy.
// Identical words are defined to be maximally similar even if the
// word is out of vocabulary (spec.md §4.7).
func (e *Engine) Similarity(w1, w2 string, policy int) (float64, error) {
	if w1 == w2 {
		return 1.0, nil
	}
	v1, err := e.WordVec(w1, policy)
	if err != nil {
		return 0, err
	}
	v2, err := e.WordVec(w2, policy)
	if err != nil {
		return 0, err
	}
	return cosine(v1, v2), nil
}

// SimilarityNgrams aligns seq1 and seq2 position by position and
// averages the cosine similarity of each in-vocabulary pair,
// skipping pairs where either side is out of vocabulary. It requires
// len(seq1) == len(seq2) — the corrected check, not the
// self-comparison bug in the implementation this spec was distilled
// from — and returns AllOOV if every pair was skipped.
func (e *Engine) SimilarityNgrams(seq1, seq2 []string, policy int) (float64, error) {
	if len(seq1) != len(seq2) {
		return 0, &werrors.LengthMismatch{Len1: len(seq1), Len2: len(seq2)}
	}

	var sum float64
	var n int
	for i := range seq1 {
		if _, ok := e.m.Vocab.Lookup(seq1[i]); !ok {
			continue
		}
		if _, ok := e.m.Vocab.Lookup(seq2[i]); !ok {
			continue
		}
		sim, err := e.Similarity(seq1[i], seq2[i], policy)
		if err != nil {
			if isOOV(err) {
				continue
			}
			return 0, err
		}
		sum += sim
		n++
	}
	if n == 0 {
		return 0, &werrors.AllOOV{}
	}
	return sum / float64(n), nil
}

func isOOV(err error) bool {
	_, ok := err.(*werrors.NotInVocabulary)
	return ok
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Distance returns 1 - Similarity(w1, w2, policy), per spec.md §4.7 and
// §8's "distance == 1 − similarity" invariant.
func (e *Engine) Distance(w1, w2 string, policy int) (float64, error) {
	sim, err := e.Similarity(w1, w2, policy)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}

// NormalizeWeights performs per-dimension min-max normalization to
// [0, 1] on each of W_in, W_out_ns, W_out_hs, and W_sent independently,
// per spec.md §4.7 and original_source/multivec/distance.cpp's
// normalizeWeights(), which runs the same normalization unconditionally
// over all four matrices rather than one caller-selected matrix. A
// dimension that is constant across a matrix (max == min) is left
// unchanged rather than divided by zero. Matrices not allocated for this
// model (e.g. W_out_hs when hierarchical softmax wasn't trained) are
// skipped.
func (e *Engine) NormalizeWeights() {
	normalizeMatrix(e.m.Params.WIn)
	normalizeMatrix(e.m.Params.WOutNS)
	normalizeMatrix(e.m.Params.WOutHS)
	normalizeMatrix(e.m.Params.WSent)
}

func normalizeMatrix(m *params.Matrix) {
	if m == nil || m.Rows == 0 {
		return
	}
	for d := 0; d < m.Dim; d++ {
		lo, hi := m.Data[d], m.Data[d]
		for i := 0; i < m.Rows; i++ {
			v := m.Data[i*m.Dim+d]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if hi == lo {
			continue
		}
		span := hi - lo
		for i := 0; i < m.Rows; i++ {
			off := i*m.Dim + d
			m.Data[off] = (m.Data[off] - lo) / span
		}
	}
}
