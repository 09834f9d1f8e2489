package params

import "github.com/tversky-labs/skipgram/internal/rng"

// Store bundles the four weight matrices spec.md §3 names. It is
// created fresh by New whenever training starts (or restarts), mirroring
// alexandres-lexvec/model.go's initModel, generalized from lexvec's
// word/context pair to word2vec's four-matrix layout (input, NS output,
// HS output, sentence).
type Store struct {
	Dim int

	WIn    *Matrix // V x D, uniform init
	WOutNS *Matrix // V x D, zero init — only allocated when negative sampling is enabled
	WOutHS *Matrix // (V-1) x D, zero init — only allocated when hierarchical softmax is enabled
	WSent  *Matrix // S x D, uniform init — only allocated when sentence vectors are enabled
}

// New allocates the parameter store for a vocabulary of size
// vocabSize with vocabSize-1 internal Huffman nodes and numSentences
// training sentences, using r to draw the uniform initial values.
func New(dim, vocabSize, internalNodes, numSentences int, negative int, hierarchicalSoftmax, sentVector bool, r *rng.Source) *Store {
	draw := func() float32 {
		return float32((r.Float64() - 0.5) / float64(dim))
	}

	s := &Store{
		Dim: dim,
		WIn: NewMatrixUniform(vocabSize, dim, draw),
	}
	if negative > 0 {
		s.WOutNS = NewMatrix(vocabSize, dim)
	}
	if hierarchicalSoftmax {
		rows := internalNodes
		if rows < 1 {
			rows = 1 // keep the matrix non-empty even for a 1-word vocabulary
		}
		s.WOutHS = NewMatrix(rows, dim)
	}
	if sentVector {
		s.WSent = NewMatrixUniform(numSentences, dim, draw)
	}
	return s
}

// NewOnlineSentenceVector allocates the transient per-call vector used
// by paragraph-vector inference (spec.md §3: "online_sent_weights[1xD]
// ... discarded after the call returns").
func NewOnlineSentenceVector(dim int, r *rng.Source) *Matrix {
	draw := func() float32 { return float32((r.Float64() - 0.5) / float64(dim)) }
	return NewMatrixUniform(1, dim, draw)
}
