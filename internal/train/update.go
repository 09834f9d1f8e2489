// Output-layer update routines: hierarchical softmax and negative
// sampling, per spec.md §4.5. Grounded on
// original_source/multivec/multivec-mono.hpp's hierarchicalUpdate/
// negSamplingUpdate and on koji-ohki-1974-word2vec/word2vec/main.go's
// TrainModelThread, which implement the same two routines against flat
// syn1/syn1neg arrays; MAX_EXP clamping and the sigmoid/gradient
// arithmetic below match both line for line.
package train

import (
	"math"

	"github.com/tversky-labs/skipgram/internal/params"
	"github.com/tversky-labs/skipgram/internal/rng"
	"github.com/tversky-labs/skipgram/internal/sample"
	"github.com/tversky-labs/skipgram/internal/vocab"
)

// maxExp bounds the sigmoid argument; beyond it the gradient step is
// skipped (HS) or the sigmoid is clamped to 0/1 (NS), per spec.md §4.5.
const maxExp = 6.0

func sigmoid(z float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(z))))
}

// hierarchicalSoftmaxUpdate walks target's Huffman code/path, accumulating
// the gradient on h and, when update is true, applying the symmetric
// gradient step to W_out_hs. The code-bit-0-is-positive convention and
// the |z| >= MAX_EXP skip are exactly spec.md §4.5's "Output layer —
// hierarchical softmax".
func hierarchicalSoftmaxUpdate(wOutHS *params.Matrix, target *vocab.Entry, h []float32, alpha float32, update bool, g []float32) {
	for idx, node := range target.Path {
		bit := target.Code[idx]
		z := wOutHS.Dot(node, h)
		if z <= -maxExp || z >= maxExp {
			continue
		}
		sigma := sigmoid(z)
		e := alpha * (1 - float32(bit) - sigma)
		row := wOutHS.Row(node)
		for j := range g {
			g[j] += e * row[j]
		}
		if update {
			wOutHS.AddScaled(node, h, e)
		}
	}
}

// negativeSamplingUpdate draws target as the positive example and K
// noise samples as negatives, accumulating the gradient on h and,
// when update is true, applying the step to W_out_ns. A negative draw
// equal to target is skipped without resampling, per spec.md §4.5.
func negativeSamplingUpdate(wOutNS *params.Matrix, noise *sample.Table, target int32, k int, h []float32, alpha float32, update bool, r *rng.Source, g []float32) {
	for d := 0; d <= k; d++ {
		idx := target
		label := float32(1)
		if d > 0 {
			idx = noise.Sample(r)
			if idx == target {
				continue
			}
			label = 0
		}
		z := wOutNS.Dot(idx, h)
		var sigma float32
		switch {
		case z <= -maxExp:
			sigma = 0
		case z >= maxExp:
			sigma = 1
		default:
			sigma = sigmoid(z)
		}
		e := alpha * (label - sigma)
		row := wOutNS.Row(idx)
		for j := range g {
			g[j] += e * row[j]
		}
		if update {
			wOutNS.AddScaled(idx, h, e)
		}
	}
}

// outputLayer runs whichever output layers are configured against
// target, in the order spec.md §4.5 mandates (HS first, NS second),
// summing their gradients on h into g (which the caller must zero
// first).
func (m *Model) outputLayer(target *vocab.Entry, h []float32, alpha float32, update bool, r *rng.Source, g []float32) {
	if m.Params.WOutHS != nil {
		hierarchicalSoftmaxUpdate(m.Params.WOutHS, target, h, alpha, update, g)
	}
	if m.Params.WOutNS != nil {
		negativeSamplingUpdate(m.Params.WOutNS, m.noise, target.Index, m.Cfg.Negative, h, alpha, update, r, g)
	}
}
