package train

import (
	"github.com/tversky-labs/skipgram/internal/rng"
	"github.com/tversky-labs/skipgram/internal/vocab"
)

// cbowUpdate implements spec.md §4.5's CBOW step: h is the average of
// every context row in ctx (the sentence row counts as one more
// member of the average, same as a word row); the output layer is run
// once against target with h as input; the resulting gradient g is
// added, unscaled, to every row in ctx — not divided by |ctx|, per
// spec.md §8's explicitly tested CBOW gradient-fan-out property.
func (m *Model) cbowUpdate(target *vocab.Entry, ctx []ctxRef, alpha float32, freeze bool, r *rng.Source, h, g []float32) {
	for j := range h {
		h[j] = 0
	}
	for _, c := range ctx {
		for j, v := range c.row {
			h[j] += v
		}
	}
	inv := 1 / float32(len(ctx))
	for j := range h {
		h[j] *= inv
	}

	for j := range g {
		g[j] = 0
	}
	m.outputLayer(target, h, alpha, !freeze, r, g)

	for _, c := range ctx {
		if c.frozen && freeze {
			continue
		}
		for j := range c.row {
			c.row[j] += g[j]
		}
	}
}
