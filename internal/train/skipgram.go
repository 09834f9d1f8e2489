package train

import (
	"github.com/tversky-labs/skipgram/internal/rng"
	"github.com/tversky-labs/skipgram/internal/vocab"
)

// skipGramUpdate implements spec.md §4.5's skip-gram step: unlike
// CBOW, each context row in ctx is used as h on its own, one output
// layer pass per row, with the gradient added back to that same row.
func (m *Model) skipGramUpdate(target *vocab.Entry, ctx []ctxRef, alpha float32, freeze bool, r *rng.Source, h, g []float32) {
	for _, c := range ctx {
		copy(h, c.row)

		for j := range g {
			g[j] = 0
		}
		m.outputLayer(target, h, alpha, !freeze, r, g)

		if c.frozen && freeze {
			continue
		}
		for j := range c.row {
			c.row[j] += g[j]
		}
	}
}
