// Paragraph-vector inference: spec.md §4.6's sentVec operation infers
// a vector for a sentence not seen during training by running the
// same CBOW/skip-gram update against a freshly initialized row while
// every global matrix stays frozen. Grounded on the same
// trainThread loop structure as model.go's runWorker, reduced to a
// single sentence and a single frozen pass-count.
package train

import (
	"github.com/tversky-labs/skipgram/internal/params"
	"github.com/tversky-labs/skipgram/internal/rng"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

// SentVec infers a paragraph vector for tokens, per spec.md §4.6.
// It requires sentence vectors to have been enabled during training
// (Cfg.SentVector); the model's global matrices (W_in, W_out_*) are
// never touched — only the returned row is written.
func (m *Model) SentVec(tokens []string, seed uint64) ([]float32, error) {
	if !m.Cfg.SentVector {
		return nil, &werrors.InvalidConfig{Reason: "sentence vectors were not enabled during training"}
	}

	r := rng.New(seed)
	vec := params.NewOnlineSentenceVector(m.Cfg.Dimension, r)
	row := vec.Row(0)

	savedAlpha := m.Alpha
	m.Alpha = m.Cfg.StartingAlpha
	defer func() { m.Alpha = savedAlpha }()

	for iter := 0; iter < m.Cfg.MaxIterations; iter++ {
		m.processSentence(tokens, 0, r, true, row)
	}
	return row, nil
}
