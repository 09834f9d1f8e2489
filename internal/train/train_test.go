package train

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tversky-labs/skipgram/internal/config"
)

func writeCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "corpus-*.txt")
	require.NoError(t, err)
	for _, line := range lines {
		_, err := f.WriteString(line + "\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())
	return f.Name()
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

// TestTrainRecoversCountsAndIsSelfSimilar is spec.md §8 scenario 1: a
// 9-token, 3-type corpus trained with HS only, no negative sampling.
func TestTrainRecoversCountsAndIsSelfSimilar(t *testing.T) {
	path := writeCorpus(t, "a b c a b c a b c")
	cfg := config.Config{
		StartingAlpha:       0.05,
		Dimension:           4,
		MinCount:            1,
		MaxIterations:       1,
		WindowSize:          2,
		NThreads:            1,
		Subsampling:         0,
		HierarchicalSoftmax: true,
		Negative:            0,
	}

	m, err := New(cfg, path, 1)
	require.NoError(t, err)
	require.Equal(t, 3, m.Vocab.Len())

	counts := map[string]uint64{}
	for _, e := range m.Vocab.Entries() {
		counts[e.Token] = e.Count
	}
	assert.Equal(t, map[string]uint64{"a": 3, "b": 3, "c": 3}, counts)

	require.NoError(t, m.Train(path))

	va := m.Params.WIn.Row(mustIndex(t, m, "a"))
	assert.InDelta(t, 1.0, cosine(va, va), 1e-9)
}

func mustIndex(t *testing.T, m *Model, token string) int32 {
	t.Helper()
	e, ok := m.Vocab.Lookup(token)
	require.True(t, ok)
	return e.Index
}

// TestSentVecAgreesWithTrainedRow is spec.md §8 scenario 5: after
// training with sentence vectors, inferring a vector for an already
// seen sentence under freeze=true should land close to its trained
// W_sent row.
func TestSentVecAgreesWithTrainedRow(t *testing.T) {
	path := writeCorpus(t,
		"the cat sat on the mat",
		"the dog ran in the park",
		"cats and dogs are pets",
	)
	cfg := config.Config{
		StartingAlpha:       0.05,
		Dimension:           8,
		MinCount:            1,
		MaxIterations:       50,
		WindowSize:          3,
		NThreads:            1,
		Subsampling:         0,
		HierarchicalSoftmax: true,
		Negative:            0,
		SentVector:          true,
	}

	m, err := New(cfg, path, 7)
	require.NoError(t, err)
	require.NoError(t, m.Train(path))

	trained := m.Params.WSent.Row(0)
	inferred, err := m.SentVec([]string{"the", "cat", "sat", "on", "the", "mat"}, 99)
	require.NoError(t, err)

	sim := cosine(trained, inferred)
	assert.Greater(t, sim, 0.5)
}

func TestSentVecRequiresSentVectorEnabled(t *testing.T) {
	path := writeCorpus(t, "a b c")
	cfg := config.Config{
		StartingAlpha: 0.05, Dimension: 4, MinCount: 1, MaxIterations: 1,
		WindowSize: 2, NThreads: 1, HierarchicalSoftmax: true,
	}
	m, err := New(cfg, path, 1)
	require.NoError(t, err)

	_, err = m.SentVec([]string{"a", "b"}, 1)
	assert.Error(t, err)
}
