package serialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tversky-labs/skipgram/internal/config"
	"github.com/tversky-labs/skipgram/internal/train"
)

func trainSmallModel(t *testing.T) (*train.Model, string) {
	t.Helper()
	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("a b c a b c a b c\nb c a\n"), 0o644))

	cfg := config.Config{
		StartingAlpha:       0.05,
		Dimension:           5,
		MinCount:            1,
		MaxIterations:       2,
		WindowSize:          2,
		NThreads:            1,
		HierarchicalSoftmax: true,
		Negative:            2,
		SentVector:          true,
	}
	m, err := train.New(cfg, corpus, 11)
	require.NoError(t, err)
	require.NoError(t, m.Train(corpus))
	return m, corpus
}

// TestSaveLoadRoundTrip is spec.md §8 scenario 6: save then load must
// yield byte-equal matrices and identical vocabulary indices.
func TestSaveLoadRoundTrip(t *testing.T) {
	m, _ := trainSmallModel(t)
	modelPath := filepath.Join(t.TempDir(), "model.bin")

	require.NoError(t, Save(m, modelPath))
	loaded, err := Load(modelPath)
	require.NoError(t, err)

	assert.Equal(t, m.Params.WIn.Data, loaded.Params.WIn.Data)
	assert.Equal(t, m.Params.WOutNS.Data, loaded.Params.WOutNS.Data)
	assert.Equal(t, m.Params.WOutHS.Data, loaded.Params.WOutHS.Data)
	assert.Equal(t, m.Params.WSent.Data, loaded.Params.WSent.Data)

	require.Equal(t, m.Vocab.Len(), loaded.Vocab.Len())
	for i, e := range m.Vocab.Entries() {
		got := loaded.Vocab.Entries()[i]
		assert.Equal(t, e.Token, got.Token)
		assert.Equal(t, e.Index, got.Index)
		assert.Equal(t, e.Count, got.Count)
		assert.Equal(t, e.IsSentenceID, got.IsSentenceID)
	}

	assert.Equal(t, m.Cfg, loaded.Cfg)
}

func TestExportTextHeaderMatchesVocabularySize(t *testing.T) {
	m, _ := trainSmallModel(t)
	outPath := filepath.Join(t.TempDir(), "vectors.txt")
	require.NoError(t, ExportText(m, 0, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3 5\n")
}
