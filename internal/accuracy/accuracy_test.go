package accuracy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tversky-labs/skipgram/internal/config"
	"github.com/tversky-labs/skipgram/internal/train"
)

func trainModel(t *testing.T, lines ...string) *train.Model {
	t.Helper()
	corpus := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	cfg := config.Config{
		StartingAlpha: 0.05, Dimension: 6, MinCount: 1, MaxIterations: 3,
		WindowSize: 2, NThreads: 1, HierarchicalSoftmax: true,
	}
	m, err := train.New(cfg, corpus, 5)
	require.NoError(t, err)
	require.NoError(t, m.Train(corpus))
	return m
}

func TestEvaluateSkipsOOVQuestionsAndReportsPerSection(t *testing.T) {
	m := trainModel(t, "king man woman queen king man woman queen king man woman queen")
	questions := ": royalty\n" +
		"king man woman queen\n" +
		"ghost unseen words missing\n"

	report, err := Evaluate(m, strings.NewReader(questions), 0, 0)
	require.NoError(t, err)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "royalty", report.Sections[0].Name)
	assert.Equal(t, 1, report.Sections[0].Total)
	assert.Equal(t, 1, report.TotalCount)
}

func TestEvaluateWithNoHeaderUsesDefaultSection(t *testing.T) {
	m := trainModel(t, "a b c d a b c d a b c d")
	report, err := Evaluate(m, strings.NewReader("a b c d\n"), 0, 0)
	require.NoError(t, err)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "default", report.Sections[0].Name)
}

func TestEvaluateRespectsMaxVocab(t *testing.T) {
	m := trainModel(t, "a b c d e f a b c d e f")
	report, err := Evaluate(m, strings.NewReader("a b c d\n"), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalCount)
}
