package vocab

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestBuildRetainsOnlyMinCount(t *testing.T) {
	path := writeCorpus(t, "a b c a b c a b c", "a b")
	v, err := Build(path, 3, false)
	require.NoError(t, err)

	for _, e := range v.Entries() {
		assert.GreaterOrEqual(t, e.Count, uint64(3))
	}
	_, ok := v.Lookup("c")
	assert.True(t, ok)
}

func TestBuildDropsRareWords(t *testing.T) {
	path := writeCorpus(t, "a a a b")
	v, err := Build(path, 2, false)
	require.NoError(t, err)

	_, ok := v.Lookup("b")
	assert.False(t, ok, "b occurs once and must be dropped at min_count=2")
	_, ok = v.Lookup("a")
	assert.True(t, ok)
}

func TestBuildSentenceIDsExemptFromMinCount(t *testing.T) {
	path := writeCorpus(t, "one line here", "another line")
	v, err := Build(path, 100, true)
	require.NoError(t, err)

	var sentenceIDs int
	for _, e := range v.Entries() {
		if e.IsSentenceID {
			sentenceIDs++
			assert.Equal(t, uint64(1), e.Count)
		}
	}
	assert.Equal(t, 2, sentenceIDs)
	assert.Equal(t, 2, v.NumSentences)
}

func TestLookupUnknown(t *testing.T) {
	path := writeCorpus(t, "a b c")
	v, err := Build(path, 1, false)
	require.NoError(t, err)

	e, ok := v.Lookup("nowhere")
	assert.False(t, ok)
	assert.Same(t, Unknown, e)
}

func TestEntriesReindexedContiguously(t *testing.T) {
	path := writeCorpus(t, "x x x y y z")
	v, err := Build(path, 1, false)
	require.NoError(t, err)

	for i, e := range v.Entries() {
		assert.Equal(t, int32(i), e.Index)
	}
	// x is most frequent, so it must sort first.
	assert.Equal(t, "x", v.Entries()[0].Token)
}
