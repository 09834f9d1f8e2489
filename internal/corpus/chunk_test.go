package corpus

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Tokenize("a  b\tc"))
	assert.Empty(t, Tokenize("   "))
}

func TestChunksCoverWholeFileExactlyOnce(t *testing.T) {
	ranges := Chunks(1000, 3)
	require.Len(t, ranges, 3)
	assert.Equal(t, int64(0), ranges[0].Start)
	assert.Equal(t, int64(1000), ranges[len(ranges)-1].End)
	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].End, ranges[i].Start)
	}
}

func TestSentenceReaderYieldsEveryLineAcrossRanges(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "corpus-*.txt")
	require.NoError(t, err)
	content := "one two\nthree four five\nsix\nseven eight nine ten\n"
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	stat, err := os.Stat(f.Name())
	require.NoError(t, err)

	ranges := Chunks(stat.Size(), 3)
	var gotLines []string
	for _, r := range ranges {
		reader, err := OpenSentenceReader(f.Name(), r)
		require.NoError(t, err)
		for {
			tokens, ok, err := reader.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			gotLines = append(gotLines, tokens[0])
		}
		require.NoError(t, reader.Close())
	}

	assert.Equal(t, []string{"one", "three", "six", "seven"}, gotLines)
}

func TestOpenSentenceReaderComputesStartOrdinal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "corpus-*.txt")
	require.NoError(t, err)
	_, err = f.WriteString("a\nb\nc\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reader, err := OpenSentenceReader(f.Name(), Range{Start: 0, End: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, reader.StartOrdinal)
	require.NoError(t, reader.Close())

	reader2, err := OpenSentenceReader(f.Name(), Range{Start: 2, End: 6})
	require.NoError(t, err)
	assert.Equal(t, 1, reader2.StartOrdinal)
	require.NoError(t, reader2.Close())
}
