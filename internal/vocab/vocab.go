// Package vocab builds the token vocabulary and its Huffman coding,
// grounded on alexandres-lexvec/vocab.go's single-pass counting and
// reindexing, adapted to the word/sentence-id/min_count semantics of
// spec.md §4.1 and the Entry layout of spec.md §3 (Vocabulary entry).
package vocab

import (
	"bufio"
	"io"
	"os"
	"sort"

	"github.com/tversky-labs/skipgram/internal/corpus"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

// sentenceIDPrefix marks the synthetic per-sentence token prepended to
// each sentence when sentence vectors are enabled; it can never collide
// with a real token since real tokens never contain the separator.
const sentenceIDPrefix = "\x00sent\x00"

// Entry is one vocabulary record: spec.md §3's "Vocabulary entry".
type Entry struct {
	Token        string
	Index        int32 // dense index: words use [0, V), sentence-id entries follow; -1 for the unknown sentinel
	Count        uint64
	Code         []uint8 // Huffman code, root to leaf, 0/1 per bit
	Path         []int32 // Huffman internal-node ids on the same root-to-leaf walk
	IsUnknown    bool
	IsSentenceID bool
}

// Unknown is the out-of-vocabulary sentinel entry shared by lookups
// that miss.
var Unknown = &Entry{Token: "", Index: -1, IsUnknown: true}

// Vocabulary is the dense, contiguously-indexed token table built by
// Build, plus the corpus statistics needed to drive subsampling and to
// size the per-sentence paragraph vector matrix.
type Vocabulary struct {
	entries      []*Entry
	byToken      map[string]*Entry
	TrainingWords uint64 // sum of retained entries' counts, used by subsampling
	NumSentences  int    // number of lines seen during the vocabulary pass
}

// FromEntries reconstructs a Vocabulary from entries already in dense
// index order, used by model deserialization (spec.md §6) where the
// entries arrive pre-built from the file rather than counted from a
// corpus.
func FromEntries(entries []*Entry, trainingWords uint64, numSentences int) *Vocabulary {
	byToken := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		byToken[e.Token] = e
	}
	return &Vocabulary{
		entries:       entries,
		byToken:       byToken,
		TrainingWords: trainingWords,
		NumSentences:  numSentences,
	}
}

// Len returns the number of retained (non-sentinel) entries, including
// sentence-id entries; V, the word count, excludes those.
func (v *Vocabulary) Len() int { return len(v.entries) }

// Entries returns the dense, index-ordered entry slice. Callers must
// not mutate it.
func (v *Vocabulary) Entries() []*Entry { return v.entries }

// Lookup returns the entry for token, or (Unknown, false) if the token
// was filtered out or never seen.
func (v *Vocabulary) Lookup(token string) (*Entry, bool) {
	e, ok := v.byToken[token]
	if !ok {
		return Unknown, false
	}
	return e, true
}

// ByIndex returns the entry at dense index i.
func (v *Vocabulary) ByIndex(i int32) *Entry { return v.entries[i] }

// SentenceToken returns the synthetic per-sentence token for sentence
// ordinal id, the token Build registers as that sentence's sentence-id
// entry. The trainer itself does not look these tokens up; it finds a
// sentence's W_sent row by the same ordinal.
func SentenceToken(id int) string {
	return sentenceIDPrefix + itoa(id)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Build performs the single pass over path described in spec.md §4.1:
// tokenize each line, count tokens, track line count for S (the number
// of training sentences), and — when sentVector is true — register one
// sentence-id entry per line exempt from minCount. After the pass,
// entries below minCount are dropped and the survivors are reindexed
// to a contiguous permutation of [0, V).
func Build(path string, minCount int, sentVector bool) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}
	defer f.Close()

	counts := make(map[string]uint64)
	var order []string
	numSentences := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		line := scanner.Text()
		for _, tok := range corpus.Tokenize(line) {
			if _, ok := counts[tok]; !ok {
				order = append(order, tok)
			}
			counts[tok]++
		}
		numSentences++
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return nil, werrors.NewIoError(path, err)
	}

	var kept []*Entry
	for _, tok := range order {
		c := counts[tok]
		if uint64(minCount) > c {
			continue
		}
		kept = append(kept, &Entry{Token: tok, Count: c})
	}
	// Sort by descending count; ties broken by first-seen order via a
	// stable sort, matching the teacher's sort.Sort(ByFreq(vocabList)).
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Count > kept[j].Count })

	var trainingWords uint64
	for i, e := range kept {
		e.Index = int32(i)
		trainingWords += e.Count
	}

	if sentVector {
		base := int32(len(kept))
		for id := 0; id < numSentences; id++ {
			kept = append(kept, &Entry{
				Token:        SentenceToken(id),
				Index:        base + int32(id),
				Count:        1,
				IsSentenceID: true,
			})
		}
	}

	byToken := make(map[string]*Entry, len(kept))
	for _, e := range kept {
		byToken[e.Token] = e
	}

	return &Vocabulary{
		entries:       kept,
		byToken:       byToken,
		TrainingWords: trainingWords,
		NumSentences:  numSentences,
	}, nil
}

