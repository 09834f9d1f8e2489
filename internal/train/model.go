// Package train implements the parallel asynchronous SGD trainer:
// spec.md §4.5's CBOW/skip-gram center-word update, the per-worker
// sentence loop, and the outer max_iterations loop. Grounded on
// alexandres-lexvec/train.go's thread/iteration/progress-report
// structure (trainThread, the iteration loop in train(), alpha decay
// in step()), generalized from lexvec's association-score SGD to
// word2vec-family CBOW/skip-gram with the output layers in update.go.
package train

import (
	"math"
	"os"
	"sync"

	"github.com/tversky-labs/skipgram/internal/config"
	"github.com/tversky-labs/skipgram/internal/corpus"
	"github.com/tversky-labs/skipgram/internal/params"
	"github.com/tversky-labs/skipgram/internal/rng"
	"github.com/tversky-labs/skipgram/internal/sample"
	"github.com/tversky-labs/skipgram/internal/vocab"
	"github.com/tversky-labs/skipgram/internal/werrors"
	"github.com/tversky-labs/skipgram/internal/wlog"
)

// Model bundles the vocabulary, parameter store, and noise table that
// make up a trained (or training) instance, plus the shared corpus-
// position state spec.md §3 calls out. WordsProcessed and Alpha are
// read/written by every worker without synchronization: stale reads
// are acceptable, per spec.md §5.
type Model struct {
	Cfg    config.Config
	Vocab  *vocab.Vocabulary
	Params *params.Store

	noise *sample.Table

	// vocabSize is V, the number of non-sentence-id entries: WSent row
	// indices are sentence ordinals, offset from the vocabulary's own
	// dense index space by exactly this much.
	vocabSize int32

	// WordsProcessed is the shared, non-atomic progress counter driving
	// learning-rate decay (spec.md §3, §4.5).
	WordsProcessed uint64
	// Alpha is the single shared learning rate read at the start of
	// each sentence; workers write it after each sentence they finish.
	Alpha float64

	log *wlog.Logger
}

// New builds a vocabulary from trainingFile and allocates a fresh
// parameter store and noise table. Train updates that store in place:
// calling Train again continues from the current weights and
// WordsProcessed rather than reallocating them.
func New(cfg config.Config, trainingFile string, masterSeed uint64) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := vocab.Build(trainingFile, cfg.MinCount, cfg.SentVector)
	if err != nil {
		return nil, err
	}
	internalNodes := 0
	if cfg.HierarchicalSoftmax {
		internalNodes = vocab.BuildHuffman(v)
	}

	vocabSize := numWordEntries(v)
	initSeed := rng.New(masterSeed)
	ps := params.New(cfg.Dimension, vocabSize, internalNodes, v.NumSentences, cfg.Negative, cfg.HierarchicalSoftmax, cfg.SentVector, initSeed)

	var noise *sample.Table
	if cfg.Negative > 0 {
		noise = buildNoiseTable(v, sample.DefaultTableSize)
	}

	return &Model{
		Cfg:       cfg,
		Vocab:     v,
		Params:    ps,
		noise:     noise,
		vocabSize: int32(vocabSize),
		Alpha:     cfg.StartingAlpha,
		log:       wlog.Default(),
	}, nil
}

// FromState reassembles a Model from a deserialized vocabulary and
// parameter store (internal/serialize's model loader), rebuilding the
// noise table negative sampling needs since it is never itself
// persisted (spec.md §6 — only the vocabulary and matrices are
// serialized).
func FromState(cfg config.Config, v *vocab.Vocabulary, ps *params.Store) *Model {
	var noise *sample.Table
	if cfg.Negative > 0 {
		noise = buildNoiseTable(v, sample.DefaultTableSize)
	}
	return &Model{
		Cfg:       cfg,
		Vocab:     v,
		Params:    ps,
		noise:     noise,
		vocabSize: int32(numWordEntries(v)),
		Alpha:     cfg.StartingAlpha,
		log:       wlog.Default(),
	}
}

// numWordEntries returns V, the number of non-sentence-id entries —
// the row count every matrix but W_sent is sized by.
func numWordEntries(v *vocab.Vocabulary) int {
	n := 0
	for _, e := range v.Entries() {
		if !e.IsSentenceID {
			n++
		}
	}
	return n
}

func buildNoiseTable(v *vocab.Vocabulary, size int) *sample.Table {
	var counts []sample.Counts
	for _, e := range v.Entries() {
		if e.IsSentenceID {
			continue
		}
		counts = append(counts, sample.Counts{Index: e.Index, Count: e.Count})
	}
	return sample.NewTable(counts, size)
}

// Train runs Cfg.MaxIterations passes of parallel SGD over
// trainingFile, partitioning it into Cfg.NThreads byte ranges per
// spec.md §4.5. I/O errors during training are fatal, per spec.md §7.
func (m *Model) Train(trainingFile string) error {
	stat, err := statFile(trainingFile)
	if err != nil {
		return err
	}
	ranges := corpus.Chunks(stat, m.Cfg.NThreads)
	sources := rng.NewPerWorker(1, m.Cfg.NThreads)

	for iter := 0; iter < m.Cfg.MaxIterations; iter++ {
		var wg sync.WaitGroup
		for t := 0; t < m.Cfg.NThreads; t++ {
			wg.Add(1)
			go func(threadID int) {
				defer wg.Done()
				if werr := m.runWorker(trainingFile, ranges[threadID], sources[threadID], iter); werr != nil {
					m.log.Fatalf("worker %d failed: %v", threadID, werr)
				}
			}(t)
		}
		wg.Wait()
		m.log.Infof("iteration %d/%d complete, alpha=%.6f", iter+1, m.Cfg.MaxIterations, m.Alpha)
	}
	return nil
}

func statFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, werrors.NewIoError(path, err)
	}
	return info.Size(), nil
}

func (m *Model) runWorker(trainingFile string, r corpus.Range, source *rng.Source, iter int) error {
	reader, err := corpus.OpenSentenceReader(trainingFile, r)
	if err != nil {
		return err
	}
	defer reader.Close()

	for ordinal := reader.StartOrdinal; ; ordinal++ {
		tokens, ok, err := reader.Next()
		if err != nil {
			return werrors.NewIoError(trainingFile, err)
		}
		if !ok {
			break
		}
		m.processSentence(tokens, ordinal, source, m.Cfg.Freeze, nil)
		m.WordsProcessed += uint64(len(tokens))
		m.Alpha = decayedAlpha(m.Cfg.StartingAlpha, m.WordsProcessed, m.Cfg.MaxIterations, m.Vocab.TrainingWords)
	}
	return nil
}

// decayedAlpha implements spec.md §4.5's linear-decay formula:
// alpha = starting_alpha * max(1 - words_processed/(max_iterations *
// training_words), 1e-4).
func decayedAlpha(starting float64, wordsProcessed uint64, maxIterations int, trainingWords uint64) float64 {
	denom := float64(maxIterations) * float64(trainingWords)
	if denom == 0 {
		return starting
	}
	frac := 1 - float64(wordsProcessed)/denom
	if frac < 1e-4 {
		frac = 1e-4
	}
	return starting * frac
}

// processSentence resolves tokens to vocabulary entries, applies
// subsampling, and runs the center-word update over every remaining
// position, per spec.md §4.5 steps 1-4. ordinal is the sentence's
// 0-based position in the whole training file, used to find its
// W_sent row; it is ignored unless Cfg.SentVector is set. When
// sentVecOverride is non-nil it is used in place of that W_sent row —
// paragraph-vector inference over a sentence with no assigned row
// (spec.md §4.6). freeze, when true, disables W_in/W_out updates
// while still updating the sentence vector.
func (m *Model) processSentence(tokens []string, ordinal int, r *rng.Source, freeze bool, sentVecOverride []float32) {
	entries := make([]*vocab.Entry, 0, len(tokens))
	for _, tok := range tokens {
		if e, ok := m.Vocab.Lookup(tok); ok {
			entries = append(entries, e)
		}
	}
	entries = subsample(entries, r, m.Cfg.Subsampling, m.Vocab.TrainingWords)
	if len(entries) == 0 {
		return
	}

	alpha := float32(m.Alpha)
	h := make([]float32, m.Cfg.Dimension)
	g := make([]float32, m.Cfg.Dimension)

	var sentRow []float32
	if m.Cfg.SentVector {
		switch {
		case sentVecOverride != nil:
			sentRow = sentVecOverride
		case m.Params.WSent != nil:
			sentRow = m.Params.WSent.Row(int32(ordinal))
		}
	}

	for pos := range entries {
		win := r.UniformRange(1, m.Cfg.WindowSize)
		start := pos - win
		if start < 0 {
			start = 0
		}
		end := pos + win
		if end > len(entries)-1 {
			end = len(entries) - 1
		}

		ctx := m.buildContext(entries, pos, start, end, sentRow)
		if len(ctx) == 0 {
			continue
		}

		if m.Cfg.SkipGram {
			m.skipGramUpdate(entries[pos], ctx, alpha, freeze, r, h, g)
		} else {
			m.cbowUpdate(entries[pos], ctx, alpha, freeze, r, h, g)
		}
	}
}

// ctxRef is one element of the context set C from spec.md §4.5: either
// a word entry's W_in row, or the sentence's W_sent row. frozen marks
// refs whose update must be skipped when Cfg.Freeze is set — word rows
// are frozen, the sentence row never is.
type ctxRef struct {
	row    []float32
	frozen bool
}

// buildContext assembles C: the word entries at [start, end] excluding
// pos, plus the sentence row when sentence vectors are enabled,
// per spec.md §4.5's CBOW/skip-gram context definition.
func (m *Model) buildContext(entries []*vocab.Entry, pos, start, end int, sentRow []float32) []ctxRef {
	ctx := make([]ctxRef, 0, end-start+1)
	for p := start; p <= end; p++ {
		if p == pos {
			continue
		}
		ctx = append(ctx, ctxRef{row: m.Params.WIn.Row(entries[p].Index), frozen: true})
	}
	if sentRow != nil {
		ctx = append(ctx, ctxRef{row: sentRow, frozen: false})
	}
	return ctx
}

// subsample drops occurrences per spec.md §4.4's keep-probability
// formula, applied per sentence before windowed training. Sentence-id
// tokens are never subsampled.
func subsample(entries []*vocab.Entry, r *rng.Source, t float64, trainingWords uint64) []*vocab.Entry {
	if t <= 0 || trainingWords == 0 {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if e.IsSentenceID {
			out = append(out, e)
			continue
		}
		c := float64(e.Count)
		p := (math.Sqrt(c/(t*float64(trainingWords))) + 1) * (t * float64(trainingWords) / c)
		if p > 1 {
			p = 1
		}
		if p < 0 {
			p = 0
		}
		if r.Float64() <= p {
			out = append(out, e)
		}
	}
	return out
}
