// Package serialize implements the single-file model format spec.md
// §6 describes: config, the four weight matrices, then the
// vocabulary. Grounded on alexandres-lexvec/storage.go and model.go's
// binary.Write/Read pairing (byteOrder := binary.LittleEndian), kept
// to the teacher's length-prefixed-field style but generalized from
// lexvec's word/context matrix pair to word2vec's four matrices plus
// Huffman coding fields.
package serialize

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/tversky-labs/skipgram/internal/config"
	"github.com/tversky-labs/skipgram/internal/params"
	"github.com/tversky-labs/skipgram/internal/train"
	"github.com/tversky-labs/skipgram/internal/vocab"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

var byteOrder = binary.LittleEndian

// Save writes m's config, matrices, and vocabulary to path in the
// layout spec.md §6 names.
func Save(m *train.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return werrors.NewIoError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeConfig(w, m.Cfg); err != nil {
		return werrors.NewIoError(path, err)
	}
	if err := writeMatrices(w, m.Params); err != nil {
		return werrors.NewIoError(path, err)
	}
	if err := writeVocabulary(w, m.Vocab); err != nil {
		return werrors.NewIoError(path, err)
	}
	if err := w.Flush(); err != nil {
		return werrors.NewIoError(path, err)
	}
	return nil
}

// Load reads a model file written by Save and reassembles a
// train.Model ready for inference (its RNG-derived state — the noise
// table — is rebuilt from the loaded vocabulary, not read back).
func Load(path string) (*train.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	cfg, err := readConfig(r)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}

	ps, dims, err := readMatrices(r)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}

	v, err := readVocabulary(r, dims)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}
	if int32(v.Len()-sentenceEntryCount(v)) != dims.vocabRows {
		return nil, &werrors.CorruptModel{Reason: "vocabulary entry count does not match matrix row count"}
	}

	return train.FromState(cfg, v, ps), nil
}

func sentenceEntryCount(v *vocab.Vocabulary) int {
	n := 0
	for _, e := range v.Entries() {
		if e.IsSentenceID {
			n++
		}
	}
	return n
}

type matrixDims struct {
	dim       int32
	vocabRows int32
	hsRows    int32
	sentRows  int32

	hasNS, hasHS, hasSent bool
}

func writeConfig(w io.Writer, cfg config.Config) error {
	fields := []interface{}{
		cfg.StartingAlpha,
		int32(cfg.Dimension),
		int32(cfg.MinCount),
		int32(cfg.MaxIterations),
		int32(cfg.WindowSize),
		int32(cfg.NThreads),
		cfg.Subsampling,
		cfg.HierarchicalSoftmax,
		cfg.SkipGram,
		int32(cfg.Negative),
		cfg.SentVector,
		cfg.Freeze,
	}
	for _, f := range fields {
		if err := binary.Write(w, byteOrder, f); err != nil {
			return err
		}
	}
	return nil
}

func readConfig(r io.Reader) (config.Config, error) {
	var cfg config.Config
	var dim, minCount, maxIter, window, nThreads, negative int32
	var alpha, subsampling float64
	var hs, sg, sent, freeze bool

	fields := []interface{}{&alpha, &dim, &minCount, &maxIter, &window, &nThreads, &subsampling, &hs, &sg, &negative, &sent, &freeze}
	for _, f := range fields {
		if err := binary.Read(r, byteOrder, f); err != nil {
			return cfg, err
		}
	}
	cfg = config.Config{
		StartingAlpha:       alpha,
		Dimension:           int(dim),
		MinCount:            int(minCount),
		MaxIterations:       int(maxIter),
		WindowSize:          int(window),
		NThreads:            int(nThreads),
		Subsampling:         subsampling,
		HierarchicalSoftmax: hs,
		SkipGram:            sg,
		Negative:            int(negative),
		SentVector:          sent,
		Freeze:              freeze,
	}
	return cfg, nil
}

func writeMatrices(w io.Writer, ps *params.Store) error {
	matrices := []*params.Matrix{ps.WIn, ps.WOutNS, ps.WOutHS, ps.WSent}
	for _, m := range matrices {
		rows, dim := 0, ps.Dim
		if m != nil {
			rows, dim = m.Rows, m.Dim
		}
		if err := binary.Write(w, byteOrder, int32(rows)); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, int32(dim)); err != nil {
			return err
		}
		if m == nil {
			continue
		}
		if err := binary.Write(w, byteOrder, m.Data); err != nil {
			return err
		}
	}
	return nil
}

func readMatrices(r io.Reader) (*params.Store, matrixDims, error) {
	readOne := func() (*params.Matrix, int32, int32, error) {
		var rows, dim int32
		if err := binary.Read(r, byteOrder, &rows); err != nil {
			return nil, 0, 0, err
		}
		if err := binary.Read(r, byteOrder, &dim); err != nil {
			return nil, 0, 0, err
		}
		if rows == 0 {
			return nil, rows, dim, nil
		}
		data := make([]float32, int64(rows)*int64(dim))
		if err := binary.Read(r, byteOrder, data); err != nil {
			return nil, 0, 0, err
		}
		return &params.Matrix{Rows: int(rows), Dim: int(dim), Data: data}, rows, dim, nil
	}

	wIn, vocabRows, dim, err := readOne()
	if err != nil {
		return nil, matrixDims{}, err
	}
	wOutNS, _, _, err := readOne()
	if err != nil {
		return nil, matrixDims{}, err
	}
	wOutHS, hsRows, _, err := readOne()
	if err != nil {
		return nil, matrixDims{}, err
	}
	wSent, sentRows, _, err := readOne()
	if err != nil {
		return nil, matrixDims{}, err
	}

	ps := &params.Store{
		Dim:    int(dim),
		WIn:    wIn,
		WOutNS: wOutNS,
		WOutHS: wOutHS,
		WSent:  wSent,
	}
	dims := matrixDims{
		dim:       dim,
		vocabRows: vocabRows,
		hsRows:    hsRows,
		sentRows:  sentRows,
		hasNS:     wOutNS != nil,
		hasHS:     wOutHS != nil,
		hasSent:   wSent != nil,
	}
	return ps, dims, nil
}

func writeVocabulary(w io.Writer, v *vocab.Vocabulary) error {
	entries := v.Entries()
	if err := binary.Write(w, byteOrder, int32(len(entries))); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, v.TrainingWords); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, int32(v.NumSentences)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := writeString(w, e.Token); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.Count); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.Index); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, int32(len(e.Code))); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.Code); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, int32(len(e.Path))); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.Path); err != nil {
			return err
		}
		if err := binary.Write(w, byteOrder, e.IsSentenceID); err != nil {
			return err
		}
	}
	return nil
}

func readVocabulary(r io.Reader, dims matrixDims) (*vocab.Vocabulary, error) {
	var n int32
	if err := binary.Read(r, byteOrder, &n); err != nil {
		return nil, err
	}
	var trainingWords uint64
	if err := binary.Read(r, byteOrder, &trainingWords); err != nil {
		return nil, err
	}
	var numSentences int32
	if err := binary.Read(r, byteOrder, &numSentences); err != nil {
		return nil, err
	}

	entries := make([]*vocab.Entry, n)
	for i := range entries {
		tok, err := readString(r)
		if err != nil {
			return nil, err
		}
		var count uint64
		if err := binary.Read(r, byteOrder, &count); err != nil {
			return nil, err
		}
		var index int32
		if err := binary.Read(r, byteOrder, &index); err != nil {
			return nil, err
		}
		var codeLen int32
		if err := binary.Read(r, byteOrder, &codeLen); err != nil {
			return nil, err
		}
		code := make([]uint8, codeLen)
		if codeLen > 0 {
			if err := binary.Read(r, byteOrder, code); err != nil {
				return nil, err
			}
		}
		var pathLen int32
		if err := binary.Read(r, byteOrder, &pathLen); err != nil {
			return nil, err
		}
		path := make([]int32, pathLen)
		if pathLen > 0 {
			if err := binary.Read(r, byteOrder, path); err != nil {
				return nil, err
			}
		}
		var isSentenceID bool
		if err := binary.Read(r, byteOrder, &isSentenceID); err != nil {
			return nil, err
		}
		entries[i] = &vocab.Entry{
			Token:        tok,
			Index:        index,
			Count:        count,
			Code:         code,
			Path:         path,
			IsSentenceID: isSentenceID,
		}
	}
	return vocab.FromEntries(entries, trainingWords, int(numSentences)), nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, byteOrder, int32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, byteOrder, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}
