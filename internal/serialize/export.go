// Text and binary word2vec vector export, per spec.md §6.
package serialize

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tversky-labs/skipgram/internal/infer"
	"github.com/tversky-labs/skipgram/internal/train"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

// ExportText writes m's vocabulary under policy to path in word2vec
// text format: a "<V> <D>" header line, then one "<token> <f1> ...
// <fD>" line per retained word (sentence-id pseudo-entries are
// excluded — they were never real tokens).
func ExportText(m *train.Model, policy int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return werrors.NewIoError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	eng := infer.New(m)
	n := realTokenCount(m)

	if _, err := fmt.Fprintf(w, "%d %d\n", n, exportDim(m, policy)); err != nil {
		return werrors.NewIoError(path, err)
	}
	for _, e := range m.Vocab.Entries() {
		if e.IsSentenceID {
			continue
		}
		vec, err := eng.WordVec(e.Token, policy)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, e.Token); err != nil {
			return werrors.NewIoError(path, err)
		}
		for _, v := range vec {
			if _, err := fmt.Fprintf(w, " %v", v); err != nil {
				return werrors.NewIoError(path, err)
			}
		}
		if _, err := fmt.Fprint(w, "\n"); err != nil {
			return werrors.NewIoError(path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return werrors.NewIoError(path, err)
	}
	return nil
}

// ExportBinary writes the same vectors in word2vec binary format: the
// same text header line, then per word its token bytes, a single
// space, D little-endian float32s, and a trailing newline.
func ExportBinary(m *train.Model, policy int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return werrors.NewIoError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	eng := infer.New(m)
	n := realTokenCount(m)

	if _, err := fmt.Fprintf(w, "%d %d\n", n, exportDim(m, policy)); err != nil {
		return werrors.NewIoError(path, err)
	}
	for _, e := range m.Vocab.Entries() {
		if e.IsSentenceID {
			continue
		}
		vec, err := eng.WordVec(e.Token, policy)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(e.Token); err != nil {
			return werrors.NewIoError(path, err)
		}
		if err := w.WriteByte(' '); err != nil {
			return werrors.NewIoError(path, err)
		}
		for _, v := range vec {
			if err := binary.Write(w, byteOrder, v); err != nil {
				return werrors.NewIoError(path, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return werrors.NewIoError(path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return werrors.NewIoError(path, err)
	}
	return nil
}

// exportDim is the number of floats each exported vector has under
// policy: 2D for the concatenation policy, D otherwise.
func exportDim(m *train.Model, policy int) int {
	if policy == infer.PolicyConcat {
		return 2 * m.Cfg.Dimension
	}
	return m.Cfg.Dimension
}

func realTokenCount(m *train.Model) int {
	n := 0
	for _, e := range m.Vocab.Entries() {
		if !e.IsSentenceID {
			n++
		}
	}
	return n
}
