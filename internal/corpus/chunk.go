package corpus

import (
	"bufio"
	"io"
	"os"

	"github.com/tversky-labs/skipgram/internal/werrors"
)

// Range is one worker's byte range within the training file, aligned
// to line boundaries per spec.md §4.5: "divide the input file into
// n_threads byte ranges aligned to line boundaries (each worker seeks
// to its start offset, discards a partial leading line unless at
// offset 0, and stops after crossing its end offset but finishes the
// current line)".
type Range struct {
	Start, End int64
}

// Chunks divides a file of the given size into n roughly-equal byte
// ranges. The caller is responsible for the line-alignment behavior
// described above when reading each range — see SentenceReader.
func Chunks(fileSize int64, n int) []Range {
	if n <= 0 {
		n = 1
	}
	ranges := make([]Range, n)
	step := fileSize / int64(n)
	for i := 0; i < n; i++ {
		start := step * int64(i)
		end := step * int64(i+1)
		if i == n-1 {
			end = fileSize
		}
		ranges[i] = Range{Start: start, End: end}
	}
	return ranges
}

// SentenceReader iterates the sentences (lines) of path that fall
// within r, aligned to line boundaries: if r.Start > 0 the leading
// partial line is discarded (it belongs to the previous worker), and
// reading continues past r.End only to finish the sentence already in
// progress.
type SentenceReader struct {
	f       *os.File
	scanner *bufio.Scanner
	end     int64
	pos     int64 // file offset of the first byte the scanner has not consumed
	done    bool

	// StartOrdinal is the 0-based index, in whole-file line order, of
	// the first complete sentence this reader yields. It lets a worker
	// recover the global sentence id vocab.Build assigned each line,
	// needed to look up that sentence's W_sent row (spec.md §4.5 step
	// 1, §4.6).
	StartOrdinal int
}

// OpenSentenceReader opens path and seeks to r's line-aligned start.
func OpenSentenceReader(path string, r Range) (*SentenceReader, error) {
	startOrdinal, err := countLines(path, r.Start)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.NewIoError(path, err)
	}
	if _, err := f.Seek(r.Start, io.SeekStart); err != nil {
		f.Close()
		return nil, werrors.NewIoError(path, err)
	}
	sr := &SentenceReader{f: f, end: r.End, pos: r.Start, StartOrdinal: startOrdinal}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		sr.pos += int64(advance)
		return advance, token, err
	})
	sr.scanner = scanner

	if r.Start > 0 {
		prev := make([]byte, 1)
		if _, err := f.ReadAt(prev, r.Start-1); err != nil {
			f.Close()
			return nil, werrors.NewIoError(path, err)
		}
		if prev[0] != '\n' {
			// Discard the partial leading line; it was already consumed
			// by the worker whose range ends inside it.
			sr.scanner.Scan()
			sr.StartOrdinal++
		}
	}
	return sr, nil
}

// countLines reports how many newline bytes occur in path before
// offset upto, i.e. the 0-based line number at which a reader
// positioned at upto resumes.
func countLines(path string, upto int64) (int, error) {
	if upto == 0 {
		return 0, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, werrors.NewIoError(path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(io.LimitReader(f, upto), 64*1024)
	count := 0
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			if buf[i] == '\n' {
				count++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, werrors.NewIoError(path, err)
		}
	}
	return count, nil
}

// Next returns the next sentence's tokens, or ok=false once the
// worker has crossed r.End and finished the sentence it was in.
func (sr *SentenceReader) Next() (tokens []string, ok bool, err error) {
	if sr.done {
		return nil, false, nil
	}
	if sr.pos >= sr.end {
		sr.done = true
		return nil, false, nil
	}
	if !sr.scanner.Scan() {
		sr.done = true
		return nil, false, sr.scanner.Err()
	}
	return Tokenize(sr.scanner.Text()), true, nil
}

// Close releases the underlying file handle.
func (sr *SentenceReader) Close() error {
	return sr.f.Close()
}
