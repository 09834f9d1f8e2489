// Package corpus handles reading the training file: per-line
// tokenization and the byte-range chunking that partitions the file
// across worker threads. Grounded on alexandres-lexvec/text.go's
// scanWords/createScanner (generalized here from lexvec's
// period-as-sentence-break convention back to spec.md §6's plain
// one-sentence-per-line format) and on alexandres-lexvec/train.go's
// trainIteratorIM.iterate byte-offset bookkeeping.
package corpus

import "strings"

// Tokenize splits a line into whitespace-separated tokens, per spec.md
// §3's Token definition (bytes compared for exact equality, UTF-8
// opaque, no casefolding).
func Tokenize(line string) []string {
	return strings.Fields(line)
}
