// Package accuracy implements the word-analogy evaluation recovered
// from original_source/multivec/multivec-mono.hpp's computeAccuracy:
// for every "a b c d" line, predict wordVec(b)-wordVec(a)+wordVec(c)
// and check whether the nearest vocabulary word is d. Grounded on
// alexandres-lexvec's flag-driven CLI pattern for option names
// (max_vocabulary_size) and on infer.Engine for the vector arithmetic
// and cosine search it is a pure consumer of.
package accuracy

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/tversky-labs/skipgram/internal/infer"
	"github.com/tversky-labs/skipgram/internal/train"
	"github.com/tversky-labs/skipgram/internal/werrors"
)

// Section holds one ":"-headed block's result.
type Section struct {
	Name    string
	Correct int
	Total   int
}

// Accuracy returns Correct/Total, or 0 if Total is 0.
func (s Section) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Report is the full evaluation result: one Section per header plus
// the running overall total.
type Report struct {
	Sections     []Section
	TotalCorrect int
	TotalCount   int
}

// Accuracy returns TotalCorrect/TotalCount, or 0 if TotalCount is 0.
func (r Report) Accuracy() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.TotalCorrect) / float64(r.TotalCount)
}

// Evaluate reads analogy questions from src (spec.md §6's accuracy
// evaluation input format: ":"-prefixed section headers, then 4-tuple
// lines "a b c d") and scores the model's predictions under policy.
// maxVocab, when > 0, restricts the nearest-neighbor search to the
// maxVocab most frequent words, matching the original's behavior of
// skipping rare words during the full-vocabulary scan.
func Evaluate(m *train.Model, src io.Reader, policy int, maxVocab int) (Report, error) {
	eng := infer.New(m)
	pool := searchPool(m, maxVocab)

	var report Report
	var current *Section

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if current != nil {
				report.Sections = append(report.Sections, *current)
			}
			current = &Section{Name: strings.TrimSpace(strings.TrimPrefix(line, ":"))}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			continue
		}
		a, b, c, d := fields[0], fields[1], fields[2], fields[3]

		correct, err := evaluateOne(eng, pool, policy, a, b, c, d)
		if err != nil {
			if isOOV(err) {
				continue
			}
			return report, err
		}

		if current == nil {
			current = &Section{Name: "default"}
		}
		current.Total++
		report.TotalCount++
		if correct {
			current.Correct++
			report.TotalCorrect++
		}
	}
	if err := scanner.Err(); err != nil {
		return report, werrors.NewIoError("accuracy input", err)
	}
	if current != nil {
		report.Sections = append(report.Sections, *current)
	}
	return report, nil
}

func evaluateOne(eng *infer.Engine, pool []string, policy int, a, b, c, d string) (bool, error) {
	va, err := eng.WordVec(a, policy)
	if err != nil {
		return false, err
	}
	vb, err := eng.WordVec(b, policy)
	if err != nil {
		return false, err
	}
	vc, err := eng.WordVec(c, policy)
	if err != nil {
		return false, err
	}

	target := make([]float32, len(va))
	for i := range target {
		target[i] = vb[i] - va[i] + vc[i]
	}

	exclude := map[string]bool{a: true, b: true, c: true}
	best := nearest(eng, pool, policy, target, exclude)
	return best == d, nil
}

// nearest returns the pool word whose vector is cosine-closest to
// target, excluding the given words.
func nearest(eng *infer.Engine, pool []string, policy int, target []float32, exclude map[string]bool) string {
	var best string
	bestSim := -2.0
	for _, word := range pool {
		if exclude[word] {
			continue
		}
		vec, err := eng.WordVec(word, policy)
		if err != nil {
			continue
		}
		sim := cosine(target, vec)
		if sim > bestSim {
			bestSim = sim
			best = word
		}
	}
	return best
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// searchPool returns the tokens the nearest-neighbor scan considers,
// restricted to the maxVocab most frequent words when maxVocab > 0
// (0 means no limit — the vocabulary is already sorted by descending
// count, so this is a prefix).
func searchPool(m *train.Model, maxVocab int) []string {
	entries := m.Vocab.Entries()
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsSentenceID {
			words = append(words, e.Token)
		}
	}
	if maxVocab > 0 && maxVocab < len(words) {
		words = words[:maxVocab]
	}
	return words
}

func isOOV(err error) bool {
	_, ok := err.(*werrors.NotInVocabulary)
	return ok
}
