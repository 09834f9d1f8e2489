// Package config holds the training configuration record, mirroring
// multivec's Config struct field for field (original_source/multivec/
// multivec-mono.hpp) and the flag wiring style of alexandres-lexvec's
// main.go.
package config

import "github.com/tversky-labs/skipgram/internal/werrors"

// Config controls every tunable of vocabulary construction, sampling,
// and training. Every field here is one present in the original
// MonolingualModel::Config, renamed to Go conventions.
type Config struct {
	// StartingAlpha is the initial learning rate, linearly decayed to
	// a floor over the course of training (spec.md §4.5).
	StartingAlpha float64
	// Dimension is D, the width of every embedding row.
	Dimension int
	// MinCount discards vocabulary entries seen fewer than this many
	// times (sentence-id tokens are exempt).
	MinCount int
	// MaxIterations is how many full passes the trainer makes over
	// the corpus.
	MaxIterations int
	// WindowSize bounds the (randomly reduced) context window.
	WindowSize int
	// NThreads is the number of parallel workers, each assigned a
	// disjoint byte range of the training file.
	NThreads int
	// Subsampling is t in the keep-probability formula (spec.md §4.4).
	Subsampling float64
	// HierarchicalSoftmax enables the Huffman-tree output layer.
	HierarchicalSoftmax bool
	// SkipGram selects skip-gram training; false selects CBOW.
	SkipGram bool
	// Negative is K, the number of negative samples per positive
	// example; 0 disables negative sampling.
	Negative int
	// SentVector enables per-sentence paragraph vector training.
	SentVector bool
	// Freeze disables updates to W_in (and the output matrices) while
	// still allowing W_sent / online sentence vectors to update; used
	// by paragraph-vector inference over frozen global parameters.
	Freeze bool
}

// Default returns the configuration multivec ships as its defaults.
func Default() Config {
	return Config{
		StartingAlpha: 0.05,
		Dimension:     100,
		MinCount:      5,
		MaxIterations: 5,
		WindowSize:    5,
		NThreads:      4,
		Subsampling:   1e-3,
		Negative:      5,
	}
}

// Validate rejects configurations the core cannot train with.
func (c Config) Validate() error {
	switch {
	case c.Dimension <= 0:
		return &werrors.InvalidConfig{Reason: "dimension must be > 0"}
	case c.NThreads <= 0:
		return &werrors.InvalidConfig{Reason: "n_threads must be > 0"}
	case c.MinCount < 0:
		return &werrors.InvalidConfig{Reason: "min_count must be >= 0"}
	case c.MaxIterations <= 0:
		return &werrors.InvalidConfig{Reason: "max_iterations must be > 0"}
	case c.WindowSize <= 0:
		return &werrors.InvalidConfig{Reason: "window_size must be > 0"}
	case c.Negative < 0:
		return &werrors.InvalidConfig{Reason: "negative must be >= 0"}
	case !c.HierarchicalSoftmax && c.Negative == 0:
		return &werrors.InvalidConfig{Reason: "at least one of hierarchical_softmax or negative must be enabled"}
	case c.StartingAlpha <= 0:
		return &werrors.InvalidConfig{Reason: "starting_alpha must be > 0"}
	}
	return nil
}
