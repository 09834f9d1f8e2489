// Command skipgram is a thin CLI shell over the library packages:
// train a model, export its vectors, look up similarity, or score it
// against an analogy test set. Grounded on alexandres-lexvec/main.go's
// flag.NewFlagSet command dispatch (vocab/cooc/train/trainem/embed),
// adapted to this system's train/vectors/distance/accuracy commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tversky-labs/skipgram/internal/accuracy"
	"github.com/tversky-labs/skipgram/internal/config"
	"github.com/tversky-labs/skipgram/internal/infer"
	"github.com/tversky-labs/skipgram/internal/serialize"
	"github.com/tversky-labs/skipgram/internal/train"
	"github.com/tversky-labs/skipgram/internal/wlog"
)

const (
	trainCommand    = "train"
	vectorsCommand  = "vectors"
	distanceCommand = "distance"
	accuracyCommand = "accuracy"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: skipgram [command] [options]\n"+
		"Commands: train, vectors, distance, accuracy\n")
}

func main() {
	log := wlog.Default()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	command := os.Args[1]

	switch command {
	case trainCommand:
		runTrain(os.Args[2:], log)
	case vectorsCommand:
		runVectors(os.Args[2:], log)
	case distanceCommand:
		runDistance(os.Args[2:], log)
	case accuracyCommand:
		runAccuracy(os.Args[2:], log)
	default:
		usage()
		os.Exit(1)
	}
}

func runTrain(args []string, log *wlog.Logger) {
	flags := flag.NewFlagSet(trainCommand, flag.ExitOnError)
	corpusPath := flags.String("corpus", "", "path to training corpus (one sentence per line)")
	modelPath := flags.String("model", "", "path to write the trained model")
	cfg := config.Default()
	flags.Float64Var(&cfg.StartingAlpha, "alpha", cfg.StartingAlpha, "initial learning rate")
	flags.IntVar(&cfg.Dimension, "dim", cfg.Dimension, "embedding dimension")
	flags.IntVar(&cfg.MinCount, "min-count", cfg.MinCount, "discard words seen fewer than this many times")
	flags.IntVar(&cfg.MaxIterations, "iterations", cfg.MaxIterations, "number of passes over the corpus")
	flags.IntVar(&cfg.WindowSize, "window", cfg.WindowSize, "max context window size")
	flags.IntVar(&cfg.NThreads, "threads", cfg.NThreads, "number of worker threads")
	flags.Float64Var(&cfg.Subsampling, "subsample", cfg.Subsampling, "subsampling threshold")
	flags.BoolVar(&cfg.HierarchicalSoftmax, "hs", cfg.HierarchicalSoftmax, "use hierarchical softmax")
	flags.BoolVar(&cfg.SkipGram, "skip-gram", cfg.SkipGram, "use skip-gram instead of CBOW")
	flags.IntVar(&cfg.Negative, "negative", cfg.Negative, "number of negative samples, 0 to disable")
	flags.BoolVar(&cfg.SentVector, "sentence-vectors", cfg.SentVector, "train a paragraph vector per input line")
	verbosity := flags.String("verbosity", "info", "log level: debug, info, warn, error")
	flags.Parse(args)

	log.SetLevel(*verbosity)
	if *corpusPath == "" || *modelPath == "" {
		fmt.Fprintln(os.Stderr, "train requires -corpus and -model")
		os.Exit(1)
	}

	m, err := train.New(cfg, *corpusPath, 1)
	if err != nil {
		log.Fatalf("building model: %v", err)
	}
	log.Infof("vocabulary built: %d words, %d training tokens", m.Vocab.Len(), m.Vocab.TrainingWords)

	if err := m.Train(*corpusPath); err != nil {
		log.Fatalf("training: %v", err)
	}
	if err := serialize.Save(m, *modelPath); err != nil {
		log.Fatalf("saving model: %v", err)
	}
	log.Infof("model written to %s", *modelPath)
}

func runVectors(args []string, log *wlog.Logger) {
	flags := flag.NewFlagSet(vectorsCommand, flag.ExitOnError)
	modelPath := flags.String("model", "", "path to a trained model")
	outputPath := flags.String("output", "", "path to write the exported vectors")
	policy := flags.Int("policy", infer.PolicyInput, "vector policy: 0=input, 1=output, 2=average, 3=concat")
	binary := flags.Bool("binary", false, "write word2vec binary format instead of text")
	flags.Parse(args)

	if *modelPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "vectors requires -model and -output")
		os.Exit(1)
	}

	m, err := serialize.Load(*modelPath)
	if err != nil {
		log.Fatalf("loading model: %v", err)
	}

	if *binary {
		err = serialize.ExportBinary(m, *policy, *outputPath)
	} else {
		err = serialize.ExportText(m, *policy, *outputPath)
	}
	if err != nil {
		log.Fatalf("exporting vectors: %v", err)
	}
	log.Infof("vectors written to %s", *outputPath)
}

func runDistance(args []string, log *wlog.Logger) {
	flags := flag.NewFlagSet(distanceCommand, flag.ExitOnError)
	modelPath := flags.String("model", "", "path to a trained model")
	word1 := flags.String("word1", "", "first word")
	word2 := flags.String("word2", "", "second word")
	policy := flags.Int("policy", infer.PolicyInput, "vector policy: 0=input, 1=output, 2=average, 3=concat")
	flags.Parse(args)

	if *modelPath == "" || *word1 == "" || *word2 == "" {
		fmt.Fprintln(os.Stderr, "distance requires -model, -word1, and -word2")
		os.Exit(1)
	}

	m, err := serialize.Load(*modelPath)
	if err != nil {
		log.Fatalf("loading model: %v", err)
	}
	eng := infer.New(m)
	dist, err := eng.Distance(*word1, *word2, *policy)
	if err != nil {
		log.Fatalf("computing distance: %v", err)
	}
	fmt.Printf("distance(%s, %s) = %.6f\n", *word1, *word2, dist)
}

func runAccuracy(args []string, log *wlog.Logger) {
	flags := flag.NewFlagSet(accuracyCommand, flag.ExitOnError)
	modelPath := flags.String("model", "", "path to a trained model")
	questionsPath := flags.String("questions", "", "path to the analogy question file")
	policy := flags.Int("policy", infer.PolicyInput, "vector policy: 0=input, 1=output, 2=average, 3=concat")
	maxVocab := flags.Int("max-vocab", 0, "restrict the nearest-neighbor search to this many most-frequent words, 0 for no limit")
	flags.Parse(args)

	if *modelPath == "" || *questionsPath == "" {
		fmt.Fprintln(os.Stderr, "accuracy requires -model and -questions")
		os.Exit(1)
	}

	m, err := serialize.Load(*modelPath)
	if err != nil {
		log.Fatalf("loading model: %v", err)
	}
	f, err := os.Open(*questionsPath)
	if err != nil {
		log.Fatalf("opening questions file: %v", err)
	}
	defer f.Close()

	report, err := accuracy.Evaluate(m, f, *policy, *maxVocab)
	if err != nil {
		log.Fatalf("evaluating accuracy: %v", err)
	}
	for _, s := range report.Sections {
		fmt.Printf("%s: %d/%d (%.2f%%)\n", s.Name, s.Correct, s.Total, s.Accuracy()*100)
	}
	fmt.Printf("total: %d/%d (%.2f%%)\n", report.TotalCorrect, report.TotalCount, report.Accuracy()*100)
}
