// Package nerprobe measures how well a handful of labelled sentences teach a
// linear token classifier to find one named-entity class.
//
// A run samples sentences containing the class from a training corpus, trains
// a target-vs-background CRFsuite model on them, keeps the state-feature
// weights as a linear scorer and ranks every token of a test corpus:
//
//	cfg := nerprobe.DefaultConfig()
//	cfg.Class = "LOC"
//	cfg.TrainingSize = 20
//	res, _ := nerprobe.Run(ctx, cfg)
//	fmt.Println(res.Measures["AP"], res.Measures["uAP"])
package nerprobe

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/happyhackingspace/nerprobe/classifier"
	"github.com/happyhackingspace/nerprobe/corpus"
	"github.com/happyhackingspace/nerprobe/crfsuite"
	"github.com/happyhackingspace/nerprobe/evaluation"
	"github.com/happyhackingspace/nerprobe/internal/lemma"
)

// StemLanguage is the Snowball language used when Config.StemLemmas is set.
const StemLanguage = "english"

// Config holds configuration for one experiment.
type Config struct {
	Class        string
	TrainingSize int
	TrainPath    string
	TestPath     string
	Learner      crfsuite.LearnerConfig

	// SampleFeatures keeps only the k heaviest features when > 0.
	SampleFeatures int
	// Seed seeds sentence sampling. 0 picks a random seed.
	Seed uint64
	// StemLemmas groups the unique-lemma ranking on stemmed, lower-cased lemmas.
	StemLemmas bool
}

// DefaultConfig returns the default experiment configuration.
func DefaultConfig() Config {
	return Config{
		Class:        "PER",
		TrainingSize: 3,
		TrainPath:    "data/train.snlpl.all.crfsuite",
		TestPath:     "data/testb.snlpl.all.crfsuite",
		Learner:      crfsuite.DefaultLearnerConfig(),
	}
}

// Result holds the outcome of one experiment.
type Result struct {
	RunID             string              `json:"run_id"`
	Class             string              `json:"class"`
	TrainingSentences int                 `json:"training_sentences"`
	Features          int                 `json:"features"`
	TrainingTime      time.Duration       `json:"training_time"`
	ExtractTime       time.Duration       `json:"extract_time"`
	Measures          evaluation.Measures `json:"measures"`
}

// Run loads the training and test corpora named by cfg and runs one
// experiment on them.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	train, test, err := loadCorpora(cfg)
	if err != nil {
		return nil, err
	}
	return RunWith(ctx, cfg, train, test)
}

func loadCorpora(cfg Config) (train, test corpus.Corpus, err error) {
	start := time.Now()
	train, err = corpus.LoadFile(cfg.TrainPath)
	if err != nil {
		return nil, nil, fmt.Errorf("nerprobe: %w", err)
	}
	slog.Info("Training data loaded", "sentences", len(train), "duration", time.Since(start))

	start = time.Now()
	test, err = corpus.LoadFile(cfg.TestPath)
	if err != nil {
		return nil, nil, fmt.Errorf("nerprobe: %w", err)
	}
	slog.Info("Testing data loaded", "sentences", len(test), "duration", time.Since(start))
	return train, test, nil
}

// RunWith runs one experiment on already loaded corpora. Neither corpus is
// modified.
func RunWith(ctx context.Context, cfg Config, train, test corpus.Corpus) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Class: cfg.Class}
	log := slog.With("run", res.RunID, "class", cfg.Class)

	positives, negatives := train.SplitByLabel(cfg.Class)
	log.Debug("Training data split", "positives", len(positives), "negatives", len(negatives))

	sample := Sample(newRand(cfg.Seed), cfg.TrainingSize, positives)
	res.TrainingSentences = len(sample)

	learner := crfsuite.NewLearner(cfg.Learner)
	weights, timing, err := learner.LearnFeatureWeights(ctx, sample, cfg.Class)
	if err != nil {
		return nil, fmt.Errorf("nerprobe: %w", err)
	}
	res.TrainingTime = timing.Training
	res.ExtractTime = timing.Extraction

	model := classifier.NewTokenClassifier(weights)
	if cfg.SampleFeatures > 0 {
		model = model.DeriveSampled(cfg.SampleFeatures)
	}
	res.Features = model.Size()
	log.Debug("Classifier built", "features", res.Features, "sentences", res.TrainingSentences)

	var evaluator evaluation.Evaluator
	if cfg.StemLemmas {
		stemmer, err := lemma.NewStemmer(StemLanguage)
		if err != nil {
			return nil, fmt.Errorf("nerprobe: %w", err)
		}
		defer stemmer.Close()
		evaluator.LemmaKey = stemmer.Key
	}

	start := time.Now()
	res.Measures = evaluator.Evaluate(model, test, cfg.Class)
	log.Debug("Evaluation completed", "tokens", test.NumTokens(), "duration", time.Since(start))
	return res, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
