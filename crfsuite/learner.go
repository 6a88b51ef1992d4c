package crfsuite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/happyhackingspace/nerprobe/classifier"
	"github.com/happyhackingspace/nerprobe/corpus"
)

// LearnerConfig holds the trainer invocation settings.
type LearnerConfig struct {
	Binary    string        // path or name of the crfsuite executable
	Algorithm string        // value of `learn -a`
	Params    []string      // extra `learn -p name=value` parameters
	TempDir   string        // parent of the per-run scope, os.TempDir when empty
	Timeout   time.Duration // per subprocess, 0 for none
}

// DefaultLearnerConfig returns L-BFGS training with crfsuite from PATH.
func DefaultLearnerConfig() LearnerConfig {
	return LearnerConfig{
		Binary:    "crfsuite",
		Algorithm: "lbfgs",
	}
}

// Timing records wall-clock durations of one training run.
type Timing struct {
	Training   time.Duration
	Extraction time.Duration
}

// Learner trains binary models with an external crfsuite binary.
type Learner struct {
	config LearnerConfig
}

// NewLearner creates a learner.
func NewLearner(config LearnerConfig) *Learner {
	return &Learner{config: config}
}

// LearnFeatureWeights trains a target-vs-background model on sentences and
// returns its flattened state-feature weights. An empty training set yields
// an empty map without starting any process.
func (l *Learner) LearnFeatureWeights(ctx context.Context, sentences corpus.Corpus, target string) (weights classifier.Weights, timing Timing, err error) {
	if len(sentences) == 0 {
		return classifier.Weights{}, Timing{}, nil
	}

	scope, err := NewScope(l.config.TempDir)
	if err != nil {
		return nil, Timing{}, err
	}
	defer func() {
		if cerr := scope.Close(); cerr != nil {
			weights = nil
			err = errors.Join(err, cerr)
		}
	}()

	forTrain := scope.NewFile(".crfsuite")
	forModel := scope.NewFile(".model")
	forTrainOut := scope.NewFile(".out")
	forTrainErr := scope.NewFile(".err")
	forDumpOut := scope.NewFile(".out")
	forDumpErr := scope.NewFile(".err")

	if err := corpus.WriteFile(forTrain, sentences, corpus.BinaryRelabel(target)); err != nil {
		return nil, Timing{}, fmt.Errorf("create training file: %w", err)
	}

	slog.Debug("Training model", "class", target, "sentences", len(sentences), "train", forTrain, "model", forModel)
	start := time.Now()
	if err := l.trainModel(ctx, forTrain, forModel, forTrainOut, forTrainErr); err != nil {
		return nil, Timing{}, err
	}
	timing.Training = time.Since(start)
	slog.Debug("Training completed", "class", target, "duration", timing.Training)

	start = time.Now()
	weights, err = l.readWeightsFromModel(ctx, target, forModel, forDumpOut, forDumpErr)
	if err != nil {
		return nil, Timing{}, err
	}
	timing.Extraction = time.Since(start)
	slog.Debug("Weights extracted", "class", target, "features", len(weights), "duration", timing.Extraction)

	return weights, timing, nil
}

func (l *Learner) trainModel(ctx context.Context, forTrain, forModel, stdout, stderr string) error {
	args := []string{"learn", "-a", l.config.Algorithm}
	for _, p := range l.config.Params {
		args = append(args, "-p", p)
	}
	args = append(args, "-m", forModel, forTrain)
	if err := l.spawn(ctx, stdout, stderr, args...); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	return nil
}

func (l *Learner) readWeightsFromModel(ctx context.Context, target, forModel, stdout, stderr string) (classifier.Weights, error) {
	if err := l.spawn(ctx, stdout, stderr, "dump", forModel); err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}

	f, err := os.Open(stdout)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	weights, err := ParseFeatureWeights(f, target)
	if err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}
	return weights, nil
}

// spawn runs the trainer with its output streams redirected to files and
// waits for it to exit.
func (l *Learner) spawn(ctx context.Context, stdoutPath, stderrPath string, args ...string) error {
	if l.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.config.Timeout)
		defer cancel()
	}

	stdout, err := os.Create(stdoutPath)
	if err != nil {
		return err
	}
	defer func() { _ = stdout.Close() }()
	stderr, err := os.Create(stderrPath)
	if err != nil {
		return err
	}
	defer func() { _ = stderr.Close() }()

	cmd := exec.CommandContext(ctx, l.config.Binary, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", l.config.Binary, args[0], ctxErr)
	}
	if runErr == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		return fmt.Errorf("run %s: %w", l.config.Binary, runErr)
	}
	msg, err := os.ReadFile(stderrPath)
	if err != nil {
		return fmt.Errorf("read stderr of %s: %w", l.config.Binary, err)
	}
	return &ExternalProcessError{
		Args:     append([]string{l.config.Binary}, args...),
		ExitCode: exitErr.ExitCode(),
		Stderr:   string(msg),
	}
}
