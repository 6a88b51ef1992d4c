package nerprobe

import (
	"context"
	"log/slog"
	"sync"

	"github.com/happyhackingspace/nerprobe/corpus"
)

type sweepJob struct {
	index int
	class string
	size  int
}

// Sweep loads the corpora once and runs one experiment for every class and
// training size pair, at most parallel at a time. Results come back in
// (class, size) order. The first failing run cancels the others and its error
// is returned. progress, if set, is called once per finished run and never
// concurrently.
func Sweep(ctx context.Context, cfg Config, classes []string, sizes []int, parallel int, progress func(*Result)) ([]*Result, error) {
	train, test, err := loadCorpora(cfg)
	if err != nil {
		return nil, err
	}
	return SweepWith(ctx, cfg, train, test, classes, sizes, parallel, progress)
}

// SweepWith is Sweep on already loaded corpora.
func SweepWith(ctx context.Context, cfg Config, train, test corpus.Corpus, classes []string, sizes []int, parallel int, progress func(*Result)) ([]*Result, error) {
	if parallel < 1 {
		parallel = 1
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, len(classes)*len(sizes))
	jobs := make(chan sweepJob)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for range parallel {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if runCtx.Err() != nil {
					continue
				}
				c := cfg
				c.Class = job.class
				c.TrainingSize = job.size
				res, err := RunWith(runCtx, c, train, test)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
						cancel()
					}
				} else {
					results[job.index] = res
					if progress != nil {
						progress(res)
					}
				}
				mu.Unlock()
			}
		}()
	}

	slog.Debug("Sweep started", "runs", len(results), "parallel", parallel)
	index := 0
feed:
	for _, class := range classes {
		for _, size := range sizes {
			select {
			case jobs <- sweepJob{index: index, class: class, size: size}:
				index++
			case <-runCtx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
