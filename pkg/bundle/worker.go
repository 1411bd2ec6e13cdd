// File: pkg/bundle/worker.go
package bundle

import (
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type workResult struct {
	file    ProcessedFile
	skipped bool
	err     error
}

// ProcessFilesConcurrently reads and transforms files on a worker pool. Every
// read failure is collected and returned together; results come back in the
// same order as files.
func ProcessFilesConcurrently(files []CandidateFile, t *Transformer, maxWorkers int, bar *progressbar.ProgressBar, logger *zap.Logger) ([]ProcessedFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	jobs := make(chan int, len(files))
	results := make([]workResult, len(files))
	var wg sync.WaitGroup

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	logger.Debug("Initializing worker pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go worker(files, jobs, results, t, bar, &wg, logger.With(zap.Int("workerID", w)))
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var (
		processed []ProcessedFile
		errs      error
	)
	for _, r := range results {
		switch {
		case r.err != nil:
			errs = multierr.Append(errs, r.err)
		case !r.skipped:
			processed = append(processed, r.file)
		}
	}
	if errs != nil {
		return nil, errs
	}

	logger.Debug("All files processed", zap.Int("processedFiles", len(processed)))
	return processed, nil
}

// worker processes file indexes from jobs. Each index is written by exactly
// one worker, so results needs no lock.
func worker(files []CandidateFile, jobs <-chan int, results []workResult, t *Transformer, bar *progressbar.ProgressBar, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()
	logger.Debug("Worker started")

	for i := range jobs {
		file, skipped, err := ProcessSingleFile(files[i], t, logger)
		results[i] = workResult{file: file, skipped: skipped, err: err}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	logger.Debug("Worker finished processing")
}
