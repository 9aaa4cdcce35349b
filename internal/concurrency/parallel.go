// Package concurrency provides a small order-preserving worker pool. The
// scoring engine itself is synchronous; this is for the cmds when they fan
// out independent predictions.
package concurrency

import (
	"context"
	"sync"
)

// ParallelOptions configures parallel processing.
type ParallelOptions struct {
	// MaxWorkers caps the number of concurrent workers.
	MaxWorkers int
}

// DefaultOptions returns the default parallel options.
func DefaultOptions() ParallelOptions {
	return ParallelOptions{MaxWorkers: 10}
}

// ProcessParallel runs itemFunc for every item with a bounded worker pool.
// Results come back in input order regardless of completion order, so
// output stays deterministic.
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = DefaultOptions().MaxWorkers
	}
	if maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	type indexed struct {
		index  int
		result R
		err    error
	}

	jobs := make(chan int, len(items))
	results := make(chan indexed, len(items))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					r, err := itemFunc(ctx, i, items[i])
					results <- indexed{index: i, result: r, err: err}
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(items))
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.result
	}
	return out, errs
}
