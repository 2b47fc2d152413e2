package processor

import (
	"context"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Dispatch runs fn over files with at most workers calls in flight and
// streams each result as soon as it is ready. Results arrive in completion
// order, not input order. A panic inside fn is turned into a result by
// recovered instead of tearing down the pool. The channel is closed once
// every dispatched file has produced exactly one result.
//
// Cancelling ctx stops new files from being dispatched; calls already running
// finish and still report.
func Dispatch[T any](ctx context.Context, files []InputFile, workers int, fn func(InputFile) T, recovered func(InputFile, error) T) <-chan T {
	if workers < 1 {
		workers = 1
	}
	results := make(chan T, workers)

	go func() {
		defer close(results)

		p := pool.New().WithMaxGoroutines(workers)
		for _, file := range files {
			if ctx.Err() != nil {
				break
			}
			p.Go(func() {
				var (
					c   panics.Catcher
					res T
				)
				c.Try(func() { res = fn(file) })
				if r := c.Recovered(); r != nil {
					res = recovered(file, r.AsError())
				}
				results <- res
			})
		}
		p.Wait()
	}()

	return results
}
