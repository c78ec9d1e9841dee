package loader

import (
	"context"
	"sync"

	"github.com/alihassanzadehk/ssnd-benchmark/internal/ctxlog"
)

// runJobs executes fn for indexes 0..n-1. With one worker the jobs run
// inline in order; with more, they fan out across a worker pool and the
// first failure cancels everything outstanding. Either way the caller sees
// the first error and never a partial success.
//
// Parallelism is safe here because entries are independent: no parse reads
// another's result and every output key is unique.
func (l *Loader) runJobs(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	workers := l.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logger := ctxlog.FromContext(ctx)

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				if err := fn(ctx, i); err != nil {
					logger.Debug("Worker job failed, cancelling pool.", "workerID", workerID, "job", i, "error", err)
					fail(err)
				}
			}
		}(w)
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
