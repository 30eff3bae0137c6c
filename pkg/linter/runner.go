package linter

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runner schedules per-file work. fn is called once per index in
// [0, n) and must write its result into a slot owned by that index.
type Runner interface {
	Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error
}

// SequentialRunner processes files one at a time in order.
type SequentialRunner struct{}

// Run implements Runner.
func (SequentialRunner) Run(ctx context.Context, n int, fn func(context.Context, int) error) error {
	for i := range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// ParallelRunner processes up to Workers files at once.
type ParallelRunner struct {
	Workers int
}

// Run implements Runner. The first error cancels files not yet started.
func (r ParallelRunner) Run(ctx context.Context, n int, fn func(context.Context, int) error) error {
	if n == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(r.Workers, n)))

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A cancelled parent can stop scheduling without any goroutine failing.
	return ctx.Err()
}

func (l *Linter) runner() Runner {
	if l.workers <= 1 {
		return SequentialRunner{}
	}
	return ParallelRunner{Workers: l.workers}
}
