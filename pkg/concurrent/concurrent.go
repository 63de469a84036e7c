package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers resolves a configured worker count. Non-positive values mean one
// worker per available CPU.
func Workers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// ForEach runs action for each element on at most workers goroutines and
// waits for all of them. The first error cancels the context handed to the
// remaining actions and is returned. With a single worker or a single item
// the actions run on the calling goroutine.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(ctx context.Context, idx int, item T) error) error {
	workers = Workers(workers)
	if workers == 1 || len(items) <= 1 {
		for idx, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(ctx, idx, item); err != nil {
				return err
			}
		}
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for idx, item := range items {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return action(groupCtx, idx, item)
		})
	}
	return group.Wait()
}

// ParallelMap applies mapFn to each element on at most workers goroutines,
// preserving order.
func ParallelMap[T any, R any](ctx context.Context, in []T, workers int, mapFn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	err := ForEach(ctx, in, workers, func(_ context.Context, idx int, v T) error {
		out[idx] = mapFn(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
