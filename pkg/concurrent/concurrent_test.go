package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForEachVisitsAll(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	var sum atomic.Int64
	err := ForEach(context.Background(), items, 4, func(_ context.Context, _ int, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 4950, sum.Load())
}

func TestForEachReturnsError(t *testing.T) {
	boom := errors.New("boom")
	for _, workers := range []int{1, 8} {
		err := ForEach(context.Background(), []int{1, 2, 3}, workers, func(_ context.Context, _ int, v int) error {
			if v == 2 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
	}
}

func TestForEachCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEach(ctx, []int{1, 2}, 1, func(context.Context, int, int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestParallelMapOrder(t *testing.T) {
	out, err := ParallelMap(context.Background(), []int{1, 2, 3, 4}, 3, func(v int) int { return v * v })
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 9, 16}, out)
}

func TestPartition(t *testing.T) {
	items := []uint64{0, 1, 2, 3, 4, 5, 6}
	buckets := Partition(items, 3, func(v uint64) uint64 { return v })
	require.Len(t, buckets, 3)
	require.Equal(t, []uint64{0, 3, 6}, buckets[0])
	require.Equal(t, []uint64{1, 4}, buckets[1])
	require.Equal(t, []uint64{2, 5}, buckets[2])

	single := Partition(items, 0, func(v uint64) uint64 { return v })
	require.Len(t, single, 1)
	require.Equal(t, items, single[0])
}

func TestWorkers(t *testing.T) {
	require.Equal(t, 3, Workers(3))
	require.GreaterOrEqual(t, Workers(0), 1)
}
