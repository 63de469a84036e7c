package concurrent

// Partition spreads items over n buckets by key(item) % n. Items keep their
// relative order inside a bucket.
func Partition[T any](items []T, n int, key func(T) uint64) [][]T {
	if n < 1 {
		n = 1
	}
	buckets := make([][]T, n)
	if n == 1 {
		buckets[0] = items
		return buckets
	}
	hint := len(items)/n + 1
	for i := range buckets {
		buckets[i] = make([]T, 0, hint)
	}
	for _, item := range items {
		b := key(item) % uint64(n)
		buckets[b] = append(buckets[b], item)
	}
	return buckets
}
