package internal

import "iter"

// Flatten applies f to each element of xs and yields the elements of the
// resulting sequences in order. Nothing is materialized; f is called only
// when the consumer reaches the corresponding outer element.
func Flatten[T, R any](f func(T) iter.Seq[R], xs iter.Seq[T]) iter.Seq[R] {
	return func(yield func(R) bool) {
		for x := range xs {
			for r := range f(x) {
				if !yield(r) {
					return
				}
			}
		}
	}
}
