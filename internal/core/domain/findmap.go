package domain

import "iter"

// FindMap applies fn to each element of seq in order and returns the first
// result fn reports as present. Elements after the first hit are never visited.
func FindMap[T, R any](seq iter.Seq[T], fn func(T) (R, bool)) (R, bool) {
	for item := range seq {
		if result, ok := fn(item); ok {
			return result, true
		}
	}
	var zero R
	return zero, false
}
