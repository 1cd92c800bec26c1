package utils

// SliceSelect provides a way of querying a specific element from a slice's elements into a slice of its own.
func SliceSelect[T any, K any](x []T, f func(x T) K) []K {
	r := make([]K, len(x))
	for i := 0; i < len(x); i++ {
		r[i] = f(x[i])
	}
	return r
}

// SliceWhere provides a way of querying specific elements which fit some criteria into a new slice.
func SliceWhere[T any](x []T, f func(x T) bool) []T {
	r := make([]T, 0)
	for i := 0; i < len(x); i++ {
		if f(x[i]) {
			r = append(r, x[i])
		}
	}
	return r
}

// SliceAny returns true if any element of the slice fits the criteria.
func SliceAny[T any](x []T, f func(x T) bool) bool {
	for i := 0; i < len(x); i++ {
		if f(x[i]) {
			return true
		}
	}
	return false
}

// SliceDistinct returns the elements of the given slices in order of first appearance, without duplicates.
func SliceDistinct[T comparable](slices ...[]T) []T {
	seen := make(map[T]struct{})
	r := make([]T, 0)
	for _, x := range slices {
		for _, v := range x {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			r = append(r, v)
		}
	}
	return r
}
