package util

// Filter returns a new slice containing only elements that satisfy the
// predicate. The result is never nil.
func Filter[T any](slice []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, item := range slice {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}
