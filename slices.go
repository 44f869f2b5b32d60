package dfa

// grow extends s to size elements, filling new slots with fill.
func grow[T any](s []T, size int, fill T) []T {
	for len(s) < size {
		s = append(s, fill)
	}
	return s
}
