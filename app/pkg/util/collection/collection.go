package collection

func Map[T, U any](data []T, f func(T) U) []U {
	r := make([]U, 0, len(data))
	for _, e := range data {
		r = append(r, f(e))
	}
	return r
}

// KeyBy indexes data by key. Later elements win on duplicate keys.
func KeyBy[T any, K comparable](data []T, key func(T) K) map[K]T {
	r := make(map[K]T, len(data))
	for _, e := range data {
		r[key(e)] = e
	}
	return r
}
