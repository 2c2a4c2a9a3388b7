package util

import "time"

func Ptr[T any](v T) *T {
	return &v
}

// TruncateToDay drops the clock part of t, keeping its location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
