package service

import "time"

// Clock supplies the current time; tests pass a fixed one.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
