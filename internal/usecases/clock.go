package usecases

import "time"

// Clock abstracts time so time-of-day routing rules and retry scheduling stay
// testable and deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock
func SystemClock() Clock { return systemClock{} }
