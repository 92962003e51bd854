package services

import "time"

// Clock abstracts time so the scheduler and state machines can be tested
// with a virtual clock instead of real sleeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the wall clock used outside of tests.
var SystemClock Clock = systemClock{}
