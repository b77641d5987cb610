package cache

import "time"

// clock abstracts time so expiry logic can run against a fake in tests.
type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
