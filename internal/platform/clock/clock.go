package clock

import "time"

// Clock abstracts wall-clock time so deadline arithmetic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
