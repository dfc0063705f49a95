package clock

import "time"

// Clock abstracts time so every computation can be replayed against a fixed
// reference instant in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
