package reservation

import "time"

// Clock supplies the current instant so temporal rules can be tested
// with a fixed time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
