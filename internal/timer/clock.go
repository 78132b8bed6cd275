// Package timer provides the cancellable delayed triggers that bound the
// registration and voting phases, over an injectable clock so tests can
// drive expiry deterministically.
package timer

import "time"

// Clock abstracts the time operations the session engine needs.
// Production code uses Real(); tests use a Fake
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// AfterFunc waits for d, then calls f in its own goroutine (real) or
	// synchronously during Advance (fake)
	AfterFunc(d time.Duration, f func()) Stopper
}

// Stopper cancels a pending AfterFunc call. Stop reports whether the call
// was prevented, matching time.Timer.Stop
type Stopper interface {
	Stop() bool
}

// Real returns a Clock backed by the standard time package
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}
