package timer

import (
	"sync/atomic"
	"time"
)

const (
	statePending int32 = iota
	stateFired
	stateCancelled
)

// Facility starts delayed triggers on a Clock
type Facility struct {
	clock Clock
}

// NewFacility returns a Facility over clock. A nil clock means Real()
func NewFacility(clock Clock) *Facility {
	if clock == nil {
		clock = Real()
	}
	return &Facility{clock: clock}
}

// Clock returns the underlying clock
func (f *Facility) Clock() Clock {
	return f.clock
}

// StartDelayed runs fn after d unless the returned Handle is cancelled
// first. Exactly one of expiry and Cancel wins: fn runs at most once and
// never after a successful Cancel
func (f *Facility) StartDelayed(d time.Duration, fn func(*Handle)) *Handle {
	h := &Handle{deadline: f.clock.Now().Add(d)}
	h.stop = f.clock.AfterFunc(d, func() {
		if h.state.CompareAndSwap(statePending, stateFired) {
			fn(h)
		}
	})
	return h
}

// Handle is one pending delayed trigger
type Handle struct {
	state    atomic.Int32
	stop     Stopper
	deadline time.Time
}

// Cancel stops the trigger. It reports true only for the call that
// prevented expiry; cancelling a fired or already cancelled handle is a
// no-op returning false. A nil Handle is treated as already finished
func (h *Handle) Cancel() bool {
	if h == nil {
		return false
	}
	if !h.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	if h.stop != nil {
		h.stop.Stop()
	}
	return true
}

// Active reports whether the trigger is still pending
func (h *Handle) Active() bool {
	return h != nil && h.state.Load() == statePending
}

// Deadline returns when the trigger is due
func (h *Handle) Deadline() time.Time {
	if h == nil {
		return time.Time{}
	}
	return h.deadline
}
