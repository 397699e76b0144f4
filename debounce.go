package gesture

import "time"

// Clock supplies the current time to time-driven components.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Debouncer coalesces bursts of calls into a single trailing invocation.
//
// A burst starts with the first Call. Each later Call that lands before the
// pending deadline pushes the settle point to now+wait, but the invocation
// never happens later than maxWait after the burst started. A Call that
// arrives after the deadline passed (the host did not Update in time) fires
// the old burst first and then starts a new one.
//
// Only the argument of the most recent Call reaches fn.
//
// The timer is cooperative: nothing fires until Update is called, and fn runs
// on the goroutine calling Update. Debouncer is not safe for concurrent use.
type Debouncer[T any] struct {
	fn      func(T)
	wait    time.Duration
	maxWait time.Duration
	clock   Clock

	pending bool
	arg     T
	start   time.Time // first call of the current burst
	last    time.Time // most recent call that extended the burst
}

// NewDebouncer returns a Debouncer invoking fn. A maxWait smaller than wait is
// raised to wait. A nil clock uses SystemClock.
func NewDebouncer[T any](fn func(T), wait, maxWait time.Duration, clock Clock) *Debouncer[T] {
	if clock == nil {
		clock = SystemClock
	}
	if maxWait < wait {
		maxWait = wait
	}
	return &Debouncer[T]{fn: fn, wait: wait, maxWait: maxWait, clock: clock}
}

// Call schedules fn with arg, replacing any earlier pending argument.
func (d *Debouncer[T]) Call(arg T) {
	now := d.clock.Now()
	if d.pending {
		if due, _ := d.Deadline(); !now.Before(due) {
			d.fire()
		}
	}
	d.arg = arg
	if !d.pending {
		d.pending = true
		d.start = now
		d.last = now
		return
	}
	d.last = now
}

// Deadline reports when the pending invocation is due.
func (d *Debouncer[T]) Deadline() (time.Time, bool) {
	if !d.pending {
		return time.Time{}, false
	}
	due := d.last.Add(d.wait)
	if ceiling := d.start.Add(d.maxWait); ceiling.Before(due) {
		due = ceiling
	}
	return due, true
}

// Update fires the pending invocation if it is due. Returns true if fn ran.
func (d *Debouncer[T]) Update() bool {
	due, ok := d.Deadline()
	if !ok || d.clock.Now().Before(due) {
		return false
	}
	d.fire()
	return true
}

// Flush fires the pending invocation immediately. Returns true if fn ran.
func (d *Debouncer[T]) Flush() bool {
	if !d.pending {
		return false
	}
	d.fire()
	return true
}

// Cancel drops the pending invocation without running it.
func (d *Debouncer[T]) Cancel() {
	var zero T
	d.pending = false
	d.arg = zero
	d.start = time.Time{}
	d.last = time.Time{}
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	return d.pending
}

func (d *Debouncer[T]) fire() {
	arg := d.arg
	d.Cancel()
	d.fn(arg)
}
