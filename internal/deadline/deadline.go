// Package deadline models the "Timers via ambient scheduling primitives"
// replacement called for in the design notes: a cancellation handle stored
// on the room, carrying a generation counter so a deferred task that
// re-acquires the room lock can tell whether it is still the current
// outstanding timer before mutating anything.
package deadline

import (
	"sync"
	"time"
)

// Deadline is a single outstanding deferred task slot on a room. It is not
// safe for concurrent use by multiple goroutines mutating the same slot
// without the room lock; the room lock is what actually serializes access,
// this type only adds the generation check.
type Deadline struct {
	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	firedAt *time.Time
}

// Token identifies one scheduled firing; the fired callback receives it
// and must call Fire to check whether it is still current before acting.
type Token struct {
	gen uint64
}

// Schedule cancels any existing pending timer on d and arms a new one for
// delay, invoking fn(token) on the package's own goroutine when it fires.
// fn is responsible for acquiring the room lock and then calling
// d.Fire(token) before mutating state.
func (d *Deadline) Schedule(delay time.Duration, fn func(Token)) Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	tok := Token{gen: d.gen}
	d.timer = time.AfterFunc(delay, func() { fn(tok) })
	return tok
}

// Cancel stops any pending timer and invalidates every outstanding token,
// so a late-firing callback's Fire call will report stale.
func (d *Deadline) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Fire reports whether tok is still the current generation — i.e. nothing
// has cancelled or rescheduled this deadline since Schedule returned tok.
// Call this immediately after acquiring the room lock inside the fired
// callback, before any state mutation.
func (d *Deadline) Fire(tok Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return tok.gen == d.gen
}

// Pending reports whether a timer has been scheduled and not cancelled
// since. It stays true after that timer has fired.
func (d *Deadline) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
