package viewport

import "time"

// deferred is a single-slot delayed action with most-recent-wins semantics:
// scheduling replaces any pending action, and a canceled action never runs.
// It is driven by explicit Tick calls on the owning thread, so there is no
// timer goroutine to race with.
type deferred struct {
	fn     func()
	due    time.Time
	active bool
}

// Schedule arms the slot to run fn once now+delay has passed, replacing
// whatever was pending.
func (d *deferred) Schedule(now time.Time, delay time.Duration, fn func()) {
	d.fn = fn
	d.due = now.Add(delay)
	d.active = true
}

// Cancel discards the pending action, if any.
func (d *deferred) Cancel() {
	d.active = false
	d.fn = nil
}

// Active reports whether an action is pending.
func (d *deferred) Active() bool { return d.active }

// Tick runs the pending action if its delay has elapsed. The slot is
// cleared before the callback runs, so a callback may schedule again.
// A panicking callback is contained; it must not take down the host loop.
func (d *deferred) Tick(now time.Time) {
	if !d.active || now.Before(d.due) {
		return
	}
	fn := d.fn
	d.active = false
	d.fn = nil
	if fn == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	fn()
}
