// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"sync"
	"time"
)

// Debouncer delays fn until interval has passed without another Trigger.
// It is Idle until triggered and Pending while its timer is armed. fn runs
// on the timer's goroutine; runs are not serialized, so a slow fn can
// overlap the next one.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns an idle Debouncer.
func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger arms the timer, replacing any timer that has not fired yet.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

// fire runs fn unless the timer that scheduled it was replaced or stopped
// after it had already started firing.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels a scheduled run. It does not wait for a run in progress.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
