// Package frame schedules one-shot per-frame callbacks.
//
// A callback runs once; work that animates across frames re-arms itself by
// requesting another frame from inside the callback. Every scheduler in this
// package runs callbacks on the goroutine that drives it, so callers never
// need to lock state touched only from frame callbacks.
package frame

import "time"

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Func is invoked with the timestamp of the frame it was scheduled for.
type Func func(now time.Time)

// Handle cancels a pending frame request. Cancel is idempotent and is a
// no-op once the callback has run.
type Handle interface {
	Cancel()
}

// Scheduler hands out frame callbacks.
type Scheduler interface {
	RequestFrame(fn Func) Handle
}

// IntervalForFPS converts a frame rate to a tick interval. Non-positive
// rates fall back to DefaultFPS.
func IntervalForFPS(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

type cancelFunc func()

func (c cancelFunc) Cancel() { c() }
