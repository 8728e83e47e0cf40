// Package safego runs background work with panic recovery so that a bug in
// a helper goroutine is logged instead of tearing down the terminal.
package safego

import (
	"runtime/debug"
	"sync"

	"github.com/andyrewlee/dragscroll/internal/logging"
)

// PanicHandler receives details about a recovered panic.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a process-wide handler for recovered panics.
// Passing nil removes it.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// Run executes fn, logging and reporting any panic. Runtime-fatal errors
// such as concurrent map writes are not recoverable.
func Run(name string, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		label := name
		if label == "" {
			label = "goroutine"
		}
		stack := debug.Stack()
		logging.Error("panic in %s: %v\n%s", label, r, stack)

		panicHandlerMu.RLock()
		handler := panicHandler
		panicHandlerMu.RUnlock()
		if handler == nil {
			return
		}
		func() {
			defer func() { _ = recover() }()
			handler(label, r, stack)
		}()
	}()
	fn()
}

// Go runs fn on a new goroutine under Run.
func Go(name string, fn func()) {
	go Run(name, fn)
}

// GoDone is Go with a channel that closes once fn has returned or
// panicked.
func GoDone(name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(name, fn)
	}()
	return done
}
