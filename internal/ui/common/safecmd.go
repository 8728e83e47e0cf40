package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
)

// recoverAs turns a panic in a command of the given kind into an Error
// message stored in *msg. A panicking frame callback would otherwise take
// the terminal down mid-drag.
func recoverAs(kind string, msg *tea.Msg) {
	r := recover()
	if r == nil {
		return
	}
	logging.Error("panic in %s: %v\n%s", kind, r, debug.Stack())
	*msg = messages.Error{Err: fmt.Errorf("%s panic: %v", kind, r), Context: kind, Logged: true}
}

// SafeCmd runs cmd with panic recovery. A nil cmd stays nil.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer recoverAs("command", &msg)
		return cmd()
	}
}

// SafeBatch drops nil commands and batches the rest under SafeCmd. It
// returns nil when nothing is left, so Update can always return it.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	var safe []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			safe = append(safe, SafeCmd(cmd))
		}
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick schedules fn after d. Frame ticks and toast timeouts go through
// it; a panic in fn becomes an Error message.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer recoverAs("tick", &msg)
		return fn(t)
	})
}
