package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
)

// ReportError logs err once and returns a command that surfaces it in the
// status toast. toast replaces the error text when set, e.g. "Copy failed"
// for a clipboard error.
func ReportError(context string, err error, toast string) tea.Cmd {
	if err == nil {
		return nil
	}
	logging.Error("%s: %v", context, err)
	reported := messages.Error{Err: err, Context: context, Logged: true}
	if toast == "" {
		return func() tea.Msg { return reported }
	}
	return SafeBatch(
		func() tea.Msg { return reported },
		func() tea.Msg { return messages.Toast{Message: toast, Level: messages.ToastError} },
	)
}
