// Package messages holds the Bubble Tea messages shared between the board,
// the app model and background helpers.
package messages

import "github.com/andyrewlee/dragscroll/internal/config"

// CardMoved is sent after a drop moved a card.
type CardMoved struct {
	CardID     string
	FromColumn string
	ToColumn   string
	Index      int
}

// CopyCard asks the app to copy a card title to the clipboard.
type CopyCard struct {
	CardID string
	Title  string
}

// ResetBoard restores the sample board and scroll offsets.
type ResetBoard struct{}

// ToggleDebug flips the autoscroll debug overlay.
type ToggleDebug struct{}

// ConfigReloaded carries a configuration re-read after the file changed.
type ConfigReloaded struct {
	Config *config.Config
	Err    error
}

// ToastLevel represents the severity of a toast notification
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast is a short status-line notification.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error is a UI-visible error. Logged marks errors already written to the
// log so the app does not log them twice.
type Error struct {
	Err     error
	Context string
	Logged  bool
}

func (e Error) Error() string {
	if e.Err == nil {
		return e.Context
	}
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}
