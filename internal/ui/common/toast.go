package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/andyrewlee/dragscroll/internal/messages"
)

// Toast represents a notification message
type Toast struct {
	Message  string
	Level    messages.ToastLevel
	Duration time.Duration
}

// ToastModel manages toast notifications
type ToastModel struct {
	current   *Toast
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel() *ToastModel {
	return &ToastModel{
		styles: DefaultStyles(),
		now:    time.Now,
	}
}

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

// Show displays a toast notification
func (m *ToastModel) Show(message string, level messages.ToastLevel, duration time.Duration) tea.Cmd {
	m.current = &Toast{
		Message:  message,
		Level:    level,
		Duration: duration,
	}
	m.showUntil = m.now().Add(duration)

	return SafeTick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// ShowMsg shows a toast for a messages.Toast with the level's default
// duration.
func (m *ToastModel) ShowMsg(msg messages.Toast) tea.Cmd {
	switch msg.Level {
	case messages.ToastError:
		return m.Show(msg.Message, msg.Level, 5*time.Second)
	case messages.ToastWarning:
		return m.Show(msg.Message, msg.Level, 4*time.Second)
	default:
		return m.Show(msg.Message, msg.Level, 3*time.Second)
	}
}

// ShowSuccess shows a success toast
func (m *ToastModel) ShowSuccess(message string) tea.Cmd {
	return m.ShowMsg(messages.Toast{Message: message, Level: messages.ToastSuccess})
}

// ShowError shows an error toast
func (m *ToastModel) ShowError(message string) tea.Cmd {
	return m.ShowMsg(messages.Toast{Message: message, Level: messages.ToastError})
}

// ShowInfo shows an info toast
func (m *ToastModel) ShowInfo(message string) tea.Cmd {
	return m.ShowMsg(messages.Toast{Message: message, Level: messages.ToastInfo})
}

// Update handles messages
func (m *ToastModel) Update(msg tea.Msg) (*ToastModel, tea.Cmd) {
	if _, ok := msg.(ToastDismissed); ok {
		if !m.now().Before(m.showUntil) {
			m.current = nil
		}
	}
	return m, nil
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}

	var style lipgloss.Style
	var icon string

	switch m.current.Level {
	case messages.ToastSuccess:
		style = m.styles.ToastSuccess
		icon = "✓ "
	case messages.ToastError:
		style = m.styles.ToastError
		icon = "✗ "
	case messages.ToastWarning:
		style = m.styles.ToastWarning
		icon = "! "
	default:
		style = m.styles.ToastInfo
		icon = "i "
	}

	return style.Render(icon + m.current.Message)
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.current != nil && m.now().Before(m.showUntil)
}

// Message returns the text of the visible toast.
func (m *ToastModel) Message() string {
	if !m.Visible() {
		return ""
	}
	return m.current.Message
}

// Dismiss immediately hides the toast
func (m *ToastModel) Dismiss() {
	m.current = nil
}
