package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the application styles
type Styles struct {
	// Text hierarchy
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Board columns
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	ColumnCount        lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardDragging lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	DropMarker   lipgloss.Style

	// Toolbar
	Toolbar       lipgloss.Style
	ToolbarButton lipgloss.Style
	ToolbarActive lipgloss.Style

	// Status and diagnostics
	Status lipgloss.Style
	Debug  lipgloss.Style

	// Help bar
	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
	HelpBox       lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Toast notifications
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Body: lipgloss.NewStyle().
			Foreground(ColorForeground),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground),
		ColumnHeaderActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		ColumnCount: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Card: card,
		CardSelected: card.
			BorderForeground(ColorBorderFocused),
		CardDragging: card.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorWarning).
			Foreground(ColorMuted),
		CardTitle: lipgloss.NewStyle().
			Foreground(ColorForeground),
		CardMeta: lipgloss.NewStyle().
			Foreground(ColorMuted),
		DropMarker: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),

		Toolbar: lipgloss.NewStyle().
			Background(ColorSurface1),
		ToolbarButton: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorForeground).
			Background(ColorSurface3),
		ToolbarActive: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(ColorBackground).
			Background(ColorPrimary),

		Status: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Debug: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorInfo).
			Foreground(ColorInfo).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),
		HelpKey: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(ColorMuted),
		HelpSeparator: lipgloss.NewStyle().
			Foreground(ColorBorder),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderFocused).
			Padding(1, 2),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorInfo),

		ToastSuccess: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorSuccess).
			Foreground(ColorBackground),
		ToastError: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorError).
			Foreground(ColorBackground),
		ToastWarning: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorWarning).
			Foreground(ColorBackground),
		ToastInfo: lipgloss.NewStyle().
			Padding(0, 1).
			Background(ColorInfo).
			Foreground(ColorBackground),
	}
}

// RenderHelpBar renders a help bar with the given key-description pairs
func RenderHelpBar(s Styles, items []HelpBinding, width int) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		key := s.HelpKey.Render(item.Key)
		desc := s.HelpDesc.Render(item.Desc)
		parts = append(parts, key+":"+desc)
	}

	joined := strings.Join(parts, s.HelpSeparator.Render(" • "))
	return s.Help.Width(width).MaxHeight(1).Render(joined)
}
