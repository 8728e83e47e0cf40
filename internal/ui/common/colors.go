package common

import "github.com/charmbracelet/lipgloss"

// Tokyo Night-inspired color palette
var (
	// Base palette
	ColorBackground    = lipgloss.Color("#1a1b26")
	ColorForeground    = lipgloss.Color("#a9b1d6")
	ColorMuted         = lipgloss.Color("#565f89")
	ColorBorder        = lipgloss.Color("#292e42")
	ColorBorderFocused = lipgloss.Color("#7aa2f7")

	// Semantic colors
	ColorPrimary   = lipgloss.Color("#7aa2f7") // focus, selection
	ColorSecondary = lipgloss.Color("#bb9af7") // drop targets
	ColorSuccess   = lipgloss.Color("#9ece6a")
	ColorWarning   = lipgloss.Color("#e0af68") // the card being dragged
	ColorError     = lipgloss.Color("#f7768e")
	ColorInfo      = lipgloss.Color("#7dcfff")

	// Surface colors for layering
	ColorSurface0 = lipgloss.Color("#1a1b26")
	ColorSurface1 = lipgloss.Color("#1f2335")
	ColorSurface2 = lipgloss.Color("#24283b")
	ColorSurface3 = lipgloss.Color("#292e42")

	ColorSelection = lipgloss.Color("#33467c")
)

var labelColors = []lipgloss.Color{
	lipgloss.Color("#e9967a"),
	lipgloss.Color("#98c379"),
	lipgloss.Color("#61afef"),
	lipgloss.Color("#c678dd"),
	lipgloss.Color("#56b6c2"),
	lipgloss.Color("#e5c07b"),
}

// LabelColor returns a stable color for a card label.
func LabelColor(label string) lipgloss.Color {
	switch label {
	case "bug":
		return ColorError
	case "feature":
		return ColorSuccess
	case "chore":
		return ColorMuted
	}
	var h uint32
	for i := 0; i < len(label); i++ {
		h = h*31 + uint32(label[i])
	}
	return labelColors[h%uint32(len(labelColors))]
}
