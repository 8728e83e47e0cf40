package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpSection represents a group of keybindings
type HelpSection struct {
	Title    string
	Bindings []HelpBinding
}

// HelpBinding represents a single keybinding
type HelpBinding struct {
	Key  string
	Desc string
}

// HelpOverlay manages the help overlay display
type HelpOverlay struct {
	visible  bool
	width    int
	height   int
	styles   Styles
	sections []HelpSection
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(sections []HelpSection) *HelpOverlay {
	return &HelpOverlay{
		styles:   DefaultStyles(),
		sections: sections,
	}
}

// SetSections replaces the listed bindings, e.g. after a keymap reload.
func (h *HelpOverlay) SetSections(sections []HelpSection) {
	h.sections = sections
}

// Show shows the help overlay
func (h *HelpOverlay) Show() { h.visible = true }

// Hide hides the help overlay
func (h *HelpOverlay) Hide() { h.visible = false }

// Toggle toggles the help overlay visibility
func (h *HelpOverlay) Toggle() { h.visible = !h.visible }

// Visible returns whether the help overlay is visible
func (h *HelpOverlay) Visible() bool { return h.visible }

// SetSize sets the overlay size
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	keyWidth := 12
	var lines []string
	lines = append(lines, h.styles.Title.Render("Help"), "")
	for _, section := range h.sections {
		lines = append(lines, h.styles.Bold.Render(section.Title))
		for _, binding := range section.Bindings {
			key := h.styles.HelpKey.Width(keyWidth).Render(binding.Key)
			lines = append(lines, "  "+key+h.styles.Body.Render(binding.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, h.styles.Muted.Render("? or esc to close"))

	// Drop trailing sections that would not fit.
	if h.height > 4 && len(lines) > h.height-4 {
		lines = append(lines[:h.height-5], h.styles.Muted.Render("…"))
	}

	box := h.styles.HelpBox.Render(strings.Join(lines, "\n"))
	if h.width <= 0 || h.height <= 0 {
		return box
	}
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}
