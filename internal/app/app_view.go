package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/perf"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

var (
	colorBackground = lipgloss.Color("#1a1b26")
	colorForeground = lipgloss.Color("#a9b1d6")

	debugStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bb9af7")).
			Foreground(lipgloss.Color("#a9b1d6")).
			Padding(0, 1)
	debugTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7"))
)

// View renders the toolbar, the board, the footer and any overlays.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: colorBackground,
		ForegroundColor: colorForeground,
	}
	switch {
	case a.quitting:
		view.SetContent("Goodbye!\n")
	case !a.ready:
		view.SetContent("Loading...")
	default:
		view.SetContent(a.zone.Scan(a.render()))
	}
	return a.finalizeView(view)
}

func (a *App) render() string {
	if a.helpOverlay.Visible() {
		return clampLines(a.helpOverlay.View(), a.width, a.height)
	}

	parts := []string{a.renderToolbar()}
	if _, h := a.board.Size(); h > 0 {
		parts = append(parts, a.board.View())
	}
	parts = append(parts, a.renderStatus())
	if a.showHints {
		parts = append(parts, common.RenderHelpBar(a.styles, hintBindings(a.keymap), a.width))
	}
	base := lipgloss.JoinVertical(lipgloss.Left, parts...)

	if a.showDebug {
		panel := a.renderDebug()
		x := a.width - lipgloss.Width(panel) - 1
		base = overlayAt(base, panel, max(0, x), toolbarHeight)
	}
	if a.toast.Visible() {
		toast := a.toast.View()
		x := (a.width - lipgloss.Width(toast)) / 2
		y := a.height - a.footerHeight() - 1
		base = overlayAt(base, toast, max(0, x), max(0, y))
	}
	return clampLines(base, a.width, a.height)
}

func (a *App) renderToolbar() string {
	parts := []string{a.styles.Title.Render("dragscroll")}
	for _, b := range toolbarButtons {
		style := a.styles.ToolbarButton
		if b == buttonDebug && a.showDebug {
			style = a.styles.ToolbarActive
		}
		parts = append(parts, a.zone.Mark(a.zoneID(b), style.Render("["+b.label()+"]")))
	}
	return a.styles.Toolbar.Width(a.width).MaxHeight(toolbarHeight).Render(strings.Join(parts, " "))
}

func (a *App) renderStatus() string {
	left := a.status
	if left == "" {
		left = "Drag a card toward an edge to scroll the board"
	}
	if a.drag.Dragging() {
		if item, ok := a.drag.Item(); ok {
			left = "Dragging " + item.ID
		}
	}

	b := a.board
	right := fmt.Sprintf("x %d/%d  y %d/%d",
		b.ScrollOffset(autoscroll.Horizontal), b.MaxScrollOffset(autoscroll.Horizontal),
		b.ScrollOffset(autoscroll.Vertical), b.MaxScrollOffset(autoscroll.Vertical))

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	line := left
	if gap > 0 {
		line = left + strings.Repeat(" ", gap) + right
	}
	return a.styles.Status.Width(a.width).MaxHeight(statusHeight).Render(line)
}

// renderDebug shows the coordinator snapshot.
func (a *App) renderDebug() string {
	snap := a.scroll.Snapshot()
	lines := []string{debugTitleStyle.Render("autoscroll " + snap.Phase.String())}
	if snap.Phase == autoscroll.PhaseTracking && !snap.HasRegion {
		lines = append(lines, "waiting for region")
	}
	lines = append(lines,
		axisLine("h", snap.Horizontal),
		axisLine("v", snap.Vertical),
	)
	if p, ok := a.scheduler.(interface{ Pending() int }); ok {
		lines = append(lines, fmt.Sprintf("frames pending %d", p.Pending()))
	}
	cfg := a.scroll.Config()
	lines = append(lines, fmt.Sprintf("zone %d  speed %.0f/s  rebound %.1f/s", cfg.TriggerZone, cfg.MaxSpeed, cfg.ReboundRate))
	return debugStyle.Render(strings.Join(lines, "\n"))
}

func axisLine(name string, st *autoscroll.State) string {
	if st == nil {
		return name + " idle"
	}
	line := fmt.Sprintf("%s %+6.1f/s  dz %d..%d  final %d..%d",
		name, st.Speed, st.Start, st.End, st.FinalStart, st.FinalEnd)
	if st.Rebounding {
		line += "  rebound"
	}
	return line
}

func (a *App) finalizeView(view tea.View) tea.View {
	if a.pendingInputLatency {
		perf.Record("input_latency", time.Since(a.lastInputAt))
		a.pendingInputLatency = false
	}
	return view
}
