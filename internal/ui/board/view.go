package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

// View renders the visible part of the board: the header strip and the
// card viewport, each cropped to the current offsets.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := m.headerLines()
	vp := m.viewport()
	if !vp.Empty() {
		lines = append(lines, m.cardLines(vp.Width(), vp.Height())...)
	}
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

// visibleColumns returns the column range intersecting the viewport.
func (m *Model) visibleColumns(width int) (int, int) {
	first := m.offsetX / columnSlot
	last := (m.offsetX + width - 1) / columnSlot
	return first, min(last, len(m.Columns)-1)
}

func (m *Model) headerLines() []string {
	width := m.width
	first, last := m.visibleColumns(width)
	target, dropping := m.dropTarget()

	titles := make([]string, 0, last-first+1)
	rules := make([]string, 0, last-first+1)
	for c := first; c <= last; c++ {
		col := m.Columns[c]
		style := m.styles.ColumnHeader
		if c == m.Selection.Column && m.focused {
			style = m.styles.ColumnHeaderActive
		}
		count := m.styles.ColumnCount.Render(" " + itoa(len(col.Cards)))
		title := runewidth.Truncate(col.Title, ColumnWidth-2-lipgloss.Width(count), "…")
		titles = append(titles, padRight(columnDot(col.Title)+" "+style.Render(title)+count, ColumnWidth))

		rule := m.styles.Muted.Render(strings.Repeat("─", ColumnWidth))
		if dropping && target.Column == c && target.InsertIndex() == 0 {
			rule = m.styles.DropMarker.Render(strings.Repeat("━", ColumnWidth))
		}
		rules = append(rules, rule)
	}

	gap := strings.Repeat(" ", ColumnGap)
	out := []string{
		strings.Join(titles, gap),
		strings.Join(rules, gap),
	}
	return m.cropLines(out, first, width)[:min(HeaderHeight, m.height)]
}

// cardLines renders rows [offsetY, offsetY+height) of the visible columns.
func (m *Model) cardLines(width, height int) []string {
	first, last := m.visibleColumns(width)
	gap := strings.Repeat(" ", ColumnGap)

	rows := make([][]string, height)
	for c := first; c <= last; c++ {
		colLines := m.columnWindow(c, m.offsetY, height)
		for i := range rows {
			if c > first {
				rows[i] = append(rows[i], gap)
			}
			rows[i] = append(rows[i], colLines[i])
		}
	}

	out := make([]string, height)
	for i, parts := range rows {
		out[i] = strings.Join(parts, "")
	}
	return m.cropLines(out, first, width)
}

// cropLines cuts lines that start at column first down to the viewport.
func (m *Model) cropLines(lines []string, first, width int) []string {
	start := m.offsetX - first*columnSlot
	for i, line := range lines {
		lines[i] = padRight(ansi.Cut(line, start, start+width), width)
	}
	return lines
}

// columnWindow returns height lines of column c starting at content row top.
func (m *Model) columnWindow(c, top, height int) []string {
	blank := strings.Repeat(" ", ColumnWidth)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}

	col := m.Columns[c]
	target, dropping := m.dropTarget()
	firstCard := top / cardSlot
	for r := firstCard; r < len(col.Cards) && r*cardSlot < top+height; r++ {
		card := m.renderCard(c, r, col.Cards[r])
		for j, line := range card {
			y := r*cardSlot + j - top
			if y >= 0 && y < height {
				lines[y] = line
			}
		}
	}

	if dropping && target.Column == c {
		// The marker sits in the gap above the insertion slot.
		y := target.InsertIndex()*cardSlot - CardGap - top
		if y >= 0 && y < height {
			lines[y] = m.styles.DropMarker.Render(strings.Repeat("━", ColumnWidth))
		}
	}
	return lines
}

func (m *Model) renderCard(colIdx, rowIdx int, card Card) []string {
	inner := ColumnWidth - 4
	title := runewidth.Truncate(card.Title, inner, "…")

	var meta []string
	for _, label := range card.Labels {
		if label == "" {
			continue
		}
		meta = append(meta, lipgloss.NewStyle().Foreground(common.LabelColor(label)).Render(label))
	}
	if card.Assignee != "" {
		meta = append(meta, m.styles.CardMeta.Render("@"+initials(card.Assignee)))
	}
	line2 := strings.Join(meta, " ")
	if lipgloss.Width(line2) > inner {
		line2 = ansi.Truncate(line2, inner, "…")
	}

	style := m.styles.Card
	switch {
	case m.dragging && card.ID == m.dragID:
		style = m.styles.CardDragging
	case m.Selection.Column == colIdx && m.Selection.Row == rowIdx:
		style = m.styles.CardSelected
	}
	content := m.styles.CardTitle.Render(padRight(title, inner)) + "\n" + padRight(line2, inner)
	rendered := style.Width(ColumnWidth - 2).Height(CardHeight - 2).Render(content)

	lines := strings.Split(rendered, "\n")
	for i := range lines {
		lines[i] = padRight(lines[i], ColumnWidth)
	}
	return lines
}

func padRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}

func initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	var out strings.Builder
	for _, part := range parts {
		r := []rune(part)
		out.WriteRune(r[0])
	}
	return out.String()
}

func columnDot(name string) string {
	color := common.ColorMuted
	switch strings.ToLower(name) {
	case "in progress", "doing", "started":
		color = common.ColorPrimary
	case "in review", "review":
		color = common.ColorWarning
	case "done", "completed":
		color = common.ColorSuccess
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}
