package board

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/config"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/keymap"
	"github.com/andyrewlee/dragscroll/internal/messages"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

// Layout in cells. A column slot is the column plus the gap to its right;
// a card slot is the card plus the gap below it.
const (
	ColumnWidth  = 26
	ColumnGap    = 2
	CardHeight   = 4
	CardGap      = 1
	HeaderHeight = 2

	columnSlot = ColumnWidth + ColumnGap
	cardSlot   = CardHeight + CardGap
)

// Selection tracks selected column/row.
type Selection struct {
	Column int
	Row    int
}

// Column represents a Kanban column.
type Column struct {
	Title string
	Cards []Card
}

// Card represents a card on the board.
type Card struct {
	ID       string
	Title    string
	Labels   []string
	Assignee string
}

// Model is the Bubbletea model for the board. It is the scrollable region
// the autoscroll engine drives: one horizontal and one vertical offset in
// cells shared by all columns.
type Model struct {
	Columns   []Column
	Selection Selection

	focused bool
	origin  geom.Point
	width   int
	height  int

	offsetX int
	offsetY int

	dragging bool
	dragID   string
	dragPos  geom.Point

	lastMove *messages.CardMoved

	styles common.Styles
	keymap keymap.KeyMap
}

// New creates a new board model.
func New(columns []Column) *Model {
	m := &Model{
		styles: common.DefaultStyles(),
		keymap: keymap.New(config.KeyMapConfig{}),
	}
	m.SetColumns(columns)
	return m
}

// Init initializes the board.
func (m *Model) Init() tea.Cmd { return nil }

// Focus sets focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns focus state.
func (m *Model) Focused() bool { return m.focused }

// SetKeyMap replaces the key bindings.
func (m *Model) SetKeyMap(km keymap.KeyMap) { m.keymap = km }

// SetStyles sets the styles for the board.
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetBounds places the board on screen. The header takes the first
// HeaderHeight rows; cards scroll in the rest.
func (m *Model) SetBounds(x, y, width, height int) {
	m.origin = geom.Point{X: x, Y: y}
	m.width = max(0, width)
	m.height = max(0, height)
	m.clampOffsets()
}

// Size returns the board size.
func (m *Model) Size() (int, int) { return m.width, m.height }

// SetColumns replaces board columns.
func (m *Model) SetColumns(cols []Column) {
	m.Columns = cols
	m.clampSelection()
	m.clampOffsets()
}

// Reset replaces the columns and scrolls back to the origin.
func (m *Model) Reset(cols []Column) {
	m.EndDrag()
	m.lastMove = nil
	m.Selection = Selection{}
	m.offsetX = 0
	m.offsetY = 0
	m.SetColumns(cols)
}

// SelectedCard returns the selected card.
func (m *Model) SelectedCard() *Card {
	if m.Selection.Column < 0 || m.Selection.Column >= len(m.Columns) {
		return nil
	}
	col := m.Columns[m.Selection.Column]
	if m.Selection.Row < 0 || m.Selection.Row >= len(col.Cards) {
		return nil
	}
	return &col.Cards[m.Selection.Row]
}

// Select moves the selection to a card.
func (m *Model) Select(sel Selection) {
	m.Selection = sel
	m.clampSelection()
}

// LastMove returns the most recent successful drop, if any.
func (m *Model) LastMove() *messages.CardMoved { return m.lastMove }

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	step := common.ScrollDeltaForHeight(m.viewport().Height(), 3)
	switch {
	case key.Matches(msg, m.keymap.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keymap.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keymap.Left):
		m.moveColumn(-1)
	case key.Matches(msg, m.keymap.Right):
		m.moveColumn(1)
	case key.Matches(msg, m.keymap.ScrollDown):
		m.scroll(autoscroll.Vertical, step)
	case key.Matches(msg, m.keymap.ScrollUp):
		m.scroll(autoscroll.Vertical, -step)
	case key.Matches(msg, m.keymap.ScrollRight):
		m.scroll(autoscroll.Horizontal, columnSlot/2)
	case key.Matches(msg, m.keymap.ScrollLeft):
		m.scroll(autoscroll.Horizontal, -columnSlot/2)
	case key.Matches(msg, m.keymap.Copy):
		if card := m.SelectedCard(); card != nil {
			id, title := card.ID, card.Title
			return m, func() tea.Msg { return messages.CopyCard{CardID: id, Title: title} }
		}
	}
	return m, nil
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) (*Model, tea.Cmd) {
	horizontal := msg.Mod&tea.ModShift != 0
	switch msg.Button {
	case tea.MouseWheelUp:
		if horizontal {
			m.scroll(autoscroll.Horizontal, -3)
		} else {
			m.scroll(autoscroll.Vertical, -3)
		}
	case tea.MouseWheelDown:
		if horizontal {
			m.scroll(autoscroll.Horizontal, 3)
		} else {
			m.scroll(autoscroll.Vertical, 3)
		}
	case tea.MouseWheelLeft:
		m.scroll(autoscroll.Horizontal, -3)
	case tea.MouseWheelRight:
		m.scroll(autoscroll.Horizontal, 3)
	}
	return m, nil
}

func (m *Model) scroll(axis autoscroll.Axis, delta int) {
	m.SetScrollOffset(axis, m.ScrollOffset(axis)+delta)
}

func (m *Model) moveRow(delta int) {
	if len(m.Columns) == 0 {
		return
	}
	col := m.Selection.Column
	if col < 0 || col >= len(m.Columns) {
		return
	}
	rows := len(m.Columns[col].Cards)
	if rows == 0 {
		m.Selection.Row = 0
		return
	}
	m.Selection.Row = clamp(m.Selection.Row+delta, 0, rows-1)
	m.ensureSelectionVisible()
}

func (m *Model) moveColumn(delta int) {
	if len(m.Columns) == 0 {
		return
	}
	m.Selection.Column = clamp(m.Selection.Column+delta, 0, len(m.Columns)-1)
	col := m.Columns[m.Selection.Column]
	if m.Selection.Row >= len(col.Cards) {
		m.Selection.Row = max(0, len(col.Cards)-1)
	}
	m.ensureSelectionVisible()
}

// ensureSelectionVisible scrolls the least amount needed to show the
// selected card.
func (m *Model) ensureSelectionVisible() {
	vp := m.viewport()
	if vp.Empty() {
		return
	}
	left := m.Selection.Column * columnSlot
	right := left + ColumnWidth
	if left < m.offsetX {
		m.offsetX = left
	} else if right > m.offsetX+vp.Width() {
		m.offsetX = right - vp.Width()
	}

	top := m.Selection.Row * cardSlot
	bottom := top + CardHeight
	if top < m.offsetY {
		m.offsetY = top
	} else if bottom > m.offsetY+vp.Height() {
		m.offsetY = bottom - vp.Height()
	}
	m.clampOffsets()
}

func (m *Model) clampSelection() {
	if len(m.Columns) == 0 {
		m.Selection = Selection{}
		return
	}
	m.Selection.Column = clamp(m.Selection.Column, 0, len(m.Columns)-1)
	rows := len(m.Columns[m.Selection.Column].Cards)
	if rows == 0 {
		m.Selection.Row = 0
		return
	}
	m.Selection.Row = clamp(m.Selection.Row, 0, rows-1)
}

func (m *Model) clampOffsets() {
	m.offsetX = clamp(m.offsetX, 0, m.MaxScrollOffset(autoscroll.Horizontal))
	m.offsetY = clamp(m.offsetY, 0, m.MaxScrollOffset(autoscroll.Vertical))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func clamp(val, minVal, maxVal int) int {
	if maxVal < minVal {
		maxVal = minVal
	}
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
