package board

import (
	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/dnd"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
)

var _ autoscroll.Region = (*Model)(nil)
var _ dnd.DropTarget = (*Model)(nil)

// viewport is the on-screen area cards scroll through.
func (m *Model) viewport() geom.Rect {
	if m.height <= HeaderHeight || m.width <= 0 {
		return geom.RectFromSize(m.origin.X, m.origin.Y+HeaderHeight, 0, 0)
	}
	return geom.RectFromSize(m.origin.X, m.origin.Y+HeaderHeight, m.width, m.height-HeaderHeight)
}

// header is the on-screen column title strip.
func (m *Model) header() geom.Rect {
	return geom.RectFromSize(m.origin.X, m.origin.Y, m.width, min(HeaderHeight, m.height))
}

// ContentSize returns the full board extent in cells.
func (m *Model) ContentSize() (int, int) {
	if len(m.Columns) == 0 {
		return 0, 0
	}
	rows := 0
	for _, col := range m.Columns {
		rows = max(rows, len(col.Cards))
	}
	width := len(m.Columns)*columnSlot - ColumnGap
	height := 0
	if rows > 0 {
		height = rows*cardSlot - CardGap
	}
	return width, height
}

// Bounds returns the card viewport in screen cells.
func (m *Model) Bounds() geom.Rect {
	return m.viewport()
}

// ScrollOffset returns the offset along axis.
func (m *Model) ScrollOffset(axis autoscroll.Axis) int {
	if axis == autoscroll.Vertical {
		return m.offsetY
	}
	return m.offsetX
}

// SetScrollOffset sets the offset along axis, clamped to [0, max].
func (m *Model) SetScrollOffset(axis autoscroll.Axis, offset int) {
	offset = clamp(offset, 0, m.MaxScrollOffset(axis))
	if axis == autoscroll.Vertical {
		m.offsetY = offset
		return
	}
	m.offsetX = offset
}

// MaxScrollOffset returns the content extent minus the viewport extent.
func (m *Model) MaxScrollOffset(axis autoscroll.Axis) int {
	w, h := m.ContentSize()
	vp := m.viewport()
	if axis == autoscroll.Vertical {
		return max(0, h-vp.Height())
	}
	return max(0, w-vp.Width())
}

// Hit describes what lies under a screen point.
type Hit struct {
	Column int
	// Row is the card index. When Empty is set it equals the column length.
	Row int
	// After is set when the point is on the lower half of the card.
	After bool
	// Empty is set for space below the last card or on the column header.
	Empty  bool
	Header bool
}

// InsertIndex returns the index a dropped card takes in the hit column.
func (h Hit) InsertIndex() int {
	if h.After {
		return h.Row + 1
	}
	return h.Row
}

// HitTest maps a screen point to a column and card slot. Points in the gap
// between columns belong to the column on the left.
func (m *Model) HitTest(p geom.Point) (Hit, bool) {
	vp := m.viewport()
	hdr := m.header()
	onHeader := hdr.ContainsCell(p)
	if !onHeader && !vp.ContainsCell(p) {
		return Hit{}, false
	}

	cx := p.X - vp.Left + m.offsetX
	col := cx / columnSlot
	if cx < 0 || col >= len(m.Columns) {
		return Hit{}, false
	}
	if onHeader {
		return Hit{Column: col, Row: 0, Header: true, Empty: len(m.Columns[col].Cards) == 0}, true
	}

	cy := p.Y - vp.Top + m.offsetY
	row := cy / cardSlot
	cards := len(m.Columns[col].Cards)
	if row >= cards {
		return Hit{Column: col, Row: cards, Empty: true}, true
	}
	return Hit{Column: col, Row: row, After: cy%cardSlot >= CardHeight/2}, true
}

// CardAt returns the card under p.
func (m *Model) CardAt(p geom.Point) (*Card, Selection, bool) {
	hit, ok := m.HitTest(p)
	if !ok || hit.Empty || hit.Header {
		return nil, Selection{}, false
	}
	return &m.Columns[hit.Column].Cards[hit.Row], Selection{Column: hit.Column, Row: hit.Row}, true
}

// Locate returns the position of the card with id.
func (m *Model) Locate(id string) (Selection, bool) {
	c, r, ok := m.findCard(id)
	return Selection{Column: c, Row: r}, ok
}

// Reveal selects sel and scrolls it into view.
func (m *Model) Reveal(sel Selection) {
	m.Select(sel)
	m.ensureSelectionVisible()
}

// CardRect returns the on-screen rectangle of the card at sel under the
// current offsets. It may lie partly or wholly outside the viewport.
func (m *Model) CardRect(sel Selection) geom.Rect {
	vp := m.viewport()
	x := vp.Left + sel.Column*columnSlot - m.offsetX
	y := vp.Top + sel.Row*cardSlot - m.offsetY
	return geom.RectFromSize(x, y, ColumnWidth, CardHeight)
}

// BeginDrag marks id as the card being dragged.
func (m *Model) BeginDrag(id string, p geom.Point) {
	m.dragging = true
	m.dragID = id
	m.dragPos = p
}

// UpdateDrag records the pointer position of the running drag.
func (m *Model) UpdateDrag(p geom.Point) {
	if m.dragging {
		m.dragPos = p
	}
}

// EndDrag clears the drag highlight.
func (m *Model) EndDrag() {
	m.dragging = false
	m.dragID = ""
}

// Dragging reports whether a card is being dragged over the board.
func (m *Model) Dragging() bool { return m.dragging }

// dropTarget returns where the dragged card would land.
func (m *Model) dropTarget() (Hit, bool) {
	if !m.dragging {
		return Hit{}, false
	}
	return m.HitTest(m.dragPos)
}

func (m *Model) findCard(id string) (int, int, bool) {
	for c, col := range m.Columns {
		for r, card := range col.Cards {
			if card.ID == id {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// Drop moves item to the slot under p. It reports whether the card moved.
func (m *Model) Drop(item dnd.Item, p geom.Point) bool {
	m.EndDrag()

	fromCol, fromRow, ok := m.findCard(item.ID)
	if !ok {
		logging.Warn("drop of unknown card %s", item.ID)
		return false
	}
	hit, ok := m.HitTest(p)
	if !ok {
		return false
	}

	toCol := hit.Column
	index := hit.InsertIndex()
	if toCol == fromCol && fromRow < index {
		index--
	}
	if toCol == fromCol && index == fromRow {
		return false
	}

	card := m.Columns[fromCol].Cards[fromRow]
	src := m.Columns[fromCol].Cards
	m.Columns[fromCol].Cards = append(src[:fromRow:fromRow], src[fromRow+1:]...)

	dst := m.Columns[toCol].Cards
	index = clamp(index, 0, len(dst))
	dst = append(dst, Card{})
	copy(dst[index+1:], dst[index:])
	dst[index] = card
	m.Columns[toCol].Cards = dst

	m.Selection = Selection{Column: toCol, Row: index}
	m.clampOffsets()
	m.lastMove = &messages.CardMoved{
		CardID:     card.ID,
		FromColumn: m.Columns[fromCol].Title,
		ToColumn:   m.Columns[toCol].Title,
		Index:      index,
	}
	return true
}
