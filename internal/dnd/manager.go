// Package dnd is the drag-and-drop layer of the board. It turns raw mouse
// presses, motions and releases into drag lifecycle notifications and
// previews every pointer event to interested listeners while a drag runs.
package dnd

import (
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/logging"
)

// DefaultThreshold is how far, in cells, the pointer must travel with the
// button held before a press turns into a drag.
const DefaultThreshold = 1

// Button identifies the mouse button held during a pointer event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerRelease
)

// PointerEvent is a normalized pointer sample.
type PointerEvent struct {
	Kind   PointerKind
	Pos    geom.Point
	Button Button
}

// Item is the payload being dragged.
type Item struct {
	ID    string
	Label string
}

// DragHandler is notified when drags start and end.
type DragHandler interface {
	DragStarted(item Item, p geom.Point)
	DragEnded()
}

// PointerHandler receives previewed pointer events.
type PointerHandler func(ev PointerEvent)

// DropTarget accepts dropped items. Drop reports whether the item moved.
type DropTarget interface {
	Drop(item Item, p geom.Point) bool
}

// Registration removes a handler. Remove is idempotent.
type Registration interface {
	Remove()
}

type dragEntry struct {
	handler DragHandler
	removed bool
}

type pointerEntry struct {
	handler PointerHandler
	removed bool
}

type registration struct {
	remove func()
	done   bool
}

func (r *registration) Remove() {
	if r.done {
		return
	}
	r.done = true
	r.remove()
}

// Manager owns the drag lifecycle. It is not safe for concurrent use.
type Manager struct {
	threshold int

	dragHandlers    []*dragEntry
	pointerHandlers []*pointerEntry
	target          DropTarget

	armed   bool
	active  bool
	item    Item
	origin  geom.Point
	current geom.Point
}

// NewManager creates a manager using DefaultThreshold.
func NewManager() *Manager {
	return &Manager{threshold: DefaultThreshold}
}

// SetThreshold changes the drag threshold. Values below one mean the first
// motion starts the drag.
func (m *Manager) SetThreshold(cells int) {
	if cells < 1 {
		cells = 1
	}
	m.threshold = cells
}

// SetDropTarget sets where released items land.
func (m *Manager) SetDropTarget(t DropTarget) {
	m.target = t
}

// AddHandler registers h for drag start/end notifications.
func (m *Manager) AddHandler(h DragHandler) Registration {
	entry := &dragEntry{handler: h}
	m.dragHandlers = append(m.dragHandlers, entry)
	return &registration{remove: func() {
		entry.removed = true
		m.dragHandlers = removeEntry(m.dragHandlers, entry)
	}}
}

// AddPointerHandler registers h for pointer previews.
func (m *Manager) AddPointerHandler(h PointerHandler) Registration {
	entry := &pointerEntry{handler: h}
	m.pointerHandlers = append(m.pointerHandlers, entry)
	return &registration{remove: func() {
		entry.removed = true
		m.pointerHandlers = removeEntry(m.pointerHandlers, entry)
	}}
}

// Dragging reports whether a drag is in progress.
func (m *Manager) Dragging() bool { return m.active }

// Armed reports whether a press is waiting to become a drag.
func (m *Manager) Armed() bool { return m.armed }

// Item returns the dragged item, if any.
func (m *Manager) Item() (Item, bool) {
	if !m.active {
		return Item{}, false
	}
	return m.item, true
}

// Position returns the last pointer position seen during a drag.
func (m *Manager) Position() geom.Point { return m.current }

// Press records a button press. When item is non-nil the press may become
// a drag once the pointer moves far enough.
func (m *Manager) Press(p geom.Point, item *Item) {
	if m.active {
		m.EndDrag()
	}
	m.armed = item != nil
	if item != nil {
		m.item = *item
	}
	m.origin = p
	m.current = p
}

// Move previews a motion event and starts the armed drag when the pointer
// has travelled at least the threshold.
func (m *Manager) Move(p geom.Point, button Button) {
	m.current = p
	m.preview(PointerEvent{Kind: PointerMove, Pos: p, Button: button})

	if !m.armed || m.active || button != ButtonLeft {
		return
	}
	if distance(m.origin, p) < m.threshold {
		return
	}
	m.StartDrag(m.item, p)
}

// Release previews the release, drops the dragged item on the target and
// ends the drag.
func (m *Manager) Release(p geom.Point) {
	m.current = p
	m.preview(PointerEvent{Kind: PointerRelease, Pos: p, Button: ButtonLeft})
	m.armed = false
	if !m.active {
		return
	}
	if m.target != nil {
		if m.target.Drop(m.item, p) {
			logging.Info("Dropped %s at %d,%d", m.item.ID, p.X, p.Y)
		}
	}
	m.EndDrag()
}

// StartDrag begins a drag of item at p and notifies handlers.
func (m *Manager) StartDrag(item Item, p geom.Point) {
	m.armed = false
	m.active = true
	m.item = item
	m.current = p
	logging.Debug("Drag started: %s at %d,%d", item.ID, p.X, p.Y)
	for _, entry := range snapshot(m.dragHandlers) {
		if !entry.removed {
			entry.handler.DragStarted(item, p)
		}
	}
}

// EndDrag finishes the current drag without dropping and notifies
// handlers. It does nothing when no drag is active.
func (m *Manager) EndDrag() {
	m.armed = false
	if !m.active {
		return
	}
	m.active = false
	logging.Debug("Drag ended: %s", m.item.ID)
	m.item = Item{}
	for _, entry := range snapshot(m.dragHandlers) {
		if !entry.removed {
			entry.handler.DragEnded()
		}
	}
}

// Interrupt cancels the current drag; the item stays where it was.
func (m *Manager) Interrupt() {
	if m.active {
		logging.Info("Drag interrupted: %s", m.item.ID)
	}
	m.EndDrag()
}

func (m *Manager) preview(ev PointerEvent) {
	for _, entry := range snapshot(m.pointerHandlers) {
		if !entry.removed {
			entry.handler(ev)
		}
	}
}

func distance(a, b geom.Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

func snapshot[T any](entries []*T) []*T {
	out := make([]*T, len(entries))
	copy(out, entries)
	return out
}

func removeEntry[T any](entries []*T, target *T) []*T {
	for i, entry := range entries {
		if entry == target {
			return append(entries[:i:i], entries[i+1:]...)
		}
	}
	return entries
}
