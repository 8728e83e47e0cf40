package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/dnd"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/logging"
	"github.com/andyrewlee/dragscroll/internal/messages"
)

func (a *App) handleMouseMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		return a.routeMouseClick(msg)
	case tea.MouseWheelMsg:
		return a.routeMouseWheel(msg)
	case tea.MouseMotionMsg:
		return a.routeMouseMotion(msg)
	case tea.MouseReleaseMsg:
		return a.routeMouseRelease(msg)
	default:
		return nil
	}
}

// routeMouseClick handles toolbar buttons and arms a drag when a card is
// pressed.
func (a *App) routeMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	if msg.Button != tea.MouseLeft {
		return nil
	}
	if a.helpOverlay.Visible() {
		a.helpOverlay.Hide()
		return nil
	}
	if button, ok := a.toolbarButtonAt(msg.X, msg.Y); ok {
		return a.runToolbarButton(button)
	}

	p := geom.Point{X: msg.X, Y: msg.Y}
	card, sel, ok := a.board.CardAt(p)
	if !ok {
		a.drag.Press(p, nil)
		return nil
	}
	a.board.Select(sel)
	a.drag.Press(p, &dnd.Item{ID: card.ID, Label: card.Title})
	return nil
}

// routeMouseMotion feeds motion to the drag manager. The manager previews
// it to the autoscroll coordinator and starts the armed drag once the
// pointer has moved far enough.
func (a *App) routeMouseMotion(msg tea.MouseMotionMsg) tea.Cmd {
	p := geom.Point{X: msg.X, Y: msg.Y}
	a.drag.Move(p, dragButton(msg.Button))
	a.board.UpdateDrag(p)
	return nil
}

// routeMouseRelease drops the dragged card and reports the move.
func (a *App) routeMouseRelease(msg tea.MouseReleaseMsg) tea.Cmd {
	before := a.board.LastMove()
	a.drag.Release(geom.Point{X: msg.X, Y: msg.Y})

	move := a.board.LastMove()
	if move == nil || move == before {
		return nil
	}
	a.status = describeMove(*move)
	logging.Info("Card moved: %s", a.status)
	moved := *move
	return func() tea.Msg { return moved }
}

func (a *App) routeMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	if a.drag.Dragging() {
		return nil
	}
	newBoard, cmd := a.board.Update(msg)
	a.board = newBoard
	return cmd
}

func dragButton(b tea.MouseButton) dnd.Button {
	switch b {
	case tea.MouseLeft:
		return dnd.ButtonLeft
	case tea.MouseMiddle:
		return dnd.ButtonMiddle
	case tea.MouseRight:
		return dnd.ButtonRight
	default:
		return dnd.ButtonNone
	}
}

func describeMove(m messages.CardMoved) string {
	if m.FromColumn == m.ToColumn {
		return fmt.Sprintf("Moved %s to position %d in %s", m.CardID, m.Index+1, m.ToColumn)
	}
	return fmt.Sprintf("Moved %s from %s to %s", m.CardID, m.FromColumn, m.ToColumn)
}
