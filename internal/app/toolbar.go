package app

import (
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

type toolbarButton string

const (
	buttonReset toolbarButton = "reset"
	buttonDebug toolbarButton = "debug"
	buttonHelp  toolbarButton = "help"
	buttonQuit  toolbarButton = "quit"
)

var toolbarButtons = []toolbarButton{buttonReset, buttonDebug, buttonHelp, buttonQuit}

func (b toolbarButton) label() string {
	switch b {
	case buttonReset:
		return "Reset"
	case buttonDebug:
		return "Debug"
	case buttonHelp:
		return "Help"
	case buttonQuit:
		return "Quit"
	default:
		return string(b)
	}
}

func (a *App) zoneID(b toolbarButton) string {
	return a.zonePrefix + "toolbar-" + string(b)
}

// toolbarButtonAt returns the toolbar button under x, y from the zones
// recorded by the last rendered frame.
func (a *App) toolbarButtonAt(x, y int) (toolbarButton, bool) {
	if y >= toolbarHeight {
		return "", false
	}
	for _, b := range toolbarButtons {
		z := a.zone.Get(a.zoneID(b))
		if z == nil || z.IsZero() {
			continue
		}
		if zoneRegion(string(b), z).Contains(x, y) {
			return b, true
		}
	}
	return "", false
}

// zoneRegion converts a zone's inclusive end corner into a hit region.
func zoneRegion(id string, z *zone.ZoneInfo) common.HitRegion {
	return common.HitRegion{
		ID:     id,
		X:      z.StartX,
		Y:      z.StartY,
		Width:  z.EndX - z.StartX + 1,
		Height: z.EndY - z.StartY + 1,
	}
}

func (a *App) runToolbarButton(b toolbarButton) tea.Cmd {
	switch b {
	case buttonReset:
		a.resetBoard()
		return a.toast.ShowInfo("Board reset")
	case buttonDebug:
		a.showDebug = !a.showDebug
	case buttonHelp:
		a.helpOverlay.Toggle()
	case buttonQuit:
		return a.quit()
	}
	return nil
}
