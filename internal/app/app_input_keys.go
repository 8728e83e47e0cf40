package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/keymap"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

// handleKeyPress runs global bindings and forwards the rest to the board.
func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if a.helpOverlay.Visible() {
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a.quit()
		case key.Matches(msg, a.keymap.Help), key.Matches(msg, a.keymap.Hints), key.Matches(msg, a.keymap.CancelDrag):
			a.helpOverlay.Hide()
		}
		return nil
	}

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a.quit()
	case key.Matches(msg, a.keymap.CancelDrag):
		if a.drag.Dragging() {
			a.drag.Interrupt()
			a.status = "Drag cancelled"
		}
		return nil
	case key.Matches(msg, a.keymap.Help):
		a.helpOverlay.Toggle()
		return nil
	case key.Matches(msg, a.keymap.Hints):
		return a.toggleHints()
	case key.Matches(msg, a.keymap.Debug):
		a.showDebug = !a.showDebug
		return nil
	case key.Matches(msg, a.keymap.Reset):
		a.resetBoard()
		return a.toast.ShowInfo("Board reset")
	}

	newBoard, cmd := a.board.Update(msg)
	a.board = newBoard
	return cmd
}

func (a *App) quit() tea.Cmd {
	a.drag.Interrupt()
	a.quitting = true
	return tea.Quit
}

// helpSections groups the bindings for the help overlay.
func helpSections(km keymap.KeyMap) []common.HelpSection {
	var sections []common.HelpSection
	index := map[string]int{}
	for _, info := range keymap.ActionInfos() {
		i, ok := index[info.Group]
		if !ok {
			i = len(sections)
			index[info.Group] = i
			sections = append(sections, common.HelpSection{Title: info.Group})
		}
		binding := keymap.BindingForAction(km, info.Action)
		sections[i].Bindings = append(sections[i].Bindings, common.HelpBinding{
			Key:  keymap.BindingHint(binding),
			Desc: info.Desc,
		})
	}
	sections = append(sections, common.HelpSection{
		Title: "Mouse",
		Bindings: []common.HelpBinding{
			{Key: "drag", Desc: "Move a card; hold near an edge to scroll"},
			{Key: "wheel", Desc: "Scroll (shift for horizontal)"},
		},
	})
	return sections
}

// hintBindings is the compact footer hint list.
func hintBindings(km keymap.KeyMap) []common.HelpBinding {
	return []common.HelpBinding{
		{Key: keymap.SequenceHint(km.Left, km.Down, km.Up, km.Right), Desc: "move"},
		{Key: keymap.PrimaryKey(km.Copy), Desc: "copy"},
		{Key: keymap.PrimaryKey(km.CancelDrag), Desc: "cancel drag"},
		{Key: keymap.PrimaryKey(km.Reset), Desc: "reset"},
		{Key: keymap.PrimaryKey(km.Debug), Desc: "debug"},
		{Key: keymap.PrimaryKey(km.Help), Desc: "help"},
		{Key: keymap.PrimaryKey(km.Quit), Desc: "quit"},
	}
}
