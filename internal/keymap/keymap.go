package keymap

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/andyrewlee/dragscroll/internal/config"
)

// Action identifies a configurable keybinding.
type Action string

const (
	ActionLeft  Action = "left"
	ActionRight Action = "right"
	ActionUp    Action = "up"
	ActionDown  Action = "down"

	ActionScrollLeft  Action = "scroll_left"
	ActionScrollRight Action = "scroll_right"
	ActionScrollUp    Action = "scroll_up"
	ActionScrollDown  Action = "scroll_down"

	ActionCopy       Action = "copy"
	ActionCancelDrag Action = "cancel_drag"

	ActionReset Action = "reset"
	ActionDebug Action = "debug"
	ActionHints Action = "hints"
	ActionHelp  Action = "help"
	ActionQuit  Action = "quit"
)

type bindingDef struct {
	action Action
	keys   []string
	desc   string
}

// KeyMap defines all keybindings for the application.
type KeyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding

	ScrollLeft  key.Binding
	ScrollRight key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding

	Copy       key.Binding
	CancelDrag key.Binding

	Reset key.Binding
	Debug key.Binding
	Hints key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultDefs() []bindingDef {
	return []bindingDef{
		{ActionLeft, []string{"h", "left"}, "previous column"},
		{ActionRight, []string{"l", "right"}, "next column"},
		{ActionUp, []string{"k", "up"}, "previous card"},
		{ActionDown, []string{"j", "down"}, "next card"},

		{ActionScrollLeft, []string{"H", "shift+left"}, "scroll left"},
		{ActionScrollRight, []string{"L", "shift+right"}, "scroll right"},
		{ActionScrollUp, []string{"K", "pgup"}, "scroll up"},
		{ActionScrollDown, []string{"J", "pgdown"}, "scroll down"},

		{ActionCopy, []string{"y"}, "copy title"},
		{ActionCancelDrag, []string{"esc"}, "cancel drag"},

		{ActionReset, []string{"r"}, "reset board"},
		{ActionDebug, []string{"d"}, "debug overlay"},
		{ActionHints, []string{"?"}, "toggle hints"},
		{ActionHelp, []string{"f1"}, "help"},
		{ActionQuit, []string{"q", "ctrl+c"}, "quit"},
	}
}

// New builds a keymap from defaults, applying any user overrides.
func New(cfg config.KeyMapConfig) KeyMap {
	var km KeyMap
	for _, def := range defaultDefs() {
		if b := bindingFor(&km, def.action); b != nil {
			*b = bindingFromDef(cfg, def)
		}
	}
	return km
}

// bindingFor returns the field holding action's binding.
func bindingFor(km *KeyMap, action Action) *key.Binding {
	switch action {
	case ActionLeft:
		return &km.Left
	case ActionRight:
		return &km.Right
	case ActionUp:
		return &km.Up
	case ActionDown:
		return &km.Down
	case ActionScrollLeft:
		return &km.ScrollLeft
	case ActionScrollRight:
		return &km.ScrollRight
	case ActionScrollUp:
		return &km.ScrollUp
	case ActionScrollDown:
		return &km.ScrollDown
	case ActionCopy:
		return &km.Copy
	case ActionCancelDrag:
		return &km.CancelDrag
	case ActionReset:
		return &km.Reset
	case ActionDebug:
		return &km.Debug
	case ActionHints:
		return &km.Hints
	case ActionHelp:
		return &km.Help
	case ActionQuit:
		return &km.Quit
	}
	return nil
}

// BindingForAction returns the binding for action, or an empty binding
// for an unknown action.
func BindingForAction(km KeyMap, action Action) key.Binding {
	if b := bindingFor(&km, action); b != nil {
		return *b
	}
	return key.Binding{}
}

func bindingFromDef(cfg config.KeyMapConfig, def bindingDef) key.Binding {
	keys, ok := cfg.BindingFor(string(def.action))
	if !ok || len(keys) == 0 {
		keys = def.keys
	}
	helpKey := strings.Join(keys, "/")
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKey, def.desc),
	)
}

// PrimaryKey returns the first key in the binding, if present.
func PrimaryKey(binding key.Binding) string {
	keys := binding.Keys()
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// BindingHint returns a single key hint for a binding, falling back to help text.
func BindingHint(binding key.Binding) string {
	k := PrimaryKey(binding)
	if k == "" {
		return binding.Help().Key
	}
	return k
}

// SequenceHint joins multiple bindings with slashes using their primary keys.
func SequenceHint(bindings ...key.Binding) string {
	var keys []string
	for _, binding := range bindings {
		if k := BindingHint(binding); k != "" {
			keys = append(keys, k)
		}
	}
	return strings.Join(keys, "/")
}

// ActionInfo describes a configurable action for UI display.
type ActionInfo struct {
	Action Action
	Desc   string
	Group  string
}

// ActionInfos returns the ordered list of actions for UI display.
func ActionInfos() []ActionInfo {
	return []ActionInfo{
		{Action: ActionLeft, Desc: "Previous column", Group: "Board"},
		{Action: ActionRight, Desc: "Next column", Group: "Board"},
		{Action: ActionUp, Desc: "Previous card", Group: "Board"},
		{Action: ActionDown, Desc: "Next card", Group: "Board"},
		{Action: ActionScrollLeft, Desc: "Scroll left", Group: "Board"},
		{Action: ActionScrollRight, Desc: "Scroll right", Group: "Board"},
		{Action: ActionScrollUp, Desc: "Scroll up", Group: "Board"},
		{Action: ActionScrollDown, Desc: "Scroll down", Group: "Board"},
		{Action: ActionCopy, Desc: "Copy card title", Group: "Board"},
		{Action: ActionCancelDrag, Desc: "Cancel drag", Group: "Drag"},
		{Action: ActionReset, Desc: "Reset board", Group: "Global"},
		{Action: ActionDebug, Desc: "Autoscroll debug overlay", Group: "Global"},
		{Action: ActionHints, Desc: "Toggle key hints", Group: "Global"},
		{Action: ActionHelp, Desc: "Help", Group: "Global"},
		{Action: ActionQuit, Desc: "Quit", Group: "Global"},
	}
}
