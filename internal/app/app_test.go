package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/config"
	"github.com/andyrewlee/dragscroll/internal/frame"
	"github.com/andyrewlee/dragscroll/internal/keymap"
	"github.com/andyrewlee/dragscroll/internal/messages"
	"github.com/andyrewlee/dragscroll/internal/ui/common"
)

func testBoard(cols, cards int) []config.ColumnConfig {
	out := make([]config.ColumnConfig, cols)
	for c := range out {
		out[c].Title = fmt.Sprintf("Col %d", c)
		for r := 0; r < cards; r++ {
			out[c].Cards = append(out[c].Cards, config.CardConfig{
				ID:    fmt.Sprintf("c%d-%d", c, r),
				Title: fmt.Sprintf("Card %d", r),
			})
		}
	}
	return out
}

func testConfig() *config.Config {
	return &config.Config{
		Autoscroll: config.DefaultAutoscroll(),
		Board:      testBoard(6, 12),
	}
}

// newTestApp lays out an 80x24 app: toolbar on row 0, board header on rows
// 1-2, card viewport on rows 3-22 and the status line on row 23. The
// vertical dead-zone is 8..18 with a 4 cell ramp.
func newTestApp(t *testing.T) (*App, *frame.Manual) {
	t.Helper()
	sched := frame.NewManual(time.Unix(0, 0))
	a := newApp(testConfig(), sched)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	t.Cleanup(a.Shutdown)
	return a, sched
}

func press(a *App, x, y int) {
	a.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func motion(a *App, x, y int) {
	a.Update(tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft})
}

func release(a *App, x, y int) tea.Cmd {
	_, cmd := a.Update(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	return cmd
}

func TestDragNearBottomEdgeScrolls(t *testing.T) {
	a, sched := newTestApp(t)
	b := a.Board()

	press(a, 13, 4)
	motion(a, 13, 5)
	if !a.drag.Dragging() || !b.Dragging() {
		t.Fatal("expected drag to start after one cell of motion")
	}
	if sched.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", sched.Pending())
	}

	motion(a, 13, 22)
	sched.Step(0)
	for i := 0; i < 5; i++ {
		sched.Step(100 * time.Millisecond)
	}
	if got := b.ScrollOffset(autoscroll.Vertical); got != 20 {
		t.Fatalf("vertical offset = %d, want 20", got)
	}
	if got := b.ScrollOffset(autoscroll.Horizontal); got != 0 {
		t.Fatalf("horizontal offset = %d, want 0", got)
	}

	if cmd := release(a, 13, 22); cmd == nil {
		t.Fatal("expected a command reporting the move")
	}
	if sched.Pending() != 0 {
		t.Fatalf("Pending() = %d after release", sched.Pending())
	}
	if got := b.Columns[0].Cards[7].ID; got != "c0-0" {
		t.Fatalf("card at row 7 = %s, want c0-0", got)
	}
	if want := "Moved c0-0 to position 8 in Col 0"; a.Status() != want {
		t.Fatalf("status = %q, want %q", a.Status(), want)
	}
}

func TestClickWithoutDragSelects(t *testing.T) {
	a, sched := newTestApp(t)

	press(a, 40, 9)
	if a.drag.Dragging() {
		t.Fatal("press alone should not drag")
	}
	if sel := a.Board().Selection; sel.Column != 1 || sel.Row != 1 {
		t.Fatalf("selection = %+v, want column 1 row 1", sel)
	}
	release(a, 40, 9)
	if a.Board().LastMove() != nil || a.Status() != "" || sched.Pending() != 0 {
		t.Fatal("click should not move anything")
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	a, sched := newTestApp(t)

	press(a, 13, 4)
	motion(a, 13, 6)
	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if a.drag.Dragging() || a.Board().Dragging() {
		t.Fatal("escape should end the drag")
	}
	if sched.Pending() != 0 {
		t.Fatalf("Pending() = %d after cancel", sched.Pending())
	}
	if a.Status() != "Drag cancelled" {
		t.Fatalf("status = %q", a.Status())
	}

	release(a, 13, 6)
	if a.Board().LastMove() != nil {
		t.Fatal("cancelled drag was dropped")
	}
	if got := a.Board().Columns[0].Cards[0].ID; got != "c0-0" {
		t.Fatalf("first card = %s, want c0-0", got)
	}
}

func TestWheelIgnoredWhileDragging(t *testing.T) {
	a, _ := newTestApp(t)

	press(a, 13, 4)
	motion(a, 13, 6)
	a.Update(tea.MouseWheelMsg{X: 13, Y: 6, Button: tea.MouseWheelDown})
	if got := a.Board().ScrollOffset(autoscroll.Vertical); got != 0 {
		t.Fatalf("wheel scrolled during drag: offset %d", got)
	}

	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	a.Update(tea.MouseWheelMsg{X: 13, Y: 6, Button: tea.MouseWheelDown})
	if got := a.Board().ScrollOffset(autoscroll.Vertical); got != 3 {
		t.Fatalf("wheel offset = %d, want 3", got)
	}
}

func TestLoopArmsAndDispatchesFrames(t *testing.T) {
	a := New(testConfig())
	t.Cleanup(a.Shutdown)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	press(a, 13, 4)
	_, cmd := a.Update(tea.MouseMotionMsg{X: 13, Y: 5, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatal("drag start should arm frame ticks")
	}
	if a.loop.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", a.loop.Pending())
	}

	// Frames are numbered in request order: horizontal 1, vertical 2.
	_, cmd = a.Update(frame.Msg{ID: 2, At: time.Unix(0, 0)})
	if cmd == nil {
		t.Fatal("executed frame should arm its successor")
	}
	if a.loop.Pending() != 2 {
		t.Fatalf("Pending() = %d after dispatch, want 2", a.loop.Pending())
	}

	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if a.loop.Pending() != 0 {
		t.Fatalf("Pending() = %d after cancel", a.loop.Pending())
	}
	if a.loop.Dispatch(frame.Msg{ID: 3}) {
		t.Fatal("cancelled frame should be dropped")
	}
}

func TestConfigReloadApplies(t *testing.T) {
	a := New(testConfig())
	t.Cleanup(a.Shutdown)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	a.Board().SetScrollOffset(autoscroll.Vertical, 5)

	next := testConfig()
	next.Autoscroll.TriggerZone = 2
	next.Autoscroll.FPS = 30
	next.UI.ShowDebug = true
	next.KeyMap.Bindings = map[string][]string{"reset": {"x"}}
	a.Update(messages.ConfigReloaded{Config: next})

	if got := a.Coordinator().Config().TriggerZone; got != 2 {
		t.Fatalf("TriggerZone = %d, want 2", got)
	}
	if got := a.loop.Interval(); got != frame.IntervalForFPS(30) {
		t.Fatalf("Interval() = %v", got)
	}
	if !a.showDebug {
		t.Fatal("ShowDebug not applied")
	}
	if keymap.PrimaryKey(a.keymap.Reset) != "x" {
		t.Fatal("keymap override not applied")
	}
	if got := a.Board().ScrollOffset(autoscroll.Vertical); got != 5 {
		t.Fatalf("unchanged board was reset: offset %d", got)
	}

	a.Update(messages.ConfigReloaded{Err: errors.New("parse config.yaml: bad")})
	if a.Coordinator().Config().TriggerZone != 2 {
		t.Fatal("failed reload replaced the config")
	}
	if !strings.Contains(a.toast.Message(), "Config reload failed") {
		t.Fatalf("toast = %q", a.toast.Message())
	}
}

func TestConfigReloadReplacesChangedBoard(t *testing.T) {
	a, _ := newTestApp(t)
	a.Board().SetScrollOffset(autoscroll.Vertical, 5)

	next := testConfig()
	next.Board = testBoard(2, 3)
	a.Update(messages.ConfigReloaded{Config: next})

	if len(a.Board().Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(a.Board().Columns))
	}
	if got := a.Board().ScrollOffset(autoscroll.Vertical); got != 0 {
		t.Fatalf("offset = %d after board change", got)
	}
}

func TestCopyCard(t *testing.T) {
	a, _ := newTestApp(t)

	var copied string
	restore := common.SetClipboardWriter(func(s string) error {
		copied = s
		return nil
	})
	defer restore()

	a.Update(tea.KeyPressMsg{Code: 'j'})
	_, cmd := a.Update(tea.KeyPressMsg{Code: 'y'})
	if cmd == nil {
		t.Fatal("copy key should return a command")
	}
	a.Update(messages.CopyCard{CardID: "c0-1", Title: "Card 1"})
	if copied != "Card 1" {
		t.Fatalf("copied %q", copied)
	}
	if a.toast.Message() != "Copied c0-1" {
		t.Fatalf("toast = %q", a.toast.Message())
	}

	restoreErr := common.SetClipboardWriter(func(string) error { return errors.New("no clipboard") })
	defer restoreErr()
	_, cmd = a.Update(messages.CopyCard{CardID: "c0-1", Title: "Card 1"})
	if cmd == nil {
		t.Fatal("clipboard failure should be reported")
	}
}

func TestToolbarButtons(t *testing.T) {
	a, _ := newTestApp(t)

	a.runToolbarButton(buttonDebug)
	if !a.showDebug {
		t.Fatal("debug button should toggle the overlay")
	}

	a.Board().SetScrollOffset(autoscroll.Horizontal, 10)
	a.runToolbarButton(buttonReset)
	if a.Board().ScrollOffset(autoscroll.Horizontal) != 0 {
		t.Fatal("reset button should scroll home")
	}

	a.runToolbarButton(buttonHelp)
	if !a.helpOverlay.Visible() {
		t.Fatal("help button should open help")
	}
	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if a.helpOverlay.Visible() {
		t.Fatal("escape should close help")
	}

	if cmd := a.runToolbarButton(buttonQuit); cmd == nil || !a.quitting {
		t.Fatal("quit button should quit")
	}
}

func TestToolbarHitOutsideToolbarRow(t *testing.T) {
	a, _ := newTestApp(t)
	if _, ok := a.toolbarButtonAt(1, 5); ok {
		t.Fatal("board rows are never toolbar buttons")
	}
}

func TestZoneRegionIncludesEndCell(t *testing.T) {
	r := zoneRegion("reset", &zone.ZoneInfo{StartX: 11, StartY: 0, EndX: 17, EndY: 0})
	tests := []struct {
		x, y int
		want bool
	}{
		{11, 0, true},
		{17, 0, true},
		{18, 0, false},
		{10, 0, false},
		{12, 1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHintsTogglePersists(t *testing.T) {
	cfg := testConfig()
	cfg.Paths = config.PathsAt(t.TempDir())
	a := newApp(cfg, frame.NewManual(time.Unix(0, 0)))
	t.Cleanup(a.Shutdown)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	a.Update(tea.KeyPressMsg{Code: '?'})
	if !a.showHints {
		t.Fatal("hints not shown")
	}
	if _, h := a.Board().Size(); h != 21 {
		t.Fatalf("board height = %d, want 21 with hint bar", h)
	}
	data, err := os.ReadFile(cfg.Paths.ConfigPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "show_keymap_hints: true") {
		t.Fatalf("config not saved:\n%s", data)
	}
}

func TestRenderFillsScreen(t *testing.T) {
	a, _ := newTestApp(t)

	for _, debug := range []bool{false, true} {
		a.showDebug = debug
		out := a.render()
		lines := strings.Split(out, "\n")
		if len(lines) != 24 {
			t.Fatalf("debug=%v: %d lines, want 24", debug, len(lines))
		}
		for i, line := range lines {
			if w := ansi.StringWidth(line); w > 80 {
				t.Fatalf("debug=%v: line %d is %d wide", debug, i, w)
			}
		}
		plain := ansi.Strip(out)
		if !strings.Contains(plain, "[Reset]") || !strings.Contains(plain, "Col 0") {
			t.Fatalf("debug=%v: missing toolbar or board:\n%s", debug, plain)
		}
		if debug != strings.Contains(plain, "autoscroll idle") {
			t.Fatalf("debug=%v: overlay presence mismatch", debug)
		}
	}
}

func TestHelpSectionsListEveryAction(t *testing.T) {
	sections := helpSections(keymap.New(config.KeyMapConfig{}))
	n := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			if b.Key == "" {
				t.Fatalf("binding %q has no key", b.Desc)
			}
			n++
		}
	}
	if want := len(keymap.ActionInfos()) + 2; n != want {
		t.Fatalf("%d bindings listed, want %d", n, want)
	}
}

func TestDescribeMove(t *testing.T) {
	tests := []struct {
		move messages.CardMoved
		want string
	}{
		{messages.CardMoved{CardID: "a", FromColumn: "Todo", ToColumn: "Done", Index: 0}, "Moved a from Todo to Done"},
		{messages.CardMoved{CardID: "a", FromColumn: "Todo", ToColumn: "Todo", Index: 2}, "Moved a to position 3 in Todo"},
	}
	for _, tt := range tests {
		if got := describeMove(tt.move); got != tt.want {
			t.Errorf("describeMove(%+v) = %q, want %q", tt.move, got, tt.want)
		}
	}
}

func TestOverlayAt(t *testing.T) {
	base := "aaaaaaaa\n\x1b[31mbbbbbbbb\x1b[0m\ncccccccc"
	out := overlayAt(base, "XY\nZW", 3, 1)
	lines := strings.Split(ansi.Strip(out), "\n")
	want := []string{"aaaaaaaa", "bbbXYbbb", "cccZWccc"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// Rows past the base are dropped and short lines are padded.
	out = overlayAt("ab", "XY\nZW", 4, 0)
	if got := ansi.Strip(out); got != "ab  XY" {
		t.Fatalf("overlay past end = %q", got)
	}
}

func TestClampLines(t *testing.T) {
	got := clampLines("abcdef\nghi\njkl", 4, 2)
	if got != "abcd\nghi" {
		t.Fatalf("clampLines = %q", got)
	}
	if clampLines("abc", 0, 3) != "" {
		t.Fatal("zero width should render nothing")
	}
}
