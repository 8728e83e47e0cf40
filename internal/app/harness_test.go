package app

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/dragscroll/internal/geom"
)

func TestHarnessScrollsTowardCorner(t *testing.T) {
	h, err := NewHarness(HarnessOptions{
		Width:     100,
		Height:    30,
		Target:    geom.Point{X: -1, Y: -1},
		MoveSteps: 4,
		Hold:      2 * time.Second,
		Release:   true,
	})
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	defer h.App().Shutdown()

	res, err := h.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.CardID != "DS-1" {
		t.Fatalf("CardID = %s, want DS-1", res.CardID)
	}
	if res.Target != (geom.Point{X: 99, Y: 28}) {
		t.Fatalf("Target = %+v", res.Target)
	}
	if len(res.Frames) != 4+120 {
		t.Fatalf("frames = %d, want 124", len(res.Frames))
	}
	if res.OffsetX <= 0 || res.OffsetY <= 0 {
		t.Fatalf("offsets = %d,%d, want both positive", res.OffsetX, res.OffsetY)
	}
	for i := 1; i < len(res.Frames); i++ {
		prev, cur := res.Frames[i-1], res.Frames[i]
		if cur.OffsetY < prev.OffsetY {
			t.Fatalf("frame %d scrolled back up: %d -> %d", i, prev.OffsetY, cur.OffsetY)
		}
		if cur.Elapsed <= prev.Elapsed {
			t.Fatalf("frame %d did not advance the clock", i)
		}
	}
	if last := res.Frames[len(res.Frames)-1]; last.SpeedY <= 0 {
		t.Fatalf("final vertical speed = %v, want positive", last.SpeedY)
	}
	if res.Move == nil || res.Move.CardID != "DS-1" {
		t.Fatalf("Move = %+v, want DS-1 dropped", res.Move)
	}
	if res.Move.FromColumn != "Backlog" {
		t.Fatalf("FromColumn = %s", res.Move.FromColumn)
	}
	if got := h.App().Coordinator().Phase().String(); got != "idle" {
		t.Fatalf("phase after release = %s", got)
	}
	if !strings.Contains(ansi.Strip(h.App().render()), "Moved DS-1") {
		t.Fatal("status line does not report the move")
	}
}

func TestHarnessUnknownCard(t *testing.T) {
	h, err := NewHarness(HarnessOptions{CardID: "missing"})
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	defer h.App().Shutdown()
	if _, err := h.Run(); err == nil {
		t.Fatal("expected an error for an unknown card")
	}
}

func TestHarnessHoldInsideDeadZoneDoesNotScroll(t *testing.T) {
	h, err := NewHarness(HarnessOptions{
		Width:  100,
		Height: 30,
		Target: geom.Point{X: 50, Y: 15},
		Hold:   time.Second,
	})
	if err != nil {
		t.Fatalf("NewHarness: %v", err)
	}
	defer h.App().Shutdown()

	res, err := h.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OffsetX != 0 || res.OffsetY != 0 {
		t.Fatalf("offsets = %d,%d, want 0,0", res.OffsetX, res.OffsetY)
	}
	if res.Move != nil {
		t.Fatal("no release requested but a move was recorded")
	}
}
