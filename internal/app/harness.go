package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/dragscroll/internal/autoscroll"
	"github.com/andyrewlee/dragscroll/internal/config"
	"github.com/andyrewlee/dragscroll/internal/frame"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/messages"
)

// HarnessOptions configures the headless drag simulation.
type HarnessOptions struct {
	Width  int
	Height int
	// CardID is the card to drag. Empty picks the first card on the board.
	CardID string
	// Target is where the pointer travels to. A negative coordinate picks
	// the bottom-right cell of the board viewport.
	Target geom.Point
	// MoveSteps is the number of motion events between press and target.
	MoveSteps int
	// Hold is how long the pointer rests on the target before release.
	Hold    time.Duration
	FPS     int
	Release bool
	// Config overrides the defaults when set.
	Config *config.Config
}

// HarnessFrame is one stepped frame of the simulation.
type HarnessFrame struct {
	Index   int
	Elapsed time.Duration
	Pointer geom.Point
	OffsetX int
	OffsetY int
	SpeedX  float64
	SpeedY  float64
}

// HarnessResult summarizes a simulated drag.
type HarnessResult struct {
	CardID  string
	Start   geom.Point
	Target  geom.Point
	Frames  []HarnessFrame
	OffsetX int
	OffsetY int
	Move    *messages.CardMoved
}

// Harness drives the app with synthetic mouse input and a hand-stepped
// frame clock.
type Harness struct {
	app      *App
	sched    *frame.Manual
	opts     HarnessOptions
	interval time.Duration
	start    time.Time
}

// NewHarness builds the app at the requested size.
func NewHarness(opts HarnessOptions) (*Harness, error) {
	if opts.Width <= 0 {
		opts.Width = 120
	}
	if opts.Height <= 0 {
		opts.Height = 36
	}
	if opts.MoveSteps <= 0 {
		opts.MoveSteps = 1
	}
	if opts.Hold < 0 {
		opts.Hold = 0
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{
			Autoscroll: config.DefaultAutoscroll(),
		}
	}
	if opts.FPS > 0 {
		cfg.Autoscroll.FPS = opts.FPS
	}
	if cfg.Autoscroll.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive")
	}

	start := time.Unix(0, 0)
	sched := frame.NewManual(start)
	a := newApp(cfg, sched)
	a.Update(tea.WindowSizeMsg{Width: opts.Width, Height: opts.Height})

	return &Harness{
		app:      a,
		sched:    sched,
		opts:     opts,
		interval: frame.IntervalForFPS(cfg.Autoscroll.FPS),
		start:    start,
	}, nil
}

// App returns the simulated app.
func (h *Harness) App() *App { return h.app }

// Run presses the card, moves toward the target, holds and optionally
// releases, stepping one frame per motion event and per interval held.
func (h *Harness) Run() (HarnessResult, error) {
	b := h.app.board
	cardID := h.opts.CardID
	if cardID == "" {
		cardID = firstCardID(h.app)
	}
	sel, ok := b.Locate(cardID)
	if !ok {
		return HarnessResult{}, fmt.Errorf("card %q not found", cardID)
	}
	b.Reveal(sel)
	rect := b.CardRect(sel)
	start := geom.Point{X: rect.Left + rect.Width()/2, Y: rect.Top + 1}

	target := h.opts.Target
	if target.X < 0 || target.Y < 0 {
		bounds := b.Bounds()
		target = geom.Point{X: bounds.Right - 1, Y: bounds.Bottom - 1}
	}

	res := HarnessResult{CardID: cardID, Start: start, Target: target}
	h.app.Update(tea.MouseClickMsg{X: start.X, Y: start.Y, Button: tea.MouseLeft})

	steps := h.opts.MoveSteps
	for i := 1; i <= steps; i++ {
		p := geom.Point{
			X: start.X + (target.X-start.X)*i/steps,
			Y: start.Y + (target.Y-start.Y)*i/steps,
		}
		h.app.Update(tea.MouseMotionMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
		h.step(&res, p)
	}
	for held := time.Duration(0); held+h.interval <= h.opts.Hold; held += h.interval {
		h.step(&res, target)
	}

	if h.opts.Release {
		before := b.LastMove()
		h.app.Update(tea.MouseReleaseMsg{X: target.X, Y: target.Y, Button: tea.MouseLeft})
		if move := b.LastMove(); move != nil && move != before {
			res.Move = move
		}
	}

	res.OffsetX = b.ScrollOffset(autoscroll.Horizontal)
	res.OffsetY = b.ScrollOffset(autoscroll.Vertical)
	return res, nil
}

func (h *Harness) step(res *HarnessResult, p geom.Point) {
	h.sched.Step(h.interval)

	f := HarnessFrame{
		Index:   len(res.Frames),
		Elapsed: h.sched.Now().Sub(h.start),
		Pointer: p,
		OffsetX: h.app.board.ScrollOffset(autoscroll.Horizontal),
		OffsetY: h.app.board.ScrollOffset(autoscroll.Vertical),
	}
	snap := h.app.scroll.Snapshot()
	if snap.Horizontal != nil {
		f.SpeedX = snap.Horizontal.Speed
	}
	if snap.Vertical != nil {
		f.SpeedY = snap.Vertical.Speed
	}
	res.Frames = append(res.Frames, f)
}

// Render returns the current view.
func (h *Harness) Render() tea.View {
	return h.app.View()
}

func firstCardID(a *App) string {
	for _, col := range a.board.Columns {
		if len(col.Cards) > 0 {
			return col.Cards[0].ID
		}
	}
	return ""
}
