package autoscroll

import (
	"math"
	"time"

	"github.com/andyrewlee/dragscroll/internal/frame"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/perf"
)

// Controller drives scrolling along one axis for the lifetime of a drag.
// It is not safe for concurrent use; pointer updates and frames must arrive
// on the same goroutine.
type Controller struct {
	axis      Axis
	cfg       Config
	scheduler frame.Scheduler
	target    RegionSource

	finalStart int
	finalEnd   int
	gradient   int

	// start/end are the active dead-zone; valid once seeded.
	start  int
	end    int
	seeded bool

	speed     float64 // cells per second, signed
	pending   float64 // sub-cell distance carried between frames
	lastFrame time.Time

	running       bool
	handle        frame.Handle
	shouldRebound bool
	lastCoord     int
	pointer       geom.Point
}

// NewController creates a stopped controller for axis using bounds b.
func NewController(axis Axis, b EdgeBounds, cfg Config, scheduler frame.Scheduler, target RegionSource) *Controller {
	return &Controller{
		axis:       axis,
		cfg:        cfg,
		scheduler:  scheduler,
		target:     target,
		finalStart: b.Start,
		finalEnd:   b.End,
		gradient:   b.Gradient,
	}
}

// Axis returns the axis this controller scrolls.
func (c *Controller) Axis() Axis { return c.axis }

// Running reports whether the controller is animating.
func (c *Controller) Running() bool { return c.running }

// Start marks the controller running and schedules its first frame.
func (c *Controller) Start() {
	c.running = true
	c.reschedule()
}

// Stop halts the animation and cancels any pending frame. Stopping a
// stopped controller does nothing.
func (c *Controller) Stop() {
	c.running = false
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
}

// UpdatePointer feeds a pointer sample. Samples are ignored until Start.
func (c *Controller) UpdatePointer(p geom.Point) {
	if !c.running {
		return
	}
	c.pointer = p
	coord := c.axis.Coord(p)
	c.adjustDeadZone(coord)
	c.updateSpeed(coord)
	c.lastCoord = coord
}

// ExecuteFrame advances the animation to now: it rebounds the dead-zone,
// integrates the current speed and writes whole-cell steps to the region.
func (c *Controller) ExecuteFrame(now time.Time) {
	c.handle = nil

	elapsedMs := 0.0
	if !c.lastFrame.IsZero() && now.After(c.lastFrame) {
		elapsedMs = float64(now.Sub(c.lastFrame)) / float64(time.Millisecond)
	}
	c.lastFrame = now

	c.rebound(elapsedMs)

	c.pending += c.speed * (elapsedMs / 1000)
	step := int(c.pending)
	c.pending -= float64(step)
	if step != 0 {
		c.scrollBy(step)
	}

	c.reschedule()
}

func (c *Controller) reschedule() {
	if !c.running || c.handle != nil || c.scheduler == nil {
		return
	}
	if c.gradient < c.cfg.MinGradient {
		return
	}
	c.handle = c.scheduler.RequestFrame(c.ExecuteFrame)
}

func (c *Controller) region() Region {
	if c.target == nil {
		return nil
	}
	return c.target()
}

// adjustDeadZone lets the dead-zone contract toward the pointer and decides
// whether it should rebound on the next frames.
func (c *Controller) adjustDeadZone(coord int) {
	if !c.seeded {
		c.start = min(c.finalStart, coord)
		c.end = max(c.finalEnd, coord)
		c.seeded = true
		return
	}

	oldStart := c.start
	if c.start < c.finalStart {
		c.start = max(c.start, min(c.finalStart, coord))
	}
	oldEnd := c.end
	if c.end > c.finalEnd {
		c.end = min(c.end, max(c.finalEnd, coord))
	}

	// Also true when the pointer moves away from both bounds.
	c.shouldRebound = oldStart == c.start && oldEnd == c.end && coord != c.lastCoord
}

func (c *Controller) rebound(elapsedMs float64) {
	if !c.shouldRebound {
		return
	}
	px := int(math.Ceil(c.cfg.ReboundRate / 1000 * elapsedMs))
	if px <= 0 {
		return
	}
	if c.start < c.finalStart {
		c.start = min(c.start+px, c.finalStart)
		c.updateSpeed(c.lastCoord)
	} else if c.end > c.finalEnd {
		c.end = max(c.end-px, c.finalEnd)
		c.updateSpeed(c.lastCoord)
	}
}

func (c *Controller) updateSpeed(coord int) {
	c.speed = c.ratio(coord) * c.cfg.MaxSpeed
}

func (c *Controller) ratio(coord int) float64 {
	if c.gradient <= 0 || c.gradient < c.cfg.MinGradient {
		return 0
	}
	region := c.region()
	if region == nil {
		return 0
	}
	r := region.Bounds()
	p := c.pointer
	if p.Y < r.Top || p.Y > r.Bottom || p.X < r.Left || p.X > r.Right {
		return 0
	}
	switch {
	case coord < c.start:
		return math.Max(-1, float64(coord-c.start)/float64(c.gradient))
	case coord > c.end:
		return math.Min(1, float64(coord-c.end)/float64(c.gradient))
	default:
		return 0
	}
}

func (c *Controller) scrollBy(step int) {
	region := c.region()
	if region == nil {
		return
	}
	offset := region.ScrollOffset(c.axis)
	limit := region.MaxScrollOffset(c.axis)
	if step > 0 && offset < limit || step < 0 && offset > 0 {
		region.SetScrollOffset(c.axis, clamp(offset+step, 0, limit))
		perf.Count("autoscroll_write", 1)
	}
}

// State is a read-only snapshot of a controller.
type State struct {
	Axis       Axis
	Running    bool
	Scheduled  bool
	FinalStart int
	FinalEnd   int
	Start      int
	End        int
	Gradient   int
	Speed      float64
	Pending    float64
	Rebounding bool
	Coord      int
}

// State snapshots the controller for diagnostics.
func (c *Controller) State() State {
	return State{
		Axis:       c.axis,
		Running:    c.running,
		Scheduled:  c.handle != nil,
		FinalStart: c.finalStart,
		FinalEnd:   c.finalEnd,
		Start:      c.start,
		End:        c.end,
		Gradient:   c.gradient,
		Speed:      c.speed,
		Pending:    c.pending,
		Rebounding: c.shouldRebound,
		Coord:      c.lastCoord,
	}
}

func clamp(val, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
