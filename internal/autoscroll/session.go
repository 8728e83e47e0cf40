package autoscroll

import (
	"github.com/andyrewlee/dragscroll/internal/dnd"
	"github.com/andyrewlee/dragscroll/internal/frame"
	"github.com/andyrewlee/dragscroll/internal/geom"
	"github.com/andyrewlee/dragscroll/internal/logging"
)

// Phase is the coordinator's drag state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTracking
)

func (p Phase) String() string {
	if p == PhaseTracking {
		return "tracking"
	}
	return "idle"
}

// Coordinator owns the controller pair for the current drag over one
// scrollable region. At most one pair and one pointer registration exist at
// a time.
type Coordinator struct {
	cfg       Config
	scheduler frame.Scheduler
	resolve   RegionSource
	region    Region

	phase      Phase
	horizontal *Controller
	vertical   *Controller

	manager    *dnd.Manager
	dragReg    dnd.Registration
	pointerReg dnd.Registration
}

// NewCoordinator creates an idle coordinator. resolve is consulted at drag
// start and again on pointer moves until it yields a region.
func NewCoordinator(cfg Config, scheduler frame.Scheduler, resolve RegionSource) *Coordinator {
	return &Coordinator{
		cfg:       cfg,
		scheduler: scheduler,
		resolve:   resolve,
	}
}

// Attach subscribes the coordinator to m's drag notifications.
func (c *Coordinator) Attach(m *dnd.Manager) {
	c.Detach()
	c.manager = m
	c.dragReg = m.AddHandler(c)
}

// Detach stops any running session and unsubscribes from the manager.
func (c *Coordinator) Detach() {
	c.stopAndCleanup()
	if c.dragReg != nil {
		c.dragReg.Remove()
		c.dragReg = nil
	}
	c.manager = nil
}

// SetConfig replaces the configuration used by the next drag.
func (c *Coordinator) SetConfig(cfg Config) {
	c.cfg = cfg
}

// Config returns the active configuration.
func (c *Coordinator) Config() Config {
	return c.cfg
}

// Phase reports the coordinator state.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// DragStarted begins tracking a drag. A session already in progress is
// torn down first.
func (c *Coordinator) DragStarted(item dnd.Item, p geom.Point) {
	c.stopAndCleanup()
	c.phase = PhaseTracking
	if c.manager != nil {
		c.pointerReg = c.manager.AddPointerHandler(c.handlePointer)
	}
	logging.Debug("autoscroll: tracking drag of %s", item.ID)

	if c.resolveRegion() == nil {
		logging.Debug("autoscroll: no scroll target yet")
		return
	}
	c.startControllers()
	c.feed(p)
}

// DragEnded stops the current session.
func (c *Coordinator) DragEnded() {
	c.stopAndCleanup()
}

// PointerMoved feeds a pointer sample taken with the left button held.
// Samples outside a drag are ignored.
func (c *Coordinator) PointerMoved(p geom.Point) {
	if c.phase != PhaseTracking {
		return
	}
	if c.resolveRegion() == nil {
		return
	}
	if c.horizontal == nil && c.vertical == nil {
		c.startControllers()
		return
	}
	c.feed(p)
}

// PointerReleased ends the session the same way a drag end does.
func (c *Coordinator) PointerReleased() {
	c.stopAndCleanup()
}

func (c *Coordinator) handlePointer(ev dnd.PointerEvent) {
	switch ev.Kind {
	case dnd.PointerMove:
		if ev.Button == dnd.ButtonLeft {
			c.PointerMoved(ev.Pos)
		}
	case dnd.PointerRelease:
		c.PointerReleased()
	}
}

func (c *Coordinator) resolveRegion() Region {
	if c.region == nil && c.resolve != nil {
		c.region = c.resolve()
	}
	return c.region
}

func (c *Coordinator) currentRegion() Region {
	return c.region
}

func (c *Coordinator) startControllers() {
	rect := c.region.Bounds()

	hb := ComputeBounds(rect, Horizontal, c.cfg)
	c.horizontal = NewController(Horizontal, hb, c.cfg, c.scheduler, c.currentRegion)
	c.horizontal.Start()

	vb := ComputeBounds(rect, Vertical, c.cfg)
	c.vertical = NewController(Vertical, vb, c.cfg, c.scheduler, c.currentRegion)
	c.vertical.Start()

	logging.Debug("autoscroll: bounds h=%+v v=%+v", hb, vb)
}

func (c *Coordinator) feed(p geom.Point) {
	if c.horizontal != nil {
		c.horizontal.UpdatePointer(p)
	}
	if c.vertical != nil {
		c.vertical.UpdatePointer(p)
	}
}

func (c *Coordinator) stopAndCleanup() {
	if c.horizontal != nil {
		c.horizontal.Stop()
		c.horizontal = nil
	}
	if c.vertical != nil {
		c.vertical.Stop()
		c.vertical = nil
	}
	if c.pointerReg != nil {
		c.pointerReg.Remove()
		c.pointerReg = nil
	}
	if c.phase == PhaseTracking {
		logging.Debug("autoscroll: session stopped")
	}
	c.phase = PhaseIdle
	c.region = nil
}

// Snapshot describes the coordinator for diagnostics.
type Snapshot struct {
	Phase      Phase
	HasRegion  bool
	Horizontal *State
	Vertical   *State
}

// Snapshot returns the current session state.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{Phase: c.phase, HasRegion: c.region != nil}
	if c.horizontal != nil {
		st := c.horizontal.State()
		s.Horizontal = &st
	}
	if c.vertical != nil {
		st := c.vertical.State()
		s.Vertical = &st
	}
	return s
}
