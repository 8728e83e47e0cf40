// Package autoscroll scrolls a region while an item is dragged near its
// edges.
//
// A Coordinator follows one drag at a time. For each drag it creates a pair
// of Controllers, one per axis, that turn pointer positions into a scroll
// speed and integrate that speed into whole-cell scroll steps once per
// frame. Each controller keeps a dead-zone that starts out wide enough to
// contain the pointer's first position and only contracts toward the
// configured bounds as the pointer moves; once the pointer stops pushing it,
// the dead-zone rebounds toward its final position at a fixed rate.
package autoscroll

import "github.com/andyrewlee/dragscroll/internal/geom"

// Defaults for Config.
const (
	DefaultTriggerZone = 100
	DefaultMinInterior = 50
	DefaultMaxSpeed    = 800.0
	DefaultReboundRate = 1.0
	DefaultMinGradient = 10
)

// Config tunes the engine. Distances are in the same units as the region's
// coordinates (cells in a terminal); rates are per second.
type Config struct {
	// TriggerZone is the width of the band along each edge that scrolls.
	TriggerZone int
	// MinInterior is the smallest no-scroll interior kept for small regions.
	MinInterior int
	// MaxSpeed is the scroll speed reached at the outer edge of the ramp.
	MaxSpeed float64
	// ReboundRate is how fast a widened dead-zone returns to its bounds.
	ReboundRate float64
	// MinGradient is the narrowest ramp that is still animated.
	MinGradient int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TriggerZone: DefaultTriggerZone,
		MinInterior: DefaultMinInterior,
		MaxSpeed:    DefaultMaxSpeed,
		ReboundRate: DefaultReboundRate,
		MinGradient: DefaultMinGradient,
	}
}

// Axis selects the scroll direction a controller drives.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Coord returns the component of p along the axis.
func (a Axis) Coord(p geom.Point) int {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

// Near returns the leading edge of r along the axis.
func (a Axis) Near(r geom.Rect) int {
	if a == Vertical {
		return r.Top
	}
	return r.Left
}

// Far returns the trailing edge of r along the axis.
func (a Axis) Far(r geom.Rect) int {
	if a == Vertical {
		return r.Bottom
	}
	return r.Right
}

// Region is a scrollable area owned by the host. The engine only reads and
// writes its offsets.
type Region interface {
	ScrollOffset(axis Axis) int
	SetScrollOffset(axis Axis, offset int)
	MaxScrollOffset(axis Axis) int
	// Bounds is the region's on-screen rectangle.
	Bounds() geom.Rect
}

// RegionSource resolves the region lazily. It may return nil while the
// host has nothing to scroll yet.
type RegionSource func() Region
