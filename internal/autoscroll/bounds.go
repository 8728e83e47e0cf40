package autoscroll

import "github.com/andyrewlee/dragscroll/internal/geom"

// EdgeBounds is the no-scroll interior along one axis and the width of the
// ramp outside it.
type EdgeBounds struct {
	Start    int
	End      int
	Gradient int
}

// ComputeBounds derives the edge bounds for one axis of rect. Regions too
// small to keep MinInterior between the trigger zones are widened
// symmetrically, at the cost of a shorter ramp.
func ComputeBounds(rect geom.Rect, axis Axis, cfg Config) EdgeBounds {
	b := EdgeBounds{
		Start:    axis.Near(rect) + 1 + cfg.TriggerZone,
		End:      axis.Far(rect) - 1 - cfg.TriggerZone,
		Gradient: cfg.TriggerZone,
	}
	if b.End-b.Start < cfg.MinInterior {
		half := float64(cfg.MinInterior-(b.End-b.Start)) / 2
		b.Start = int(float64(b.Start) - half)
		b.End = int(float64(b.End) + half)
		b.Gradient = int(float64(b.Gradient) - half)
	}
	return b
}
