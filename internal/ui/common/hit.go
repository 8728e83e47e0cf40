package common

// HitRegion is a clickable box of screen cells, such as a toolbar button.
// X and Y are its top-left cell.
type HitRegion struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the cell at x, y belongs to the box.
func (h HitRegion) Contains(x, y int) bool {
	if h.Width <= 0 || h.Height <= 0 {
		return false
	}
	return x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}
