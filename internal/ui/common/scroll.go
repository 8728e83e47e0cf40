package common

// ScrollDeltaForHeight calculates proportional scroll delta.
// Returns max(1, height/factor) to ensure minimum 1 line scroll.
func ScrollDeltaForHeight(height, factor int) int {
	if factor <= 0 {
		return 1
	}
	return max(1, height/factor)
}
