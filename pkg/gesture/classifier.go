package gesture

import "math"

// Classify maps a pointer displacement onto one of the four cardinal
// directions. Screen coordinates grow downward, so a positive dy is a
// downward swipe. The threshold is exclusive: a displacement of exactly
// threshold pixels is still DirectionNone. When |dx| == |dy| the vertical
// branch decides, so diagonals never resolve as horizontal.
func Classify(dx, dy, threshold float64) Direction {
	if math.Abs(dx) > math.Abs(dy) {
		if dx > threshold {
			return DirectionRight
		}
		if dx < -threshold {
			return DirectionLeft
		}
		return DirectionNone
	}

	if dy > threshold {
		return DirectionDown
	}
	if dy < -threshold {
		return DirectionUp
	}
	return DirectionNone
}

// ClassifyPoints classifies the trajectory between a start and end point
// using the default threshold. Mouse and touch inputs are expected to be
// normalized into the same coordinate pair by the caller.
func ClassifyPoints(startX, startY, endX, endY float64) Direction {
	return Classify(endX-startX, endY-startY, DefaultThreshold)
}
