package gesture

import "strings"

type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionNone  Direction = "none"
)

// CanonicalDirections is the fixed placement order used by the suggestion
// reconciler and by every direction-complete page.
var CanonicalDirections = []Direction{
	DirectionUp,
	DirectionDown,
	DirectionLeft,
	DirectionRight,
}

const DefaultThreshold = 50.0

// ParseDirection normalizes a free-form direction string. The bool reports
// whether the input named one of the four cardinal directions.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionUp:
		return DirectionUp, true
	case DirectionDown:
		return DirectionDown, true
	case DirectionLeft:
		return DirectionLeft, true
	case DirectionRight:
		return DirectionRight, true
	default:
		return DirectionNone, false
	}
}

func (d Direction) IsCardinal() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}
