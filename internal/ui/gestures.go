package ui

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
)

// DefaultSwipeThreshold is the shortest drag, in pixels, read as a swipe
const DefaultSwipeThreshold float32 = 50

// String returns the gesture name for logs
func (g GestureType) String() string {
	switch g {
	case GestureSwipeLeft:
		return "swipe-left"
	case GestureSwipeRight:
		return "swipe-right"
	case GestureSwipeUp:
		return "swipe-up"
	case GestureSwipeDown:
		return "swipe-down"
	default:
		return "none"
	}
}

// ClassifyDrag maps the total offset of a drag to a swipe. Drags shorter
// than threshold on both axes are GestureNone. The dominant axis wins.
func ClassifyDrag(dx, dy, threshold float32) GestureType {
	ax, ay := abs32(dx), abs32(dy)
	if ax < threshold && ay < threshold {
		return GestureNone
	}

	if ax >= ay {
		if dx < 0 {
			return GestureSwipeLeft
		}
		return GestureSwipeRight
	}
	if dy < 0 {
		return GestureSwipeUp
	}
	return GestureSwipeDown
}

// TapSide reports whether a tap at x lands in the leading half of width
func TapSide(x, width float32) (leading bool) {
	return x < width/2
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
