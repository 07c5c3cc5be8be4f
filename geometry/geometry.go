package geometry

// MinSelectionPx is the default minimum selection edge, in pixels.
// Selections narrower or shorter than this are discarded as accidental clicks.
const MinSelectionPx = 3

// Point is a position in virtual-screen coordinates. Coordinates can be
// negative (e.g. a secondary monitor left of or above the primary).
type Point struct {
	X int
	Y int
}

// Rect is a normalized rectangle in virtual-screen coordinates:
// Left <= Right and Top <= Bottom always hold for rectangles produced
// by Normalize. Width and height are derived, never stored.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Normalize builds the rectangle spanned by two drag endpoints. The result
// is independent of drag direction: Normalize(a, b) == Normalize(b, a).
func Normalize(p1, p2 Point) Rect {
	return Rect{
		Left:   min(p1.X, p2.X),
		Top:    min(p1.Y, p2.Y),
		Right:  max(p1.X, p2.X),
		Bottom: max(p1.Y, p2.Y),
	}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// TooSmall reports whether the rectangle is below the given thresholds.
// Comparison is strict: a 3x3 rectangle passes the default 3x3 minimum.
func (r Rect) TooSmall(minW, minH int) bool {
	return r.Width() < minW || r.Height() < minH
}
