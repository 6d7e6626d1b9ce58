package graphics

// Rect represents a rectangle in integer pixel coordinates using left, top,
// right, bottom edges.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height int) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the width of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Area returns width*height, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right, other.Right)
	bottom := min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// VisibleProportion returns the fraction of r's area that lies inside
// viewport, in [0, 1].
func (r Rect) VisibleProportion(viewport Rect) float32 {
	area := r.Area()
	if area == 0 {
		return 0
	}
	return float32(r.Intersect(viewport).Area()) / float32(area)
}

// EdgeInsets holds pixel insets for the four edges in layout direction
// (start/end rather than left/right).
type EdgeInsets struct {
	Start  int
	Top    int
	End    int
	Bottom int
}

// IsZero reports whether all insets are zero.
func (e EdgeInsets) IsZero() bool {
	return e == EdgeInsets{}
}
