package geo

import "math"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// R is a shorthand constructor for Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// XSpan returns the horizontal extent as an interval.
func (r Rect) XSpan() Interval {
	return Interval{Start: r.Left(), End: r.Right()}
}

// YSpan returns the vertical extent as an interval.
func (r Rect) YSpan() Interval {
	return Interval{Start: r.Top(), End: r.Bottom()}
}

// Intersects reports whether r and q share interior area.
// Rectangles that only touch along an edge do not intersect.
func (r Rect) Intersects(q Rect) bool {
	return r.XSpan().Overlaps(q.XSpan()) && r.YSpan().Overlaps(q.YSpan())
}

// Contains reports whether pt lies inside r (edges included).
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.Left() && pt.X <= r.Right() && pt.Y >= r.Top() && pt.Y <= r.Bottom()
}

// Union returns the smallest rectangle enclosing both r and q.
// An empty rectangle is treated as absent.
func (r Rect) Union(q Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return q
	}
	if q.W == 0 && q.H == 0 {
		return r
	}
	minX := math.Min(r.Left(), q.Left())
	minY := math.Min(r.Top(), q.Top())
	maxX := math.Max(r.Right(), q.Right())
	maxY := math.Max(r.Bottom(), q.Bottom())
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// RotatedBounds returns the axis-aligned bounds of r after rotating it by a
// quarter-turn multiple around its center. Only 90 and 270 swap the sides;
// other angles return r unchanged.
func (r Rect) RotatedBounds(deg float64) Rect {
	d := NormalizeDegrees(deg)
	if d != 90 && d != 270 {
		return r
	}
	c := r.Center()
	return Rect{c.X - r.H/2, c.Y - r.W/2, r.H, r.W}
}

// BoundingBox returns the bounding rectangle of all rects.
func BoundingBox(rects []Rect) Rect {
	var box Rect
	for _, r := range rects {
		box = box.Union(r)
	}
	return box
}
