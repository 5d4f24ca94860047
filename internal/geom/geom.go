// Package geom defines the geometric value types shared across the editor.
package geom

import "math"

// Point is a position in image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the point shifted by the given deltas.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle. Width and Height may be negative
// while a drag is in progress; Normalize produces the canonical form.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints builds the rectangle spanning two opposite corners.
// The result keeps the sign of the span, so a drag up-left yields
// negative width and height.
func RectFromPoints(anchor, corner Point) Rect {
	return Rect{
		X:      anchor.X,
		Y:      anchor.Y,
		Width:  corner.X - anchor.X,
		Height: corner.Y - anchor.Y,
	}
}

// Normalize returns an equivalent rectangle with non-negative width
// and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Empty reports whether the rectangle spans no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Polygon is an ordered list of vertices traced by the user.
type Polygon []Point

// BBox returns the axis-aligned bounding box of the vertices.
func (pg Polygon) BBox() Rect {
	if len(pg) == 0 {
		return Rect{}
	}
	minX, minY := pg[0].X, pg[0].Y
	maxX, maxY := minX, minY
	for _, p := range pg[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
