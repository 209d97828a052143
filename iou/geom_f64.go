package iou

import "image"

// Rectangle is an axis-aligned box given by two opposite corners.
// Corner order is not enforced: x1 > x2 or y1 > y2 gives signed widths, heights and areas.
type Rectangle struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewRect creates rectangle from two opposite corners
func NewRect(x1, y1, x2, y2 float64) Rectangle {
	return Rectangle{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// NewRectXYWH creates rectangle from top-left corner and size
func NewRectXYWH(x, y, width, height float64) Rectangle {
	return Rectangle{
		X1: x,
		Y1: y,
		X2: x + width,
		Y2: y + height,
	}
}

// NewRectFrom converts image.Rectangle to Rectangle
func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X1: float64(rect.Min.X),
		Y1: float64(rect.Min.Y),
		X2: float64(rect.Max.X),
		Y2: float64(rect.Max.Y),
	}
}

// Width returns signed width (x2 - x1)
func (r Rectangle) Width() float64 {
	return r.X2 - r.X1
}

// Height returns signed height (y2 - y1)
func (r Rectangle) Height() float64 {
	return r.Y2 - r.Y1
}

// Area returns signed area. It is negative when exactly one axis has swapped corners.
func (r Rectangle) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns exact midpoint of the rectangle
func (r Rectangle) Center() Point {
	return Point{
		X: (r.X1 + r.X2) / 2.0,
		Y: (r.Y1 + r.Y2) / 2.0,
	}
}

// IsWellFormed reports whether corners are finite and ordered (x1 <= x2, y1 <= y2)
func (r Rectangle) IsWellFormed() bool {
	return malformedReason(r) == ""
}

// Point is a position on the plane, used for centers and corners
type Point struct {
	X float64
	Y float64
}

// NewPoint creates point from coordinates
func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

// NewPointFrom converts image.Point to Point
func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// squaredDistance returns squared euclidean distance. No square root is taken.
func squaredDistance(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	return dx*dx + dy*dy
}
