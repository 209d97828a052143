package iou

import "math"

// IntersectionArea returns (min(x2) - max(x1)) * (min(y2) - max(y1)).
// Result is NOT clamped: for rectangles disjoint on an axis the corresponding factor
// is negative, so the product may be negative or even positive (both axes disjoint).
func IntersectionArea(r1, r2 Rectangle) float64 {
	xA := math.Max(r1.X1, r2.X1)
	yA := math.Max(r1.Y1, r2.Y1)
	xB := math.Min(r1.X2, r2.X2)
	yB := math.Min(r1.Y2, r2.Y2)
	return (xB - xA) * (yB - yA)
}

// UnionArea returns area(r1) + area(r2) - IntersectionArea(r1, r2). Signed as well.
func UnionArea(r1, r2 Rectangle) float64 {
	return r1.Area() + r2.Area() - IntersectionArea(r1, r2)
}

// enclosing returns the smallest axis-aligned rectangle containing both inputs.
// Every metric with an enclosing-box term goes through here.
func (c *Calculator) enclosing(r1, r2 Rectangle) Rectangle {
	y1Min := math.Min(r1.Y1, r2.Y1)
	if c.strictLegacyFormulas {
		// Legacy formula takes x1 of the second rectangle here
		y1Min = math.Min(r1.Y1, r2.X1)
	}
	return Rectangle{
		X1: math.Min(r1.X1, r2.X1),
		Y1: y1Min,
		X2: math.Max(r1.X2, r2.X2),
		Y2: math.Max(r1.Y2, r2.Y2),
	}
}

// center returns rectangle center. Legacy formulas truncate coordinate sums toward zero before halving.
func (c *Calculator) center(r Rectangle) Point {
	if c.strictLegacyFormulas {
		return Point{
			X: math.Trunc(r.X1+r.X2) / 2.0,
			Y: math.Trunc(r.Y1+r.Y2) / 2.0,
		}
	}
	return r.Center()
}

// squaredCenterOffset is the squared distance between centers of two rectangles
func (c *Calculator) squaredCenterOffset(r1, r2 Rectangle) float64 {
	return squaredDistance(c.center(r1), c.center(r2))
}

// squaredDiagonal is the squared length of the (x1, y1)-(x2, y2) diagonal
func squaredDiagonal(r Rectangle) float64 {
	return squaredDistance(Point{X: r.X1, Y: r.Y1}, Point{X: r.X2, Y: r.Y2})
}
