package iou

import "math"

const (
	// Epsilon is added to union area so IoU of two zero-area rectangles is 0 rather than NaN
	Epsilon = 1e-5
	// aspectRatioExponent is applied to the arctangent difference in CIoU's aspect ratio term
	aspectRatioExponent = 2
)

// IoU calculates Intersection over Union: IntersectionArea / (UnionArea + Epsilon).
// Inputs with unordered corners or no overlap propagate signed primitives, so
// the result is in [0, 1] only for ordered overlapping rectangles.
func IoU(r1, r2 Rectangle) float64 {
	return IntersectionArea(r1, r2) / (UnionArea(r1, r2) + Epsilon)
}

// GIoU calculates Generalized IoU with corrected formulas
func GIoU(r1, r2 Rectangle) (float64, error) {
	return defaultCalculator.GIoU(r1, r2)
}

// DIoU calculates Distance IoU with corrected formulas
func DIoU(r1, r2 Rectangle) (float64, error) {
	return defaultCalculator.DIoU(r1, r2)
}

// CIoU calculates Complete IoU with corrected formulas
func CIoU(r1, r2 Rectangle) (float64, error) {
	return defaultCalculator.CIoU(r1, r2)
}

// EIoU calculates Efficient IoU with corrected formulas
func EIoU(r1, r2 Rectangle) (float64, error) {
	return defaultCalculator.EIoU(r1, r2)
}

// IoU is the same as package-level IoU with optional corner validation
func (c *Calculator) IoU(r1, r2 Rectangle) (float64, error) {
	if err := c.validate(MetricIoU, r1, r2); err != nil {
		return 0, err
	}
	return IoU(r1, r2), nil
}

// GIoU returns IoU - |enclosingArea - UnionArea| / enclosingArea.
// Zero enclosing area gives *DegenerateInputError.
func (c *Calculator) GIoU(r1, r2 Rectangle) (float64, error) {
	if err := c.validate(MetricGIoU, r1, r2); err != nil {
		return 0, err
	}
	return c.giou(r1, r2)
}

// DIoU returns IoU - d/c where d is the squared distance between centers and c is the
// squared diagonal of the enclosing rectangle. Both are squared: no square root is taken.
// Zero diagonal gives *DegenerateInputError.
func (c *Calculator) DIoU(r1, r2 Rectangle) (float64, error) {
	if err := c.validate(MetricDIoU, r1, r2); err != nil {
		return 0, err
	}
	return c.diou(MetricDIoU, r1, r2)
}

// CIoU returns DIoU - alpha*v, where v is aspectRatioPenalty and alpha = v / ((1 - IoU) + v).
// Alpha is 0 when its denominator is 0. Zero height of either rectangle gives *DegenerateInputError.
func (c *Calculator) CIoU(r1, r2 Rectangle) (float64, error) {
	if err := c.validate(MetricCIoU, r1, r2); err != nil {
		return 0, err
	}
	w1, h1 := math.Abs(r1.Width()), math.Abs(r1.Height())
	w2, h2 := math.Abs(r2.Width()), math.Abs(r2.Height())
	if h1 == 0 {
		return 0, &DegenerateInputError{Metric: MetricCIoU, Rect: 1, Quantity: "height"}
	}
	if h2 == 0 {
		return 0, &DegenerateInputError{Metric: MetricCIoU, Rect: 2, Quantity: "height"}
	}
	diou, err := c.diou(MetricCIoU, r1, r2)
	if err != nil {
		return 0, err
	}
	v := aspectRatioPenalty(w1, h1, w2, h2)
	alpha := 0.0
	if denom := (1 - IoU(r1, r2)) + v; denom != 0 {
		alpha = v / denom
	}
	return diou - alpha*v, nil
}

// EIoU returns DIoU - (w2-w1)^2/cw^2 - (h2-h1)^2/ch^2 where cw and ch are width and height
// of the enclosing rectangle. Zero cw or ch gives *DegenerateInputError.
func (c *Calculator) EIoU(r1, r2 Rectangle) (float64, error) {
	if err := c.validate(MetricEIoU, r1, r2); err != nil {
		return 0, err
	}
	enc := c.enclosing(r1, r2)
	cw, ch := enc.Width(), enc.Height()
	if cw == 0 {
		return 0, &DegenerateInputError{Metric: MetricEIoU, Rect: enclosingRect, Quantity: "width"}
	}
	if ch == 0 {
		return 0, &DegenerateInputError{Metric: MetricEIoU, Rect: enclosingRect, Quantity: "height"}
	}
	diou, err := c.diou(MetricEIoU, r1, r2)
	if err != nil {
		return 0, err
	}
	dw := math.Abs(r2.Width()) - math.Abs(r1.Width())
	dh := math.Abs(r2.Height()) - math.Abs(r1.Height())
	return diou - dw*dw/(cw*cw) - dh*dh/(ch*ch), nil
}

func (c *Calculator) giou(r1, r2 Rectangle) (float64, error) {
	enc := c.enclosing(r1, r2)
	encArea := math.Abs(enc.Width()) * math.Abs(enc.Height())
	if encArea == 0 {
		return 0, &DegenerateInputError{Metric: MetricGIoU, Rect: enclosingRect, Quantity: "area"}
	}
	return IoU(r1, r2) - math.Abs(encArea-UnionArea(r1, r2))/encArea, nil
}

// diou reports errors on behalf of metric, since CIoU and EIoU are built on top of it
func (c *Calculator) diou(metric Metric, r1, r2 Rectangle) (float64, error) {
	diag := squaredDiagonal(c.enclosing(r1, r2))
	if diag == 0 {
		return 0, &DegenerateInputError{Metric: metric, Rect: enclosingRect, Quantity: "diagonal"}
	}
	return IoU(r1, r2) - c.squaredCenterOffset(r1, r2)/diag, nil
}

// aspectRatioPenalty returns (4/pi) * (atan(w1/h1) - atan(w2/h2))^2.
// Heights must be non-zero.
func aspectRatioPenalty(w1, h1, w2, h2 float64) float64 {
	return (4 / math.Pi) * math.Pow(math.Atan(w1/h1)-math.Atan(w2/h2), aspectRatioExponent)
}
