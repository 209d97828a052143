package iou

import (
	"fmt"
	"math"
)

// Calculator evaluates overlap metrics with a fixed set of formula options.
// It is immutable after creation and safe for concurrent use.
type Calculator struct {
	// Reproduce formulas of the reference implementation bit-for-bit:
	// minimum y of the enclosing rectangle is taken from x1 of the second rectangle
	// and centers are computed from coordinate sums truncated to integers.
	strictLegacyFormulas bool
	// Reject rectangles with unordered or non-finite corners
	validateCorners bool
}

// Option configures Calculator
type Option func(*Calculator)

// WithStrictLegacyFormulas turns on the legacy formulas (see Calculator)
func WithStrictLegacyFormulas(strict bool) Option {
	return func(c *Calculator) {
		c.strictLegacyFormulas = strict
	}
}

// WithCornerValidation makes every metric fail with *MalformedRectangleError
// for rectangles where x1 > x2, y1 > y2 or some coordinate is NaN/Inf.
func WithCornerValidation(validate bool) Option {
	return func(c *Calculator) {
		c.validateCorners = validate
	}
}

// NewCalculator creates calculator. Defaults: corrected formulas, no corner validation.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StrictLegacyFormulas returns whether legacy formulas are used
func (c *Calculator) StrictLegacyFormulas() bool {
	return c.strictLegacyFormulas
}

// CornerValidation returns whether corners are validated
func (c *Calculator) CornerValidation() bool {
	return c.validateCorners
}

var defaultCalculator = NewCalculator()

func (c *Calculator) validate(metric Metric, r1, r2 Rectangle) error {
	if !c.validateCorners {
		return nil
	}
	for i, r := range [2]Rectangle{r1, r2} {
		if reason := malformedReason(r); reason != "" {
			return &MalformedRectangleError{Metric: metric, Rect: i + 1, Reason: reason}
		}
	}
	return nil
}

func malformedReason(r Rectangle) string {
	for _, v := range [4]float64{r.X1, r.Y1, r.X2, r.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "non-finite coordinate"
		}
	}
	if r.X1 > r.X2 {
		return fmt.Sprintf("x1 (%g) > x2 (%g)", r.X1, r.X2)
	}
	if r.Y1 > r.Y2 {
		return fmt.Sprintf("y1 (%g) > y2 (%g)", r.Y1, r.Y2)
	}
	return ""
}
