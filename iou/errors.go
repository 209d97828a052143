package iou

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDegenerateInput is matched by every *DegenerateInputError via errors.Is
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrMalformedRectangle is matched by every *MalformedRectangleError via errors.Is
	ErrMalformedRectangle = errors.New("malformed rectangle")
)

const (
	// enclosingRect is the value of Rect field when the enclosing rectangle is at fault
	enclosingRect = 0
)

// DegenerateInputError is returned when a metric would divide by a zero quantity:
// zero height of an input rectangle (CIoU) or zero size of the enclosing rectangle
// (GIoU, DIoU, EIoU).
type DegenerateInputError struct {
	// Metric which failed
	Metric Metric
	// Rect is 1 or 2 for the input rectangles and 0 for the enclosing one
	Rect int
	// Quantity is the zero divisor, e.g. "height" or "enclosing width"
	Quantity string
}

func (e *DegenerateInputError) Error() string {
	if e.Rect == enclosingRect {
		return fmt.Sprintf("%s: degenerate enclosing rectangle: zero %s", e.Metric, e.Quantity)
	}
	return fmt.Sprintf("%s: degenerate rectangle %d: zero %s", e.Metric, e.Rect, e.Quantity)
}

func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}

// MalformedRectangleError is returned only by calculators created with corner validation.
type MalformedRectangleError struct {
	Metric Metric
	// Rect is 1 or 2
	Rect   int
	Reason string
}

func (e *MalformedRectangleError) Error() string {
	return fmt.Sprintf("%s: malformed rectangle %d: %s", e.Metric, e.Rect, e.Reason)
}

func (e *MalformedRectangleError) Is(target error) bool {
	return target == ErrMalformedRectangle
}
