package iou

import (
	"strings"

	"github.com/pkg/errors"
)

// Metric is for overlap metric type
type Metric uint16

const (
	// MetricIoU is plain Intersection over Union
	MetricIoU Metric = iota
	// MetricGIoU penalizes empty space of the enclosing rectangle
	MetricGIoU
	// MetricDIoU penalizes distance between centers
	MetricDIoU
	// MetricCIoU adds aspect ratio consistency to DIoU
	MetricCIoU
	// MetricEIoU adds width and height discrepancy to DIoU
	MetricEIoU
)

var metricNames = [...]string{
	MetricIoU:  "iou",
	MetricGIoU: "giou",
	MetricDIoU: "diou",
	MetricCIoU: "ciou",
	MetricEIoU: "eiou",
}

func (m Metric) String() string {
	if int(m) < len(metricNames) {
		return metricNames[m]
	}
	return "unknown"
}

// Metrics returns every supported metric in order of refinement
func Metrics() []Metric {
	return []Metric{MetricIoU, MetricGIoU, MetricDIoU, MetricCIoU, MetricEIoU}
}

// ParseMetric converts case-insensitive name ("iou", "GIoU", ...) to Metric
func ParseMetric(name string) (Metric, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, metricName := range metricNames {
		if metricName == lower {
			return Metric(i), nil
		}
	}
	return 0, errors.Errorf("unknown metric '%s'", name)
}

// Score evaluates given metric for pair of rectangles
func (c *Calculator) Score(metric Metric, r1, r2 Rectangle) (float64, error) {
	switch metric {
	case MetricIoU:
		return c.IoU(r1, r2)
	case MetricGIoU:
		return c.GIoU(r1, r2)
	case MetricDIoU:
		return c.DIoU(r1, r2)
	case MetricCIoU:
		return c.CIoU(r1, r2)
	case MetricEIoU:
		return c.EIoU(r1, r2)
	default:
		return 0, errors.Errorf("unknown metric %d", metric)
	}
}

// ScoreMatrix returns len(rows) x len(cols) matrix where cell [i][j] is the metric of rows[i] and cols[j].
// The first failing cell aborts computation.
func (c *Calculator) ScoreMatrix(metric Metric, rows, cols []Rectangle) ([][]float64, error) {
	scores := make([][]float64, len(rows))
	for i, rowRect := range rows {
		row := make([]float64, len(cols))
		for j, colRect := range cols {
			score, err := c.Score(metric, rowRect, colRect)
			if err != nil {
				return nil, errors.Wrapf(err, "Can't score cell [%d][%d]", i, j)
			}
			row[j] = score
		}
		scores[i] = row
	}
	return scores, nil
}
