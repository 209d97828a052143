package iou

import (
	"sort"

	"github.com/pkg/errors"
)

// Suppress performs greedy Non-Maximum Suppression.
// Boxes are visited by descending confidence; a box is dropped when its metric against
// any already kept box exceeds threshold. Returns indices of kept boxes in visiting order.
func (c *Calculator) Suppress(boxes []Rectangle, confidences []float64, metric Metric, threshold float64) ([]int, error) {
	if len(boxes) != len(confidences) {
		return nil, errors.Errorf("boxes and confidences arrays must have the same length. Conf array size: %d. Boxes array size: %d",
			len(confidences), len(boxes))
	}
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return confidences[order[i]] > confidences[order[j]]
	})

	kept := make([]int, 0, len(boxes))
	for _, candidate := range order {
		suppressed := false
		for _, keptIdx := range kept {
			score, err := c.Score(metric, boxes[keptIdx], boxes[candidate])
			if err != nil {
				return nil, errors.Wrapf(err, "Can't compare box %d with box %d", keptIdx, candidate)
			}
			if score > threshold {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, candidate)
		}
	}
	return kept, nil
}
