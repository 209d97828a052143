package iou

import (
	"sort"

	"github.com/arthurkushman/go-hungarian"
	"gonum.org/v1/gonum/floats"
)

// MatchingAlgorithm is for algorithm type for matching rows to columns of a score matrix
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses go-hungarian's SolveMax, falling back to the greedy result when that scores higher
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy uses a greedy algorithm for faster but potentially suboptimal assignment
	MatchingAlgorithmGreedy
)

func (a MatchingAlgorithm) String() string {
	switch a {
	case MatchingAlgorithmHungarian:
		return "hungarian"
	case MatchingAlgorithmGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// Match assigns rows of the score matrix to columns, one column per row.
// SolveMax is not guaranteed to find the maximum total, so the Hungarian result is never worse than the greedy one
// but may be below the optimum. Pairs scoring below minScore are dropped. Returns {rowIndex, colIndex} pairs sorted by row.
// Matrix must be rectangular.
func Match(scores [][]float64, minScore float64, algorithm MatchingAlgorithm) [][2]int {
	if len(scores) == 0 || len(scores[0]) == 0 {
		return [][2]int{}
	}
	var candidates [][2]int
	switch algorithm {
	case MatchingAlgorithmHungarian:
		candidates = pickBetter(scores, minScore, matchHungarian(scores), matchGreedy(scores, minScore))
	default:
		candidates = matchGreedy(scores, minScore)
	}
	matches := make([][2]int, 0, len(candidates))
	for _, match := range candidates {
		if scores[match[0]][match[1]] >= minScore {
			matches = append(matches, match)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i][0] < matches[j][0]
	})
	return matches
}

// matchHungarian pads matrix to square and shifts it to non-negative values:
// GIoU, DIoU, CIoU and EIoU may be negative while padding cells must be the lowest score.
func matchHungarian(scores [][]float64) [][2]int {
	numRows := len(scores)
	numCols := len(scores[0])
	paddedSize := max(numRows, numCols)

	shift := 0.0
	for _, row := range scores {
		if rowMin := floats.Min(row); rowMin < -shift {
			shift = -rowMin
		}
	}

	paddedMatrix := make([][]float64, paddedSize)
	for i := 0; i < paddedSize; i++ {
		paddedMatrix[i] = make([]float64, paddedSize)
		if i < numRows {
			copy(paddedMatrix[i], scores[i])
			floats.AddConst(shift, paddedMatrix[i][:numCols])
		}
	}

	assignmentsMap := hungarian.SolveMax(paddedMatrix)
	matches := make([][2]int, 0, min(numRows, numCols))
	for rowIndex, rowMap := range assignmentsMap {
		// Inner map holds single entry: {colIndex: score}
		for colIndex := range rowMap {
			if rowIndex < numRows && colIndex < numCols {
				matches = append(matches, [2]int{rowIndex, colIndex})
			}
			break
		}
	}
	return matches
}

// pickBetter returns the candidate with the higher total over pairs scoring at least minScore.
// Ties keep the first one.
func pickBetter(scores [][]float64, minScore float64, first, second [][2]int) [][2]int {
	if matchedTotal(scores, minScore, second) > matchedTotal(scores, minScore, first) {
		return second
	}
	return first
}

func matchedTotal(scores [][]float64, minScore float64, matches [][2]int) float64 {
	total := 0.0
	for _, match := range matches {
		if score := scores[match[0]][match[1]]; score >= minScore {
			total += score
		}
	}
	return total
}

func matchGreedy(scores [][]float64, minScore float64) [][2]int {
	matches := make([][2]int, 0)
	matchedCols := make(map[int]struct{})
	for i, row := range scores {
		bestScore := 0.0
		bestCol := -1
		for j, score := range row {
			if _, found := matchedCols[j]; found {
				continue
			}
			if score >= minScore && (bestCol == -1 || score > bestScore) {
				bestScore = score
				bestCol = j
			}
		}
		if bestCol != -1 {
			matches = append(matches, [2]int{i, bestCol})
			matchedCols[bestCol] = struct{}{}
		}
	}
	return matches
}
