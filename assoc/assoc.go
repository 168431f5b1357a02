// Package assoc matches detections to predicted track boxes by IoU: a
// fast path for unambiguous one-to-one threshold matches, falling back
// to a linear assignment solve (maximizing total IoU) otherwise, with a
// post-filter that rejects any accepted pair below the IoU gate.
package assoc

import (
	hungarian "github.com/arthurkushman/go-hungarian"

	"github.com/nmichlo/sort-go/geometry"
)

// Match is a paired detection/track index.
type Match struct {
	DetIdx, TrkIdx int
}

// Solver is the pluggable linear-assignment backend, selected at
// construction. The fast path in Associate never calls into it.
type Solver interface {
	// Solve returns the assignment minimizing total cost, plus which
	// row/col indices went unmatched.
	Solve(cost [][]float64) (matches []Match, unmatchedRows, unmatchedCols []int)
}

// HungarianSolver solves the assignment with the Hungarian algorithm via
// github.com/arthurkushman/go-hungarian, which maximizes profit rather
// than minimizing cost. Solve pads the (possibly rectangular) cost
// matrix to square and converts cost to profit before solving; rows or
// columns beyond the matrix's real extent are padding and are never
// reported as matched.
type HungarianSolver struct{}

// hungarianProfitOffset converts a cost in Associate's [-1, 0] range
// (negated IoU) to a positive profit go-hungarian can maximize; any
// constant larger than the cost range works since it only needs to
// keep all real-cell profits positive and above the zero-profit padding.
const hungarianProfitOffset = 10.0

func (HungarianSolver) Solve(cost [][]float64) ([]Match, []int, []int) {
	numRows := len(cost)
	if numRows == 0 {
		return nil, nil, nil
	}
	numCols := len(cost[0])
	if numCols == 0 {
		unmatchedRows := make([]int, numRows)
		for i := range unmatchedRows {
			unmatchedRows[i] = i
		}
		return nil, unmatchedRows, nil
	}

	size := max(numRows, numCols)
	profit := make([][]float64, size)
	for i := range profit {
		profit[i] = make([]float64, size)
		if i < numRows {
			for j := 0; j < numCols; j++ {
				profit[i][j] = hungarianProfitOffset - cost[i][j]
			}
		}
	}

	result := hungarian.SolveMax(profit)

	var matches []Match
	matchedRows := make(map[int]bool, numRows)
	matchedCols := make(map[int]bool, numCols)
	for rowIdx, cols := range result {
		for colIdx := range cols {
			if rowIdx < numRows && colIdx < numCols {
				matches = append(matches, Match{DetIdx: rowIdx, TrkIdx: colIdx})
				matchedRows[rowIdx] = true
				matchedCols[colIdx] = true
			}
		}
	}

	var unmatchedRows, unmatchedCols []int
	for i := 0; i < numRows; i++ {
		if !matchedRows[i] {
			unmatchedRows = append(unmatchedRows, i)
		}
	}
	for j := 0; j < numCols; j++ {
		if !matchedCols[j] {
			unmatchedCols = append(unmatchedCols, j)
		}
	}
	return matches, unmatchedRows, unmatchedCols
}

// Result is the output of Associate: three disjoint index sets covering
// every detection and track exactly once between matches and the
// unmatched slices.
type Result struct {
	Matches       []Match
	UnmatchedDets []int
	UnmatchedTrks []int
}

// Associate matches detections to predicted track boxes using IoU.
func Associate(dets, trks []geometry.Box, iouThreshold float64, solver Solver) Result {
	if len(trks) == 0 {
		unmatched := make([]int, len(dets))
		for i := range unmatched {
			unmatched[i] = i
		}
		return Result{UnmatchedDets: unmatched}
	}

	iou := geometry.IoUBatch(dets, trks)

	if matches, ok := fastPath(iou, len(dets), len(trks), iouThreshold); ok {
		return postFilter(iou, matches, len(dets), len(trks), iouThreshold)
	}

	cost := make([][]float64, len(dets))
	for i := range cost {
		cost[i] = make([]float64, len(trks))
		for j := range cost[i] {
			cost[i][j] = -iou.At(i, j)
		}
	}
	matches, _, _ := solver.Solve(cost)
	return postFilter(iou, matches, len(dets), len(trks), iouThreshold)
}

// fastPath takes the thresholded IoU matrix directly as the match set
// when every row and column has at most one entry above iouThreshold —
// the threshold itself already yields a unique pairing, so no
// assignment solve is needed.
func fastPath(iou matrixLike, nDets, nTrks int, iouThreshold float64) ([]Match, bool) {
	rowSum := make([]int, nDets)
	colSum := make([]int, nTrks)
	for i := 0; i < nDets; i++ {
		for j := 0; j < nTrks; j++ {
			if iou.At(i, j) > iouThreshold {
				rowSum[i]++
				colSum[j]++
			}
		}
	}
	for _, s := range rowSum {
		if s > 1 {
			return nil, false
		}
	}
	for _, s := range colSum {
		if s > 1 {
			return nil, false
		}
	}

	var matches []Match
	for i := 0; i < nDets; i++ {
		for j := 0; j < nTrks; j++ {
			if iou.At(i, j) > iouThreshold {
				matches = append(matches, Match{DetIdx: i, TrkIdx: j})
			}
		}
	}
	return matches, true
}

type matrixLike interface {
	At(i, j int) float64
}

// postFilter demotes any candidate pair whose IoU falls below the gate,
// then computes the unmatched sets from whatever remains.
func postFilter(iou matrixLike, candidates []Match, nDets, nTrks int, iouThreshold float64) Result {
	matchedDet := make(map[int]bool, len(candidates))
	matchedTrk := make(map[int]bool, len(candidates))
	var matches []Match
	for _, m := range candidates {
		if iou.At(m.DetIdx, m.TrkIdx) < iouThreshold {
			continue
		}
		matches = append(matches, m)
		matchedDet[m.DetIdx] = true
		matchedTrk[m.TrkIdx] = true
	}

	var unmatchedDets, unmatchedTrks []int
	for i := 0; i < nDets; i++ {
		if !matchedDet[i] {
			unmatchedDets = append(unmatchedDets, i)
		}
	}
	for j := 0; j < nTrks; j++ {
		if !matchedTrk[j] {
			unmatchedTrks = append(unmatchedTrks, j)
		}
	}

	return Result{Matches: matches, UnmatchedDets: unmatchedDets, UnmatchedTrks: unmatchedTrks}
}
