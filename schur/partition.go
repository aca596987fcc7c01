// Package schur: split-point selection.

package schur

import (
	"fmt"

	"github.com/numkit/spectral/matrix"
)

// Partition scans every candidate split index of a square matrix and
// returns the one minimizing the coupling left below the diagonal seam.
//
// For a split of leading size k the coupling is the total magnitude of the
// bottom-left block (rows k..n-1, columns 0..k-1). Moving the seam down by
// one row adds a column tail and retires a row head, so the scan keeps a
// running total and the whole search costs one pass over the
// strictly-lower triangle:
//
//	norms[0] = colSums[0]
//	norms[j] = norms[j-1] + colSums[j] - rowSums[j-1]
//
// where colSums[j] sums magnitudes strictly below the diagonal in column j
// and rowSums[i-1] sums magnitudes strictly left of the diagonal in row i.
// Ties resolve to the first (smallest) index, so the choice is
// deterministic. The input is not mutated.
//
// On a grid, each rank accumulates the sums over the rows it owns; one
// collective reduction then equalizes the totals before the minimum is
// taken, so every rank selects the identical split.
func Partition[T matrix.Scalar](a *Operand[T]) (SplitPoint, error) {
	if err := checkSquare(a); err != nil {
		return SplitPoint{}, fmt.Errorf("Partition: %w", err)
	}
	n := a.d.Rows()
	if n < 2 {
		return SplitPoint{}, fmt.Errorf("Partition: n=%d: %w", n, ErrMatrixTooSmall)
	}

	// 1) Accumulate this rank's share of the column and row sums over the
	// strictly-lower triangle.
	colSums := make([]float64, n-1)
	rowSums := make([]float64, n-1)
	for i := 1; i < n; i++ {
		if !a.ownsRow(i) {
			continue
		}
		for j := 0; j < i; j++ {
			v, err := a.d.At(i, j)
			if err != nil {
				return SplitPoint{}, fmt.Errorf("Partition: %w", err)
			}
			mag := matrix.Abs(v)
			colSums[j] += mag
			rowSums[i-1] += mag
		}
	}

	// 2) Equalize the totals across the grid (no-op locally).
	if err := a.allReduceSum(colSums); err != nil {
		return SplitPoint{}, fmt.Errorf("Partition: %w", err)
	}
	if err := a.allReduceSum(rowSums); err != nil {
		return SplitPoint{}, fmt.Errorf("Partition: %w", err)
	}

	// 3) Running scan for the minimum, first occurrence on ties.
	part := SplitPoint{Index: 1, Value: colSums[0]}
	running := colSums[0]
	for j := 1; j < n-1; j++ {
		running += colSums[j] - rowSums[j-1]
		if running < part.Value {
			part.Value = running
			part.Index = j + 1
		}
	}
	return part, nil
}
