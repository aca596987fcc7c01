// SPDX-License-Identifier: MIT
// Package matrix: triangular solves (multi-right-hand-side, in place).

package matrix

import "fmt"

// SolveUpper overwrites b with U⁻¹·b by back substitution, where U is the
// upper triangle of u (entries below the diagonal are ignored).
// Complexity: O(n^2 * nrhs).
func SolveUpper[T Scalar](u, b *Dense[T]) error {
	if u == nil || b == nil {
		return fmt.Errorf("SolveUpper: %w", ErrNilMatrix)
	}
	if u.rows != u.cols {
		return fmt.Errorf("SolveUpper: %w", ErrNonSquare)
	}
	if b.rows != u.rows {
		return fmt.Errorf("SolveUpper: %d rows for system of %d: %w", b.rows, u.rows, ErrDimensionMismatch)
	}
	var zero T
	n := u.rows
	for c := 0; c < b.cols; c++ {
		for i := n - 1; i >= 0; i-- {
			s := b.at(i, c)
			for j := i + 1; j < n; j++ {
				s -= u.at(i, j) * b.at(j, c)
			}
			d := u.at(i, i)
			if d == zero {
				return fmt.Errorf("SolveUpper: pivot %d: %w", i, ErrSingular)
			}
			b.set(i, c, s/d)
		}
	}
	return nil
}

// SolveLowerUnit overwrites b with L⁻¹·b by forward substitution, where L is
// the strictly lower triangle of l with an implicit unit diagonal (the packed
// LU convention). Complexity: O(n^2 * nrhs).
func SolveLowerUnit[T Scalar](l, b *Dense[T]) error {
	if l == nil || b == nil {
		return fmt.Errorf("SolveLowerUnit: %w", ErrNilMatrix)
	}
	if l.rows != l.cols {
		return fmt.Errorf("SolveLowerUnit: %w", ErrNonSquare)
	}
	if b.rows != l.rows {
		return fmt.Errorf("SolveLowerUnit: %d rows for system of %d: %w", b.rows, l.rows, ErrDimensionMismatch)
	}
	n := l.rows
	for c := 0; c < b.cols; c++ {
		for i := 1; i < n; i++ {
			s := b.at(i, c)
			for j := 0; j < i; j++ {
				s -= l.at(i, j) * b.at(j, c)
			}
			b.set(i, c, s)
		}
	}
	return nil
}
