// SPDX-License-Identifier: MIT
// Package matrix: LU factorization with partial pivoting, and inversion.

package matrix

import "fmt"

// LU factors the square matrix a in place with partial (row) pivoting:
// P·a = L·U, with U in and above the diagonal and the unit-lower L packed
// strictly below it. The returned pivot vector records the row exchanged
// with row k at step k. Complexity: O(n^3).
func LU[T Scalar](a *Dense[T]) ([]int, error) {
	if a == nil {
		return nil, fmt.Errorf("LU: %w", ErrNilMatrix)
	}
	if a.rows != a.cols {
		return nil, fmt.Errorf("LU: %w", ErrNonSquare)
	}
	var zero T
	n := a.rows
	piv := make([]int, n)

	for k := 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below the diagonal.
		p, maxA := k, Abs(a.at(k, k))
		for i := k + 1; i < n; i++ {
			if v := Abs(a.at(i, k)); v > maxA {
				p, maxA = i, v
			}
		}
		piv[k] = p
		if p != k {
			for j := 0; j < n; j++ {
				t := a.at(k, j)
				a.set(k, j, a.at(p, j))
				a.set(p, j, t)
			}
		}

		akk := a.at(k, k)
		if akk == zero {
			return piv, fmt.Errorf("LU: pivot %d: %w", k, ErrSingular)
		}
		for i := k + 1; i < n; i++ {
			lik := a.at(i, k) / akk
			a.set(i, k, lik)
			for j := k + 1; j < n; j++ {
				a.set(i, j, a.at(i, j)-lik*a.at(k, j))
			}
		}
	}
	return piv, nil
}

// Inverse overwrites the square matrix a with its inverse, solving a·X = I
// through the pivoted LU factors. Complexity: O(n^3).
func Inverse[T Scalar](a *Dense[T]) error {
	if a == nil {
		return fmt.Errorf("Inverse: %w", ErrNilMatrix)
	}
	if a.rows != a.cols {
		return fmt.Errorf("Inverse: %w", ErrNonSquare)
	}
	n := a.rows

	lu := a.Clone()
	piv, err := LU(lu)
	if err != nil {
		return fmt.Errorf("Inverse: %w", err)
	}

	b, err := NewIdentity[T](n)
	if err != nil {
		return fmt.Errorf("Inverse: %w", err)
	}
	// Replay the factorization's row exchanges on the right-hand side.
	for k, p := range piv {
		if p != k {
			for j := 0; j < n; j++ {
				t := b.at(k, j)
				b.set(k, j, b.at(p, j))
				b.set(p, j, t)
			}
		}
	}
	if err = SolveLowerUnit(lu, b); err != nil {
		return fmt.Errorf("Inverse: %w", err)
	}
	if err = SolveUpper(lu, b); err != nil {
		return fmt.Errorf("Inverse: %w", err)
	}
	return a.CopyFrom(b)
}
