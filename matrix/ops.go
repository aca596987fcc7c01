// SPDX-License-Identifier: MIT
// Package matrix: level-1 kernels: scaling, diagonal access, trace.
// All kernels validate once, then walk the backing slice directly with
// deterministic i→j loop order.

package matrix

import "fmt"

// Scale multiplies every element of m by alpha in place. O(r*c).
func Scale[T Scalar](alpha T, m *Dense[T]) error {
	if m == nil {
		return fmt.Errorf("Scale: %w", ErrNilMatrix)
	}
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.stride : i*m.stride+m.cols]
		for j := range row {
			row[j] *= alpha
		}
	}
	return nil
}

// UpdateDiagonal adds alpha to every diagonal element of m in place.
// Used to form shifted generators G := A + shift·I. O(min(r,c)).
func UpdateDiagonal[T Scalar](m *Dense[T], alpha T) error {
	if m == nil {
		return fmt.Errorf("UpdateDiagonal: %w", ErrNilMatrix)
	}
	n := min(m.rows, m.cols)
	for i := 0; i < n; i++ {
		m.data[i*m.stride+i] += alpha
	}
	return nil
}

// Diagonal returns a copy of the main diagonal of m. O(min(r,c)).
func Diagonal[T Scalar](m *Dense[T]) ([]T, error) {
	if m == nil {
		return nil, fmt.Errorf("Diagonal: %w", ErrNilMatrix)
	}
	n := min(m.rows, m.cols)
	d := make([]T, n)
	for i := 0; i < n; i++ {
		d[i] = m.data[i*m.stride+i]
	}
	return d, nil
}

// SetDiagonal overwrites the main diagonal of m with d; len(d) must equal
// min(r,c). O(min(r,c)).
func SetDiagonal[T Scalar](m *Dense[T], d []T) error {
	if m == nil {
		return fmt.Errorf("SetDiagonal: %w", ErrNilMatrix)
	}
	n := min(m.rows, m.cols)
	if len(d) != n {
		return fmt.Errorf("SetDiagonal: %d values for diagonal of %d: %w",
			len(d), n, ErrDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		m.data[i*m.stride+i] = d[i]
	}
	return nil
}

// FillDiagonal sets every diagonal element of m to v. O(min(r,c)).
func FillDiagonal[T Scalar](m *Dense[T], v T) error {
	if m == nil {
		return fmt.Errorf("FillDiagonal: %w", ErrNilMatrix)
	}
	n := min(m.rows, m.cols)
	for i := 0; i < n; i++ {
		m.data[i*m.stride+i] = v
	}
	return nil
}

// Trace returns the sum of the diagonal elements of a square matrix.
// O(n).
func Trace[T Scalar](m *Dense[T]) (T, error) {
	var zero T
	if m == nil {
		return zero, fmt.Errorf("Trace: %w", ErrNilMatrix)
	}
	if m.rows != m.cols {
		return zero, fmt.Errorf("Trace: %w", ErrNonSquare)
	}
	sum := zero
	for i := 0; i < m.rows; i++ {
		sum += m.data[i*m.stride+i]
	}
	return sum, nil
}
