// SPDX-License-Identifier: MIT
// Package matrix: Dense, the single concrete storage type of the engine.
// Row-major flat slice with an explicit stride so that sub-block views can
// alias a disjoint region of the parent's backing storage without copying.

package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major r×c matrix of T values. A Dense produced by View
// shares its backing slice with the parent; element (i,j) lives at
// data[i*stride+j]. Freshly constructed matrices have stride == cols.
type Dense[T Scalar] struct {
	rows, cols int
	stride     int
	data       []T
}

// NewDense creates a rows×cols matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewDense[T Scalar](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	return &Dense[T]{
		rows:   rows,
		cols:   cols,
		stride: cols,
		data:   make([]T, rows*cols),
	}, nil
}

// NewIdentity creates the n×n identity matrix.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity[T Scalar](n int) (*Dense[T], error) {
	m, err := NewDense[T](n, n)
	if err != nil {
		return nil, err
	}
	one := FromFloat[T](1)
	for i := 0; i < n; i++ {
		m.data[i*m.stride+i] = one
	}
	return m, nil
}

// Rows returns the number of rows. O(1).
func (m *Dense[T]) Rows() int { return m.rows }

// Cols returns the number of columns. O(1).
func (m *Dense[T]) Cols() int { return m.cols }

// Stride returns the distance in the backing slice between the starts of
// consecutive rows. Equals Cols for owned matrices, larger for views. O(1).
func (m *Dense[T]) Stride() int { return m.stride }

// Data exposes the backing slice for kernel authors. Element (i,j) is
// Data()[i*Stride()+j]. Mutating it mutates the matrix (and the parent, if
// this Dense is a view); the slice must not be resized.
func (m *Dense[T]) Data() []T { return m.data }

// at reads element (i,j) without bounds checks. Kernels call it only after
// validating shapes once up front.
func (m *Dense[T]) at(i, j int) T { return m.data[i*m.stride+j] }

// set writes element (i,j) without bounds checks.
func (m *Dense[T]) set(i, j int, v T) { m.data[i*m.stride+j] = v }

// At retrieves the element at (row, col), or ErrOutOfRange.
func (m *Dense[T]) At(row, col int) (T, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		var zero T
		return zero, fmt.Errorf("Dense.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return m.at(row, col), nil
}

// Set assigns v at (row, col), or returns ErrOutOfRange.
func (m *Dense[T]) Set(row, col int, v T) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("Dense.Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	m.set(row, col, v)
	return nil
}

// View returns the rows×cols sub-block whose top-left corner is (row, col).
// The view ALIASES the parent: no element is copied, writes are visible in
// both directions, and the view must not outlive mutations that reshape the
// parent. Degenerate (zero-extent) views are rejected.
// Complexity: O(1).
func (m *Dense[T]) View(row, col, rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Dense.View(%d,%d,%d,%d): %w", row, col, rows, cols, ErrBadShape)
	}
	if row < 0 || col < 0 || row+rows > m.rows || col+cols > m.cols {
		return nil, fmt.Errorf("Dense.View(%d,%d,%d,%d): %w", row, col, rows, cols, ErrOutOfRange)
	}
	return &Dense[T]{
		rows:   rows,
		cols:   cols,
		stride: m.stride,
		data:   m.data[row*m.stride+col:],
	}, nil
}

// Clone returns a deep copy with fresh, tightly packed storage.
// Complexity: O(r*c).
func (m *Dense[T]) Clone() *Dense[T] {
	out := &Dense[T]{
		rows:   m.rows,
		cols:   m.cols,
		stride: m.cols,
		data:   make([]T, m.rows*m.cols),
	}
	for i := 0; i < m.rows; i++ {
		copy(out.data[i*out.stride:i*out.stride+m.cols], m.data[i*m.stride:i*m.stride+m.cols])
	}
	return out
}

// CopyFrom overwrites m with the contents of src. Shapes must match exactly;
// views are written through to their parents. Complexity: O(r*c).
func (m *Dense[T]) CopyFrom(src *Dense[T]) error {
	if src == nil {
		return fmt.Errorf("Dense.CopyFrom: %w", ErrNilMatrix)
	}
	if src.rows != m.rows || src.cols != m.cols {
		return fmt.Errorf("Dense.CopyFrom: %dx%d into %dx%d: %w",
			src.rows, src.cols, m.rows, m.cols, ErrDimensionMismatch)
	}
	for i := 0; i < m.rows; i++ {
		copy(m.data[i*m.stride:i*m.stride+m.cols], src.data[i*src.stride:i*src.stride+src.cols])
	}
	return nil
}

// Fill sets every element of m to v. Complexity: O(r*c).
func (m *Dense[T]) Fill(v T) {
	for i := 0; i < m.rows; i++ {
		row := m.data[i*m.stride : i*m.stride+m.cols]
		for j := range row {
			row[j] = v
		}
	}
}

// String implements fmt.Stringer for debugging.
func (m *Dense[T]) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		b.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v", m.at(i, j))
		}
		b.WriteString("]\n")
	}
	return b.String()
}
