// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation
// tag via fmt.Errorf("op: %w", ...)); tests match them with errors.Is.
// Panics are reserved for programmer errors in private helpers.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (r <= 0 or c <= 0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// Public indexers (At/Set) return this, they never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Gemm with inner extents that disagree, or CopyFrom across shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but not supplied.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNilMatrix signals a nil *Dense operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned by LU/Inverse/Sign when an exactly zero pivot
	// makes the matrix numerically non-invertible.
	ErrSingular = errors.New("matrix: matrix is singular")
)
