// Package schur: sentinel errors. Matched with errors.Is.

package schur

import "errors"

var (
	// ErrNilOperand signals a nil operand or an operand without storage.
	ErrNilOperand = errors.New("schur: nil operand")

	// ErrNonSquare signals a non-square input matrix.
	ErrNonSquare = errors.New("schur: matrix is not square")

	// ErrMatrixTooSmall signals a divide request on a matrix too small to
	// split (fewer than two rows).
	ErrMatrixTooSmall = errors.New("schur: matrix too small to split")

	// ErrShapeMismatch signals companion matrices whose shapes disagree.
	ErrShapeMismatch = errors.New("schur: operand shape mismatch")

	// ErrGridMismatch signals companion operands bound to different
	// communicators.
	ErrGridMismatch = errors.New("schur: operands on different grids")

	// ErrLostOrthogonality signals that the accumulated transform failed
	// its unitarity check after the decomposition completed.
	ErrLostOrthogonality = errors.New("schur: accumulated transform lost orthogonality")
)
