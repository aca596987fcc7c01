// Package eigen: sentinel errors. Matched with errors.Is.

package eigen

import "errors"

var (
	// ErrNonSquare signals a non-square input matrix.
	ErrNonSquare = errors.New("eigen: matrix is not square")

	// ErrShapeMismatch signals a Schur-vector target whose shape differs
	// from the input matrix.
	ErrShapeMismatch = errors.New("eigen: vector matrix shape mismatch")

	// ErrNoConvergence signals that the QR iteration exhausted its sweep
	// budget; in practice only seen on adversarial inputs.
	ErrNoConvergence = errors.New("eigen: QR iteration did not converge")
)
