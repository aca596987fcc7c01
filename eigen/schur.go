// Package eigen: the public entry point, generic over scalar flavor.

package eigen

import (
	"fmt"

	"github.com/numkit/spectral/matrix"
)

// Schur overwrites a with its Schur form and, if q is non-nil, overwrites q
// with the accumulated unitary factor so that (original a) = q·T·qᴴ.
// It returns the eigenvalues in diagonal order. a must be square; q, when
// supplied, must share a's shape (its previous contents are discarded).
func Schur[T matrix.Scalar](a, q *matrix.Dense[T]) ([]complex128, error) {
	if a == nil {
		return nil, fmt.Errorf("Schur: %w", matrix.ErrNilMatrix)
	}
	if a.Rows() != a.Cols() {
		return nil, fmt.Errorf("Schur: %dx%d: %w", a.Rows(), a.Cols(), ErrNonSquare)
	}
	if q != nil && (q.Rows() != a.Rows() || q.Cols() != a.Cols()) {
		return nil, fmt.Errorf("Schur: vectors %dx%d for %d: %w",
			q.Rows(), q.Cols(), a.Rows(), ErrShapeMismatch)
	}

	switch m := any(a).(type) {
	case *matrix.Dense[float64]:
		var v *matrix.Dense[float64]
		if q != nil {
			v = any(q).(*matrix.Dense[float64])
		}
		return realSchur(m, v)
	case *matrix.Dense[complex128]:
		var v *matrix.Dense[complex128]
		if q != nil {
			v = any(q).(*matrix.Dense[complex128])
		}
		return complexSchur(m, v)
	}
	return nil, fmt.Errorf("Schur: %w", ErrNonSquare) // unreachable: Scalar is closed
}
