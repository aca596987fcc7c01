// Package schur: one level of spectral division.

package schur

import (
	"fmt"
	"math/cmplx"

	"github.com/numkit/spectral/matrix"
)

// SpectralDivide performs one projector-based splitting step on a,
// overwriting it with Qᴴ·a·Q for a unitary Q chosen so the spectrum
// separates across the returned split index. When q is non-nil it receives
// the explicit factor. Usable standalone; SDC calls it at every non-leaf
// level.
//
// The generator is a copy of a with a randomized shift on its diagonal:
// the shift is a ball sample of radius 0.001·‖offdiag(a)‖∞ about the
// negated spectral center −trace(a)/n, so the sign function bisects the
// spectrum near its center rather than exactly on an eigenvalue. The
// complex flavor additionally scales the generator by a random unit-modulus
// rotation, steering the dividing line's direction as well as its offset.
// On a grid both draws happen on the root rank and are broadcast, keeping
// the transform bit-identical everywhere.
//
// A matrix whose off-diagonal part is exactly zero is already in Schur
// form; the step returns a midpoint split with value 0 and, when requested,
// the identity factor, instead of driving the sign iteration into a
// singular generator.
func SpectralDivide[T matrix.Scalar](a, q *Operand[T], opts ...Option) (SplitPoint, error) {
	o := newOptions(opts...)
	return spectralDivide(a, q, &o)
}

func spectralDivide[T matrix.Scalar](a, q *Operand[T], o *options) (SplitPoint, error) {
	if err := checkSquare(a); err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}
	n := a.d.Rows()
	if n < 2 {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: n=%d: %w", n, ErrMatrixTooSmall)
	}
	if q != nil {
		if err := checkPair(a, q); err != nil {
			return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
		}
	}

	// 1) Spectral center and off-diagonal magnitude. The diagonal is
	// parked aside so the norm sees only the off-diagonal part.
	tr, err := matrix.Trace(a.d)
	if err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}
	center := tr / matrix.FromFloat[T](float64(n))
	diag, err := matrix.Diagonal(a.d)
	if err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}
	var zero T
	if err = matrix.FillDiagonal(a.d, zero); err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}
	offDiagInf := matrix.InfinityNorm(a.d)
	if err = matrix.SetDiagonal(a.d, diag); err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}

	if offDiagInf == 0 {
		// Already diagonal. Split down the middle and keep recursing so
		// leaf sizes stay bounded by the cutoff.
		if q != nil {
			q.d.Fill(zero)
			if err = matrix.FillDiagonal(q.d, matrix.FromFloat[T](1)); err != nil {
				return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
			}
		}
		o.logger.Debug().Int("n", n).Msg("matrix already diagonal; midpoint split")
		return SplitPoint{Index: n / 2, Value: 0}, nil
	}

	// 2) Randomized shift, drawn on the root rank and shared.
	var shift T
	if a.onRoot() {
		shift = matrix.SampleBall(-center, 0.001*offDiagInf, o.rng)
	}
	if err = shareScalar(a, &shift); err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}

	// 3) Build the generator. With q it doubles as the transform target so
	// the accepted attempt leaves the explicit factor there.
	var g *Operand[T]
	if q != nil {
		if err = q.d.CopyFrom(a.d); err != nil {
			return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
		}
		g = q
	} else {
		g = a.sibling(a.d.Clone())
	}
	if err = matrix.UpdateDiagonal(g.d, shift); err != nil {
		return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
	}
	if matrix.IsComplex[T]() {
		var gamma T
		if a.onRoot() {
			gamma = matrix.FromComplex[T](cmplx.Rect(1, matrix.UniformAngle(o.rng)))
		}
		if err = shareScalar(a, &gamma); err != nil {
			return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
		}
		if err = matrix.Scale(gamma, g.d); err != nil {
			return SplitPoint{}, fmt.Errorf("SpectralDivide: %w", err)
		}
	}

	return randomizedSignDivide(a, g, q != nil, o)
}
