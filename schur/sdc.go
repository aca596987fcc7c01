// Package schur: the recursive divide-and-conquer driver.

package schur

import (
	"fmt"

	"github.com/numkit/spectral/eigen"
	"github.com/numkit/spectral/matrix"
)

// orthTol is the acceptance threshold for the accumulated factor's
// unitarity defect, scaled with problem size.
func orthTol(n int) float64 {
	return 100 * float64(n) * matrix.Epsilon
}

// UnitarityDefect returns ‖qᴴ·q − I‖max, the distance of q from exact
// unitarity in the max-magnitude norm.
func UnitarityDefect[T matrix.Scalar](q *matrix.Dense[T]) (float64, error) {
	if q == nil {
		return 0, fmt.Errorf("UnitarityDefect: %w", ErrNilOperand)
	}
	n := q.Rows()
	if n != q.Cols() {
		return 0, fmt.Errorf("UnitarityDefect: %dx%d: %w", n, q.Cols(), ErrNonSquare)
	}
	prod, err := matrix.NewDense[T](n, n)
	if err != nil {
		return 0, fmt.Errorf("UnitarityDefect: %w", err)
	}
	one := matrix.FromFloat[T](1)
	if err = matrix.Gemm(matrix.ConjTrans, matrix.NoTrans, one, q, q, prod); err != nil {
		return 0, fmt.Errorf("UnitarityDefect: %w", err)
	}
	if err = matrix.UpdateDiagonal(prod, matrix.FromFloat[T](-1)); err != nil {
		return 0, fmt.Errorf("UnitarityDefect: %w", err)
	}
	return matrix.MaxAbs(prod), nil
}

// SDC overwrites a with its (approximate) Schur form by spectral
// divide-and-conquer and, when q is non-nil, accumulates the similarity
// transform into q (previous contents discarded) so that
// (original a) = q·T·qᴴ.
//
// Blocks of size at most the cutoff go straight to the direct solver;
// larger blocks are split by SpectralDivide and the two diagonal quadrants
// recurse independently over aliasing views, each child's transform folded
// into the parent's column blocks on the way back up. The top-right
// coupling block is rebuilt in the final basis (Zₗᴴ·ATR·Z_r) unless
// WithoutCoupling is set; without q the off-diagonal blocks are left as the
// divides put them, exactly as a coupling-free caller expects.
//
// After the recursion returns with q accumulated, the factor's unitarity
// defect is checked once against a size-scaled tolerance;
// ErrLostOrthogonality reports a violation. A 1x1 matrix is already
// triangular and takes the leaf path with no projector work.
//
// Both flavors run through the same code path: a grid operand's collectives
// fire inside Partition, SpectralDivide and the leaf solve, and every rank
// of the group must call SDC with its mirrored operand for the run to make
// progress.
func SDC[T matrix.Scalar](a, q *Operand[T], opts ...Option) error {
	o := newOptions(opts...)
	if err := checkSquare(a); err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	if q != nil {
		if err := checkPair(a, q); err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
	}
	n := a.d.Rows()
	if err := divideConquer(a, q, &o); err != nil {
		return err
	}

	if q != nil {
		defect, err := UnitarityDefect(q.d)
		if err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
		if defect > orthTol(n) {
			return fmt.Errorf("SDC: defect %.3e exceeds %.3e: %w",
				defect, orthTol(n), ErrLostOrthogonality)
		}
	}
	return nil
}

func divideConquer[T matrix.Scalar](a, q *Operand[T], o *options) error {
	n := a.d.Rows()
	if n <= o.cutoff || n <= 1 {
		return solveLeaf(a, q, o)
	}

	part, err := spectralDivide(a, q, o)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	o.logger.Debug().
		Int("n", n).
		Int("index", part.Index).
		Float64("value", part.Value).
		Msg("split accepted")

	k := part.Index
	atl, err := a.view(0, 0, k, k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	abr, err := a.view(k, k, n-k, n-k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}

	if q == nil {
		if err = divideConquer(atl, nil, o); err != nil {
			return err
		}
		return divideConquer(abr, nil, o)
	}

	// Recurse with fresh child transforms.
	ztd, err := matrix.NewDense[T](k, k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	zt := &Operand[T]{d: ztd, comm: a.comm, rowOff: a.rowOff}
	if err = divideConquer(atl, zt, o); err != nil {
		return err
	}
	zbd, err := matrix.NewDense[T](n-k, n-k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	zb := &Operand[T]{d: zbd, comm: a.comm, rowOff: a.rowOff + k}
	if err = divideConquer(abr, zb, o); err != nil {
		return err
	}

	// Fold the child transforms into this level's column blocks.
	one := matrix.FromFloat[T](1)
	ql, err := q.d.View(0, 0, n, k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	scratch := ql.Clone()
	if err = matrix.Gemm(matrix.NoTrans, matrix.NoTrans, one, scratch, ztd, ql); err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	qr, err := q.d.View(0, k, n, n-k)
	if err != nil {
		return fmt.Errorf("SDC: %w", err)
	}
	scratch = qr.Clone()
	if err = matrix.Gemm(matrix.NoTrans, matrix.NoTrans, one, scratch, zbd, qr); err != nil {
		return fmt.Errorf("SDC: %w", err)
	}

	// Rebuild the coupling block in the children's final bases.
	if o.coupling {
		atr, err := a.d.View(0, k, k, n-k)
		if err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
		mid, err := matrix.NewDense[T](k, n-k)
		if err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
		if err = matrix.Gemm(matrix.ConjTrans, matrix.NoTrans, one, ztd, atr, mid); err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
		if err = matrix.Gemm(matrix.NoTrans, matrix.NoTrans, one, mid, zbd, atr); err != nil {
			return fmt.Errorf("SDC: %w", err)
		}
	}
	return nil
}

// solveLeaf runs the direct solver on a block at or below the cutoff. On a
// grid the root rank solves its mirrored copy and the result is broadcast,
// the mirrored realization of gather/solve/scatter.
func solveLeaf[T matrix.Scalar](a, q *Operand[T], o *options) error {
	solve := leafSolver(o, func(m, v *matrix.Dense[T]) ([]complex128, error) {
		return eigen.Schur(m, v)
	})

	var qd *matrix.Dense[T]
	if q != nil {
		qd = q.d
	}
	if a.onRoot() {
		o.metrics.leafSolve()
		o.logger.Debug().Int("n", a.d.Rows()).Msg("leaf solve")
		if _, err := solve(a.d, qd); err != nil {
			return fmt.Errorf("SDC: leaf: %w", err)
		}
	}
	if a.comm == nil {
		return nil
	}
	if err := shareDense(a.comm, a.d); err != nil {
		return fmt.Errorf("SDC: leaf: %w", err)
	}
	if qd != nil {
		if err := shareDense(a.comm, qd); err != nil {
			return fmt.Errorf("SDC: leaf: %w", err)
		}
	}
	return nil
}
