// Package schur: the sign-function projector and its randomized wrapper.

package schur

import (
	"fmt"

	"github.com/numkit/spectral/grid"
	"github.com/numkit/spectral/matrix"
)

// projectorBase overwrites g with the approximate spectral projector
// P = ½(sign(g) + I). sign() drives g toward the ±I eigenspace indicators;
// the affine map turns that into an approximate idempotent whose column
// space spans the invariant subspace of the eigenvalues mapped to +1.
func projectorBase[T matrix.Scalar](g *matrix.Dense[T]) error {
	if _, err := matrix.Sign(g); err != nil {
		return err
	}
	if err := matrix.UpdateDiagonal(g, matrix.FromFloat[T](1)); err != nil {
		return err
	}
	return matrix.Scale(matrix.FromFloat[T](0.5), g)
}

// applySimilarity conjugates a by the unitary factor packed in g:
// a := Qᴴ·a·Q. With wantQ the factor is expanded and applied by two dense
// multiplies, leaving the explicit Q in g for the caller; otherwise the
// reflectors are applied directly and g keeps its packed form.
func applySimilarity[T matrix.Scalar](a, g *matrix.Dense[T], tau []T, wantQ bool) error {
	if !wantQ {
		if err := matrix.ApplyQ(matrix.Left, matrix.ConjTrans, g, tau, a); err != nil {
			return err
		}
		return matrix.ApplyQ(matrix.Right, matrix.NoTrans, g, tau, a)
	}
	n := a.Rows()
	q, err := matrix.NewDense[T](n, n)
	if err != nil {
		return err
	}
	if err = matrix.FormQ(g, tau, q); err != nil {
		return err
	}
	b, err := matrix.NewDense[T](n, n)
	if err != nil {
		return err
	}
	one := matrix.FromFloat[T](1)
	if err = matrix.Gemm(matrix.ConjTrans, matrix.NoTrans, one, q, a, b); err != nil {
		return err
	}
	if err = matrix.Gemm(matrix.NoTrans, matrix.NoTrans, one, b, q, a); err != nil {
		return err
	}
	return g.CopyFrom(q)
}

// SignDivide converts the projector generator g into a unitary factor and
// conjugates a by it, steering a toward block upper-triangular form at the
// split the projector selects.
//
// Steps: g := ½(sign(g)+I); column-pivoted QR of g; a := Qᴴ·a·Q (explicit
// multiplies when wantQ, direct reflector application otherwise). With
// wantQ, g holds the explicit factor on return. The returned split is the
// Partition of the transformed a, its value normalized by the one-norm a
// had before the transform.
//
// g must be a rational function of a (a shifted and rotated copy), equal in
// shape and flavor.
func SignDivide[T matrix.Scalar](a, g *Operand[T], wantQ bool) (SplitPoint, error) {
	if err := checkPair(a, g); err != nil {
		return SplitPoint{}, fmt.Errorf("SignDivide: %w", err)
	}
	if err := projectorBase(g.d); err != nil {
		return SplitPoint{}, fmt.Errorf("SignDivide: %w", err)
	}
	tau, _, err := matrix.QRPivoted(g.d)
	if err != nil {
		return SplitPoint{}, fmt.Errorf("SignDivide: %w", err)
	}

	oneA := matrix.OneNorm(a.d)
	if err = applySimilarity(a.d, g.d, tau, wantQ); err != nil {
		return SplitPoint{}, fmt.Errorf("SignDivide: %w", err)
	}

	part, err := Partition(a)
	if err != nil {
		return SplitPoint{}, fmt.Errorf("SignDivide: %w", err)
	}
	if oneA != 0 {
		part.Value /= oneA
	}
	return part, nil
}

// drawHaar produces an implicit Haar-random unitary shared across the
// group: the root rank draws it, everyone else receives it by broadcast.
func drawHaar[T matrix.Scalar](a *Operand[T], n int, o *options) (*matrix.Dense[T], []T, error) {
	if a.comm == nil {
		return matrix.Haar[T](n, o.rng)
	}
	var v *matrix.Dense[T]
	tau := make([]T, n)
	if a.comm.Rank() == rootRank {
		drawn, dtau, err := matrix.Haar[T](n, o.rng)
		if err != nil {
			return nil, nil, err
		}
		v = drawn
		copy(tau, dtau)
	} else {
		var err error
		if v, err = matrix.NewDense[T](n, n); err != nil {
			return nil, nil, err
		}
	}
	if err := shareDense(a.comm, v); err != nil {
		return nil, nil, err
	}
	if err := grid.Broadcast(a.comm, tau, rootRank); err != nil {
		return nil, nil, err
	}
	return v, tau, nil
}

// RandomizedSignDivide wraps SignDivide's projector in a retry loop that
// composes each attempt with a fresh Haar-random unitary, so a generator
// sitting on an ill-conditioned invariant-subspace boundary gets knocked
// off it instead of producing a useless split.
//
// The budget is exact: WithMaxIterations(1) means exactly one attempt. An
// attempt is accepted when its normalized split value reaches the relative
// tolerance (default 50·n·ε) or the budget is exhausted; rejected attempts
// restore a from a snapshot before retrying. Exhausting the budget is not
// an error: the final attempt's split is used, a warning is logged and the
// tolerance-miss counter is bumped.
func RandomizedSignDivide[T matrix.Scalar](a, g *Operand[T], wantQ bool, opts ...Option) (SplitPoint, error) {
	o := newOptions(opts...)
	return randomizedSignDivide(a, g, wantQ, &o)
}

func randomizedSignDivide[T matrix.Scalar](a, g *Operand[T], wantQ bool, o *options) (SplitPoint, error) {
	if err := checkPair(a, g); err != nil {
		return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
	}
	n := a.d.Rows()
	oneA := matrix.OneNorm(a.d)
	relTol := o.relTol
	if relTol == 0 {
		relTol = 50 * float64(n) * matrix.Epsilon
	}

	// The projector base is computed once; every attempt restarts from it.
	s := g.d.Clone()
	if err := projectorBase(s); err != nil {
		return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
	}

	var part SplitPoint
	var snapshot *matrix.Dense[T]
	for it := 0; it < o.maxIts; it++ {
		if err := g.d.CopyFrom(s); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}

		// Randomized unitary equivalence: g := (S·V) refactored by QR.
		v, vtau, err := drawHaar(a, n, o)
		if err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		if err = matrix.ApplyQ(matrix.Right, matrix.NoTrans, v, vtau, g.d); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		tau, err := matrix.QR(g.d)
		if err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}

		// Snapshot a for rollback, then transform and score the attempt.
		if snapshot == nil {
			snapshot = a.d.Clone()
		} else if err = snapshot.CopyFrom(a.d); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		if err = applySimilarity(a.d, g.d, tau, wantQ); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		if part, err = Partition(a); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		if oneA != 0 {
			part.Value /= oneA
		}
		o.metrics.attempt()
		o.logger.Debug().
			Int("attempt", it+1).
			Int("index", part.Index).
			Float64("value", part.Value).
			Msg("sign-divide attempt")

		if part.Value <= relTol || it == o.maxIts-1 {
			break
		}
		if err = a.d.CopyFrom(snapshot); err != nil {
			return SplitPoint{}, fmt.Errorf("RandomizedSignDivide: %w", err)
		}
		o.metrics.retry()
	}

	if part.Value > relTol {
		o.metrics.miss()
		o.logger.Warn().
			Int("n", n).
			Float64("value", part.Value).
			Float64("relTol", relTol).
			Msg("sign-divide budget exhausted; proceeding with best split")
	}
	return part, nil
}
