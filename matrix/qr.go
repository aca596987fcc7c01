// SPDX-License-Identifier: MIT
// Package matrix: Householder QR with packed reflector storage.
//
// A factored matrix keeps R in and above the diagonal and the scaled
// reflector tails strictly below it (the implicit leading 1 of each
// reflector is not stored); the returned tau slice holds one coefficient
// per reflector. Q is never materialized unless FormQ is called; the
// divide-and-conquer layer applies reflectors directly whenever the caller
// does not need the factor returned.

package matrix

import (
	"fmt"
	"math"
)

// Side selects which side a factor is applied from.
type Side int

const (
	// Left applies the factor from the left: B := op(Q) * B.
	Left Side = iota
	// Right applies the factor from the right: B := B * op(Q).
	Right
)

// reflector builds the Householder reflector annihilating a[j+1:m, j].
// On return a(j,j) holds beta (real-axis by construction), the scaled tail
// of v sits in a[j+1:m, j] with the leading 1 implicit, and tau is returned.
// tau == 0 means the column was already triangular at this position.
func reflector[T Scalar](a *Dense[T], j int) T {
	m := a.rows
	alpha := a.at(j, j)

	xnorm := 0.0
	for i := j + 1; i < m; i++ {
		xnorm = math.Hypot(xnorm, Abs(a.at(i, j)))
	}
	ar, ai := Real(alpha), Imag(alpha)
	if xnorm == 0 && ai == 0 {
		return FromFloat[T](0)
	}

	// beta keeps the opposite sign of Re(alpha) to avoid cancellation.
	beta := -math.Copysign(math.Hypot(math.Hypot(ar, ai), xnorm), ar)
	tau := FromComplex[T](complex((beta-ar)/beta, -ai/beta))
	scale := FromFloat[T](1) / (alpha - FromFloat[T](beta))
	for i := j + 1; i < m; i++ {
		a.set(i, j, a.at(i, j)*scale)
	}
	a.set(j, j, FromFloat[T](beta))
	return tau
}

// applyReflectorLeft applies H = I - tau*v*vᴴ to every column of b, where v
// is packed in column j of qr (rows j..m-1, leading 1 implicit). Rows of b
// must be index-aligned with qr.
func applyReflectorLeft[T Scalar](qr *Dense[T], j int, tau T, b *Dense[T]) {
	var zero T
	if tau == zero {
		return
	}
	m := qr.rows
	for c := 0; c < b.cols; c++ {
		s := b.at(j, c)
		for i := j + 1; i < m; i++ {
			s += Conj(qr.at(i, j)) * b.at(i, c)
		}
		s *= tau
		b.set(j, c, b.at(j, c)-s)
		for i := j + 1; i < m; i++ {
			b.set(i, c, b.at(i, c)-s*qr.at(i, j))
		}
	}
}

// applyReflectorRight applies H = I - tau*v*vᴴ to every row of b from the
// right; columns of b must be index-aligned with the rows of qr.
func applyReflectorRight[T Scalar](qr *Dense[T], j int, tau T, b *Dense[T]) {
	var zero T
	if tau == zero {
		return
	}
	m := qr.rows
	for r := 0; r < b.rows; r++ {
		s := b.at(r, j)
		for i := j + 1; i < m; i++ {
			s += b.at(r, i) * qr.at(i, j)
		}
		s *= tau
		b.set(r, j, b.at(r, j)-s)
		for i := j + 1; i < m; i++ {
			b.set(r, i, b.at(r, i)-s*Conj(qr.at(i, j)))
		}
	}
}

// QR computes the unpivoted Householder factorization of a in place and
// returns the reflector coefficients. Complexity: O(m*n^2).
func QR[T Scalar](a *Dense[T]) ([]T, error) {
	if a == nil {
		return nil, fmt.Errorf("QR: %w", ErrNilMatrix)
	}
	k := min(a.rows, a.cols)
	tau := make([]T, k)
	for j := 0; j < k; j++ {
		tau[j] = reflector(a, j)
		if j+1 < a.cols {
			trailing, err := a.View(0, j+1, a.rows, a.cols-j-1)
			if err != nil {
				return nil, fmt.Errorf("QR: %w", err)
			}
			// The sweep accumulates R = Qᴴ·a, so each step applies the
			// adjoint reflector: Hᴴ = I - conj(tau)·v·vᴴ.
			applyReflectorLeft(a, j, Conj(tau[j]), trailing)
		}
	}
	return tau, nil
}

// QRPivoted computes the column-pivoted factorization a*P = Q*R in place.
// It returns the reflector coefficients and the permutation: perm[j] is the
// original index of the column standing at position j. Remaining column
// norms are recomputed exactly at every step, trading flops for robustness.
// Complexity: O(m*n^2).
func QRPivoted[T Scalar](a *Dense[T]) ([]T, []int, error) {
	if a == nil {
		return nil, nil, fmt.Errorf("QRPivoted: %w", ErrNilMatrix)
	}
	m, n := a.rows, a.cols
	k := min(m, n)
	tau := make([]T, k)
	perm := make([]int, n)
	for j := range perm {
		perm[j] = j
	}

	for j := 0; j < k; j++ {
		// Select the remaining column with the largest trailing norm.
		pivot, best := j, -1.0
		for c := j; c < n; c++ {
			nrm := 0.0
			for i := j; i < m; i++ {
				nrm = math.Hypot(nrm, Abs(a.at(i, c)))
			}
			if nrm > best {
				pivot, best = c, nrm
			}
		}
		if pivot != j {
			for i := 0; i < m; i++ {
				t := a.at(i, j)
				a.set(i, j, a.at(i, pivot))
				a.set(i, pivot, t)
			}
			perm[j], perm[pivot] = perm[pivot], perm[j]
		}

		tau[j] = reflector(a, j)
		if j+1 < n {
			trailing, err := a.View(0, j+1, m, n-j-1)
			if err != nil {
				return nil, nil, fmt.Errorf("QRPivoted: %w", err)
			}
			// Adjoint reflector, same as the unpivoted sweep.
			applyReflectorLeft(a, j, Conj(tau[j]), trailing)
		}
	}
	return tau, perm, nil
}

// ApplyQ applies the implicit factor of a QR factorization to b in place:
// B := op(Q)*B (side Left) or B := B*op(Q) (side Right). The factored panel
// and tau must come from QR/QRPivoted; the aligned extent of b must equal
// the row count of qr. Complexity: O(k * size of b).
func ApplyQ[T Scalar](side Side, trans Op, qr *Dense[T], tau []T, b *Dense[T]) error {
	if qr == nil || b == nil {
		return fmt.Errorf("ApplyQ: %w", ErrNilMatrix)
	}
	if side == Left && b.rows != qr.rows {
		return fmt.Errorf("ApplyQ: %d rows for factor of %d: %w", b.rows, qr.rows, ErrDimensionMismatch)
	}
	if side == Right && b.cols != qr.rows {
		return fmt.Errorf("ApplyQ: %d cols for factor of %d: %w", b.cols, qr.rows, ErrDimensionMismatch)
	}

	k := len(tau)
	switch {
	case side == Left && trans == NoTrans: // B := Q*B = H_0(...(H_{k-1}*B))
		for j := k - 1; j >= 0; j-- {
			applyReflectorLeft(qr, j, tau[j], b)
		}
	case side == Left && trans == ConjTrans: // B := Qᴴ*B = H_{k-1}ᴴ(...(H_0ᴴ*B))
		for j := 0; j < k; j++ {
			applyReflectorLeft(qr, j, Conj(tau[j]), b)
		}
	case side == Right && trans == NoTrans: // B := B*Q = ((B*H_0)...)*H_{k-1}
		for j := 0; j < k; j++ {
			applyReflectorRight(qr, j, tau[j], b)
		}
	default: // Right, ConjTrans: B := B*Qᴴ = ((B*H_{k-1}ᴴ)...)*H_0ᴴ
		for j := k - 1; j >= 0; j-- {
			applyReflectorRight(qr, j, Conj(tau[j]), b)
		}
	}
	return nil
}

// FormQ expands the packed reflectors into the explicit m×m unitary factor,
// overwriting q. Complexity: O(k*m^2).
func FormQ[T Scalar](qr *Dense[T], tau []T, q *Dense[T]) error {
	if qr == nil || q == nil {
		return fmt.Errorf("FormQ: %w", ErrNilMatrix)
	}
	if q.rows != qr.rows || q.cols != qr.rows {
		return fmt.Errorf("FormQ: target %dx%d for factor of %d: %w",
			q.rows, q.cols, qr.rows, ErrDimensionMismatch)
	}
	var zero T
	q.Fill(zero)
	one := FromFloat[T](1)
	for i := 0; i < q.rows; i++ {
		q.set(i, i, one)
	}
	return ApplyQ(Left, NoTrans, qr, tau, q)
}
