// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the dense linear-algebra
// kernels: multiply, QR, triangular solves, LU, the sign iteration and the
// randomized samplers.
package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/numkit/spectral/matrix"
)

// maxDiff returns the largest entrywise magnitude difference.
func maxDiff[T matrix.Scalar](t *testing.T, a, b *matrix.Dense[T]) float64 {
	t.Helper()
	require.Equal(t, a.Rows(), b.Rows())
	require.Equal(t, a.Cols(), b.Cols())
	worst := 0.0
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			x, _ := a.At(i, j)
			y, _ := b.At(i, j)
			if d := matrix.Abs(x - y); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// identityDefect returns max|mᴴ·m − I|.
func identityDefect[T matrix.Scalar](t *testing.T, m *matrix.Dense[T]) float64 {
	t.Helper()
	n := m.Rows()
	prod, err := matrix.NewDense[T](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.ConjTrans, matrix.NoTrans, matrix.FromFloat[T](1), m, m, prod))
	require.NoError(t, matrix.UpdateDiagonal(prod, matrix.FromFloat[T](-1)))
	return matrix.MaxAbs(prod)
}

// TestGemmKnownProduct pins a hand-computed 2x2 product with an adjoint.
func TestGemmKnownProduct(t *testing.T) {
	a, err := matrix.NewDense[complex128](2, 2)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1+1i))
	require.NoError(t, a.Set(0, 1, 2))
	require.NoError(t, a.Set(1, 0, 0))
	require.NoError(t, a.Set(1, 1, -1i))
	b, err := matrix.NewIdentity[complex128](2)
	require.NoError(t, err)
	c, err := matrix.NewDense[complex128](2, 2)
	require.NoError(t, err)

	// c := aᴴ·b = aᴴ.
	require.NoError(t, matrix.Gemm(matrix.ConjTrans, matrix.NoTrans, 1, a, b, c))
	v, _ := c.At(0, 0)
	require.Equal(t, complex(1, -1), v) // conj(a00)
	v, _ = c.At(0, 1)
	require.Equal(t, complex(0, 0), v) // conj(a10)
	v, _ = c.At(1, 0)
	require.Equal(t, complex(2, 0), v) // conj(a01)
	v, _ = c.At(1, 1)
	require.Equal(t, complex(0, 1), v) // conj(a11)
}

// TestGemmShapeChecks validates operand conformance.
func TestGemmShapeChecks(t *testing.T) {
	a, err := matrix.NewDense[float64](2, 3)
	require.NoError(t, err)
	b, err := matrix.NewDense[float64](2, 2)
	require.NoError(t, err)
	c, err := matrix.NewDense[float64](2, 2)
	require.NoError(t, err)
	err = matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, a, b, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestQRReconstructs: Q·R must reproduce the input, and Q must be unitary.
func TestQRReconstructs(t *testing.T) {
	const n = 7
	rng := rand.New(rand.NewSource(1))
	a, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)
	a0 := a.Clone()

	tau, err := matrix.QR(a)
	require.NoError(t, err)

	q, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(a, tau, q))
	require.Less(t, identityDefect(t, q), 1e-13)

	// R is the upper triangle of the packed panel.
	r, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := a.At(i, j)
			require.NoError(t, r.Set(i, j, v))
		}
	}
	qr, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, q, r, qr))
	require.Less(t, maxDiff(t, a0, qr), 1e-12)
}

// TestQRComplexReconstructs mirrors the reconstruction for complex scalars.
func TestQRComplexReconstructs(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(2))
	a, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)
	a0 := a.Clone()

	tau, err := matrix.QR(a)
	require.NoError(t, err)
	q, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(a, tau, q))
	require.Less(t, identityDefect(t, q), 1e-13)

	r, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := a.At(i, j)
			require.NoError(t, r.Set(i, j, v))
		}
	}
	qr, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1, q, r, qr))
	require.Less(t, maxDiff(t, a0, qr), 1e-12)
}

// TestQRPivotedReconstructs: Q·R must reproduce the column-permuted input,
// and the R diagonal must be non-increasing in magnitude.
func TestQRPivotedReconstructs(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(3))
	a, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)
	a0 := a.Clone()

	tau, perm, err := matrix.QRPivoted(a)
	require.NoError(t, err)

	q, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(a, tau, q))
	require.Less(t, identityDefect(t, q), 1e-13)

	for j := 1; j < n; j++ {
		prev, _ := a.At(j-1, j-1)
		cur, _ := a.At(j, j)
		require.GreaterOrEqual(t, math.Abs(prev)+1e-14, math.Abs(cur)) // pivoting orders the diagonal
	}

	r, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := a.At(i, j)
			require.NoError(t, r.Set(i, j, v))
		}
	}
	qr, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, q, r, qr))

	// Column j of Q·R is column perm[j] of the original.
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			want, _ := a0.At(i, perm[j])
			got, _ := qr.At(i, j)
			require.InDelta(t, want, got, 1e-12)
		}
	}
}

// TestQRPivotedComplexReconstructs: the pivoted sweep must also apply the
// adjoint reflectors, or complex R drifts off A·P = Q·R while Q stays
// unitary.
func TestQRPivotedComplexReconstructs(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(12))
	a, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)
	a0 := a.Clone()

	tau, perm, err := matrix.QRPivoted(a)
	require.NoError(t, err)
	q, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(a, tau, q))
	require.Less(t, identityDefect(t, q), 1e-13)

	r, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, _ := a.At(i, j)
			require.NoError(t, r.Set(i, j, v))
		}
	}
	qr, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1, q, r, qr))
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			want, _ := a0.At(i, perm[j])
			got, _ := qr.At(i, j)
			require.Less(t, matrix.Abs(got-want), 1e-12) // column j rebuilds original column perm[j]
		}
	}
}

// TestApplyQMatchesFormQ: applying the packed factor must agree with
// multiplying by the explicit one, on every side and transpose.
func TestApplyQMatchesFormQ(t *testing.T) {
	const n = 5
	rng := rand.New(rand.NewSource(4))
	panel, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(panel, rng)
	tau, err := matrix.QR(panel)
	require.NoError(t, err)
	q, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(panel, tau, q))

	b, err := matrix.NewDense[complex128](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(b, rng)

	for _, tc := range []struct {
		side  matrix.Side
		trans matrix.Op
	}{
		{matrix.Left, matrix.NoTrans},
		{matrix.Left, matrix.ConjTrans},
		{matrix.Right, matrix.NoTrans},
		{matrix.Right, matrix.ConjTrans},
	} {
		got := b.Clone()
		require.NoError(t, matrix.ApplyQ(tc.side, tc.trans, panel, tau, got))

		want, err := matrix.NewDense[complex128](n, n)
		require.NoError(t, err)
		if tc.side == matrix.Left {
			require.NoError(t, matrix.Gemm(tc.trans, matrix.NoTrans, 1, q, b, want))
		} else {
			require.NoError(t, matrix.Gemm(matrix.NoTrans, tc.trans, 1, b, q, want))
		}
		require.Less(t, maxDiff(t, want, got), 1e-12)
	}
}

// TestSolveUpper checks the back-substitution against a known system.
func TestSolveUpper(t *testing.T) {
	u, err := matrix.NewDense[float64](3, 3)
	require.NoError(t, err)
	require.NoError(t, u.Set(0, 0, 2))
	require.NoError(t, u.Set(0, 1, 1))
	require.NoError(t, u.Set(0, 2, -1))
	require.NoError(t, u.Set(1, 1, 4))
	require.NoError(t, u.Set(1, 2, 2))
	require.NoError(t, u.Set(2, 2, -2))

	x, err := matrix.NewDense[float64](3, 1)
	require.NoError(t, err)
	require.NoError(t, x.Set(0, 0, 1))
	require.NoError(t, x.Set(1, 0, 2))
	require.NoError(t, x.Set(2, 0, 3))

	// b := U·x, then solve back.
	b, err := matrix.NewDense[float64](3, 1)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, u, x, b))
	require.NoError(t, matrix.SolveUpper(u, b))
	require.Less(t, maxDiff(t, x, b), 1e-13)
}

// TestInverse: A·A⁻¹ must be the identity for a well-conditioned input.
func TestInverse(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(6))
	a, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	matrix.GaussianFill(a, rng)
	require.NoError(t, matrix.UpdateDiagonal(a, 8)) // keep it far from singular
	a0 := a.Clone()

	require.NoError(t, matrix.Inverse(a))
	prod, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, a0, a, prod))
	require.NoError(t, matrix.UpdateDiagonal(prod, -1.0))
	require.Less(t, matrix.MaxAbs(prod), 1e-11)
}

// TestInverseSingular: a singular matrix is reported, not silently mangled.
func TestInverseSingular(t *testing.T) {
	a, err := matrix.NewDense[float64](3, 3)
	require.NoError(t, err)
	require.NoError(t, a.Set(0, 0, 1)) // rank-1 matrix
	require.ErrorIs(t, matrix.Inverse(a), matrix.ErrSingular)
}

// TestSignDiagonalizable: sign of a matrix with known ± spectrum is the
// matching ± projector combination.
func TestSignDiagonalizable(t *testing.T) {
	const n = 6
	rng := rand.New(rand.NewSource(7))
	eigs := []float64{-9, -4, -2, 3, 5, 8}

	qr, tau, err := matrix.Haar[float64](n, rng)
	require.NoError(t, err)
	basis, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(qr, tau, basis))
	d, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.SetDiagonal(d, eigs))
	tmp, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	a, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, basis, d, tmp))
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.ConjTrans, 1.0, tmp, basis, a))

	_, err = matrix.Sign(a)
	require.NoError(t, err)

	// Expected: basis·diag(sign(eigs))·basisᵀ.
	signs := make([]float64, n)
	for i, ev := range eigs {
		signs[i] = math.Copysign(1, ev)
	}
	require.NoError(t, matrix.SetDiagonal(d, signs))
	want, err := matrix.NewDense[float64](n, n)
	require.NoError(t, err)
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.NoTrans, 1.0, basis, d, tmp))
	require.NoError(t, matrix.Gemm(matrix.NoTrans, matrix.ConjTrans, 1.0, tmp, basis, want))
	require.Less(t, maxDiff(t, want, a), 1e-9)
}

// TestHaarIsUnitary: the implicit panel expands to a unitary factor for
// both scalar flavors.
func TestHaarIsUnitary(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	qr, tau, err := matrix.Haar[float64](9, rng)
	require.NoError(t, err)
	q, err := matrix.NewDense[float64](9, 9)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(qr, tau, q))
	require.Less(t, identityDefect(t, q), 1e-13)

	cqr, ctau, err := matrix.Haar[complex128](9, rng)
	require.NoError(t, err)
	cq, err := matrix.NewDense[complex128](9, 9)
	require.NoError(t, err)
	require.NoError(t, matrix.FormQ(cqr, ctau, cq))
	require.Less(t, identityDefect(t, cq), 1e-13)
}

// TestSampleBall: samples stay inside the ball, and a zero radius returns
// the center exactly.
func TestSampleBall(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		v := matrix.SampleBall(2.5, 0.5, rng)
		require.LessOrEqual(t, math.Abs(v-2.5), 0.5)
	}
	require.Equal(t, 2.5, matrix.SampleBall(2.5, 0, rng))

	for i := 0; i < 200; i++ {
		z := matrix.SampleBall(complex(1, -1), 0.25, rng)
		require.LessOrEqual(t, matrix.Abs(z-complex(1, -1)), 0.25)
	}
}

// TestUniformAngle keeps its draws inside [0, 2π).
func TestUniformAngle(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for i := 0; i < 200; i++ {
		a := matrix.UniformAngle(rng)
		require.GreaterOrEqual(t, a, 0.0)
		require.Less(t, a, 2*math.Pi)
	}
}
