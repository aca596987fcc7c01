// SPDX-License-Identifier: MIT
// Package matrix: general matrix multiply with adjoint options.

package matrix

import "fmt"

// Op selects how an operand enters a multiply.
type Op int

const (
	// NoTrans uses the operand as stored.
	NoTrans Op = iota
	// ConjTrans uses the conjugate transpose (plain transpose for float64).
	ConjTrans
)

// opDims returns the effective (rows, cols) of op(m).
func opDims[T Scalar](trans Op, m *Dense[T]) (int, int) {
	if trans == ConjTrans {
		return m.cols, m.rows
	}
	return m.rows, m.cols
}

// opAt reads element (i,j) of op(m) without bounds checks.
func opAt[T Scalar](trans Op, m *Dense[T], i, j int) T {
	if trans == ConjTrans {
		return Conj(m.at(j, i))
	}
	return m.at(i, j)
}

// Gemm computes c := alpha * op(a) * op(b), overwriting c entirely.
// c must not alias a or b (views into the same backing storage included);
// shapes are validated up front, then a deterministic i→k→j loop runs on
// the backing slices. Complexity: O(m*n*k).
func Gemm[T Scalar](transA, transB Op, alpha T, a, b, c *Dense[T]) error {
	if a == nil || b == nil || c == nil {
		return fmt.Errorf("Gemm: %w", ErrNilMatrix)
	}
	am, ak := opDims(transA, a)
	bk, bn := opDims(transB, b)
	if ak != bk {
		return fmt.Errorf("Gemm: inner %d vs %d: %w", ak, bk, ErrDimensionMismatch)
	}
	if c.rows != am || c.cols != bn {
		return fmt.Errorf("Gemm: result %dx%d for %dx%d: %w",
			c.rows, c.cols, am, bn, ErrDimensionMismatch)
	}

	var zero T
	c.Fill(zero)
	for i := 0; i < am; i++ {
		crow := c.data[i*c.stride : i*c.stride+bn]
		for k := 0; k < ak; k++ {
			aik := alpha * opAt(transA, a, i, k)
			if aik == zero {
				continue // skip structural zeros (cheap win on triangular operands)
			}
			for j := 0; j < bn; j++ {
				crow[j] += aik * opAt(transB, b, k, j)
			}
		}
	}
	return nil
}
