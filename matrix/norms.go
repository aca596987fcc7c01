// SPDX-License-Identifier: MIT
// Package matrix: norm kernels. All return non-negative float64 regardless
// of scalar flavor; deterministic j→i (OneNorm) / i→j (InfinityNorm) orders.

package matrix

// OneNorm returns the maximum absolute column sum of m. O(r*c).
func OneNorm[T Scalar](m *Dense[T]) float64 {
	maxSum := 0.0
	for j := 0; j < m.cols; j++ {
		sum := 0.0
		for i := 0; i < m.rows; i++ {
			sum += Abs(m.at(i, j))
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum
}

// InfinityNorm returns the maximum absolute row sum of m. O(r*c).
func InfinityNorm[T Scalar](m *Dense[T]) float64 {
	maxSum := 0.0
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += Abs(m.at(i, j))
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum
}

// MaxAbs returns the largest absolute element value of m. O(r*c).
func MaxAbs[T Scalar](m *Dense[T]) float64 {
	maxAbs := 0.0
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if a := Abs(m.at(i, j)); a > maxAbs {
				maxAbs = a
			}
		}
	}
	return maxAbs
}
