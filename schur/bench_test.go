// Package schur_test provides benchmarks for the divide-and-conquer stages.
package schur_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/numkit/spectral/matrix"
	"github.com/numkit/spectral/schur"
)

// gaussianSquare builds a seeded n×n Gaussian matrix with a dominant
// diagonal so every benchmark input is well separated from singularity.
func gaussianSquare(n int, seed int64) *matrix.Dense[float64] {
	rng := rand.New(rand.NewSource(seed))
	a, _ := matrix.NewDense[float64](n, n)
	matrix.GaussianFill(a, rng)
	_ = matrix.UpdateDiagonal(a, float64(n))
	return a
}

// BenchmarkPartition measures the seam scan across sizes. The scan is
// O(n^2) over the strictly lower triangle and allocation-free after the
// two accumulator slices.
func BenchmarkPartition(b *testing.B) {
	for _, n := range []int{32, 128, 512} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := schur.Local(gaussianSquare(n, 1))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = schur.Partition(a)
			}
		})
	}
}

// BenchmarkSignDivide measures one deterministic split: the sign
// iteration dominates, so this is effectively a Newton-plus-QR benchmark.
func BenchmarkSignDivide(b *testing.B) {
	for _, n := range []int{32, 64} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			src := gaussianSquare(n, 2)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				a := src.Clone() // SignDivide mutates both operands
				g := src.Clone()
				b.StartTimer()
				_, _ = schur.SignDivide(schur.Local(a), schur.Local(g), false)
			}
		})
	}
}

// BenchmarkSDC measures the full recursion against the direct solver
// alone: cutoff=n degenerates to one leaf solve, the small cutoff forces
// the whole divide-and-conquer machinery.
func BenchmarkSDC(b *testing.B) {
	const n = 64
	src := gaussianSquare(n, 3)
	for _, tc := range []struct {
		name   string
		cutoff int
	}{
		{"direct", n},
		{"cutoff=16", 16},
	} {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				a := src.Clone()
				q, _ := matrix.NewIdentity[float64](n)
				b.StartTimer()
				_ = schur.SDC(schur.Local(a), schur.Local(q),
					schur.WithCutoff(tc.cutoff), schur.WithSeed(5))
			}
		})
	}
}
