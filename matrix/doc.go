// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra engine used by the
// spectral solvers: a generic row-major matrix over real or complex scalars,
// aliasing sub-block views, and the factorization kernels the divide-and-
// conquer layer consumes.
//
// 🚀 What lives here?
//
//	• Dense[T]     — flat, stride-aware storage for float64 or complex128,
//	                 with O(1) sub-block views that share the parent's backing
//	                 slice (a view never copies, never owns).
//	• Level-1/2/3  — Scale, UpdateDiagonal, Trace, OneNorm/InfinityNorm,
//	                 general multiply with adjoint options (Gemm).
//	• Factorizations — Householder QR (unpivoted and column-pivoted) with
//	                 packed reflectors, ApplyQ/FormQ, LU with partial
//	                 pivoting, triangular solves, matrix inversion.
//	• Sign         — the scaled Newton iteration for the matrix sign
//	                 function, the workhorse behind spectral projectors.
//	• Sampling     — Gaussian fills, implicit Haar-random unitaries,
//	                 ball/angle sampling for randomized stabilization.
//
// ✨ Design rules:
//   - One generic implementation per kernel; scalar flavor differences are
//     isolated in the trait helpers of scalar.go (Abs, Conj, FromFloat...).
//   - Public indexers (At/Set) validate and return sentinel errors; kernels
//     validate shapes once up front and then walk the backing slice directly.
//   - Deterministic loop orders everywhere; no global state, no hidden
//     randomness: samplers take an explicit *rand.Rand.
//
// Complexity is documented per kernel. All errors are package sentinels
// (errors.go) matched with errors.Is.
package matrix
