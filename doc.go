// Package spectral is an in-memory toolkit for dense nonsymmetric
// eigenvalue work: Schur decompositions computed by spectral
// divide-and-conquer, runnable locally or across a process grid of
// mirrored ranks.
//
// 🚀 What is spectral?
//
//	A deterministic numerical library that brings together:
//		• Dense kernels: multiply, QR (plain & pivoted), LU, triangular solves
//		• The Newton matrix sign iteration with norm scaling
//		• Classic Hessenberg + shifted-QR Schur solvers for small blocks
//		• Randomized spectral divide-and-conquer for the large ones
//		• A goroutine-backed process grid with MPI-style collectives
//
// ✨ Why choose spectral?
//
//   - One generic code path - float64 and complex128 share every kernel
//   - Deterministic by construction - every random draw flows from a seeded source
//   - Local or distributed - the same call works on a *grid.Comm or on nil
//   - Observable - structured logs via zerolog, counters via Prometheus
//
// Under the hood, everything is organized under four subpackages:
//
//	matrix/ — generic dense storage, factorizations and the sign function
//	eigen/  — direct Schur solvers (Francis double shift, single complex shift)
//	grid/   — in-process rank groups, barriers, broadcasts and reductions
//	schur/  — partitioning, sign-based splitting and the full recursion
//
// Quick start:
//
//	a, _ := matrix.NewDense[float64](n, n)
//	// ... fill a ...
//	q, _ := matrix.NewIdentity[float64](n)
//	err := schur.SDC(schur.Local(a), schur.Local(q), schur.WithCutoff(128))
//
// After a successful call, a holds the (quasi-)triangular Schur factor and
// q the accumulated unitary, with a₀ = q·a·qᴴ up to roundoff.
//
// See each subpackage's doc.go for invariants, options and edge cases.
package spectral
