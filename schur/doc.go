// Package schur computes the Schur decomposition of a dense real or
// complex matrix by randomized spectral divide-and-conquer, running the
// same algorithm whether the matrix lives in one memory space or is
// replicated across an in-process grid of cooperating ranks.
//
// 🚀 What is spectral divide-and-conquer?
//
//	Instead of iterating on the whole matrix, SDC splits the spectrum in
//	two: a shifted copy of A is driven through the matrix sign function
//	into an approximate spectral projector, QR of the projector yields a
//	unitary change of basis, and conjugating A by it pushes one spectral
//	half into the leading block and the other into the trailing block.
//	Each block recurses independently until it is small enough for the
//	direct dense solver, and the per-level factors compose into the global
//	unitary transform.
//
// ✨ Key features:
//   - one generic implementation over float64 and complex128 scalars
//   - randomized Haar stabilization with tolerance-driven retry and
//     in-place rollback (RandomizedSignDivide)
//   - single-step splitting usable standalone (SpectralDivide) or full
//     recursion (SDC), with or without transform accumulation
//   - local and grid flavors behind one Operand handle: collectives are
//     no-ops locally, reductions and broadcasts on a grid
//   - functional options for cutoff, attempt budget, tolerance, seeded
//     randomness, zerolog logging and Prometheus counters
//
// ⚙️ Usage:
//
//	import "github.com/numkit/spectral/schur"
//
//	a, _ := matrix.NewDense[float64](n, n)   // fill a
//	q, _ := matrix.NewDense[float64](n, n)
//	err := schur.SDC(schur.Local(a), schur.Local(q),
//	    schur.WithCutoff(64),
//	    schur.WithSeed(42),
//	)
//	// a now holds the (quasi-)triangular Schur form, q the accumulated
//	// unitary factor with (original a) = q·T·qᴴ.
//
// On a grid, every rank wraps its mirrored copy with schur.OnGrid and
// calls the same entry point inside grid.Group.Run; randomness is drawn on
// rank 0 and broadcast so all ranks apply bit-identical transforms.
//
// Performance:
//
//   - Time:   O(n^3) per level, geometrically decreasing block sizes
//   - Memory: O(n^2) scratch at the top level; recursion works on
//     aliasing sub-views, copying only transform buffers
package schur
