// Package eigen is the direct (non-recursive) dense Schur solver: the base
// case the divide-and-conquer layer bottoms out on once a diagonal block is
// small enough to handle in one memory space.
//
// 🚀 What it computes
//
//	Schur overwrites a square matrix A with a Schur form T and, on request,
//	accumulates the unitary similarity Q with A = Q·T·Qᴴ:
//	  • float64    — Householder reduction to Hessenberg form followed by
//	    the Francis double-shift QR iteration; T is quasi-triangular (1×1
//	    real blocks and 2×2 blocks carrying complex-conjugate pairs) and Q
//	    is real orthogonal.
//	  • complex128 — Givens-based Hessenberg reduction followed by the
//	    Wilkinson-shifted QR iteration with complex plane rotations; T is
//	    genuinely upper triangular.
//
// Eigenvalues are returned as complex128 in both flavors, in diagonal
// order. The iteration descends from the classic EISPACK/Handbook
// procedures (orthes/ortran/hqr2) and their LAPACK refinements.
//
// Complexity: O(n^3) with a modest constant; intended for blocks up to a
// few hundred, which is exactly the regime the recursion's cutoff creates.
package eigen
