// Package grid provides the process-group substrate for the distributed
// flavor of the spectral solvers: a fixed-size group of cooperating ranks
// (goroutines) and the synchronous collectives they coordinate through.
//
// 🚀 Model
//
//	A Group of size P runs one user function per rank (Group.Run, backed by
//	errgroup). Ranks execute the same program in lockstep (SPMD); every
//	collective (AllReduceSum, Broadcast, Barrier) is a barrier-like
//	rendezvous that blocks until all P ranks have entered it. A rank that
//	skips a collective the others entered deadlocks the group, exactly like
//	its message-passing counterpart; context cancellation (an erroring rank
//	cancels the errgroup context) is the escape hatch.
//
// ✨ Guarantees
//
//   - Collectives complete on all ranks or on none: a mismatched call
//     (different operation, payload length, or root across ranks) poisons
//     the rendezvous and surfaces ErrCollectiveMismatch; partial completion
//     would leave ranks with inconsistent views, so it is fatal.
//   - Broadcast delivers a bit-identical copy of the root's buffer to every
//     rank, which is what makes replicated randomness possible upstream.
//   - AllReduceSum sums per-rank contributions in rank order, so the reduced
//     floats are reproducible run to run, not just identical across ranks.
//   - No global state: a Group is an ordinary value; several groups may run
//     concurrently.
//
// Complexity: O(P·len) per rank per collective, serialized through one
// mutex; this substrate optimizes for correctness and determinism, not for
// bandwidth.
package grid
