// Package schur: functional options for the divide-and-conquer driver.
// Invalid option values panic at construction time: a nonsensical knob is a
// programming error, not a runtime condition.

package schur

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/numkit/spectral/matrix"
)

const (
	// DefaultCutoff is the block size at or below which recursion stops
	// and the direct solver runs.
	DefaultCutoff = 256

	// DefaultMaxIterations is the randomized stabilizer's attempt budget.
	DefaultMaxIterations = 10

	// DefaultRelTolerance requests the size-scaled tolerance 50·n·ε.
	DefaultRelTolerance = 0.0

	// DefaultSeed seeds the random source when the caller supplies none,
	// keeping runs reproducible by default.
	DefaultSeed = 1
)

// LeafSolver is the direct Schur routine invoked at recursion leaves.
// It overwrites a with its Schur form, accumulates the unitary factor into
// q when q is non-nil, and returns the eigenvalues.
type LeafSolver[T matrix.Scalar] func(a, q *matrix.Dense[T]) ([]complex128, error)

// options collects the tunables shared by every divide entry point.
type options struct {
	cutoff   int
	maxIts   int
	relTol   float64
	rng      *rand.Rand
	logger   zerolog.Logger
	metrics  *Metrics
	coupling bool
	leaf     any // LeafSolver[T] for the instantiated scalar, or nil
}

// Option configures a divide call.
type Option func(*options)

// newOptions applies opts over the defaults.
func newOptions(opts ...Option) options {
	o := options{
		cutoff:   DefaultCutoff,
		maxIts:   DefaultMaxIterations,
		relTol:   DefaultRelTolerance,
		logger:   zerolog.Nop(),
		coupling: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(DefaultSeed))
	}
	return o
}

// WithCutoff sets the leaf size; n must be positive.
func WithCutoff(n int) Option {
	if n < 1 {
		panic("schur: WithCutoff requires n >= 1")
	}
	return func(o *options) { o.cutoff = n }
}

// WithMaxIterations bounds the stabilizer's retry loop; n must be positive.
// The bound is exact: n = 1 means exactly one attempt.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic("schur: WithMaxIterations requires n >= 1")
	}
	return func(o *options) { o.maxIts = n }
}

// WithRelTolerance sets the accepted normalized coupling residual; zero
// selects the size-scaled default 50·n·ε.
func WithRelTolerance(tol float64) Option {
	if tol < 0 {
		panic("schur: WithRelTolerance requires tol >= 0")
	}
	return func(o *options) { o.relTol = tol }
}

// WithSeed derives the random source from a fixed seed. In the grid flavor
// the source is consulted only on the root rank; other ranks receive every
// drawn value by broadcast.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies the random source directly; r must be non-nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("schur: WithRand requires a non-nil source")
	}
	return func(o *options) { o.rng = r }
}

// WithLogger routes attempt, split and leaf events through l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics wires the optional counters.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithoutCoupling skips the reconstruction of the top-right coupling block
// during reassembly; the diagonal blocks and eigenvalues are unaffected.
func WithoutCoupling() Option {
	return func(o *options) { o.coupling = false }
}

// WithLeafSolver swaps the direct solver used at recursion leaves. The
// solver's scalar type must match the matrices it is used with; a mismatch
// panics at the first leaf.
func WithLeafSolver[T matrix.Scalar](fn LeafSolver[T]) Option {
	if fn == nil {
		panic("schur: WithLeafSolver requires a non-nil solver")
	}
	return func(o *options) { o.leaf = fn }
}

// leafSolver resolves the configured or default solver for T.
func leafSolver[T matrix.Scalar](o *options, fallback LeafSolver[T]) LeafSolver[T] {
	if o.leaf == nil {
		return fallback
	}
	fn, ok := o.leaf.(LeafSolver[T])
	if !ok {
		panic("schur: WithLeafSolver scalar type does not match the operand")
	}
	return fn
}
