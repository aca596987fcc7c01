// SPDX-License-Identifier: MIT
// Package matrix: randomized sampling primitives.
// No global randomness: every sampler takes an explicit *rand.Rand so the
// caller controls determinism and, in the distributed setting, which rank's
// draws become authoritative.

package matrix

import (
	"fmt"
	"math"
	"math/rand"
)

// GaussianFill overwrites m with i.i.d. standard-normal draws. For the
// complex flavor, real and imaginary parts are each N(0, 1/2) so the complex
// entry has unit variance. Draw order is the deterministic i→j walk.
func GaussianFill[T Scalar](m *Dense[T], rng *rand.Rand) {
	invSqrt2 := 1 / math.Sqrt2
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if IsComplex[T]() {
				m.set(i, j, FromComplex[T](complex(
					rng.NormFloat64()*invSqrt2, rng.NormFloat64()*invSqrt2)))
			} else {
				m.set(i, j, FromFloat[T](rng.NormFloat64()))
			}
		}
	}
}

// Haar returns an n×n Haar-style random unitary in implicit packed form:
// the QR panel of a Gaussian matrix plus its reflector coefficients, to be
// consumed by ApplyQ or FormQ. The per-column phase ambiguity of the
// unpivoted factorization is irrelevant for randomized stabilization; any
// subsequent re-factorization absorbs it. Complexity: O(n^3).
func Haar[T Scalar](n int, rng *rand.Rand) (*Dense[T], []T, error) {
	g, err := NewDense[T](n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("Haar: %w", err)
	}
	GaussianFill(g, rng)
	tau, err := QR(g)
	if err != nil {
		return nil, nil, fmt.Errorf("Haar: %w", err)
	}
	return g, tau, nil
}

// SampleBall draws a point uniformly from the ball of the given radius
// around center: an interval for the real flavor, a disk for the complex
// one. A zero radius returns the center exactly.
func SampleBall[T Scalar](center T, radius float64, rng *rand.Rand) T {
	if IsComplex[T]() {
		r := radius * math.Sqrt(rng.Float64())
		theta := UniformAngle(rng)
		return center + FromComplex[T](complex(r*math.Cos(theta), r*math.Sin(theta)))
	}
	return center + FromFloat[T](radius*(2*rng.Float64()-1))
}

// UniformAngle draws an angle uniformly from [0, 2π).
func UniformAngle(rng *rand.Rand) float64 {
	return 2 * math.Pi * rng.Float64()
}
