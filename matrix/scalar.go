// SPDX-License-Identifier: MIT
// Package matrix: scalar traits. Every flavor-specific branch in the package
// funnels through the helpers below, so each kernel is written exactly once.

package matrix

import (
	"math"
	"math/cmplx"
)

// Scalar enumerates the element types accepted by every kernel here:
// real (float64) or complex (complex128) double precision.
type Scalar interface {
	float64 | complex128
}

// Epsilon is the double-precision machine epsilon (2^-52), shared by both
// scalar flavors since complex128 is a pair of float64 components.
const Epsilon = 0x1p-52

// Abs returns |v| as a float64 for either scalar flavor.
func Abs[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return 0 // unreachable: Scalar admits exactly the two cases above
}

// Conj returns the complex conjugate of v; the identity for float64.
func Conj[T Scalar](v T) T {
	if x, ok := any(v).(complex128); ok {
		return any(cmplx.Conj(x)).(T)
	}
	return v
}

// Real returns the real component of v.
func Real[T Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return x
	case complex128:
		return real(x)
	}
	return 0
}

// Imag returns the imaginary component of v; always 0 for float64.
func Imag[T Scalar](v T) float64 {
	if x, ok := any(v).(complex128); ok {
		return imag(x)
	}
	return 0
}

// FromFloat embeds a real value into T (imaginary part zero for complex128).
func FromFloat[T Scalar](r float64) T {
	var zero T
	if _, ok := any(zero).(complex128); ok {
		return any(complex(r, 0)).(T)
	}
	return any(r).(T)
}

// FromComplex embeds z into T. On the real flavor the imaginary part is
// dropped, so real-path callers must only pass real-axis values.
func FromComplex[T Scalar](z complex128) T {
	var zero T
	if _, ok := any(zero).(complex128); ok {
		return any(z).(T)
	}
	return any(real(z)).(T)
}

// ToComplex widens v to complex128 regardless of flavor.
func ToComplex[T Scalar](v T) complex128 {
	switch x := any(v).(type) {
	case float64:
		return complex(x, 0)
	case complex128:
		return x
	}
	return 0
}

// IsComplex reports whether T carries an imaginary part.
func IsComplex[T Scalar]() bool {
	var zero T
	_, ok := any(zero).(complex128)
	return ok
}
