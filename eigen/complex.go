package eigen

import (
	"math"
	"math/cmplx"

	"github.com/numkit/spectral/matrix"
)

// givensC computes a unitary plane rotation [c s; -conj(s) c] with real c
// that maps (a, b) to (r, 0).
func givensC(a, b complex128) (c float64, s complex128) {
	if b == 0 {
		return 1, 0
	}
	if a == 0 {
		return 0, cmplx.Conj(b) / complex(cmplx.Abs(b), 0)
	}
	absA := cmplx.Abs(a)
	denom := math.Hypot(absA, cmplx.Abs(b))
	c = absA / denom
	s = (a / complex(absA, 0)) * cmplx.Conj(b) / complex(denom, 0)
	return c, s
}

func complexSchur(a, v *matrix.Dense[complex128]) ([]complex128, error) {
	nn := a.Rows()
	hd, hs := a.Data(), a.Stride()
	h := func(i, j int) complex128 { return hd[i*hs+j] }
	hset := func(i, j int, x complex128) { hd[i*hs+j] = x }

	wantV := v != nil
	var vd []complex128
	vs := 0
	if wantV {
		vd, vs = v.Data(), v.Stride()
		for i := 0; i < nn; i++ {
			for j := 0; j < nn; j++ {
				if i == j {
					vd[i*vs+j] = 1
				} else {
					vd[i*vs+j] = 0
				}
			}
		}
	}

	if nn == 1 {
		return []complex128{h(0, 0)}, nil
	}

	// rotRows applies the rotation to rows (k, k+1), columns j0..nn-1.
	rotRows := func(k, j0 int, c float64, s complex128) {
		cc := complex(c, 0)
		for j := j0; j < nn; j++ {
			x, y := h(k, j), h(k+1, j)
			hset(k, j, cc*x+s*y)
			hset(k+1, j, -cmplx.Conj(s)*x+cc*y)
		}
	}
	// rotCols applies the conjugate-transposed rotation to columns
	// (k, k+1), rows 0..i1, completing the similarity.
	rotCols := func(k, i1 int, c float64, s complex128) {
		cc := complex(c, 0)
		for i := 0; i <= i1; i++ {
			x, y := h(i, k), h(i, k+1)
			hset(i, k, cc*x+cmplx.Conj(s)*y)
			hset(i, k+1, -s*x+cc*y)
		}
		if wantV {
			for i := 0; i < nn; i++ {
				x, y := vd[i*vs+k], vd[i*vs+k+1]
				vd[i*vs+k] = cc*x + cmplx.Conj(s)*y
				vd[i*vs+k+1] = -s*x + cc*y
			}
		}
	}

	// 1) Reduce to upper Hessenberg form by Givens similarity transforms.
	for k := 0; k < nn-2; k++ {
		for i := nn - 1; i > k+1; i-- {
			if h(i, k) == 0 {
				continue
			}
			c, s := givensC(h(i-1, k), h(i, k))
			cc := complex(c, 0)
			for j := k; j < nn; j++ {
				x, y := h(i-1, j), h(i, j)
				hset(i-1, j, cc*x+s*y)
				hset(i, j, -cmplx.Conj(s)*x+cc*y)
			}
			hset(i, k, 0)
			for ii := 0; ii < nn; ii++ {
				x, y := h(ii, i-1), h(ii, i)
				hset(ii, i-1, cc*x+cmplx.Conj(s)*y)
				hset(ii, i, -s*x+cc*y)
			}
			if wantV {
				for ii := 0; ii < nn; ii++ {
					x, y := vd[ii*vs+i-1], vd[ii*vs+i]
					vd[ii*vs+i-1] = cc*x + cmplx.Conj(s)*y
					vd[ii*vs+i] = -s*x + cc*y
				}
			}
		}
	}

	// 2) Single-shift QR iteration with Wilkinson shifts.
	eps := matrix.Epsilon
	hi := nn - 1
	iter := 0
	totalSweeps := 0
	for hi > 0 {
		// Deflate on small subdiagonal entries.
		l := hi
		for l > 0 {
			sum := cmplx.Abs(h(l-1, l-1)) + cmplx.Abs(h(l, l))
			if sum == 0 {
				sum = 1
			}
			if cmplx.Abs(h(l, l-1)) <= eps*sum {
				hset(l, l-1, 0)
				break
			}
			l--
		}
		if l == hi {
			hi--
			iter = 0
			continue
		}

		totalSweeps++
		if totalSweeps > hqrMaxSweeps*nn {
			break
		}
		iter++

		// Wilkinson shift: the eigenvalue of the trailing 2x2 block
		// closest to the bottom corner.
		var shift complex128
		if iter%10 == 0 {
			// Exceptional shift breaks symmetric cycling.
			shift = h(hi, hi) + complex(0.75*cmplx.Abs(h(hi, hi-1)), 0)
		} else {
			p := h(hi-1, hi-1)
			bq := h(hi-1, hi) * h(hi, hi-1)
			dd := h(hi, hi)
			t := (p - dd) / 2
			disc := cmplx.Sqrt(t*t + bq)
			den := t + disc
			if cmplx.Abs(t-disc) > cmplx.Abs(den) {
				den = t - disc
			}
			shift = dd
			if den != 0 {
				shift = dd - bq/den
			}
		}

		// Implicit single-shift sweep: chase the bulge down l..hi.
		x := h(l, l) - shift
		y := h(l+1, l)
		for k := l; k < hi; k++ {
			c, s := givensC(x, y)
			rotRows(k, max(k-1, 0), c, s)
			rotCols(k, min(k+2, nn-1), c, s)
			if k > l {
				hset(k+1, k-1, 0) // the annihilated bulge, now roundoff
			}
			if k < hi-1 {
				x = h(k+1, k)
				y = h(k+2, k)
			}
		}
	}

	// 3) Final cleanup: enforce exact triangularity where the deflation
	// test holds.
	for i := 1; i < nn; i++ {
		if cmplx.Abs(h(i, i-1)) <= eps*(cmplx.Abs(h(i-1, i-1))+cmplx.Abs(h(i, i))) {
			hset(i, i-1, 0)
		}
	}

	eigs := make([]complex128, nn)
	for i := 0; i < nn; i++ {
		eigs[i] = h(i, i)
	}
	if totalSweeps > hqrMaxSweeps*nn {
		return eigs, ErrNoConvergence
	}
	return eigs, nil
}
