// Package eigen: real Schur form via Hessenberg reduction + Francis
// double-shift QR. Descends from the Handbook/EISPACK procedures orthes,
// ortran and hqr2 (by Martin and Wilkinson), restricted to the Schur-form
// half of hqr2; eigenvector backsubstitution is not needed here.

package eigen

import (
	"math"

	"github.com/numkit/spectral/matrix"
)

// hqrMaxSweeps bounds the total QR sweeps at 30 per eigenvalue, the
// classic LAPACK budget.
const hqrMaxSweeps = 30

func realSchur(a, v *matrix.Dense[float64]) ([]complex128, error) {
	nn := a.Rows()
	hd, hs := a.Data(), a.Stride()
	h := func(i, j int) float64 { return hd[i*hs+j] }
	hset := func(i, j int, x float64) { hd[i*hs+j] = x }

	wantV := v != nil
	var vd []float64
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

	d := make([]float64, nn) // real parts
	e := make([]float64, nn) // imaginary parts
	if nn == 1 {
		d[0] = h(0, 0)
		return complexPairs(d, e), nil
	}

	low, high := 0, nn-1
	ort := make([]float64, nn)

	// 1) Householder reduction to upper Hessenberg form.
	for m := low + 1; m <= high-1; m++ {
		scale := 0.0
		for i := m; i <= high; i++ {
			scale += math.Abs(h(i, m-1))
		}
		if scale == 0 {
			continue
		}
		hh := 0.0
		for i := high; i >= m; i-- {
			ort[i] = h(i, m-1) / scale
			hh += ort[i] * ort[i]
		}
		g := math.Sqrt(hh)
		if ort[m] > 0 {
			g = -g
		}
		hh -= ort[m] * g
		ort[m] -= g

		// Similarity H := (I - u*uᵀ/hh) * H * (I - u*uᵀ/hh).
		for j := m; j < nn; j++ {
			f := 0.0
			for i := high; i >= m; i-- {
				f += ort[i] * h(i, j)
			}
			f /= hh
			for i := m; i <= high; i++ {
				hset(i, j, h(i, j)-f*ort[i])
			}
		}
		for i := 0; i <= high; i++ {
			f := 0.0
			for j := high; j >= m; j-- {
				f += ort[j] * h(i, j)
			}
			f /= hh
			for j := m; j <= high; j++ {
				hset(i, j, h(i, j)-f*ort[j])
			}
		}
		ort[m] *= scale
		hset(m, m-1, scale*g)
	}

	// 2) Accumulate the reduction into v (Algol's ortran).
	if wantV {
		for m := high - 1; m >= low+1; m-- {
			if h(m, m-1) == 0 {
				continue
			}
			for i := m + 1; i <= high; i++ {
				ort[i] = h(i, m-1)
			}
			for j := m; j <= high; j++ {
				g := 0.0
				for i := m; i <= high; i++ {
					g += ort[i] * vd[i*vs+j]
				}
				// Double division avoids possible underflow.
				g = (g / ort[m]) / h(m, m-1)
				for i := m; i <= high; i++ {
					vd[i*vs+j] += g * ort[i]
				}
			}
		}
	}

	// 3) Clear the reflector remnants below the first subdiagonal so the
	// iteration starts from, and the output exposes, true Hessenberg form.
	for i := 2; i < nn; i++ {
		for j := 0; j <= i-2; j++ {
			hset(i, j, 0)
		}
	}

	// 4) Hessenberg → real Schur form (hqr2, Schur half).
	eps := matrix.Epsilon
	n := nn - 1
	exshift := 0.0
	var p, q, r, s, z, w, x, y float64

	norm := 0.0
	for i := 0; i < nn; i++ {
		for j := max(i-1, 0); j < nn; j++ {
			norm += math.Abs(h(i, j))
		}
	}
	if norm == 0 {
		return complexPairs(d, e), nil // the zero matrix is its own Schur form
	}

	iter := 0
	totalSweeps := 0
	for n >= low {
		// Look for a single small subdiagonal element.
		l := n
		for l > low {
			s = math.Abs(h(l-1, l-1)) + math.Abs(h(l, l))
			if s == 0 {
				s = norm
			}
			if math.Abs(h(l, l-1)) < eps*s {
				break
			}
			l--
		}

		switch {
		case l == n: // one root found
			hset(n, n, h(n, n)+exshift)
			if n > low {
				hset(n, n-1, 0)
			}
			d[n] = h(n, n)
			e[n] = 0
			n--
			iter = 0

		case l == n-1: // two roots found
			w = h(n, n-1) * h(n-1, n)
			p = (h(n-1, n-1) - h(n, n)) / 2
			q = p*p + w
			z = math.Sqrt(math.Abs(q))
			hset(n, n, h(n, n)+exshift)
			hset(n-1, n-1, h(n-1, n-1)+exshift)
			x = h(n, n)

			if q >= 0 {
				// Real pair: one extra rotation splits the 2×2 block.
				if p >= 0 {
					z = p + z
				} else {
					z = p - z
				}
				d[n-1] = x + z
				d[n] = d[n-1]
				if z != 0 {
					d[n] = x - w/z
				}
				e[n-1] = 0
				e[n] = 0
				x = h(n, n-1)
				s = math.Abs(x) + math.Abs(z)
				p = x / s
				q = z / s
				r = math.Sqrt(p*p + q*q)
				p /= r
				q /= r
				for j := n - 1; j < nn; j++ {
					z = h(n-1, j)
					hset(n-1, j, q*z+p*h(n, j))
					hset(n, j, q*h(n, j)-p*z)
				}
				for i := 0; i <= n; i++ {
					z = h(i, n-1)
					hset(i, n-1, q*z+p*h(i, n))
					hset(i, n, q*h(i, n)-p*z)
				}
				if wantV {
					for i := low; i <= high; i++ {
						z = vd[i*vs+n-1]
						vd[i*vs+n-1] = q*z + p*vd[i*vs+n]
						vd[i*vs+n] = q*vd[i*vs+n] - p*z
					}
				}
				hset(n, n-1, 0)
			} else {
				// Complex-conjugate pair: the 2×2 block stays.
				d[n-1] = x + p
				d[n] = x + p
				e[n-1] = z
				e[n] = -z
			}
			if n-1 > low {
				hset(n-1, n-2, 0)
			}
			n -= 2
			iter = 0

		default: // no convergence yet: one double-shift sweep
			totalSweeps++
			if totalSweeps > hqrMaxSweeps*nn {
				return complexPairs(d, e), ErrNoConvergence
			}

			x = h(n, n)
			y = 0
			w = 0
			if l < n {
				y = h(n-1, n-1)
				w = h(n, n-1) * h(n-1, n)
			}

			// Wilkinson's exceptional shift.
			if iter == 10 {
				exshift += x
				for i := low; i <= n; i++ {
					hset(i, i, h(i, i)-x)
				}
				s = math.Abs(h(n, n-1)) + math.Abs(h(n-1, n-2))
				y = 0.75 * s
				x = y
				w = -0.4375 * s * s
			}
			// Second-stage exceptional shift.
			if iter == 30 {
				s = (y - x) / 2
				s = s*s + w
				if s > 0 {
					s = math.Sqrt(s)
					if y < x {
						s = -s
					}
					s = x - w/((y-x)/2+s)
					for i := low; i <= n; i++ {
						hset(i, i, h(i, i)-s)
					}
					exshift += s
					x, y, w = 0.964, 0.964, 0.964
				}
			}
			iter++

			// Look for two consecutive small subdiagonal elements.
			m := n - 2
			for m >= l {
				z = h(m, m)
				r = x - z
				s = y - z
				p = (r*s-w)/h(m+1, m) + h(m, m+1)
				q = h(m+1, m+1) - z - r - s
				r = h(m+2, m+1)
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				if math.Abs(h(m, m-1))*(math.Abs(q)+math.Abs(r)) <
					eps*(math.Abs(p)*(math.Abs(h(m-1, m-1))+math.Abs(z)+math.Abs(h(m+1, m+1)))) {
					break
				}
				m--
			}
			for i := m + 2; i <= n; i++ {
				hset(i, i-2, 0)
				if i > m+2 {
					hset(i, i-3, 0)
				}
			}

			// Double QR step on rows l..n, columns m..n.
			for k := m; k <= n-1; k++ {
				notLast := k != n-1
				if k != m {
					p = h(k, k-1)
					q = h(k+1, k-1)
					if notLast {
						r = h(k+2, k-1)
					} else {
						r = 0
					}
					x = math.Abs(p) + math.Abs(q) + math.Abs(r)
					if x != 0 {
						p /= x
						q /= x
						r /= x
					}
				}
				s = math.Sqrt(p*p + q*q + r*r)
				if p < 0 {
					s = -s
				}
				if s == 0 {
					continue
				}
				if k != m {
					hset(k, k-1, -s*x)
				} else if l != m {
					hset(k, k-1, -h(k, k-1))
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p

				for j := k; j < nn; j++ {
					p = h(k, j) + q*h(k+1, j)
					if notLast {
						p += r * h(k+2, j)
						hset(k+2, j, h(k+2, j)-p*z)
					}
					hset(k, j, h(k, j)-p*x)
					hset(k+1, j, h(k+1, j)-p*y)
				}
				for i := 0; i <= min(n, k+3); i++ {
					p = x*h(i, k) + y*h(i, k+1)
					if notLast {
						p += z * h(i, k+2)
						hset(i, k+2, h(i, k+2)-p*r)
					}
					hset(i, k, h(i, k)-p)
					hset(i, k+1, h(i, k+1)-p*q)
				}
				if wantV {
					for i := low; i <= high; i++ {
						p = x*vd[i*vs+k] + y*vd[i*vs+k+1]
						if notLast {
							p += z * vd[i*vs+k+2]
							vd[i*vs+k+2] -= p * r
						}
						vd[i*vs+k] -= p
						vd[i*vs+k+1] -= p * q
					}
				}
			}
		}
	}

	// 5) Final sweep: discard roundoff-level bulge remnants below the first
	// subdiagonal and zero subdiagonal entries that satisfy the deflation
	// criterion, exposing a clean quasi-triangular form.
	for i := 2; i < nn; i++ {
		for j := 0; j <= i-2; j++ {
			hset(i, j, 0)
		}
	}
	for i := 1; i < nn; i++ {
		if math.Abs(h(i, i-1)) < eps*(math.Abs(h(i-1, i-1))+math.Abs(h(i, i))) {
			hset(i, i-1, 0)
		}
	}

	return complexPairs(d, e), nil
}

// complexPairs zips the separate real/imaginary arrays into eigenvalues.
func complexPairs(d, e []float64) []complex128 {
	out := make([]complex128, len(d))
	for i := range d {
		out[i] = complex(d[i], e[i])
	}
	return out
}
