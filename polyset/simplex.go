package polyset

import (
	"math"

	"github.com/notargets/gotab/utils"
)

// tabulateInterval builds the normalized Legendre set on [0,1]. Each output
// matrix R[k] holds the k-th x-derivative, (npoints x n+1).
func tabulateInterval(n, nderiv int, x []float64) (R []utils.Matrix) {
	var (
		np = len(x)
	)
	R = make([]utils.Matrix, nderiv+1)
	for k := 0; k <= nderiv; k++ {
		P := utils.NewMatrix(np, n+1)
		for i := 0; i < np; i++ {
			if k == 0 {
				P.Set(i, 0, 1)
			}
		}
		if n > 0 {
			for i, xi := range x {
				switch k {
				case 0:
					P.Set(i, 1, 2*xi-1)
				case 1:
					P.Set(i, 1, 2)
				}
			}
		}
		for p := 2; p <= n; p++ {
			a := float64(2*p-1) / float64(p)
			for i, xi := range x {
				v := (2*xi-1)*P.At(i, p-1)*a - P.At(i, p-2)*(a-1)
				if k > 0 {
					v += 2 * float64(k) * a * R[k-1].At(i, p-1)
				}
				P.Set(i, p, v)
			}
		}
		R[k] = P
	}
	for p := 0; p <= n; p++ {
		s := math.Sqrt(float64(2*p + 1))
		for k := range R {
			R[k].ScaleCol(p, s)
		}
	}
	return
}

// tabulateTriangle builds the collapsed coordinate set on the unit triangle.
// The basis column for (p, q) is P_p(xi) (1-y)^p P_q^(2p+1,0)(2y-1) after
// normalization, generated without ever forming the singular collapsed
// coordinate xi = 2x/(1-y) - 1 directly. Derivative matrices are generated
// in graded order so each recurrence only reads lower total orders.
func tabulateTriangle(n, nderiv int, pts utils.Matrix) (R []utils.Matrix) {
	var (
		np, _ = pts.Dims()
		m     = Dim2DTriangle(n)
		x     = pts.Col(0).DataP()
		y     = pts.Col(1).DataP()
	)
	R = make([]utils.Matrix, NDerivs(2, nderiv))
	for d := 0; d <= nderiv; d++ {
		for ky := 0; ky <= d; ky++ {
			kx := d - ky
			P := utils.NewMatrix(np, m)
			R[Idx2D(kx, ky)] = P
			var Dkx, Dky, Dky2 utils.Matrix
			if kx > 0 {
				Dkx = R[Idx2D(kx-1, ky)]
			}
			if ky > 0 {
				Dky = R[Idx2D(kx, ky-1)]
			}
			if ky > 1 {
				Dky2 = R[Idx2D(kx, ky-2)]
			}
			fkx, fky := float64(kx), float64(ky)

			if kx == 0 && ky == 0 {
				for i := 0; i < np; i++ {
					P.Set(i, 0, 1)
				}
			}
			// Principal chain (p, 0)
			for p := 1; p <= n; p++ {
				a := float64(2*p-1) / float64(p)
				for i := 0; i < np; i++ {
					v := (2*x[i] + y[i] - 1) * P.At(i, Idx2D(p-1, 0)) * a
					if kx > 0 {
						v += 2 * fkx * a * Dkx.At(i, Idx2D(p-1, 0))
					}
					if ky > 0 {
						v += fky * a * Dky.At(i, Idx2D(p-1, 0))
					}
					if p > 1 {
						f3 := (1 - y[i]) * (1 - y[i])
						v -= f3 * P.At(i, Idx2D(p-2, 0)) * (a - 1)
						if ky > 0 {
							v += 2 * fky * (1 - y[i]) *
								Dky.At(i, Idx2D(p-2, 0)) * (a - 1)
						}
						if ky > 1 {
							v -= fky * (fky - 1) *
								Dky2.At(i, Idx2D(p-2, 0)) * (a - 1)
						}
					}
					P.Set(i, Idx2D(p, 0), v)
				}
			}
			// Jacobi chain (p, q)
			for p := 0; p < n; p++ {
				g0 := float64(2*p + 3)
				for i := 0; i < np; i++ {
					v := (g0*y[i] - 1) * P.At(i, Idx2D(p, 0))
					if ky > 0 {
						v += fky * g0 * Dky.At(i, Idx2D(p, 0))
					}
					P.Set(i, Idx2D(p, 1), v)
				}
				for q := 1; q < n-p; q++ {
					_, a2, a3, a4 := jacobiCoeffs(float64(2*p+1), q+1)
					for i := 0; i < np; i++ {
						z := 2*y[i] - 1
						v := P.At(i, Idx2D(p, q))*(z*a3+a2) -
							P.At(i, Idx2D(p, q-1))*a4
						if ky > 0 {
							v += 2 * fky * a3 * Dky.At(i, Idx2D(p, q))
						}
						P.Set(i, Idx2D(p, q+1), v)
					}
				}
			}
		}
	}
	// Normalize for the unit triangle inner product
	for p := 0; p <= n; p++ {
		for q := 0; q <= n-p; q++ {
			s := math.Sqrt(2 * float64(2*p+1) * float64(p+q+1))
			for k := range R {
				R[k].ScaleCol(Idx2D(p, q), s)
			}
		}
	}
	return
}

// tabulateTetrahedron extends the triangle construction with a third Jacobi
// chain in z. The derivative bookkeeping follows the same Leibniz pattern;
// the one new term is the mixed d/dy d/dz derivative of (1-y-z)^2 in the
// principal chain.
func tabulateTetrahedron(n, nderiv int, pts utils.Matrix) (R []utils.Matrix) {
	var (
		np, _ = pts.Dims()
		m     = (n + 1) * (n + 2) * (n + 3) / 6
		x     = pts.Col(0).DataP()
		y     = pts.Col(1).DataP()
		z     = pts.Col(2).DataP()
	)
	R = make([]utils.Matrix, NDerivs(3, nderiv))
	for d := 0; d <= nderiv; d++ {
		for kz := 0; kz <= d; kz++ {
			for ky := 0; ky <= d-kz; ky++ {
				kx := d - ky - kz
				P := utils.NewMatrix(np, m)
				R[Idx3D(kx, ky, kz)] = P
				var Dkx, Dky, Dkz, Dky2, Dkz2, Dkykz utils.Matrix
				if kx > 0 {
					Dkx = R[Idx3D(kx-1, ky, kz)]
				}
				if ky > 0 {
					Dky = R[Idx3D(kx, ky-1, kz)]
				}
				if kz > 0 {
					Dkz = R[Idx3D(kx, ky, kz-1)]
				}
				if ky > 1 {
					Dky2 = R[Idx3D(kx, ky-2, kz)]
				}
				if kz > 1 {
					Dkz2 = R[Idx3D(kx, ky, kz-2)]
				}
				if ky > 0 && kz > 0 {
					Dkykz = R[Idx3D(kx, ky-1, kz-1)]
				}
				fkx, fky, fkz := float64(kx), float64(ky), float64(kz)

				if kx == 0 && ky == 0 && kz == 0 {
					for i := 0; i < np; i++ {
						P.Set(i, 0, 1)
					}
				}
				// Principal chain (p, 0, 0)
				for p := 1; p <= n; p++ {
					a := float64(2*p-1) / float64(p)
					for i := 0; i < np; i++ {
						v := (2*x[i] + y[i] + z[i] - 1) *
							P.At(i, Idx3D(p-1, 0, 0)) * a
						if kx > 0 {
							v += 2 * fkx * a * Dkx.At(i, Idx3D(p-1, 0, 0))
						}
						if ky > 0 {
							v += fky * a * Dky.At(i, Idx3D(p-1, 0, 0))
						}
						if kz > 0 {
							v += fkz * a * Dkz.At(i, Idx3D(p-1, 0, 0))
						}
						if p > 1 {
							w := 1 - y[i] - z[i]
							sub := w * w * P.At(i, Idx3D(p-2, 0, 0))
							if ky > 0 {
								sub -= 2 * fky * w * Dky.At(i, Idx3D(p-2, 0, 0))
							}
							if kz > 0 {
								sub -= 2 * fkz * w * Dkz.At(i, Idx3D(p-2, 0, 0))
							}
							if ky > 1 {
								sub += fky * (fky - 1) * Dky2.At(i, Idx3D(p-2, 0, 0))
							}
							if kz > 1 {
								sub += fkz * (fkz - 1) * Dkz2.At(i, Idx3D(p-2, 0, 0))
							}
							if ky > 0 && kz > 0 {
								sub += 2 * fky * fkz * Dkykz.At(i, Idx3D(p-2, 0, 0))
							}
							v -= sub * (a - 1)
						}
						P.Set(i, Idx3D(p, 0, 0), v)
					}
				}
				// Second chain (p, q, 0)
				for p := 0; p < n; p++ {
					ga, gb := float64(2*p+3), float64(2*p+1)
					for i := 0; i < np; i++ {
						g := (ga*(2*y[i]+z[i]-1) + gb*(1-z[i])) / 2
						v := g * P.At(i, Idx3D(p, 0, 0))
						if ky > 0 {
							v += fky * ga * Dky.At(i, Idx3D(p, 0, 0))
						}
						if kz > 0 {
							// dg/dz = (ga - gb)/2 = 1
							v += fkz * Dkz.At(i, Idx3D(p, 0, 0))
						}
						P.Set(i, Idx3D(p, 1, 0), v)
					}
					for q := 1; q < n-p; q++ {
						_, a2, a3, a4 := jacobiCoeffs(float64(2*p+1), q+1)
						for i := 0; i < np; i++ {
							f3 := 2*y[i] + z[i] - 1
							f4 := 1 - z[i]
							v := (a3*f3 + a2*f4) * P.At(i, Idx3D(p, q, 0))
							if ky > 0 {
								v += 2 * fky * a3 * Dky.At(i, Idx3D(p, q, 0))
							}
							if kz > 0 {
								v += fkz * (a3 - a2) * Dkz.At(i, Idx3D(p, q, 0))
							}
							sub := f4 * f4 * P.At(i, Idx3D(p, q-1, 0))
							if kz > 0 {
								sub -= 2 * fkz * f4 * Dkz.At(i, Idx3D(p, q-1, 0))
							}
							if kz > 1 {
								sub += fkz * (fkz - 1) * Dkz2.At(i, Idx3D(p, q-1, 0))
							}
							v -= a4 * sub
							P.Set(i, Idx3D(p, q+1, 0), v)
						}
					}
				}
				// Third chain (p, q, r)
				for p := 0; p <= n; p++ {
					for q := 0; q <= n-p-1; q++ {
						gc := float64(2*p + 2*q + 4)
						for i := 0; i < np; i++ {
							v := (gc*z[i] - 1) * P.At(i, Idx3D(p, q, 0))
							if kz > 0 {
								v += fkz * gc * Dkz.At(i, Idx3D(p, q, 0))
							}
							P.Set(i, Idx3D(p, q, 1), v)
						}
						for r := 1; r < n-p-q; r++ {
							_, a2, a3, a4 := jacobiCoeffs(float64(2*p+2*q+2), r+1)
							for i := 0; i < np; i++ {
								v := ((2*z[i]-1)*a3+a2)*P.At(i, Idx3D(p, q, r)) -
									a4*P.At(i, Idx3D(p, q, r-1))
								if kz > 0 {
									v += 2 * fkz * a3 * Dkz.At(i, Idx3D(p, q, r))
								}
								P.Set(i, Idx3D(p, q, r+1), v)
							}
						}
					}
				}
			}
		}
	}
	for p := 0; p <= n; p++ {
		for q := 0; q <= n-p; q++ {
			for r := 0; r <= n-p-q; r++ {
				s := math.Sqrt(2 * float64(2*p+1) * float64(p+q+1) *
					float64(2*p+2*q+2*r+3))
				for k := range R {
					R[k].ScaleCol(Idx3D(p, q, r), s)
				}
			}
		}
	}
	return
}

// jacobiCoeffs returns the three term recurrence coefficients for the Jacobi
// polynomial P_k^(a,0): P_k = (a3 x + a2) P_{k-1} - a4 P_{k-2}.
func jacobiCoeffs(a float64, k int) (a1, a2, a3, a4 float64) {
	fk := float64(k)
	a1 = 2 * fk * (fk + a) * (2*fk + a - 2)
	a2 = (2*fk + a - 1) * a * a / a1
	a3 = (2*fk + a - 1) * (2*fk + a) / (2 * fk * (fk + a))
	a4 = 2 * (fk + a - 1) * (fk - 1) * (2*fk + a) / a1
	return
}

// Dim2DTriangle is the triangle set size, split out for the tests that cross
// check the indexing functions.
func Dim2DTriangle(n int) int {
	return (n + 1) * (n + 2) / 2
}
