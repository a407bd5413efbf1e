package polyset

import (
	"github.com/notargets/gotab/utils"
)

// tabulateQuad builds the tensor product Legendre set on the unit square.
// Column i*(n+1)+j holds P_i(x) P_j(y), and derivative (kx, ky) is the
// product of the corresponding interval derivative tables.
func tabulateQuad(n, nderiv int, pts utils.Matrix) (R []utils.Matrix) {
	var (
		np, _ = pts.Dims()
		m     = n + 1
		x     = make([]float64, np)
		y     = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		x[i] = pts.At(i, 0)
		y[i] = pts.At(i, 1)
	}
	Ix := tabulateInterval(n, nderiv, x)
	Iy := tabulateInterval(n, nderiv, y)
	R = make([]utils.Matrix, NDerivs(2, nderiv))
	for kx := 0; kx <= nderiv; kx++ {
		for ky := 0; ky <= nderiv-kx; ky++ {
			P := utils.NewMatrix(np, m*m)
			for i := 0; i <= n; i++ {
				for j := 0; j <= n; j++ {
					for pt := 0; pt < np; pt++ {
						P.Set(pt, i*m+j, Ix[kx].At(pt, i)*Iy[ky].At(pt, j))
					}
				}
			}
			R[Idx2D(kx, ky)] = P
		}
	}
	return
}

// tabulateHex builds the tensor product Legendre set on the unit cube.
// Column (i*(n+1)+j)*(n+1)+k holds P_i(x) P_j(y) P_k(z).
func tabulateHex(n, nderiv int, pts utils.Matrix) (R []utils.Matrix) {
	var (
		np, _ = pts.Dims()
		m     = n + 1
		x     = make([]float64, np)
		y     = make([]float64, np)
		z     = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		x[i] = pts.At(i, 0)
		y[i] = pts.At(i, 1)
		z[i] = pts.At(i, 2)
	}
	Ix := tabulateInterval(n, nderiv, x)
	Iy := tabulateInterval(n, nderiv, y)
	Iz := tabulateInterval(n, nderiv, z)
	R = make([]utils.Matrix, NDerivs(3, nderiv))
	for kx := 0; kx <= nderiv; kx++ {
		for ky := 0; ky <= nderiv-kx; ky++ {
			for kz := 0; kz <= nderiv-kx-ky; kz++ {
				P := utils.NewMatrix(np, m*m*m)
				for i := 0; i <= n; i++ {
					for j := 0; j <= n; j++ {
						for k := 0; k <= n; k++ {
							col := (i*m+j)*m + k
							for pt := 0; pt < np; pt++ {
								P.Set(pt, col,
									Ix[kx].At(pt, i)*Iy[ky].At(pt, j)*Iz[kz].At(pt, k))
							}
						}
					}
				}
				R[Idx3D(kx, ky, kz)] = P
			}
		}
	}
	return
}

// tabulatePrism builds the product of the triangle set in (x, y) with the
// interval set in z. Column Idx2D(p, q)*(n+1)+r holds T_{pq}(x, y) P_r(z).
func tabulatePrism(n, nderiv int, pts utils.Matrix) (R []utils.Matrix) {
	var (
		np, _ = pts.Dims()
		m     = n + 1
		ntri  = Dim2DTriangle(n)
		xy    = utils.NewMatrix(np, 2)
		z     = make([]float64, np)
	)
	for i := 0; i < np; i++ {
		xy.Set(i, 0, pts.At(i, 0))
		xy.Set(i, 1, pts.At(i, 1))
		z[i] = pts.At(i, 2)
	}
	T := tabulateTriangle(n, nderiv, xy)
	Iz := tabulateInterval(n, nderiv, z)
	R = make([]utils.Matrix, NDerivs(3, nderiv))
	for kx := 0; kx <= nderiv; kx++ {
		for ky := 0; ky <= nderiv-kx; ky++ {
			for kz := 0; kz <= nderiv-kx-ky; kz++ {
				P := utils.NewMatrix(np, ntri*m)
				tk := T[Idx2D(kx, ky)]
				for p := 0; p <= n; p++ {
					for q := 0; q <= n-p; q++ {
						for r := 0; r <= n; r++ {
							col := Idx2D(p, q)*m + r
							for pt := 0; pt < np; pt++ {
								P.Set(pt, col,
									tk.At(pt, Idx2D(p, q))*Iz[kz].At(pt, r))
							}
						}
					}
				}
				R[Idx3D(kx, ky, kz)] = P
			}
		}
	}
	return
}
