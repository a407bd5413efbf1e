// Package quadrature generates point/weight integration rules on the
// reference cells. Gauss-Jacobi rules are found by Newton iteration on
// Chebyshev initial guesses; simplex rules come from collapsed coordinate
// products with the Jacobi weight absorbing the coordinate Jacobian. For the
// triangle at low degree a minimal symmetric rule is used instead.
package quadrature

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/utils"
)

// JacobiDeriv evaluates P_n^(a,0) and its first nderiv derivatives on [-1,1].
// Row k of the result holds the k-th derivative at each point. The derivative
// rows come from differentiating the three term recurrence, which closes
// because the recurrence coefficients are linear in x.
func JacobiDeriv(a float64, n, nderiv int, x []float64) (R utils.Matrix) {
	var (
		np = len(x)
		J  = make([]utils.Matrix, nderiv+1)
	)
	for i := 0; i <= nderiv; i++ {
		Jd := utils.NewMatrix(n+1, np)
		for c := 0; c < np; c++ {
			if i == 0 {
				Jd.Set(0, c, 1)
			}
		}
		if n > 0 {
			for c, xc := range x {
				switch i {
				case 0:
					Jd.Set(1, c, (xc*(a+2)+a)*0.5)
				case 1:
					Jd.Set(1, c, a*0.5+1)
				}
			}
		}
		for k := 2; k <= n; k++ {
			var (
				fk = float64(k)
				a1 = 2 * fk * (fk + a) * (2*fk + a - 2)
				a2 = (2*fk + a - 1) * a * a / a1
				a3 = (2*fk + a - 1) * (2*fk + a) / (2 * fk * (fk + a))
				a4 = 2 * (fk + a - 1) * (fk - 1) * (2*fk + a) / a1
			)
			for c, xc := range x {
				v := Jd.At(k-1, c)*(xc*a3+a2) - Jd.At(k-2, c)*a4
				if i > 0 {
					v += float64(i) * a3 * J[i-1].At(k-1, c)
				}
				Jd.Set(k, c, v)
			}
		}
		J[i] = Jd
	}
	R = utils.NewMatrix(nderiv+1, np)
	for i := 0; i <= nderiv; i++ {
		for c := 0; c < np; c++ {
			R.Set(i, c, J[i].At(n, c))
		}
	}
	return
}

// GaussJacobiPoints computes the m roots of P_m^(a,0) on [-1,1] by Newton's
// method with deflation, starting from the Chebyshev points. Algorithm from
// the pseudocode of Karniadakis and Sherwin.
func GaussJacobiPoints(a float64, m int) (x []float64) {
	const (
		eps     = 1.e-8
		maxIter = 100
	)
	x = make([]float64, m)
	for k := 0; k < m; k++ {
		x[k] = -math.Cos((2*float64(k) + 1) * math.Pi / (2 * float64(m)))
		if k > 0 {
			x[k] = 0.5 * (x[k] + x[k-1])
		}
		for j := 0; j < maxIter; j++ {
			var s float64
			for i := 0; i < k; i++ {
				s += 1 / (x[k] - x[i])
			}
			f := JacobiDeriv(a, m, 1, x[k:k+1])
			delta := f.At(0, 0) / (f.At(1, 0) - f.At(0, 0)*s)
			x[k] -= delta
			if math.Abs(delta) < eps {
				break
			}
		}
	}
	return
}

// GaussJacobiRule computes the m point Gauss-Jacobi rule for the weight
// (1-x)^a on [-1,1].
func GaussJacobiRule(a float64, m int) (x, w []float64) {
	x = GaussJacobiPoints(a, m)
	Jd := JacobiDeriv(a, m, 1, x)
	c := math.Pow(2, a+1)
	w = make([]float64, m)
	for i := range x {
		f := Jd.At(1, i)
		w[i] = c / ((1 - x[i]*x[i]) * f * f)
	}
	return
}

// MakeQuadratureLine is the m point Gauss-Legendre rule mapped to [0,1].
func MakeQuadratureLine(m int) (x, w []float64) {
	x, w = GaussJacobiRule(0, m)
	for i := range x {
		x[i] = 0.5 * (x[i] + 1)
		w[i] *= 0.5
	}
	return
}

// MakeQuadratureTriangleCollapsed is the m x m conical product rule on the unit
// triangle. The (1-y) factor of the coordinate collapse is carried by the
// a=1 Jacobi weight, so the rule is exact for total degree 2m-1.
func MakeQuadratureTriangleCollapsed(m int) (pts utils.Matrix, wts []float64) {
	ptx, wx := GaussJacobiRule(0, m)
	pty, wy := GaussJacobiRule(1, m)
	pts = utils.NewMatrix(m*m, 2)
	wts = make([]float64, m*m)
	var c int
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			pts.Set(c, 0, 0.25*(1+ptx[i])*(1-pty[j]))
			pts.Set(c, 1, 0.5*(1+pty[j]))
			wts[c] = wx[i] * wy[j] * 0.125
			c++
		}
	}
	return
}

// MakeQuadratureTetrahedronCollapsed is the m x m x m conical product rule on the unit
// tetrahedron, with a=1 and a=2 Jacobi weights absorbing the collapse
// Jacobian in the second and third directions.
func MakeQuadratureTetrahedronCollapsed(m int) (pts utils.Matrix, wts []float64) {
	ptx, wx := GaussJacobiRule(0, m)
	pty, wy := GaussJacobiRule(1, m)
	ptz, wz := GaussJacobiRule(2, m)
	pts = utils.NewMatrix(m*m*m, 3)
	wts = make([]float64, m*m*m)
	var c int
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			for k := 0; k < m; k++ {
				pts.Set(c, 0, 0.125*(1+ptx[i])*(1-pty[j])*(1-ptz[k]))
				pts.Set(c, 1, 0.25*(1+pty[j])*(1-ptz[k]))
				pts.Set(c, 2, 0.5*(1+ptz[k]))
				wts[c] = wx[i] * wy[j] * wz[k] * 0.125 * 0.125
				c++
			}
		}
	}
	return
}

// MakeQuadrature returns a rule on the reference cell exact for polynomials
// of total degree m. Points are one row per point; weights sum to the cell's
// reference volume. For the triangle a minimal symmetric rule is used when
// one is tabulated, otherwise the collapsed conical rule.
func MakeQuadrature(t cell.Type, m int) (pts utils.Matrix, wts []float64, err error) {
	if m < 0 {
		err = utils.InvalidParamf("quadrature.MakeQuadrature",
			"negative exactness degree %d", m)
		return
	}
	np := (m + 2) / 2
	switch t {
	case cell.Interval:
		x, w := MakeQuadratureLine(np)
		pts = utils.NewMatrix(np, 1, x)
		wts = w
	case cell.Quadrilateral:
		x, w := MakeQuadratureLine(np)
		pts = utils.NewMatrix(np*np, 2)
		wts = make([]float64, np*np)
		var c int
		for j := 0; j < np; j++ {
			for i := 0; i < np; i++ {
				pts.Set(c, 0, x[i])
				pts.Set(c, 1, x[j])
				wts[c] = w[i] * w[j]
				c++
			}
		}
	case cell.Hexahedron:
		x, w := MakeQuadratureLine(np)
		pts = utils.NewMatrix(np*np*np, 3)
		wts = make([]float64, np*np*np)
		var c int
		for k := 0; k < np; k++ {
			for j := 0; j < np; j++ {
				for i := 0; i < np; i++ {
					pts.Set(c, 0, x[i])
					pts.Set(c, 1, x[j])
					pts.Set(c, 2, x[k])
					wts[c] = w[i] * w[j] * w[k]
					c++
				}
			}
		}
	case cell.Prism:
		x, w := MakeQuadratureLine(np)
		ptsT, wtsT := MakeQuadratureTriangleCollapsed(np)
		nt, _ := ptsT.Dims()
		pts = utils.NewMatrix(np*nt, 3)
		wts = make([]float64, np*nt)
		var c int
		for k := 0; k < np; k++ {
			for i := 0; i < nt; i++ {
				pts.Set(c, 0, ptsT.At(i, 0))
				pts.Set(c, 1, ptsT.At(i, 1))
				pts.Set(c, 2, x[k])
				wts[c] = wtsT[i] * w[k]
				c++
			}
		}
	case cell.Triangle:
		if sch, ok := triangleScheme(m); ok {
			pts, wts = sch.pts, sch.wts
		} else {
			pts, wts = MakeQuadratureTriangleCollapsed(np)
		}
	case cell.Tetrahedron:
		pts, wts = MakeQuadratureTetrahedronCollapsed(np)
	case cell.Pyramid:
		err = utils.InvalidParamf("quadrature.MakeQuadrature",
			"pyramid not yet supported")
	default:
		err = utils.InvalidParamf("quadrature.MakeQuadrature",
			"unsupported cell type %s", t)
	}
	return
}

// MakeSimplexQuadrature maps a reference rule of exactness m onto an
// arbitrary simplex given by its vertex rows, scaling the weights by the
// simplex measure relative to the reference cell. The simplex may be embedded
// in a higher dimensional space, e.g. a triangle facet of a tetrahedron.
func MakeSimplexQuadrature(simplex utils.Matrix, m int) (pts utils.Matrix, wts []float64, err error) {
	nv, gdim := simplex.Dims()
	dim := nv - 1
	if dim < 1 || dim > 3 {
		err = utils.InvalidParamf("quadrature.MakeSimplexQuadrature",
			"unsupported simplex dimension %d", dim)
		return
	}
	if gdim < dim {
		err = utils.InvalidParamf("quadrature.MakeSimplexQuadrature",
			"simplex vertices of dimension %d cannot span dimension %d",
			gdim, dim)
		return
	}
	bvec := utils.NewMatrix(dim, gdim)
	for i := 0; i < dim; i++ {
		for j := 0; j < gdim; j++ {
			bvec.Set(i, j, simplex.At(i+1, j)-simplex.At(0, j))
		}
	}

	var (
		ref   utils.Matrix
		wref  []float64
		scale float64
	)
	switch dim {
	case 1:
		x, w := MakeQuadratureLine((m + 2) / 2)
		ref = utils.NewMatrix(len(x), 1, x)
		wref = w
		scale = mat.Norm(bvec.M, 2)
	case 2:
		ref, wref, err = MakeQuadrature(cell.Triangle, m)
		if err != nil {
			return
		}
		if gdim == 2 {
			scale = mat.Det(bvec.M)
		} else {
			scale = crossNorm(bvec.Row(0).DataP(), bvec.Row(1).DataP())
		}
	case 3:
		ref, wref, err = MakeQuadrature(cell.Tetrahedron, m)
		if err != nil {
			return
		}
		scale = mat.Det(bvec.M)
	}

	nq, _ := ref.Dims()
	pts = utils.NewMatrix(nq, gdim)
	wts = make([]float64, nq)
	for i := 0; i < nq; i++ {
		for j := 0; j < gdim; j++ {
			v := simplex.At(0, j)
			for k := 0; k < dim; k++ {
				v += ref.At(i, k) * bvec.At(k, j)
			}
			pts.Set(i, j, v)
		}
		wts[i] = wref[i] * scale
	}
	return
}

func crossNorm(a, b []float64) float64 {
	var (
		cx = a[1]*b[2] - a[2]*b[1]
		cy = a[2]*b[0] - a[0]*b[2]
		cz = a[0]*b[1] - a[1]*b[0]
	)
	return math.Sqrt(cx*cx + cy*cy + cz*cz)
}

// recJacobi generates the recursion coefficients alpha_k, beta_k of the monic
// Jacobi polynomials orthogonal on [-1,1] with weight (1-x)^a (1+x)^b.
// Adapted from the MATLAB r_jacobi code of Dirk Laurie and Walter Gautschi.
func recJacobi(n int, a, b float64) (alpha, beta []float64) {
	alpha = make([]float64, n)
	beta = make([]float64, n)
	alpha[0] = (b - a) / (a + b + 2)
	beta[0] = math.Pow(2, a+b+1) * math.Gamma(a+1) * math.Gamma(b+1) /
		math.Gamma(a+b+2)
	for k := 1; k < n; k++ {
		var (
			fk  = float64(k)
			nab = 2*fk + a + b
		)
		alpha[k] = (b*b - a*a) / (nab * (nab + 2))
		beta[k] = 4 * fk * (fk + a) * (fk + b) * (fk + a + b) /
			(nab * nab * (nab + 1) * (nab - 1))
	}
	return
}

// gaussFromRecursion computes the Gauss nodes and weights from the monic
// recursion coefficients by the Golub-Welsch eigenvalue method.
func gaussFromRecursion(alpha, beta []float64) (x, w []float64) {
	n := len(alpha)
	d1 := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		d1[i] = math.Sqrt(beta[i+1])
	}
	JJ := utils.NewSymTriDiagonal(alpha, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	VV := mat.NewDense(n, n, nil)
	eig.VectorsTo(VV)
	w = make([]float64, n)
	for i := 0; i < n; i++ {
		v := VV.At(0, i)
		w[i] = beta[0] * v * v
	}
	return
}

// lobattoFromRecursion modifies the recursion so that xl1 and xl2 become
// nodes, following section 7 of Golub, "Some modified matrix eigenvalue
// problems", SIAM Review 15(2), 1973.
func lobattoFromRecursion(alpha, beta []float64, xl1, xl2 float64) (x, w []float64) {
	var (
		n      = len(alpha)
		g1, g2 float64
	)
	bsqrt := make([]float64, n)
	for i := range beta {
		bsqrt[i] = math.Sqrt(beta[i])
	}
	for i := 1; i < n-1; i++ {
		g1 = bsqrt[i] / (alpha[i] - xl1 - bsqrt[i-1]*g1)
		g2 = bsqrt[i] / (alpha[i] - xl2 - bsqrt[i-1]*g2)
	}
	g1 = 1 / (alpha[n-1] - xl1 - bsqrt[n-2]*g1)
	g2 = 1 / (alpha[n-1] - xl2 - bsqrt[n-2]*g2)

	alphaL := make([]float64, n)
	betaL := make([]float64, n)
	copy(alphaL, alpha)
	copy(betaL, beta)
	alphaL[n-1] = (g1*xl2 - g2*xl1) / (g1 - g2)
	betaL[n-1] = (xl2 - xl1) / (g1 - g2)
	return gaussFromRecursion(alphaL, betaL)
}

// GaussLobattoLegendreLine is the m point Gauss-Lobatto-Legendre rule on
// [-1,1], including both endpoints, with degree of precision 2m-3. Useful
// for spectral element nodal sets.
func GaussLobattoLegendreLine(m int) (x, w []float64, err error) {
	if m < 2 {
		err = utils.InvalidParamf("quadrature.GaussLobattoLegendreLine",
			"need at least 2 points, got %d", m)
		return
	}
	alpha, beta := recJacobi(m, 0, 0)
	x, w = lobattoFromRecursion(alpha, beta, -1, 1)
	return
}
