// Package polyset evaluates orthonormal polynomial bases and their
// derivatives on the reference cells. The simplex bases are the collapsed
// coordinate (Dubiner/PKD) sets generated by three term Jacobi recurrences;
// tensor product cells take products of the lower dimensional sets.
//
// All recurrences run in increasing degree order over pre-sized buffers.
// Derivatives come from differentiating the recurrences directly (the
// coefficient functions are linear, so the product rule terminates), never
// from symbolic differentiation or divided differences.
package polyset

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/utils"
)

// Idx2D maps a 2D multi-index to its canonical position, graded by total
// degree: (0,0) (1,0) (0,1) (2,0) (1,1) (0,2) ... It orders both the basis
// polynomials and the derivative tuples, and is part of the public contract.
func Idx2D(p, q int) int {
	return (p+q)*(p+q+1)/2 + q
}

// Idx3D is the 3D analogue of Idx2D.
func Idx3D(p, q, r int) int {
	d := p + q + r
	return d*(d+1)*(d+2)/6 + (q+r)*(q+r+1)/2 + r
}

// NDerivs is the number of derivative multi-indices of total order <= n in
// tdim variables, i.e. the length of the slice Tabulate returns.
func NDerivs(tdim, n int) int {
	return utils.Choose(n+tdim, tdim)
}

// Dim is the dimension of the orthonormal set of total degree <= n on the
// given cell.
func Dim(t cell.Type, n int) int {
	switch t {
	case cell.Point:
		return 1
	case cell.Interval:
		return n + 1
	case cell.Triangle:
		return (n + 1) * (n + 2) / 2
	case cell.Quadrilateral:
		return (n + 1) * (n + 1)
	case cell.Tetrahedron:
		return (n + 1) * (n + 2) * (n + 3) / 6
	case cell.Hexahedron:
		return (n + 1) * (n + 1) * (n + 1)
	case cell.Prism:
		return (n + 1) * (n + 1) * (n + 2) / 2
	case cell.Pyramid:
		return (n + 1) * (n + 2) * (2*n + 3) / 6
	}
	return 0
}

// Tabulate evaluates the orthonormal set of degree n and all its partial
// derivatives of total order <= nderiv at the given points (one row per
// point). The result is indexed by the canonical derivative multi-index
// (Idx2D/Idx3D over the derivative tuple); each matrix is
// (npoints x Dim(t, n)).
//
// Points outside the reference cell are evaluated as is: polynomials are
// defined everywhere and no bounds checking is performed.
func Tabulate(t cell.Type, n, nderiv int, pts utils.Matrix) (R []utils.Matrix, err error) {
	if n < 0 {
		err = utils.InvalidParamf("polyset.Tabulate", "negative degree %d", n)
		return
	}
	if nderiv < 0 {
		err = utils.InvalidParamf("polyset.Tabulate",
			"negative derivative order %d", nderiv)
		return
	}
	if pts.IsEmpty() {
		err = utils.InvalidParamf("polyset.Tabulate", "empty point batch")
		return
	}
	var (
		np, gdim = pts.Dims()
		tdim     = cell.TopologicalDimension(t)
	)
	if np == 0 {
		err = utils.InvalidParamf("polyset.Tabulate", "empty point batch")
		return
	}
	if gdim != tdim {
		err = utils.InvalidParamf("polyset.Tabulate",
			"points have dimension %d, cell %s needs %d", gdim, t, tdim)
		return
	}
	switch t {
	case cell.Interval:
		R = tabulateInterval(n, nderiv, pts.Col(0).DataP())
	case cell.Triangle:
		R = tabulateTriangle(n, nderiv, pts)
	case cell.Tetrahedron:
		R = tabulateTetrahedron(n, nderiv, pts)
	case cell.Quadrilateral:
		R = tabulateQuad(n, nderiv, pts)
	case cell.Hexahedron:
		R = tabulateHex(n, nderiv, pts)
	case cell.Prism:
		R = tabulatePrism(n, nderiv, pts)
	default:
		err = utils.InvalidParamf("polyset.Tabulate",
			"unsupported cell type %s", t)
	}
	return
}
