package cell

import (
	"github.com/notargets/gotab/utils"
)

// CreateLattice returns regularly spaced points on the reference cell with
// spacing 1/n, one row per point. With exterior true the boundary points are
// included (Lagrange nodes); with exterior false only the interior points
// remain (interior moment points). n = 0 returns the single midpoint.
//
// Point enumeration is lexicographic in the lattice indices with the first
// coordinate outermost; this ordering is fixed.
func CreateLattice(t Type, n int, exterior bool) (L utils.Matrix, err error) {
	if n < 0 {
		err = utils.InvalidParamf("cell.CreateLattice", "negative n %d", n)
		return
	}
	if n == 0 {
		return midpointLattice(t)
	}
	var (
		h   = 1. / float64(n)
		pts [][]float64
	)
	lo, hi := 0, n
	if !exterior {
		lo, hi = 1, n-1
	}
	switch t {
	case Interval:
		for i := lo; i <= hi; i++ {
			pts = append(pts, []float64{float64(i) * h})
		}
	case Triangle:
		for i := lo; i <= hi; i++ {
			for j := lo; i+j <= hiSimplex(n, exterior); j++ {
				pts = append(pts, []float64{float64(i) * h, float64(j) * h})
			}
		}
	case Tetrahedron:
		for i := lo; i <= hi; i++ {
			for j := lo; i+j <= hiSimplex(n, exterior); j++ {
				for k := lo; i+j+k <= hiSimplex(n, exterior); k++ {
					pts = append(pts, []float64{
						float64(i) * h, float64(j) * h, float64(k) * h})
				}
			}
		}
	case Quadrilateral:
		for i := lo; i <= hi; i++ {
			for j := lo; j <= hi; j++ {
				pts = append(pts, []float64{float64(i) * h, float64(j) * h})
			}
		}
	case Hexahedron:
		for i := lo; i <= hi; i++ {
			for j := lo; j <= hi; j++ {
				for k := lo; k <= hi; k++ {
					pts = append(pts, []float64{
						float64(i) * h, float64(j) * h, float64(k) * h})
				}
			}
		}
	case Prism:
		for i := lo; i <= hi; i++ {
			for j := lo; i+j <= hiSimplex(n, exterior); j++ {
				for k := lo; k <= hi; k++ {
					pts = append(pts, []float64{
						float64(i) * h, float64(j) * h, float64(k) * h})
				}
			}
		}
	default:
		err = utils.InvalidParamf("cell.CreateLattice",
			"unsupported cell type %s", t)
		return
	}
	if len(pts) == 0 {
		// No interior points at this degree; an empty 0xD matrix cannot be
		// allocated, so signal with an empty Matrix.
		L = utils.Matrix{}
		return
	}
	L = utils.NewMatrix(len(pts), len(pts[0]))
	for i, p := range pts {
		L.SetRow(i, p)
	}
	return
}

func hiSimplex(n int, exterior bool) int {
	if exterior {
		return n
	}
	return n - 1
}

func midpointLattice(t Type) (L utils.Matrix, err error) {
	switch t {
	case Interval:
		L = utils.NewMatrix(1, 1, []float64{0.5})
	case Triangle:
		L = utils.NewMatrix(1, 2, []float64{1. / 3., 1. / 3.})
	case Quadrilateral:
		L = utils.NewMatrix(1, 2, []float64{0.5, 0.5})
	case Tetrahedron:
		L = utils.NewMatrix(1, 3, []float64{0.25, 0.25, 0.25})
	case Hexahedron:
		L = utils.NewMatrix(1, 3, []float64{0.5, 0.5, 0.5})
	case Prism:
		L = utils.NewMatrix(1, 3, []float64{1. / 3., 1. / 3., 0.5})
	default:
		err = utils.InvalidParamf("cell.CreateLattice",
			"unsupported cell type %s", t)
	}
	return
}
