package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/polyset"
	"github.com/notargets/gotab/quadrature"
	"github.com/notargets/gotab/utils"
)

// entityFrame holds one sub entity's parametrisation: the mapped quadrature
// points and the unnormalized axis vectors spanning the entity. The axes
// carry the entity measure, so reference rules are used unscaled.
type entityFrame struct {
	pts  utils.Matrix
	axes utils.Matrix
}

func mapToEntity(ct cell.Type, dim, index int, qpts utils.Matrix) (f entityFrame, err error) {
	geom, err := cell.SubEntityGeometry(ct, dim, index)
	if err != nil {
		return
	}
	var (
		nq, _   = qpts.Dims()
		_, tdim = geom.Dims()
	)
	f.axes = utils.NewMatrix(dim, tdim)
	for j := 0; j < dim; j++ {
		for k := 0; k < tdim; k++ {
			f.axes.Set(j, k, geom.At(j+1, k)-geom.At(0, k))
		}
	}
	f.pts = utils.NewMatrix(nq, tdim)
	for q := 0; q < nq; q++ {
		for k := 0; k < tdim; k++ {
			v := geom.At(0, k)
			for j := 0; j < dim; j++ {
				v += qpts.At(q, j) * f.axes.At(j, k)
			}
			f.pts.Set(q, k, v)
		}
	}
	return
}

// makeIntegralMoments builds dual matrix rows for moments of each value
// component (projected on the entity axes when vs > 1) against a scalar
// moment space, over every sub entity of the moment space's dimension.
func makeIntegralMoments(space *FiniteElement, ct cell.Type, vs, degree, qdeg int) (
	D utils.Matrix, fns []Functional, err error) {
	var (
		subdim   = cell.TopologicalDimension(space.CellType)
		psize    = polyset.Dim(ct, degree)
		rowsPer  = 1
		nentries int
	)
	if vs > 1 {
		rowsPer = subdim
	}
	nentries, err = cell.NumEntities(ct, subdim)
	if err != nil {
		return
	}
	qpts, qwts, err := quadrature.MakeQuadrature(space.CellType, qdeg)
	if err != nil {
		return
	}
	phiTab, err := space.Tabulate(qpts, 0)
	if err != nil {
		return
	}
	var (
		phi      = phiTab[0]
		_, ndofm = phi.Dims()
		nq, _    = qpts.Dims()
	)
	D = utils.NewMatrix(ndofm*rowsPer*nentries, psize*vs)
	var c int
	for i := 0; i < nentries; i++ {
		var frame entityFrame
		frame, err = mapToEntity(ct, subdim, i, qpts)
		if err != nil {
			return
		}
		var P []utils.Matrix
		P, err = polyset.Tabulate(ct, degree, 0, frame.pts)
		if err != nil {
			return
		}
		for j := 0; j < ndofm; j++ {
			if vs == 1 {
				for k := 0; k < psize; k++ {
					var sum float64
					for q := 0; q < nq; q++ {
						sum += qwts[q] * phi.At(q, j) * P[0].At(q, k)
					}
					D.Set(c, k, sum)
				}
				fns = append(fns, Functional{IntegralMoment, subdim, i})
				c++
				continue
			}
			for d := 0; d < subdim; d++ {
				for comp := 0; comp < vs; comp++ {
					ax := frame.axes.At(d, comp)
					if ax == 0 {
						continue
					}
					for k := 0; k < psize; k++ {
						var sum float64
						for q := 0; q < nq; q++ {
							sum += qwts[q] * phi.At(q, j) * P[0].At(q, k)
						}
						D.Set(c, comp*psize+k, sum*ax)
					}
				}
				fns = append(fns, Functional{IntegralMoment, subdim, i})
				c++
			}
		}
	}
	return
}

// makeDotIntegralMoments builds dual matrix rows for moments against a
// vector valued moment space, its components pushed onto the cell through
// the entity axes and dotted with the polynomial components.
func makeDotIntegralMoments(space *FiniteElement, ct cell.Type, vs, degree, qdeg int) (
	D utils.Matrix, fns []Functional, err error) {
	var (
		subdim   = cell.TopologicalDimension(space.CellType)
		psize    = polyset.Dim(ct, degree)
		nentries int
	)
	nentries, err = cell.NumEntities(ct, subdim)
	if err != nil {
		return
	}
	qpts, qwts, err := quadrature.MakeQuadrature(space.CellType, qdeg)
	if err != nil {
		return
	}
	phiTab, err := space.Tabulate(qpts, 0)
	if err != nil {
		return
	}
	var (
		phi   = phiTab[0]
		vsm   = space.ValueSize()
		ndofm = space.NumDofs()
		nq, _ = qpts.Dims()
	)
	D = utils.NewMatrix(ndofm*nentries, psize*vs)
	var c int
	for i := 0; i < nentries; i++ {
		var frame entityFrame
		frame, err = mapToEntity(ct, subdim, i, qpts)
		if err != nil {
			return
		}
		var P []utils.Matrix
		P, err = polyset.Tabulate(ct, degree, 0, frame.pts)
		if err != nil {
			return
		}
		for j := 0; j < ndofm; j++ {
			for comp := 0; comp < vs; comp++ {
				for k := 0; k < psize; k++ {
					var sum float64
					for q := 0; q < nq; q++ {
						var dot float64
						for d := 0; d < vsm; d++ {
							dot += phi.At(q, j*vsm+d) * frame.axes.At(d, comp)
						}
						sum += qwts[q] * dot * P[0].At(q, k)
					}
					D.Set(c, comp*psize+k, sum)
				}
			}
			fns = append(fns, Functional{IntegralMoment, subdim, i})
			c++
		}
	}
	return
}

// makeTangentIntegralMoments builds edge tangent moments against a scalar
// moment space on the interval. Tangents are unnormalized edge vectors.
func makeTangentIntegralMoments(space *FiniteElement, ct cell.Type, vs, degree, qdeg int) (
	D utils.Matrix, fns []Functional, err error) {
	if space.CellType != cell.Interval {
		err = utils.InvalidParamf("element.makeTangentIntegralMoments",
			"moment space must live on the interval, got %s", space.CellType)
		return
	}
	psize := polyset.Dim(ct, degree)
	nedges, err := cell.NumEntities(ct, 1)
	if err != nil {
		return
	}
	qpts, qwts, err := quadrature.MakeQuadrature(cell.Interval, qdeg)
	if err != nil {
		return
	}
	phiTab, err := space.Tabulate(qpts, 0)
	if err != nil {
		return
	}
	var (
		phi      = phiTab[0]
		_, ndofm = phi.Dims()
		nq, _    = qpts.Dims()
	)
	D = utils.NewMatrix(ndofm*nedges, psize*vs)
	var c int
	for i := 0; i < nedges; i++ {
		var frame entityFrame
		frame, err = mapToEntity(ct, 1, i, qpts)
		if err != nil {
			return
		}
		var P []utils.Matrix
		P, err = polyset.Tabulate(ct, degree, 0, frame.pts)
		if err != nil {
			return
		}
		for j := 0; j < ndofm; j++ {
			for comp := 0; comp < vs; comp++ {
				tangent := frame.axes.At(0, comp)
				if tangent == 0 {
					continue
				}
				for k := 0; k < psize; k++ {
					var sum float64
					for q := 0; q < nq; q++ {
						sum += qwts[q] * phi.At(q, j) * P[0].At(q, k)
					}
					D.Set(c, comp*psize+k, sum*tangent)
				}
			}
			fns = append(fns, Functional{IntegralMoment, 1, i})
			c++
		}
	}
	return
}

// makeNormalIntegralMoments builds facet normal moments against a scalar
// moment space on the facet cell. Normals are unnormalized: the rotated
// edge tangent in 2D, the cross product of the face axes in 3D.
func makeNormalIntegralMoments(space *FiniteElement, ct cell.Type, vs, degree, qdeg int) (
	D utils.Matrix, fns []Functional, err error) {
	var (
		tdim   = cell.TopologicalDimension(ct)
		subdim = tdim - 1
		psize  = polyset.Dim(ct, degree)
	)
	if cell.TopologicalDimension(space.CellType) != subdim {
		err = utils.InvalidParamf("element.makeNormalIntegralMoments",
			"moment space on %s is not a facet of %s", space.CellType, ct)
		return
	}
	nfacets, err := cell.NumEntities(ct, subdim)
	if err != nil {
		return
	}
	qpts, qwts, err := quadrature.MakeQuadrature(space.CellType, qdeg)
	if err != nil {
		return
	}
	phiTab, err := space.Tabulate(qpts, 0)
	if err != nil {
		return
	}
	var (
		phi      = phiTab[0]
		_, ndofm = phi.Dims()
		nq, _    = qpts.Dims()
	)
	D = utils.NewMatrix(ndofm*nfacets, psize*vs)
	var c int
	for i := 0; i < nfacets; i++ {
		var frame entityFrame
		frame, err = mapToEntity(ct, subdim, i, qpts)
		if err != nil {
			return
		}
		normal := make([]float64, tdim)
		if tdim == 2 {
			normal[0] = -frame.axes.At(0, 1)
			normal[1] = frame.axes.At(0, 0)
		} else {
			var (
				a = frame.axes.Row(0).DataP()
				b = frame.axes.Row(1).DataP()
			)
			normal[0] = a[1]*b[2] - a[2]*b[1]
			normal[1] = a[2]*b[0] - a[0]*b[2]
			normal[2] = a[0]*b[1] - a[1]*b[0]
		}
		var P []utils.Matrix
		P, err = polyset.Tabulate(ct, degree, 0, frame.pts)
		if err != nil {
			return
		}
		for j := 0; j < ndofm; j++ {
			for comp := 0; comp < vs; comp++ {
				if normal[comp] == 0 {
					continue
				}
				for k := 0; k < psize; k++ {
					var sum float64
					for q := 0; q < nq; q++ {
						sum += qwts[q] * phi.At(q, j) * P[0].At(q, k)
					}
					D.Set(c, comp*psize+k, sum*normal[comp])
				}
			}
			fns = append(fns, Functional{IntegralMoment, subdim, i})
			c++
		}
	}
	return
}
