package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/utils"
)

// NewCrouzeixRaviart builds the nonconforming Crouzeix-Raviart element:
// degree 1 point evaluations at the facet midpoints of a simplex.
func NewCrouzeixRaviart(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if ct != cell.Triangle && ct != cell.Tetrahedron {
		err = utils.InvalidParamf("element.NewCrouzeixRaviart",
			"unsupported cell type %s", ct)
		return
	}
	if degree != 1 {
		err = utils.InvalidParamf("element.NewCrouzeixRaviart",
			"only degree 1 is defined, got %d", degree)
		return
	}
	var (
		tdim    = cell.TopologicalDimension(ct)
		topo    = cell.Topology(ct)
		nfacets = len(topo[tdim-1])
		pts     = utils.NewMatrix(nfacets, tdim)
		fns     = make([]Functional, nfacets)
	)
	for i := 0; i < nfacets; i++ {
		geom, gerr := cell.SubEntityGeometry(ct, tdim-1, i)
		if gerr != nil {
			err = gerr
			return
		}
		nv, _ := geom.Dims()
		for k := 0; k < tdim; k++ {
			var mid float64
			for v := 0; v < nv; v++ {
				mid += geom.At(v, k)
			}
			pts.Set(i, k, mid/float64(nv))
		}
		fns[i] = Functional{PointEval, tdim - 1, i}
	}
	coeffs, err := pointEvalCoefficients(CrouzeixRaviart, ct, degree, pts)
	if err != nil {
		return
	}
	entityDofs := make([][]int, tdim+1)
	for dim := range entityDofs {
		entityDofs[dim] = make([]int, len(topo[dim]))
	}
	for i := range topo[tdim-1] {
		entityDofs[tdim-1][i] = 1
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           CrouzeixRaviart,
		Degree:           degree,
		Mapping:          Identity,
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: identityPermutations(ct, nfacets),
		polyDegree:       degree,
	}
	return
}
