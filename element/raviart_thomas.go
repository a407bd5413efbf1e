package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/polyset"
	"github.com/notargets/gotab/quadrature"
	"github.com/notargets/gotab/utils"
)

// NewRaviartThomas builds the H(div) conforming Raviart-Thomas element on a
// simplex. The space is the full vector polynomial space of degree-1 plus
// the facet bubbles x p for p in the degree-1 facet polynomials; DOFs are
// normal moments on facets and interior integral moments.
func NewRaviartThomas(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if ct != cell.Triangle && ct != cell.Tetrahedron {
		err = utils.InvalidParamf("element.NewRaviartThomas",
			"unsupported cell type %s", ct)
		return
	}
	if degree < 1 {
		err = utils.InvalidParamf("element.NewRaviartThomas",
			"degree must be >= 1, got %d", degree)
		return
	}
	var (
		tdim      = cell.TopologicalDimension(ct)
		facettype = cell.Interval
	)
	if tdim == 3 {
		facettype = cell.Triangle
	}
	var (
		// Scalar polynomial counts at degree-1, degree-2 and on the facet
		nv    = polyset.Dim(ct, degree-1)
		ns0   = polyset.Dim(ct, degree-2)
		ns    = polyset.Dim(facettype, degree-1)
		psize = polyset.Dim(ct, degree)
		ndofs = nv*tdim + ns
	)

	qpts, qwts, err := quadrature.MakeQuadrature(ct, 2*degree)
	if err != nil {
		return
	}
	P, err := polyset.Tabulate(ct, degree, 0, qpts)
	if err != nil {
		return
	}
	var (
		Pk    = P[0]
		nq, _ = qpts.Dims()
	)

	// Vector polynomials of degree-1 embed as identity blocks
	wcoeffs := utils.NewMatrix(ndofs, psize*tdim)
	for j := 0; j < tdim; j++ {
		for i := 0; i < nv; i++ {
			wcoeffs.Set(nv*j+i, psize*j+i, 1)
		}
	}
	// Facet bubbles: coefficients of x_j p against the orthonormal set
	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			for j := 0; j < tdim; j++ {
				var sum float64
				for q := 0; q < nq; q++ {
					sum += qwts[q] * Pk.At(q, ns0+i) *
						qpts.At(q, j) * Pk.At(q, k)
				}
				wcoeffs.Set(nv*tdim+i, psize*j+k, sum)
			}
		}
	}

	// Dual space: facet normal moments, then interior moments
	qdeg := 5 * degree
	facetSpace, err := NewDiscontinuousLagrange(facettype, degree-1)
	if err != nil {
		return
	}
	dual := utils.NewMatrix(ndofs, psize*tdim)
	Dfacet, fns, err := makeNormalIntegralMoments(facetSpace, ct, tdim, degree, qdeg)
	if err != nil {
		return
	}
	dual.AssignBlock(0, 0, Dfacet)
	if degree > 1 {
		interiorSpace, ierr := NewDiscontinuousLagrange(ct, degree-2)
		if ierr != nil {
			err = ierr
			return
		}
		var (
			Dint      utils.Matrix
			fnsInt    []Functional
			facetRows = len(fns)
		)
		Dint, fnsInt, err = makeIntegralMoments(interiorSpace, ct, tdim, degree, qdeg)
		if err != nil {
			return
		}
		dual.AssignBlock(facetRows, 0, Dint)
		fns = append(fns, fnsInt...)
	}

	perms := rtPermutations(ct, degree, ndofs, ns)

	topo := cell.Topology(ct)
	entityDofs := make([][]int, tdim+1)
	for dim := range entityDofs {
		entityDofs[dim] = make([]int, len(topo[dim]))
	}
	for i := range topo[tdim-1] {
		entityDofs[tdim-1][i] = ns
	}
	entityDofs[tdim][0] = ns0 * tdim

	coeffs, err := computeExpansionCoefficients(RaviartThomas, ct, degree,
		wcoeffs, dual)
	if err != nil {
		return
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           RaviartThomas,
		Degree:           degree,
		Mapping:          ContravariantPiola,
		ValueShape:       []int{tdim},
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: perms,
		polyDegree:       degree,
	}
	return
}

// rtPermutations: reversing a facet flips its normal, so facet DOF blocks
// pick up a sign along with the facet-local renumbering.
func rtPermutations(ct cell.Type, degree, ndofs, ns int) (perms []utils.Matrix) {
	var (
		tdim = cell.TopologicalDimension(ct)
		topo = cell.Topology(ct)
	)
	perms = identityPermutations(ct, ndofs)
	if tdim == 2 {
		edgeRef := intervalReflection(degree)
		for edge := range topo[1] {
			start := ns * edge
			for i, pi := range edgeRef {
				perms[edge].Set(start+i, start+i, 0)
				perms[edge].Set(start+i, start+pi, -1)
			}
		}
		return
	}
	faceRot := triangleRotation(degree)
	faceRef := triangleReflection(degree)
	nedges := len(topo[1])
	for face := range topo[2] {
		start := ns * face
		for i := range faceRot {
			g := nedges + 2*face
			perms[g].Set(start+i, start+i, 0)
			perms[g].Set(start+i, start+faceRot[i], 1)
			perms[g+1].Set(start+i, start+i, 0)
			perms[g+1].Set(start+i, start+faceRef[i], -1)
		}
	}
	return
}
