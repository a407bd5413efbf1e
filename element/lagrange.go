package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/polyset"
	"github.com/notargets/gotab/utils"
)

func lagrangeCellSupported(ct cell.Type) bool {
	switch ct {
	case cell.Interval, cell.Triangle, cell.Quadrilateral,
		cell.Tetrahedron, cell.Hexahedron, cell.Prism:
		return true
	}
	return false
}

// NewLagrange builds the continuous Lagrange element: point evaluations on
// the equispaced lattice, DOFs owned by the entity their point lies on.
func NewLagrange(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if !lagrangeCellSupported(ct) {
		err = utils.InvalidParamf("element.NewLagrange",
			"unsupported cell type %s", ct)
		return
	}
	if degree < 1 {
		err = utils.InvalidParamf("element.NewLagrange",
			"continuous Lagrange needs degree >= 1, got %d", degree)
		return
	}
	var (
		tdim  = cell.TopologicalDimension(ct)
		topo  = cell.Topology(ct)
		ndofs = polyset.Dim(ct, degree)
		geom  = cell.Geometry(ct)
		pts   = utils.NewMatrix(ndofs, tdim)
		fns   = make([]Functional, 0, ndofs)

		entityDofs = make([][]int, tdim+1)
	)
	var row int
	addPoint := func(p []float64, dim, index int) {
		pts.SetRow(row, p)
		fns = append(fns, Functional{PointEval, dim, index})
		entityDofs[dim][index]++
		row++
	}
	for dim := 0; dim <= tdim; dim++ {
		entityDofs[dim] = make([]int, len(topo[dim]))
		for index := range topo[dim] {
			switch {
			case dim == 0:
				addPoint(geom.Row(topo[0][index][0]).DataP(), 0, index)
			case dim == tdim:
				interior, lerr := cell.CreateLattice(ct, degree, false)
				if lerr != nil {
					err = lerr
					return
				}
				if interior.IsEmpty() {
					continue
				}
				n, _ := interior.Dims()
				for i := 0; i < n; i++ {
					addPoint(interior.Row(i).DataP(), dim, index)
				}
			default:
				st, serr := cell.SubEntityType(ct, dim, index)
				if serr != nil {
					err = serr
					return
				}
				lattice, lerr := cell.CreateLattice(st, degree, false)
				if lerr != nil {
					err = lerr
					return
				}
				if lattice.IsEmpty() {
					continue
				}
				sub, serr2 := cell.SubEntityGeometry(ct, dim, index)
				if serr2 != nil {
					err = serr2
					return
				}
				n, ldim := lattice.Dims()
				p := make([]float64, tdim)
				for i := 0; i < n; i++ {
					for k := 0; k < tdim; k++ {
						v := sub.At(0, k)
						for j := 0; j < ldim; j++ {
							v += lattice.At(i, j) *
								(sub.At(j+1, k) - sub.At(0, k))
						}
						p[k] = v
					}
					addPoint(p, dim, index)
				}
			}
		}
	}

	coeffs, err := pointEvalCoefficients(Lagrange, ct, degree, pts)
	if err != nil {
		return
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           Lagrange,
		Degree:           degree,
		Mapping:          Identity,
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: lagrangePermutations(ct, degree, entityDofs),
		polyDegree:       degree,
	}
	return
}

// NewDiscontinuousLagrange builds the discontinuous Lagrange element: the
// same polynomial space with every DOF owned by the cell interior, so no
// inter element continuity is imposed.
func NewDiscontinuousLagrange(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if !lagrangeCellSupported(ct) {
		err = utils.InvalidParamf("element.NewDiscontinuousLagrange",
			"unsupported cell type %s", ct)
		return
	}
	if degree < 0 {
		err = utils.InvalidParamf("element.NewDiscontinuousLagrange",
			"negative degree %d", degree)
		return
	}
	pts, err := cell.CreateLattice(ct, degree, true)
	if err != nil {
		return
	}
	var (
		tdim  = cell.TopologicalDimension(ct)
		topo  = cell.Topology(ct)
		ndofs = polyset.Dim(ct, degree)
	)
	coeffs, err := pointEvalCoefficients(Lagrange, ct, degree, pts)
	if err != nil {
		return
	}
	entityDofs := make([][]int, tdim+1)
	for dim := range entityDofs {
		entityDofs[dim] = make([]int, len(topo[dim]))
	}
	entityDofs[tdim][0] = ndofs
	fns := make([]Functional, ndofs)
	for i := range fns {
		fns[i] = Functional{PointEval, tdim, 0}
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           Lagrange,
		Degree:           degree,
		Mapping:          Identity,
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: identityPermutations(ct, ndofs),
		Discontinuous:    true,
		polyDegree:       degree,
	}
	return
}

// pointEvalCoefficients inverts the Vandermonde style dual matrix of point
// evaluations against the orthonormal set.
func pointEvalCoefficients(fam Family, ct cell.Type, degree int,
	pts utils.Matrix) (C utils.Matrix, err error) {
	P, err := polyset.Tabulate(ct, degree, 0, pts)
	if err != nil {
		return
	}
	ndofs := polyset.Dim(ct, degree)
	np, _ := P[0].Dims()
	if np != ndofs {
		err = utils.ConstructionErrf(fam.String(), ct.String(), degree,
			"%d evaluation points for %d basis functions", np, ndofs)
		return
	}
	return computeExpansionCoefficients(fam, ct, degree,
		utils.NewIdentityMatrix(ndofs), P[0])
}

// lagrangePermutations builds the base permutations acting on the interior
// lattice DOFs of each edge and triangular face. Quadrilateral face
// generators are identities at present.
func lagrangePermutations(ct cell.Type, degree int, entityDofs [][]int) (perms []utils.Matrix) {
	var (
		tdim  = cell.TopologicalDimension(ct)
		topo  = cell.Topology(ct)
		ndofs = 0
	)
	for dim := range entityDofs {
		for _, n := range entityDofs[dim] {
			ndofs += n
		}
	}
	perms = identityPermutations(ct, ndofs)
	if tdim < 2 {
		return
	}

	// DOF offset of each entity block in the global numbering
	offset := func(dim, index int) (start int) {
		for d := 0; d < dim; d++ {
			for _, n := range entityDofs[d] {
				start += n
			}
		}
		for i := 0; i < index; i++ {
			start += entityDofs[dim][i]
		}
		return
	}

	applyPerm := func(P utils.Matrix, start int, perm []int) {
		for i, pi := range perm {
			P.Set(start+i, start+i, 0)
			P.Set(start+i, start+pi, 1)
		}
	}

	g := 0
	edgeRef := intervalReflection(degree - 1)
	for index := range topo[1] {
		applyPerm(perms[g], offset(1, index), edgeRef)
		g++
	}
	if tdim == 3 {
		faceRot := triangleRotation(degree - 2)
		faceRef := triangleReflection(degree - 2)
		for index := range topo[2] {
			st, _ := cell.SubEntityType(ct, 2, index)
			if st == cell.Triangle && degree > 2 {
				applyPerm(perms[g], offset(2, index), faceRot)
				applyPerm(perms[g+1], offset(2, index), faceRef)
			}
			g += 2
		}
	}
	return
}
