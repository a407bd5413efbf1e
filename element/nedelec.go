package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/polyset"
	"github.com/notargets/gotab/quadrature"
	"github.com/notargets/gotab/utils"
)

// NewNedelecFirstKind builds the H(curl) conforming Nedelec element of the
// first kind on a simplex: full vector polynomials of degree-1 plus the
// rotational bubbles, with edge tangent moments, face moments and interior
// moments as DOFs.
func NewNedelecFirstKind(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if degree < 1 {
		err = utils.InvalidParamf("element.NewNedelecFirstKind",
			"degree must be >= 1, got %d", degree)
		return
	}
	switch ct {
	case cell.Triangle:
		return newNedelec2D(degree)
	case cell.Tetrahedron:
		return newNedelec3D(degree)
	}
	err = utils.InvalidParamf("element.NewNedelecFirstKind",
		"unsupported cell type %s", ct)
	return
}

func newNedelec2D(degree int) (fe *FiniteElement, err error) {
	var (
		ct    = cell.Triangle
		nv    = polyset.Dim(ct, degree-1)
		ns0   = polyset.Dim(ct, degree-2)
		ns    = degree
		psize = polyset.Dim(ct, degree)
		ndofs = 2*nv + ns
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
	wcoeffs := utils.NewMatrix(ndofs, psize*2)
	for i := 0; i < nv; i++ {
		wcoeffs.Set(i, i, 1)
		wcoeffs.Set(nv+i, psize+i, 1)
	}
	// Rotational bubbles q (y, -x) for q in the degree-1 harmonics
	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			var wy, wx float64
			for q := 0; q < nq; q++ {
				f := qwts[q] * Pk.At(q, ns0+i) * Pk.At(q, k)
				wy += f * qpts.At(q, 1)
				wx += f * qpts.At(q, 0)
			}
			wcoeffs.Set(2*nv+i, k, wy)
			wcoeffs.Set(2*nv+i, psize+k, -wx)
		}
	}

	qdeg := 5 * degree
	edgeSpace, err := NewDiscontinuousLagrange(cell.Interval, degree-1)
	if err != nil {
		return
	}
	dual := utils.NewMatrix(ndofs, psize*2)
	Dedge, fns, err := makeTangentIntegralMoments(edgeSpace, ct, 2, degree, qdeg)
	if err != nil {
		return
	}
	dual.AssignBlock(0, 0, Dedge)
	if degree > 1 {
		interiorSpace, ierr := NewDiscontinuousLagrange(ct, degree-2)
		if ierr != nil {
			err = ierr
			return
		}
		var (
			Dint     utils.Matrix
			fnsInt   []Functional
			edgeRows = len(fns)
		)
		Dint, fnsInt, err = makeIntegralMoments(interiorSpace, ct, 2, degree, qdeg)
		if err != nil {
			return
		}
		dual.AssignBlock(edgeRows, 0, Dint)
		fns = append(fns, fnsInt...)
	}

	// Edge reversal renumbers the edge DOFs and flips their tangents
	perms := identityPermutations(ct, ndofs)
	edgeRef := intervalReflection(degree)
	edgeDir := intervalReflectionTangentDirections(degree)
	for edge := 0; edge < 3; edge++ {
		start := degree * edge
		for i, pi := range edgeRef {
			perms[edge].Set(start+i, start+i, 0)
			perms[edge].Set(start+i, start+pi, 1)
		}
		dir := utils.NewIdentityMatrix(ndofs)
		dir.AssignBlock(start, start, edgeDir)
		perms[edge] = perms[edge].Mul(dir)
	}

	topo := cell.Topology(ct)
	entityDofs := make([][]int, 3)
	entityDofs[0] = make([]int, len(topo[0]))
	entityDofs[1] = []int{degree, degree, degree}
	entityDofs[2] = []int{degree * (degree - 1)}

	coeffs, err := computeExpansionCoefficients(NedelecFirstKind, ct, degree,
		wcoeffs, dual)
	if err != nil {
		return
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           NedelecFirstKind,
		Degree:           degree,
		Mapping:          CovariantPiola,
		ValueShape:       []int{2},
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: perms,
		polyDegree:       degree,
	}
	return
}

func newNedelec3D(degree int) (fe *FiniteElement, err error) {
	var (
		ct  = cell.Tetrahedron
		d   = degree
		nv  = polyset.Dim(ct, d-1)
		ns0 = polyset.Dim(ct, d-2)
		// Rotational bubble candidates per pair of components, and the
		// dependent ones that are excluded
		ns       = d * (d + 1) / 2
		nsRemove = d * (d - 1) / 2
		psize    = polyset.Dim(ct, d)
		ndofs    = 6*d + 4*d*(d-1) + (d-2)*(d-1)*d/2
	)
	qpts, qwts, err := quadrature.MakeQuadrature(ct, 2*d)
	if err != nil {
		return
	}
	P, err := polyset.Tabulate(ct, d, 0, qpts)
	if err != nil {
		return
	}
	var (
		Pk    = P[0]
		nq, _ = qpts.Dims()
	)
	wcoeffs := utils.NewMatrix(ndofs, psize*3)
	for j := 0; j < 3; j++ {
		for i := 0; i < nv; i++ {
			wcoeffs.Set(nv*j+i, psize*j+i, 1)
		}
	}
	moment := func(i, k, coord int) (sum float64) {
		for q := 0; q < nq; q++ {
			sum += qwts[q] * Pk.At(q, ns0+i) * qpts.At(q, coord) * Pk.At(q, k)
		}
		return
	}
	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			w := moment(i, k, 2)
			if i >= nsRemove {
				wcoeffs.Set(3*nv+i-nsRemove, psize+k, -w)
			}
			wcoeffs.Set(3*nv+i+ns-nsRemove, k, w)
		}
	}
	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			w := moment(i, k, 1)
			wcoeffs.Set(3*nv+i+2*ns-nsRemove, k, -w)
			if i >= nsRemove {
				wcoeffs.Set(3*nv+i-nsRemove, 2*psize+k, w)
			}
		}
	}
	for i := 0; i < ns; i++ {
		for k := 0; k < psize; k++ {
			w := moment(i, k, 0)
			wcoeffs.Set(3*nv+i+ns-nsRemove, 2*psize+k, -w)
			wcoeffs.Set(3*nv+i+2*ns-nsRemove, psize+k, w)
		}
	}

	qdeg := 5 * d
	edgeSpace, err := NewDiscontinuousLagrange(cell.Interval, d-1)
	if err != nil {
		return
	}
	dual := utils.NewMatrix(ndofs, psize*3)
	Dedge, fns, err := makeTangentIntegralMoments(edgeSpace, ct, 3, d, qdeg)
	if err != nil {
		return
	}
	dual.AssignBlock(0, 0, Dedge)
	if d > 1 {
		faceSpace, ferr := NewDiscontinuousLagrange(cell.Triangle, d-2)
		if ferr != nil {
			err = ferr
			return
		}
		var (
			Dface  utils.Matrix
			fnsFac []Functional
		)
		Dface, fnsFac, err = makeIntegralMoments(faceSpace, ct, 3, d, qdeg)
		if err != nil {
			return
		}
		dual.AssignBlock(len(fns), 0, Dface)
		fns = append(fns, fnsFac...)
	}
	if d > 2 {
		interiorSpace, ierr := NewDiscontinuousLagrange(ct, d-3)
		if ierr != nil {
			err = ierr
			return
		}
		var (
			Dint   utils.Matrix
			fnsInt []Functional
		)
		Dint, fnsInt, err = makeIntegralMoments(interiorSpace, ct, 3, d, qdeg)
		if err != nil {
			return
		}
		dual.AssignBlock(len(fns), 0, Dint)
		fns = append(fns, fnsInt...)
	}

	perms := nedelec3DPermutations(d, ndofs)

	topo := cell.Topology(ct)
	entityDofs := make([][]int, 4)
	entityDofs[0] = make([]int, len(topo[0]))
	entityDofs[1] = make([]int, len(topo[1]))
	for i := range entityDofs[1] {
		entityDofs[1][i] = d
	}
	entityDofs[2] = make([]int, len(topo[2]))
	for i := range entityDofs[2] {
		entityDofs[2][i] = d * (d - 1)
	}
	entityDofs[3] = []int{d * (d - 1) * (d - 2) / 2}

	coeffs, err := computeExpansionCoefficients(NedelecFirstKind, ct, d,
		wcoeffs, dual)
	if err != nil {
		return
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           NedelecFirstKind,
		Degree:           d,
		Mapping:          CovariantPiola,
		ValueShape:       []int{3},
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: perms,
		polyDegree:       d,
	}
	return
}

func nedelec3DPermutations(d, ndofs int) (perms []utils.Matrix) {
	perms = identityPermutations(cell.Tetrahedron, ndofs)
	var (
		edgeRef = intervalReflection(d)
		edgeDir = intervalReflectionTangentDirections(d)
	)
	for edge := 0; edge < 6; edge++ {
		start := d * edge
		for i, pi := range edgeRef {
			perms[edge].Set(start+i, start+i, 0)
			perms[edge].Set(start+i, start+pi, 1)
		}
		dir := utils.NewIdentityMatrix(ndofs)
		dir.AssignBlock(start, start, edgeDir)
		perms[edge] = perms[edge].Mul(dir)
	}
	if d < 2 {
		return
	}
	var (
		faceRot = triangleRotation(d - 1)
		faceRef = triangleReflection(d - 1)
		dirRot  = triangleRotationTangentDirections(d - 1)
		dirRef  = triangleReflectionTangentDirections(d - 1)
		nface   = d * (d - 1)
	)
	for face := 0; face < 4; face++ {
		var (
			start = 6*d + nface*face
			g     = 6 + 2*face
		)
		// Each face DOF is a pair of tangential components
		for i := range faceRot {
			for b := 0; b < 2; b++ {
				perms[g].Set(start+2*i+b, start+2*i+b, 0)
				perms[g].Set(start+2*i+b, start+2*faceRot[i]+b, 1)
				perms[g+1].Set(start+2*i+b, start+2*i+b, 0)
				perms[g+1].Set(start+2*i+b, start+2*faceRef[i]+b, 1)
			}
		}
		rot := utils.NewIdentityMatrix(ndofs)
		rot.AssignBlock(start, start, dirRot)
		perms[g] = perms[g].Mul(rot)
		ref := utils.NewIdentityMatrix(ndofs)
		ref.AssignBlock(start, start, dirRef)
		perms[g+1] = perms[g+1].Mul(ref)
	}
	return
}

// NewNedelecSecondKind builds the H(curl) conforming Nedelec element of the
// second kind: the full vector polynomial space of the given degree, with
// edge tangent moments, facet dot moments against Raviart-Thomas spaces and
// interior moments as DOFs.
func NewNedelecSecondKind(ct cell.Type, degree int) (fe *FiniteElement, err error) {
	if ct != cell.Triangle && ct != cell.Tetrahedron {
		err = utils.InvalidParamf("element.NewNedelecSecondKind",
			"unsupported cell type %s", ct)
		return
	}
	if degree < 1 {
		err = utils.InvalidParamf("element.NewNedelecSecondKind",
			"degree must be >= 1, got %d", degree)
		return
	}
	var (
		tdim  = cell.TopologicalDimension(ct)
		psize = polyset.Dim(ct, degree)
		ndofs = tdim * psize
		qdeg  = 5 * degree
	)
	wcoeffs := utils.NewIdentityMatrix(ndofs)

	edgeSpace, err := NewDiscontinuousLagrange(cell.Interval, degree)
	if err != nil {
		return
	}
	dual := utils.NewMatrix(ndofs, psize*tdim)
	Dedge, fns, err := makeTangentIntegralMoments(edgeSpace, ct, tdim, degree, qdeg)
	if err != nil {
		return
	}
	dual.AssignBlock(0, 0, Dedge)

	if degree > 1 {
		// Dot moments against the degree-1 Raviart-Thomas space on each
		// facet (the cell itself in 2D)
		rtSpace, rerr := NewRaviartThomas(cell.Triangle, degree-1)
		if rerr != nil {
			err = rerr
			return
		}
		if tdim == 2 {
			var (
				Dint   utils.Matrix
				fnsInt []Functional
			)
			Dint, fnsInt, err = makeDotIntegralMoments(rtSpace, ct, 2, degree, qdeg)
			if err != nil {
				return
			}
			dual.AssignBlock(len(fns), 0, Dint)
			fns = append(fns, fnsInt...)
		} else {
			var (
				Dface  utils.Matrix
				fnsFac []Functional
			)
			Dface, fnsFac, err = makeDotIntegralMoments(rtSpace, ct, 3, degree, qdeg)
			if err != nil {
				return
			}
			dual.AssignBlock(len(fns), 0, Dface)
			fns = append(fns, fnsFac...)
		}
	}
	if tdim == 3 && degree > 2 {
		interiorSpace, ierr := NewRaviartThomas(ct, degree-2)
		if ierr != nil {
			err = ierr
			return
		}
		var (
			Dint   utils.Matrix
			fnsInt []Functional
		)
		Dint, fnsInt, err = makeDotIntegralMoments(interiorSpace, ct, 3, degree, qdeg)
		if err != nil {
			return
		}
		dual.AssignBlock(len(fns), 0, Dint)
		fns = append(fns, fnsInt...)
	}

	topo := cell.Topology(ct)
	entityDofs := make([][]int, tdim+1)
	entityDofs[0] = make([]int, len(topo[0]))
	entityDofs[1] = make([]int, len(topo[1]))
	for i := range entityDofs[1] {
		entityDofs[1][i] = degree + 1
	}
	entityDofs[2] = make([]int, len(topo[2]))
	for i := range entityDofs[2] {
		entityDofs[2][i] = degree*degree - 1
	}
	if tdim == 3 {
		entityDofs[3] = []int{ndofs - 6*(degree+1) - 4*(degree*degree-1)}
	}

	coeffs, err := computeExpansionCoefficients(NedelecSecondKind, ct, degree,
		wcoeffs, dual)
	if err != nil {
		return
	}
	fe = &FiniteElement{
		CellType:         ct,
		Family:           NedelecSecondKind,
		Degree:           degree,
		Mapping:          CovariantPiola,
		ValueShape:       []int{tdim},
		Coeffs:           coeffs,
		EntityDofs:       entityDofs,
		Functionals:      fns,
		BasePermutations: identityPermutations(ct, ndofs),
		polyDegree:       degree,
	}
	return
}
