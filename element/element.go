// Package element constructs finite elements on the reference cells and
// tabulates their nodal bases. An element is built by choosing a spanning
// set of the polynomial space (wcoeffs, rows of orthonormal expansion
// coefficients) and a dual set of degree of freedom functionals (point
// evaluations or integral moments against sub entity moment spaces), then
// inverting the duality pairing to obtain the modal to nodal change of
// basis. All constructed values are immutable and safe for concurrent use.
package element

import (
	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/polyset"
	"github.com/notargets/gotab/utils"
)

type Family int

const (
	Lagrange Family = iota
	CrouzeixRaviart
	RaviartThomas
	NedelecFirstKind
	NedelecSecondKind
)

func (f Family) String() string {
	switch f {
	case Lagrange:
		return "Lagrange"
	case CrouzeixRaviart:
		return "Crouzeix-Raviart"
	case RaviartThomas:
		return "Raviart-Thomas"
	case NedelecFirstKind:
		return "Nedelec 1st kind H(curl)"
	case NedelecSecondKind:
		return "Nedelec 2nd kind H(curl)"
	}
	return "unknown"
}

// FamilyFromString resolves the names accepted on the command line.
func FamilyFromString(s string) (f Family, err error) {
	switch s {
	case "Lagrange", "P", "lagrange":
		f = Lagrange
	case "Crouzeix-Raviart", "CR", "crouzeix-raviart":
		f = CrouzeixRaviart
	case "Raviart-Thomas", "RT", "raviart-thomas":
		f = RaviartThomas
	case "Nedelec 1st kind H(curl)", "N1curl", "nedelec":
		f = NedelecFirstKind
	case "Nedelec 2nd kind H(curl)", "N2curl", "nedelec2":
		f = NedelecSecondKind
	default:
		err = utils.InvalidParamf("element.FamilyFromString",
			"unknown element family %q", s)
	}
	return
}

// MappingType describes how reference basis values transform under a
// geometric map to a physical cell. Tabulation always returns reference
// cell values; applying the map needs the geometric Jacobian and is the
// caller's job.
type MappingType int

const (
	Identity MappingType = iota
	CovariantPiola
	ContravariantPiola
	DoubleCovariantPiola
	DoubleContravariantPiola
)

func (m MappingType) String() string {
	switch m {
	case Identity:
		return "identity"
	case CovariantPiola:
		return "covariant Piola"
	case ContravariantPiola:
		return "contravariant Piola"
	case DoubleCovariantPiola:
		return "double covariant Piola"
	case DoubleContravariantPiola:
		return "double contravariant Piola"
	}
	return "unknown"
}

type FunctionalKind int

const (
	PointEval FunctionalKind = iota
	IntegralMoment
)

// Functional records the kind and entity ownership of one degree of
// freedom. The slice order on a FiniteElement is the DOF numbering:
// grouped by increasing entity dimension, then entity index, then creation
// order within the entity.
type Functional struct {
	Kind        FunctionalKind
	EntityDim   int
	EntityIndex int
}

// FiniteElement is an immutable reference element. Coeffs is the
// (ndofs x psize*valueSize) modal to nodal change of basis; column blocks
// are component major, i.e. entry (d, c*psize+k) multiplies orthonormal
// polynomial k in value component c of basis function d.
type FiniteElement struct {
	CellType cell.Type
	Family   Family
	Degree   int
	Mapping  MappingType

	// ValueShape is empty for scalar elements, {tdim} for vector ones.
	ValueShape []int

	Coeffs           utils.Matrix
	EntityDofs       [][]int
	Functionals      []Functional
	BasePermutations []utils.Matrix
	Discontinuous    bool

	// polyDegree is the degree of the orthonormal set the element space
	// is embedded in (equals Degree for all current families).
	polyDegree int
}

// NumDofs is the number of basis functions.
func (fe *FiniteElement) NumDofs() int {
	n, _ := fe.Coeffs.Dims()
	return n
}

// ValueSize is the product of the value shape, 1 for scalar elements.
func (fe *FiniteElement) ValueSize() (vs int) {
	vs = 1
	for _, s := range fe.ValueShape {
		vs *= s
	}
	return
}

// Tabulate evaluates the nodal basis and its derivatives of total order up
// to nderiv at the given points, one row per point. The slice is indexed by
// the canonical derivative multi-index (polyset.Idx2D / polyset.Idx3D over
// the derivative tuple); each matrix has ndofs*ValueSize() columns with
// value components blocked per basis function (col = dof*vs + component).
//
// Values are reference cell values: for Piola mapped elements the physical
// transformation is applied by the caller using the element's Mapping.
// Points outside the reference cell evaluate normally.
func (fe *FiniteElement) Tabulate(pts utils.Matrix, nderiv int) (R []utils.Matrix, err error) {
	P, err := polyset.Tabulate(fe.CellType, fe.polyDegree, nderiv, pts)
	if err != nil {
		return
	}
	var (
		np, psize = P[0].Dims()
		ndofs     = fe.NumDofs()
		vs        = fe.ValueSize()
	)
	R = make([]utils.Matrix, len(P))
	for di := range P {
		M := utils.NewMatrix(np, ndofs*vs)
		for p := 0; p < np; p++ {
			for d := 0; d < ndofs; d++ {
				for c := 0; c < vs; c++ {
					var sum float64
					for k := 0; k < psize; k++ {
						sum += fe.Coeffs.At(d, c*psize+k) * P[di].At(p, k)
					}
					M.Set(p, d*vs+c, sum)
				}
			}
		}
		R[di] = M
	}
	return
}

// computeExpansionCoefficients inverts the duality pairing between the
// spanning set B and the dual matrix D: solves (B D^T) C = B. A singular
// pairing means the family definition and polynomial space are
// inconsistent, which is fatal.
func computeExpansionCoefficients(fam Family, ct cell.Type, degree int,
	wcoeffs, dual utils.Matrix) (C utils.Matrix, err error) {
	A := wcoeffs.Mul(dual.Transpose())
	C, err = A.LUSolve(wcoeffs)
	if err != nil {
		err = utils.ConstructionErrf(fam.String(), ct.String(), degree,
			"singular dual matrix: %v", err)
	}
	return
}

// Create constructs a finite element of the given family. Unsupported
// (family, cell, degree) combinations fail with an InvalidParameterError
// before any construction work.
func Create(fam Family, ct cell.Type, degree int) (fe *FiniteElement, err error) {
	switch fam {
	case Lagrange:
		fe, err = NewLagrange(ct, degree)
	case CrouzeixRaviart:
		fe, err = NewCrouzeixRaviart(ct, degree)
	case RaviartThomas:
		fe, err = NewRaviartThomas(ct, degree)
	case NedelecFirstKind:
		fe, err = NewNedelecFirstKind(ct, degree)
	case NedelecSecondKind:
		fe, err = NewNedelecSecondKind(ct, degree)
	default:
		err = utils.InvalidParamf("element.Create",
			"unknown element family %d", fam)
	}
	return
}

// identityPermutations builds the base permutation set for an element with
// no entity reordering effect on its DOFs: one identity matrix per
// reflection/rotation generator of the cell's edges and faces.
func identityPermutations(ct cell.Type, ndofs int) (perms []utils.Matrix) {
	var (
		topo  = cell.Topology(ct)
		tdim  = cell.TopologicalDimension(ct)
		count int
	)
	for dim := 1; dim < tdim; dim++ {
		count += len(topo[dim]) * dim
	}
	perms = make([]utils.Matrix, count)
	for i := range perms {
		perms[i] = utils.NewIdentityMatrix(ndofs)
	}
	return
}
