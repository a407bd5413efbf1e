package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotab/cell"
	"github.com/notargets/gotab/quadrature"
	"github.com/notargets/gotab/utils"
)

func TestLagrangeIntervalP1Identity(t *testing.T) {
	fe, err := NewLagrange(cell.Interval, 1)
	require.NoError(t, err)
	pts := utils.NewMatrix(2, 1, []float64{0, 1})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDeltaf(t, want, R[0].At(i, j), 1e-13, "phi_%d(x_%d)", j, i)
		}
	}
}

func TestLagrangeNodalIdentity(t *testing.T) {
	// P2 triangle nodes in entity order: vertices, then edge midpoints of
	// edges {1,2}, {0,2}, {0,1}
	nodes := utils.NewMatrix(6, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		0.5, 0.5,
		0, 0.5,
		0.5, 0,
	})
	fe, err := NewLagrange(cell.Triangle, 2)
	require.NoError(t, err)
	require.Equal(t, 6, fe.NumDofs())
	R, err := fe.Tabulate(nodes, 0)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDeltaf(t, want, R[0].At(i, j), 1e-12, "phi_%d(node %d)", j, i)
		}
	}

	// Nodal interpolation is exact for functions in the space
	f := func(x, y float64) float64 { return x*x + 0.5*y - x*y }
	pts := utils.NewMatrix(2, 2, []float64{0.31, 0.17, 0.05, 0.83})
	Rp, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		var got float64
		for j := 0; j < 6; j++ {
			got += f(nodes.At(j, 0), nodes.At(j, 1)) * Rp[0].At(p, j)
		}
		assert.InDeltaf(t, f(pts.At(p, 0), pts.At(p, 1)), got, 1e-12,
			"interpolant at point %d", p)
	}
}

func TestLagrangePartitionOfUnity(t *testing.T) {
	cells := []cell.Type{
		cell.Interval, cell.Triangle, cell.Quadrilateral,
		cell.Tetrahedron, cell.Hexahedron, cell.Prism,
	}
	for _, ct := range cells {
		for degree := 1; degree <= 3; degree++ {
			fe, err := NewLagrange(ct, degree)
			require.NoErrorf(t, err, "%s degree %d", ct, degree)
			pts, _, err := quadrature.MakeQuadrature(ct, 2)
			require.NoError(t, err)
			R, err := fe.Tabulate(pts, 1)
			require.NoError(t, err)
			np, nd := R[0].Dims()
			for p := 0; p < np; p++ {
				var sum, dsum float64
				for j := 0; j < nd; j++ {
					sum += R[0].At(p, j)
					dsum += R[1].At(p, j)
				}
				assert.InDeltaf(t, 1.0, sum, 1e-12,
					"%s degree %d point %d", ct, degree, p)
				// Derivatives of a constant sum vanish
				assert.InDeltaf(t, 0.0, dsum, 1e-10,
					"%s degree %d point %d derivative", ct, degree, p)
			}
		}
	}
}

func TestDiscontinuousLagrange(t *testing.T) {
	fe, err := NewDiscontinuousLagrange(cell.Triangle, 0)
	require.NoError(t, err)
	assert.True(t, fe.Discontinuous)
	assert.Equal(t, 1, fe.NumDofs())
	pts := utils.NewMatrix(1, 2, []float64{0.7, 0.1})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	assert.InDeltaf(t, 1.0, R[0].At(0, 0), 1e-14, "constant basis")

	fe2, err := NewDiscontinuousLagrange(cell.Triangle, 2)
	require.NoError(t, err)
	tdim := cell.TopologicalDimension(cell.Triangle)
	for dim := 0; dim < tdim; dim++ {
		for _, n := range fe2.EntityDofs[dim] {
			assert.Zero(t, n)
		}
	}
	assert.Equal(t, 6, fe2.EntityDofs[tdim][0])
}

func TestCrouzeixRaviartMidpointDuality(t *testing.T) {
	fe, err := NewCrouzeixRaviart(cell.Triangle, 1)
	require.NoError(t, err)
	mids := utils.NewMatrix(3, 2, []float64{
		0.5, 0.5,
		0, 0.5,
		0.5, 0,
	})
	R, err := fe.Tabulate(mids, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDeltaf(t, want, R[0].At(i, j), 1e-13, "phi_%d(mid %d)", j, i)
		}
	}

	_, err = NewCrouzeixRaviart(cell.Triangle, 2)
	assert.Error(t, err)
	assert.True(t, utils.IsInvalidParameter(err))
}

// Unnormalized edge tangents and normals of the reference triangle, in
// edge order {1,2}, {0,2}, {0,1}.
var (
	triEdgeTangents = [3][2]float64{{-1, 1}, {0, 1}, {1, 0}}
	triEdgeNormals  = [3][2]float64{{-1, -1}, {-1, 0}, {0, 1}}
)

func TestRaviartThomasEdgeNormalDuality(t *testing.T) {
	fe, err := NewRaviartThomas(cell.Triangle, 1)
	require.NoError(t, err)
	require.Equal(t, 3, fe.NumDofs())
	assert.Equal(t, ContravariantPiola, fe.Mapping)
	assert.Equal(t, []int{2}, fe.ValueShape)

	// DOF i applied to basis function j must give delta_ij: integrate
	// phi_j . n over each edge with a mapped interval rule
	xq, wq, err := quadrature.MakeQuadrature(cell.Interval, 4)
	require.NoError(t, err)
	nq, _ := xq.Dims()
	for i := 0; i < 3; i++ {
		geom, gerr := cell.SubEntityGeometry(cell.Triangle, 1, i)
		require.NoError(t, gerr)
		mapped := utils.NewMatrix(nq, 2)
		for q := 0; q < nq; q++ {
			for k := 0; k < 2; k++ {
				mapped.Set(q, k, geom.At(0, k)+
					xq.At(q, 0)*(geom.At(1, k)-geom.At(0, k)))
			}
		}
		R, terr := fe.Tabulate(mapped, 0)
		require.NoError(t, terr)
		for j := 0; j < 3; j++ {
			var moment float64
			for q := 0; q < nq; q++ {
				moment += wq[q] * (R[0].At(q, j*2)*triEdgeNormals[i][0] +
					R[0].At(q, j*2+1)*triEdgeNormals[i][1])
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDeltaf(t, want, moment, 1e-12, "edge %d dof %d", i, j)
		}
	}
}

func TestRaviartThomasConstantReproduction(t *testing.T) {
	u := [2]float64{1.25, -0.5}
	fe, err := NewRaviartThomas(cell.Triangle, 1)
	require.NoError(t, err)

	// DOF j of a constant field is u . n_j
	var dofs [3]float64
	for j := 0; j < 3; j++ {
		dofs[j] = u[0]*triEdgeNormals[j][0] + u[1]*triEdgeNormals[j][1]
	}
	pts := utils.NewMatrix(3, 2, []float64{0.2, 0.2, 0.6, 0.1, 0.1, 0.7})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 3; p++ {
		for c := 0; c < 2; c++ {
			var got float64
			for j := 0; j < 3; j++ {
				got += dofs[j] * R[0].At(p, j*2+c)
			}
			assert.InDeltaf(t, u[c], got, 1e-12, "point %d component %d", p, c)
		}
	}
}

func TestRaviartThomasTetConstantReproduction(t *testing.T) {
	// Unnormalized facet normals of the reference tetrahedron, face order
	// {1,2,3}, {0,2,3}, {0,1,3}, {0,1,2}; facet reference area is 1/2
	normals := [4][3]float64{
		{1, 1, 1}, {1, 0, 0}, {0, -1, 0}, {0, 0, 1},
	}
	u := [3]float64{0.75, -1.5, 0.25}
	fe, err := NewRaviartThomas(cell.Tetrahedron, 1)
	require.NoError(t, err)
	require.Equal(t, 4, fe.NumDofs())
	var dofs [4]float64
	for j := 0; j < 4; j++ {
		dofs[j] = 0.5 * (u[0]*normals[j][0] + u[1]*normals[j][1] +
			u[2]*normals[j][2])
	}
	pts := utils.NewMatrix(2, 3, []float64{0.2, 0.2, 0.2, 0.1, 0.3, 0.5})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		for c := 0; c < 3; c++ {
			var got float64
			for j := 0; j < 4; j++ {
				got += dofs[j] * R[0].At(p, j*3+c)
			}
			assert.InDeltaf(t, u[c], got, 1e-12, "point %d component %d", p, c)
		}
	}
}

func TestNedelecConstantReproduction(t *testing.T) {
	u := [2]float64{-0.4, 1.1}
	fe, err := NewNedelecFirstKind(cell.Triangle, 1)
	require.NoError(t, err)
	require.Equal(t, 3, fe.NumDofs())
	assert.Equal(t, CovariantPiola, fe.Mapping)

	// DOF j of a constant field is u . t_j
	var dofs [3]float64
	for j := 0; j < 3; j++ {
		dofs[j] = u[0]*triEdgeTangents[j][0] + u[1]*triEdgeTangents[j][1]
	}
	pts := utils.NewMatrix(3, 2, []float64{0.25, 0.25, 0.5, 0.2, 0.1, 0.6})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 3; p++ {
		for c := 0; c < 2; c++ {
			var got float64
			for j := 0; j < 3; j++ {
				got += dofs[j] * R[0].At(p, j*2+c)
			}
			assert.InDeltaf(t, u[c], got, 1e-12, "point %d component %d", p, c)
		}
	}
}

func TestNedelecTetConstantReproduction(t *testing.T) {
	// Unnormalized edge tangents of the reference tetrahedron, edge order
	// {2,3}, {1,3}, {1,2}, {0,3}, {0,2}, {0,1}
	tangents := [6][3]float64{
		{0, -1, 1}, {-1, 0, 1}, {-1, 1, 0},
		{0, 0, 1}, {0, 1, 0}, {1, 0, 0},
	}
	u := [3]float64{0.3, -0.9, 0.6}
	fe, err := NewNedelecFirstKind(cell.Tetrahedron, 1)
	require.NoError(t, err)
	require.Equal(t, 6, fe.NumDofs())
	var dofs [6]float64
	for j := 0; j < 6; j++ {
		dofs[j] = u[0]*tangents[j][0] + u[1]*tangents[j][1] +
			u[2]*tangents[j][2]
	}
	pts := utils.NewMatrix(2, 3, []float64{0.25, 0.25, 0.25, 0.1, 0.2, 0.4})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		for c := 0; c < 3; c++ {
			var got float64
			for j := 0; j < 6; j++ {
				got += dofs[j] * R[0].At(p, j*3+c)
			}
			assert.InDeltaf(t, u[c], got, 1e-12, "point %d component %d", p, c)
		}
	}
}

func TestNedelecSecondKindConstantReproduction(t *testing.T) {
	u := [2]float64{0.8, -0.3}
	fe, err := NewNedelecSecondKind(cell.Triangle, 1)
	require.NoError(t, err)
	require.Equal(t, 6, fe.NumDofs())

	// Edge DOFs are tangent moments against the two linear interval
	// functions, each integrating to 1/2 for a constant integrand
	dofs := make([]float64, 6)
	for j := 0; j < 3; j++ {
		ut := u[0]*triEdgeTangents[j][0] + u[1]*triEdgeTangents[j][1]
		dofs[2*j] = 0.5 * ut
		dofs[2*j+1] = 0.5 * ut
	}
	pts := utils.NewMatrix(2, 2, []float64{0.3, 0.4, 0.15, 0.2})
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	for p := 0; p < 2; p++ {
		for c := 0; c < 2; c++ {
			var got float64
			for j := 0; j < 6; j++ {
				got += dofs[j] * R[0].At(p, j*2+c)
			}
			assert.InDeltaf(t, u[c], got, 1e-12, "point %d component %d", p, c)
		}
	}
}

func TestEntityDofCounts(t *testing.T) {
	fe, err := NewRaviartThomas(cell.Triangle, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, fe.EntityDofs[0])
	assert.Equal(t, []int{2, 2, 2}, fe.EntityDofs[1])
	assert.Equal(t, []int{2}, fe.EntityDofs[2])
	assert.Equal(t, 8, fe.NumDofs())
	assert.Equal(t, 8, len(fe.Functionals))
	assert.Equal(t, 1, fe.Functionals[0].EntityDim)
	assert.Equal(t, 0, fe.Functionals[0].EntityIndex)
	assert.Equal(t, 2, fe.Functionals[7].EntityDim)

	fe, err = NewNedelecFirstKind(cell.Tetrahedron, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, fe.NumDofs())
	assert.Equal(t, []int{2, 2, 2, 2, 2, 2}, fe.EntityDofs[1])
	assert.Equal(t, []int{2, 2, 2, 2}, fe.EntityDofs[2])
	assert.Equal(t, []int{0}, fe.EntityDofs[3])
}

func TestBasePermutationShapes(t *testing.T) {
	fe, err := NewNedelecFirstKind(cell.Tetrahedron, 2)
	require.NoError(t, err)
	// 6 edge reflections + 4 faces x (rotation, reflection)
	require.Equal(t, 14, len(fe.BasePermutations))
	for g, P := range fe.BasePermutations {
		r, c := P.Dims()
		assert.Equalf(t, fe.NumDofs(), r, "generator %d rows", g)
		assert.Equalf(t, fe.NumDofs(), c, "generator %d cols", g)
	}

	fe2, err := NewLagrange(cell.Triangle, 3)
	require.NoError(t, err)
	require.Equal(t, 3, len(fe2.BasePermutations))
	// Edge reversal swaps the two interior edge DOFs; applying it twice
	// must restore the identity
	for _, P := range fe2.BasePermutations {
		PP := P.Mul(P)
		assert.InDeltaf(t, 0.0,
			PP.MaxAbsDiff(utils.NewIdentityMatrix(fe2.NumDofs())), 1e-14,
			"edge reflection involution")
	}
}

func TestCreateFactoryAndErrors(t *testing.T) {
	fe, err := Create(Lagrange, cell.Triangle, 2)
	require.NoError(t, err)
	assert.Equal(t, Lagrange, fe.Family)

	_, err = Create(RaviartThomas, cell.Quadrilateral, 1)
	assert.Error(t, err)
	assert.True(t, utils.IsInvalidParameter(err))

	_, err = Create(Lagrange, cell.Pyramid, 1)
	assert.Error(t, err)

	_, err = Create(Lagrange, cell.Triangle, 0)
	assert.Error(t, err)

	_, err = Create(NedelecFirstKind, cell.Interval, 1)
	assert.Error(t, err)
}

func TestDeterministicConstruction(t *testing.T) {
	a, err := NewRaviartThomas(cell.Triangle, 3)
	require.NoError(t, err)
	b, err := NewRaviartThomas(cell.Triangle, 3)
	require.NoError(t, err)
	assert.Zero(t, a.Coeffs.MaxAbsDiff(b.Coeffs))
}

func TestCreateCached(t *testing.T) {
	a, err := CreateCached(Lagrange, cell.Tetrahedron, 2)
	require.NoError(t, err)
	b, err := CreateCached(Lagrange, cell.Tetrahedron, 2)
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Failed constructions must leave no cache entry
	_, err = CreateCached(CrouzeixRaviart, cell.Triangle, 3)
	assert.Error(t, err)
	_, err = CreateCached(CrouzeixRaviart, cell.Triangle, 3)
	assert.Error(t, err)
}

func TestFamilyStrings(t *testing.T) {
	f, err := FamilyFromString("RT")
	require.NoError(t, err)
	assert.Equal(t, RaviartThomas, f)
	_, err = FamilyFromString("mystery")
	assert.Error(t, err)
	assert.Equal(t, "Raviart-Thomas", RaviartThomas.String())
}

// spanMisfit least-squares fits the element's basis to a field sampled at
// quadrature points and returns the worst-case pointwise misfit. Zero means
// the field lies in the element's polynomial space.
func spanMisfit(t *testing.T, fe *FiniteElement, f func(x []float64) []float64) float64 {
	pts, _, err := quadrature.MakeQuadrature(fe.CellType, 2*fe.Degree+2)
	require.NoError(t, err)
	R, err := fe.Tabulate(pts, 0)
	require.NoError(t, err)
	var (
		np, dim = pts.Dims()
		vs      = fe.ValueSize()
		nd      = fe.NumDofs()
		V       = utils.NewMatrix(np*vs, nd)
		b       = utils.NewMatrix(np*vs, 1)
	)
	for p := 0; p < np; p++ {
		x := make([]float64, dim)
		for j := 0; j < dim; j++ {
			x[j] = pts.At(p, j)
		}
		fx := f(x)
		for c := 0; c < vs; c++ {
			b.Set(p*vs+c, 0, fx[c])
			for j := 0; j < nd; j++ {
				V.Set(p*vs+c, j, R[0].At(p, j*vs+c))
			}
		}
	}
	Vt := V.Transpose()
	dofs, err := Vt.Mul(V).LUSolve(Vt.Mul(b))
	require.NoError(t, err)
	return V.Mul(dofs).MaxAbsDiff(b)
}

func TestRaviartThomasDegree2Space(t *testing.T) {
	// RT_2 is P_1^d plus the facet bubbles x p for homogeneous linear p
	fe, err := NewRaviartThomas(cell.Triangle, 2)
	require.NoError(t, err)
	inSpace := func(x []float64) []float64 {
		return []float64{x[0]*x[0] + 1 - x[1], x[0]*x[1] + 2*x[0]}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace), 1e-8, "x(x) bubble + P1")
	outOfSpace := func(x []float64) []float64 {
		return []float64{x[1] * x[1], 0}
	}
	assert.Greater(t, spanMisfit(t, fe, outOfSpace), 1e-4, "y^2 e_x not in RT_2")

	fe, err = NewRaviartThomas(cell.Tetrahedron, 2)
	require.NoError(t, err)
	require.Equal(t, 15, fe.NumDofs())
	inSpace3 := func(x []float64) []float64 {
		return []float64{
			x[0]*x[0] + 1 + x[1],
			x[0]*x[1] + x[2] - x[0],
			x[0]*x[2] + 2,
		}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace3), 1e-8, "x(x) bubble + P1")
}

func TestNedelecDegree2Space(t *testing.T) {
	// N1_2 is P_1^d plus the homogeneous degree 2 fields p with p . x = 0
	fe, err := NewNedelecFirstKind(cell.Triangle, 2)
	require.NoError(t, err)
	require.Equal(t, 8, fe.NumDofs())
	inSpace := func(x []float64) []float64 {
		return []float64{x[0]*x[1] + x[1] + 1, -x[0]*x[0] + x[0] - 2}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace), 1e-8, "x(y,-x) bubble + P1")
	outOfSpace := func(x []float64) []float64 {
		return []float64{x[0] * x[0], 0}
	}
	assert.Greater(t, spanMisfit(t, fe, outOfSpace), 1e-4, "x^2 e_x not in N1_2")

	fe, err = NewNedelecFirstKind(cell.Tetrahedron, 2)
	require.NoError(t, err)
	require.Equal(t, 20, fe.NumDofs())
	inSpace3 := func(x []float64) []float64 {
		return []float64{
			x[0]*x[1] + x[2],
			-x[0]*x[0] + 1,
			x[0] - x[1],
		}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace3), 1e-8, "x(y,-x,0) bubble + P1")
}

func TestNedelecSecondKindFullSpace(t *testing.T) {
	// N2 spans the full vector polynomial space of its degree
	fe, err := NewNedelecSecondKind(cell.Triangle, 2)
	require.NoError(t, err)
	require.Equal(t, 12, fe.NumDofs())
	inSpace := func(x []float64) []float64 {
		return []float64{x[1]*x[1] + x[0] - 1, 2*x[0]*x[1] + 3*x[1]}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace), 1e-8, "grad(xy^2) + P1")

	// Degree 3 on the tetrahedron reaches both the face and the interior
	// Raviart-Thomas dot moment blocks
	fe, err = NewNedelecSecondKind(cell.Tetrahedron, 3)
	require.NoError(t, err)
	require.Equal(t, 60, fe.NumDofs())
	inSpace3 := func(x []float64) []float64 {
		return []float64{
			x[0]*x[0]*x[0] - x[1]*x[2],
			x[0]*x[0]*x[1] + x[2]*x[2],
			x[0]*x[1]*x[2] + x[1] - 1,
		}
	}
	assert.InDeltaf(t, 0, spanMisfit(t, fe, inSpace3), 1e-8, "cubic field")
}
