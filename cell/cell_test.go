package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCells = []Type{Point, Interval, Triangle, Quadrilateral,
	Tetrahedron, Hexahedron, Prism, Pyramid}

func TestTopologyShape(t *testing.T) {
	for _, ct := range allCells {
		topo := Topology(ct)
		tdim := TopologicalDimension(ct)
		assert.Equal(t, tdim+1, len(topo), ct.String())
		// One top entity containing all vertices
		assert.Equal(t, 1, len(topo[tdim]), ct.String())
		assert.Equal(t, len(topo[0]), len(topo[tdim][0]), ct.String())
		// Each vertex entity is a singleton naming itself
		for i, v := range topo[0] {
			assert.Equal(t, []int{i}, v, ct.String())
		}
	}
}

func TestEdgeVertexCounts(t *testing.T) {
	for _, ct := range allCells {
		if TopologicalDimension(ct) < 1 {
			continue
		}
		for _, e := range Topology(ct)[1] {
			assert.Equal(t, 2, len(e), ct.String())
		}
	}
}

func TestGeometryMatchesVertexCount(t *testing.T) {
	for _, ct := range allCells {
		if ct == Point {
			continue
		}
		g := Geometry(ct)
		nr, nc := g.Dims()
		assert.Equal(t, len(Topology(ct)[0]), nr, ct.String())
		assert.Equal(t, TopologicalDimension(ct), nc, ct.String())
	}
}

func TestSubEntityGeometry(t *testing.T) {
	// Triangle edge 0 is {1,2}: vertices (1,0) and (0,1)
	G, err := SubEntityGeometry(Triangle, 1, 0)
	require.NoError(t, err)
	assert.InDeltaf(t, 1, G.At(0, 0), 1.e-15, "")
	assert.InDeltaf(t, 0, G.At(0, 1), 1.e-15, "")
	assert.InDeltaf(t, 0, G.At(1, 0), 1.e-15, "")
	assert.InDeltaf(t, 1, G.At(1, 1), 1.e-15, "")

	_, err = SubEntityGeometry(Triangle, 5, 0)
	assert.Error(t, err)
}

func TestSubEntityType(t *testing.T) {
	st, err := SubEntityType(Prism, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, Triangle, st)
	st, err = SubEntityType(Prism, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, Quadrilateral, st)
	st, err = SubEntityType(Tetrahedron, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, Interval, st)
}

func TestCreateLattice(t *testing.T) {
	L, err := CreateLattice(Interval, 3, true)
	require.NoError(t, err)
	nr, _ := L.Dims()
	assert.Equal(t, 4, nr)
	assert.InDeltaf(t, 1./3., L.At(1, 0), 1.e-15, "")

	L, err = CreateLattice(Triangle, 3, true)
	require.NoError(t, err)
	nr, _ = L.Dims()
	assert.Equal(t, 10, nr)

	// Interior lattice of a degree 3 triangle is the single centroid point
	L, err = CreateLattice(Triangle, 3, false)
	require.NoError(t, err)
	nr, _ = L.Dims()
	assert.Equal(t, 1, nr)
	assert.InDeltaf(t, 1./3., L.At(0, 0), 1.e-15, "")
	assert.InDeltaf(t, 1./3., L.At(0, 1), 1.e-15, "")

	// No interior points at degree 2
	L, err = CreateLattice(Triangle, 2, false)
	require.NoError(t, err)
	assert.True(t, L.IsEmpty())

	L, err = CreateLattice(Tetrahedron, 2, true)
	require.NoError(t, err)
	nr, _ = L.Dims()
	assert.Equal(t, 10, nr)

	L, err = CreateLattice(Hexahedron, 2, true)
	require.NoError(t, err)
	nr, _ = L.Dims()
	assert.Equal(t, 27, nr)

	L, err = CreateLattice(Prism, 2, true)
	require.NoError(t, err)
	nr, _ = L.Dims()
	assert.Equal(t, 18, nr)

	_, err = CreateLattice(Pyramid, 2, true)
	assert.Error(t, err)
}

func TestConnectivity(t *testing.T) {
	// Each triangle edge touches two vertices, each vertex touches two edges
	C, err := Connectivity(Triangle, 1, 0)
	require.NoError(t, err)
	r, c := C.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	for i := 0; i < 3; i++ {
		var rowSum float64
		for j := 0; j < 3; j++ {
			rowSum += C.At(i, j)
		}
		assert.InDeltaf(t, 2, rowSum, 1.e-15, "")
	}
	// Edge 0 of the triangle is {1,2}
	assert.InDeltaf(t, 0, C.At(0, 0), 1.e-15, "")
	assert.InDeltaf(t, 1, C.At(0, 1), 1.e-15, "")
	assert.InDeltaf(t, 1, C.At(0, 2), 1.e-15, "")

	// Tetrahedron: every face contains three edges
	C, err = Connectivity(Tetrahedron, 2, 1)
	require.NoError(t, err)
	r, c = C.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 6, c)
	for i := 0; i < r; i++ {
		var rowSum float64
		for j := 0; j < c; j++ {
			rowSum += C.At(i, j)
		}
		assert.InDeltaf(t, 3, rowSum, 1.e-15, "")
	}

	_, err = Connectivity(Triangle, 0, 3)
	assert.Error(t, err)
}
