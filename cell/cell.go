// Package cell describes the reference cells: canonical vertex placement,
// entity topology and sub-entity geometry. Everything here is a pure lookup;
// the canonical entity ordering fixed in Topology is the contract that makes
// DOF numbering reproducible across calls.
package cell

import (
	"fmt"

	"github.com/notargets/gotab/utils"
)

type Type int

const (
	Point Type = iota
	Interval
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
	Prism
	Pyramid
)

func (t Type) String() string {
	switch t {
	case Point:
		return "point"
	case Interval:
		return "interval"
	case Triangle:
		return "triangle"
	case Quadrilateral:
		return "quadrilateral"
	case Tetrahedron:
		return "tetrahedron"
	case Hexahedron:
		return "hexahedron"
	case Prism:
		return "prism"
	case Pyramid:
		return "pyramid"
	}
	return fmt.Sprintf("celltype(%d)", int(t))
}

// TypeFromString is the inverse of String, used by the CLI deck reader.
func TypeFromString(s string) (t Type, err error) {
	for _, c := range []Type{Point, Interval, Triangle, Quadrilateral,
		Tetrahedron, Hexahedron, Prism, Pyramid} {
		if c.String() == s {
			return c, nil
		}
	}
	err = utils.InvalidParamf("cell.TypeFromString", "unknown cell type %q", s)
	return
}

func TopologicalDimension(t Type) int {
	switch t {
	case Point:
		return 0
	case Interval:
		return 1
	case Triangle, Quadrilateral:
		return 2
	default:
		return 3
	}
}

// Geometry returns the canonical reference vertices, one row per vertex.
// The unit simplices and unit tensor cells are used throughout.
func Geometry(t Type) (G utils.Matrix) {
	switch t {
	case Interval:
		G = utils.NewMatrix(2, 1, []float64{0, 1})
	case Triangle:
		G = utils.NewMatrix(3, 2, []float64{
			0, 0,
			1, 0,
			0, 1,
		})
	case Quadrilateral:
		G = utils.NewMatrix(4, 2, []float64{
			0, 0,
			1, 0,
			0, 1,
			1, 1,
		})
	case Tetrahedron:
		G = utils.NewMatrix(4, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
	case Hexahedron:
		G = utils.NewMatrix(8, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
			0, 0, 1,
			1, 0, 1,
			0, 1, 1,
			1, 1, 1,
		})
	case Prism:
		G = utils.NewMatrix(6, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
			1, 0, 1,
			0, 1, 1,
		})
	case Pyramid:
		G = utils.NewMatrix(5, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
			0, 0, 1,
		})
	case Point:
		// Zero-dimensional, no coordinates
		G = utils.Matrix{}
	default:
		panic(fmt.Errorf("unknown cell type %d", int(t)))
	}
	return
}

// Topology returns, for each dimension 0..d, the ordered list of entities as
// vertex index sets. The ordering is canonical and must not change: it is the
// externally visible entity numbering.
func Topology(t Type) (topo [][][]int) {
	switch t {
	case Point:
		topo = [][][]int{
			{{0}},
		}
	case Interval:
		topo = [][][]int{
			{{0}, {1}},
			{{0, 1}},
		}
	case Triangle:
		topo = [][][]int{
			{{0}, {1}, {2}},
			{{1, 2}, {0, 2}, {0, 1}},
			{{0, 1, 2}},
		}
	case Quadrilateral:
		topo = [][][]int{
			{{0}, {1}, {2}, {3}},
			{{0, 1}, {0, 2}, {1, 3}, {2, 3}},
			{{0, 1, 2, 3}},
		}
	case Tetrahedron:
		topo = [][][]int{
			{{0}, {1}, {2}, {3}},
			{{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
			{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
			{{0, 1, 2, 3}},
		}
	case Hexahedron:
		topo = [][][]int{
			{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}},
			{{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
				{2, 6}, {3, 7}, {4, 5}, {4, 6}, {5, 7}, {6, 7}},
			{{0, 1, 2, 3}, {0, 1, 4, 5}, {0, 2, 4, 6},
				{1, 3, 5, 7}, {2, 3, 6, 7}, {4, 5, 6, 7}},
			{{0, 1, 2, 3, 4, 5, 6, 7}},
		}
	case Prism:
		topo = [][][]int{
			{{0}, {1}, {2}, {3}, {4}, {5}},
			{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 4},
				{2, 5}, {3, 4}, {3, 5}, {4, 5}},
			{{0, 1, 2}, {0, 1, 3, 4}, {0, 2, 3, 5}, {1, 2, 4, 5}, {3, 4, 5}},
			{{0, 1, 2, 3, 4, 5}},
		}
	case Pyramid:
		topo = [][][]int{
			{{0}, {1}, {2}, {3}, {4}},
			{{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}},
			{{0, 1, 2, 3}, {0, 1, 4}, {0, 2, 4}, {1, 3, 4}, {2, 3, 4}},
			{{0, 1, 2, 3, 4}},
		}
	default:
		panic(fmt.Errorf("unknown cell type %d", int(t)))
	}
	return
}

// NumEntities returns the entity count for the given dimension.
func NumEntities(t Type, dim int) (n int, err error) {
	topo := Topology(t)
	if dim < 0 || dim >= len(topo) {
		err = utils.InvalidParamf("cell.NumEntities",
			"dimension %d out of range for %s", dim, t)
		return
	}
	n = len(topo[dim])
	return
}

// SubEntityType returns the cell type of sub-entity (dim, index).
func SubEntityType(t Type, dim, index int) (st Type, err error) {
	topo := Topology(t)
	if dim < 0 || dim >= len(topo) {
		err = utils.InvalidParamf("cell.SubEntityType",
			"dimension %d out of range for %s", dim, t)
		return
	}
	if index < 0 || index >= len(topo[dim]) {
		err = utils.InvalidParamf("cell.SubEntityType",
			"entity index %d out of range for %s dim %d", index, t, dim)
		return
	}
	nv := len(topo[dim][index])
	switch dim {
	case 0:
		st = Point
	case 1:
		st = Interval
	case 2:
		if nv == 3 {
			st = Triangle
		} else {
			st = Quadrilateral
		}
	case 3:
		st = t
	}
	return
}

// SubEntityGeometry returns the vertex coordinates of sub-entity
// (dim, index), one row per vertex, in the cell's coordinates.
func SubEntityGeometry(t Type, dim, index int) (G utils.Matrix, err error) {
	var (
		topo = Topology(t)
		geom = Geometry(t)
	)
	if dim < 0 || dim >= len(topo) {
		err = utils.InvalidParamf("cell.SubEntityGeometry",
			"dimension %d out of range for %s", dim, t)
		return
	}
	if index < 0 || index >= len(topo[dim]) {
		err = utils.InvalidParamf("cell.SubEntityGeometry",
			"entity index %d out of range for %s dim %d", index, t, dim)
		return
	}
	var (
		verts = topo[dim][index]
		_, nc = geom.Dims()
	)
	G = utils.NewMatrix(len(verts), nc)
	for i, v := range verts {
		for j := 0; j < nc; j++ {
			G.Set(i, j, geom.At(v, j))
		}
	}
	return
}
