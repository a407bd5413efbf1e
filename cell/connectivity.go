package cell

import (
	"github.com/james-bowman/sparse"

	"github.com/notargets/gotab/utils"
)

// Connectivity returns the incidence matrix between the entities of
// dimension d0 (rows) and dimension d1 (columns): entry (i, j) is 1 when the
// lower dimensional entity's vertex set is contained in the higher
// dimensional entity's. Assembled in a DOK and frozen to CSR for read access.
func Connectivity(t Type, d0, d1 int) (C *sparse.CSR, err error) {
	var (
		topo = Topology(t)
	)
	if d0 < 0 || d0 >= len(topo) || d1 < 0 || d1 >= len(topo) {
		err = utils.InvalidParamf("cell.Connectivity",
			"dimensions (%d,%d) out of range for %s", d0, d1, t)
		return
	}
	var (
		e0  = topo[d0]
		e1  = topo[d1]
		dok = sparse.NewDOK(len(e0), len(e1))
	)
	for i, a := range e0 {
		for j, b := range e1 {
			lower, higher := a, b
			if d0 > d1 {
				lower, higher = b, a
			}
			if containsAll(higher, lower) {
				dok.Set(i, j, 1)
			}
		}
	}
	C = dok.ToCSR()
	return
}

func containsAll(set, subset []int) bool {
	for _, v := range subset {
		var found bool
		for _, w := range set {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
