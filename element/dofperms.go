package element

import (
	"github.com/notargets/gotab/utils"
)

// DOF permutations describe how entity-local DOFs renumber when the cell's
// view of the entity is reversed or rotated. They act on the lattice
// orderings of cell.CreateLattice, first index outermost.

// intervalReflection permutes n equispaced interval DOFs end to end.
func intervalReflection(n int) (perm []int) {
	perm = make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	return
}

// triIdx is the lattice position of (i, j) with i+j <= n-1, i outermost.
func triIdx(n, i, j int) int {
	return i*n - i*(i-1)/2 + j
}

// triangleReflection permutes the n(n+1)/2 lattice DOFs of a triangle under
// the coordinate swap x <-> y.
func triangleReflection(n int) (perm []int) {
	perm = make([]int, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := 0; i+j < n; j++ {
			perm[triIdx(n, i, j)] = triIdx(n, j, i)
		}
	}
	return
}

// triangleRotation permutes the lattice DOFs under the vertex cycle
// v0 -> v1 -> v2, i.e. (x, y) -> (1-x-y, x).
func triangleRotation(n int) (perm []int) {
	perm = make([]int, n*(n+1)/2)
	s := n - 1
	for i := 0; i < n; i++ {
		for j := 0; i+j < n; j++ {
			perm[triIdx(n, i, j)] = triIdx(n, s-i-j, i)
		}
	}
	return
}

// intervalReflectionTangentDirections is the sign change of n tangential
// DOFs when their edge reverses.
func intervalReflectionTangentDirections(n int) (R utils.Matrix) {
	R = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.Set(i, i, -1)
	}
	return
}

// triangleReflectionTangentDirections swaps the two tangential components
// of each face DOF pair under the face reflection.
func triangleReflectionTangentDirections(n int) (R utils.Matrix) {
	N := n * (n + 1) / 2
	R = utils.NewMatrix(2*N, 2*N)
	for i := 0; i < N; i++ {
		R.Set(2*i, 2*i+1, 1)
		R.Set(2*i+1, 2*i, 1)
	}
	return
}

// triangleRotationTangentDirections applies the tangent frame change of the
// face rotation to each face DOF pair.
func triangleRotationTangentDirections(n int) (R utils.Matrix) {
	N := n * (n + 1) / 2
	R = utils.NewMatrix(2*N, 2*N)
	for i := 0; i < N; i++ {
		R.Set(2*i, 2*i, -1)
		R.Set(2*i, 2*i+1, -1)
		R.Set(2*i+1, 2*i, 1)
	}
	return
}
