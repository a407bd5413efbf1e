package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixBasics(t *testing.T) {
	A := NewMatrix(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	At := A.Transpose()
	nr, nc := At.Dims()
	assert.Equal(t, 3, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 4., At.At(0, 1))

	B := A.Mul(At) // 2x2
	assert.InDeltaf(t, 14, B.At(0, 0), 1.e-14, "")
	assert.InDeltaf(t, 32, B.At(0, 1), 1.e-14, "")
	assert.InDeltaf(t, 77, B.At(1, 1), 1.e-14, "")

	C := B.Copy().Scale(2)
	assert.InDeltaf(t, 28, C.At(0, 0), 1.e-14, "")
	// Copy did not alias
	assert.InDeltaf(t, 14, B.At(0, 0), 1.e-14, "")
}

func TestMatrixInverse(t *testing.T) {
	A := NewMatrix(2, 2, []float64{
		4, 7,
		2, 6,
	})
	Ainv := A.InverseWithCheck()
	I := A.Mul(Ainv)
	assert.InDeltaf(t, 1, I.At(0, 0), 1.e-12, "")
	assert.InDeltaf(t, 0, I.At(0, 1), 1.e-12, "")
	assert.InDeltaf(t, 0, I.At(1, 0), 1.e-12, "")
	assert.InDeltaf(t, 1, I.At(1, 1), 1.e-12, "")

	S := NewMatrix(2, 2, []float64{
		1, 2,
		2, 4,
	})
	_, err := S.Inverse()
	assert.Error(t, err)
}

func TestLUSolve(t *testing.T) {
	A := NewMatrix(2, 2, []float64{
		3, 1,
		1, 2,
	})
	B := NewMatrix(2, 1, []float64{9, 8})
	X, err := A.LUSolve(B)
	assert.NoError(t, err)
	assert.InDeltaf(t, 2, X.At(0, 0), 1.e-12, "")
	assert.InDeltaf(t, 3, X.At(1, 0), 1.e-12, "")
}

func TestErrorTypes(t *testing.T) {
	err := InvalidParamf("polyset.Tabulate", "degree %d out of range", -1)
	assert.True(t, IsInvalidParameter(err))
	assert.False(t, IsConstructionError(err))

	err = ConstructionErrf("RaviartThomas", "triangle", 2, "singular dual matrix")
	assert.True(t, IsConstructionError(err))
	assert.False(t, IsInvalidParameter(err))
	assert.Contains(t, err.Error(), "RaviartThomas")
}

func TestVector(t *testing.T) {
	v := NewVector(3, []float64{1, 2, 3})
	assert.InDeltaf(t, 6, v.Sum(), 1.e-14, "")
	assert.InDeltaf(t, 14, v.Dot(v), 1.e-14, "")

	w := v.Copy().Scale(2)
	assert.InDeltaf(t, 12, w.Sum(), 1.e-14, "")
	assert.InDeltaf(t, 6, v.Sum(), 1.e-14, "")
}

func TestPOW(t *testing.T) {
	assert.InDeltaf(t, 8, POW(2, 3), 1.e-14, "")
	assert.InDeltaf(t, 1, POW(5, 0), 1.e-14, "")
	assert.InDeltaf(t, 0.25, POW(2, -2), 1.e-14, "")
}

func TestChoose(t *testing.T) {
	assert.Equal(t, 1, Choose(4, 0))
	assert.Equal(t, 6, Choose(4, 2))
	assert.Equal(t, 10, Choose(5, 3))
	assert.Equal(t, 0, Choose(3, 5))
}
