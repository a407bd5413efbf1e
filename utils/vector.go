package utils

import (
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (V Vector) {
	if len(dataO) != 0 {
		V = Vector{mat.NewVecDense(n, dataO[0])}
	} else {
		V = Vector{mat.NewVecDense(n, make([]float64, n))}
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) DataP() []float64 { return v.V.RawVector().Data }

// Chainable (extended) methods
func (v Vector) Scale(a float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Copy() (R Vector) {
	var (
		n     = v.Len()
		dataR = make([]float64, n)
	)
	copy(dataR, v.V.RawVector().Data)
	R = NewVector(n, dataR)
	return
}

func (v Vector) Sum() (sum float64) {
	var (
		data = v.V.RawVector().Data
	)
	for _, val := range data {
		sum += val
	}
	return
}

func (v Vector) Dot(a Vector) (dot float64) {
	var (
		data  = v.V.RawVector().Data
		dataA = a.V.RawVector().Data
	)
	for i, val := range data {
		dot += val * dataA[i]
	}
	return
}
