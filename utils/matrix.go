package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

func NewIdentityMatrix(n int) (R Matrix) {
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.Set(i, i, 1)
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.M.Set(j, i, m.M.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.RawMatrix().Data
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

// ScaleCol multiplies a single column in place.
func (m Matrix) ScaleCol(j int, a float64) Matrix { // Changes receiver
	var (
		nr, _ = m.Dims()
	)
	for i := 0; i < nr; i++ {
		m.M.Set(i, j, a*m.M.At(i, j))
	}
	return m
}

// AssignBlock copies A into the receiver with its upper left corner at (I, J).
func (m Matrix) AssignBlock(I, J int, A Matrix) Matrix { // Changes receiver
	var (
		nrA, ncA = A.Dims()
	)
	for i := 0; i < nrA; i++ {
		for j := 0; j < ncA; j++ {
			m.M.Set(I+i, J+j, A.At(i, j))
		}
	}
	return m
}

func (m Matrix) Col(j int) Vector {
	var (
		nr, _ = m.Dims()
		vData = make([]float64, nr)
	)
	for i := range vData {
		vData[i] = m.M.At(i, j)
	}
	return NewVector(nr, vData)
}

func (m Matrix) Row(i int) Vector {
	var (
		_, nc = m.Dims()
		vData = make([]float64, nc)
	)
	for j := range vData {
		vData[j] = m.M.At(i, j)
	}
	return NewVector(nc, vData)
}

func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("cannot invert non-square %dx%d matrix", nr, nc)
		return
	}
	R = NewMatrix(nr, nc)
	if err = R.M.Inverse(m.M); err != nil {
		err = fmt.Errorf("unable to invert, matrix is singular: %w", err)
	}
	return
}

func (m Matrix) InverseWithCheck() (R Matrix) {
	var err error
	if R, err = m.Inverse(); err != nil {
		panic(err)
	}
	return
}

// LUSolve solves m * X = B for X.
func (m Matrix) LUSolve(B Matrix) (X Matrix, err error) {
	var (
		nr, nc = m.Dims()
		_, ncB = B.Dims()
		lu     mat.LU
	)
	if nr != nc {
		err = fmt.Errorf("cannot LU solve with non-square %dx%d matrix", nr, nc)
		return
	}
	lu.Factorize(m.M)
	X = NewMatrix(nr, ncB)
	if err = lu.SolveTo(X.M, false, B.M); err != nil {
		err = fmt.Errorf("unable to solve, matrix is singular: %w", err)
	}
	return
}

func (m Matrix) MaxAbsDiff(A Matrix) (max float64) {
	var (
		dataM = m.RawMatrix().Data
		dataA = A.RawMatrix().Data
	)
	for i, val := range dataM {
		if d := math.Abs(val - dataA[i]); d > max {
			max = d
		}
	}
	return
}

func (m Matrix) Print(msgO ...string) (o string) {
	var (
		name = ""
	)
	if len(msgO) != 0 {
		name = msgO[0]
	}
	o = name + " = \n" + fmt.Sprintf("%8.5f\n", mat.Formatted(m.M, mat.Squeeze()))
	return
}

func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	var (
		n  = len(d0)
		dd = make([]float64, n*n)
	)
	for i := 0; i < n; i++ {
		dd[i+i*n] = d0[i]
		if i != n-1 {
			dd[i+1+i*n] = d1[i]
		}
	}
	Tri = mat.NewSymDense(n, dd)
	return
}
