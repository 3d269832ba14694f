/*
 * vec.go, part of chemkit.
 *
 * Copyright 2013 Timo Strunk
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space, one point per row. It embeds
//a gonum Dense matrix with 3 columns, so every gonum operation remains
//available.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l == 0 {
		return nil, fmt.Errorf("v3: Empty input slice")
	}
	rows := l / cols
	if l%cols != 0 {
		return nil, fmt.Errorf("v3: Input slice length %d not divisible by %d", l, cols)
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the
//other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//Dense2Matrix wraps a gonum Dense into a Matrix. Panics if the Dense
//does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//SwapVecs swaps the vectors i and j.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	for k := 0; k < 3; k++ {
		vi := F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, vi)
	}
}

//AddVec adds the vector vec to each vector of the matrix A, putting the
//result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)+vec.At(0, k))
		}
	}
}

//SubVec subtracts the vector vec from each vector of the matrix A,
//putting the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)-vec.At(0, k))
		}
	}
}

//Cross puts the cross product of the first vecs of a and b in the first
//vec of F. Panics on empty matrices.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Dot returns the sum of the elementwise products of F and B. For row
//vectors this is the usual dot product. Panics on mismatched shapes.
func (F *Matrix) Dot(B *Matrix) float64 {
	fr, fc := F.Dims()
	br, bc := B.Dims()
	if fr != br || fc != bc {
		panic(ErrShape)
	}
	var d float64
	for i := 0; i < fr; i++ {
		for k := 0; k < fc; k++ {
			d += F.At(i, k) * B.At(i, k)
		}
	}
	return d
}

//Norm returns the Frobenius norm of F, which for a single vector is its
//Euclidean length. The argument is kept for gonum compatibility and
//must be 2.
func (F *Matrix) Norm(i float64) float64 {
	if i != 2 {
		panic(ErrGonum)
	}
	return mat.Norm(F.Dense, 2)
}

//Unit puts in the receiver the unit vector in the direction of A.
func (F *Matrix) Unit(A *Matrix) {
	if A.Dense != F.Dense {
		F.Copy(A)
	}
	norm := 1.0 / F.Norm(2)
	//scale through the embedded Dense: gonum's aliasing check can't see
	//through the wrapper and would flag the receiver as a bad region.
	F.Dense.Scale(norm, F.Dense)
}

//String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		v = append(v, fmt.Sprintf(" %6.2f %6.2f %6.2f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

//Angle takes 2 vectors and calculates the angle in radians between them.
//It does not check for correctness or return errors!
func Angle(v1, v2 *Matrix) float64 {
	normproduct := v1.Norm(2) * v2.Norm(2)
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Dihedral calculates the dihedral angle, in radians, between the points
//a, b, c, d, where the first plane is defined by abc and the second by
//bcd. The result is in the range (-pi, pi].
func Dihedral(a, b, c, d *Matrix) float64 {
	all := []*Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(PanicMsg(fmt.Sprintf("v3: Vector %d is nil", number)))
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			panic(PanicMsg(fmt.Sprintf("v3: Vector %d has invalid shape", number)))
		}
	}
	b1 := Zeros(1)
	b2 := Zeros(1)
	b3 := Zeros(1)
	b1.Sub(b, a)
	b2.Sub(c, b)
	b3.Sub(d, c)
	n1 := Zeros(1)
	n2 := Zeros(1)
	n1.Cross(b1, b2)
	n2.Cross(b2, b3)
	first := b2.Norm(2) * b1.Dot(n2)
	second := n1.Dot(n2)
	return math.Atan2(first, second)
}

//PanicMsg is the type used for the panics of this package. It does
//satisfy the error interface so it can be recovered into an error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("chemkit/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("chemkit/v3: Invalid matrix for cross product")
	ErrGonum           = PanicMsg("chemkit/v3: Error in gonum function")
	ErrShape           = PanicMsg("chemkit/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("chemkit/v3: index out of range")
)
