// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// vector adapts a numeric column to the gonum mat.Vector interface.
type vector struct {
	cl *Column
}

func (vc vector) Len() int { return vc.cl.Len() }

func (vc vector) AtVec(i int) float64 {
	if vc.cl.IsNull(i) {
		return math.NaN()
	}
	return vc.cl.Data.Float1D(i)
}

func (vc vector) At(i, j int) float64 {
	if j != 0 {
		panic("column: vector column index out of range")
	}
	return vc.AtVec(i)
}

func (vc vector) Dims() (r, c int) { return vc.cl.Len(), 1 }

func (vc vector) T() mat.Matrix { return mat.Transpose{Matrix: vc} }

// Vector returns a read only gonum mat.Vector view of a numeric
// column, for use with gonum routines. Null rows read as NaN.
// Returns nil for non numeric columns.
func (cl *Column) Vector() mat.Vector {
	if !cl.DataType().IsNumeric() {
		return nil
	}
	return vector{cl}
}
