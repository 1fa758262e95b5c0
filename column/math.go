// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"math"

	"cogentcore.org/frame/dtype"
	"github.com/chewxy/math32"
)

// unaryFloat applies a float function elementwise, returning a new
// column. Float32 columns stay float32 using the 32 bit function;
// other numeric columns produce float64 results. Null rows stay null,
// and non numeric columns are returned as clones, unchanged.
func (cl *Column) unaryFloat(fn func(float64) float64, fn32 func(float32) float32) *Column {
	dt := cl.DataType()
	switch {
	case dt.Kind == dtype.Float32:
		out := cl.Clone()
		vals := out.Data.(*Number[float32]).Values
		for i := range vals {
			if out.IsValid(i) {
				vals[i] = fn32(vals[i])
			}
		}
		return out
	case dt.IsNumeric():
		out := NewOfType(dtype.Of(dtype.Float64), cl.Len())
		out.Nulls = cl.Nulls.Clone()
		for i := range cl.Len() {
			if cl.IsValid(i) {
				out.Data.SetFloat1D(fn(cl.Data.Float1D(i)), i)
			}
		}
		return out
	}
	return cl.Clone()
}

// Sin returns the elementwise sine of the column.
func (cl *Column) Sin() *Column { return cl.unaryFloat(math.Sin, math32.Sin) }

// Cos returns the elementwise cosine of the column.
func (cl *Column) Cos() *Column { return cl.unaryFloat(math.Cos, math32.Cos) }

// Tan returns the elementwise tangent of the column.
func (cl *Column) Tan() *Column { return cl.unaryFloat(math.Tan, math32.Tan) }

// Asin returns the elementwise arcsine of the column.
func (cl *Column) Asin() *Column { return cl.unaryFloat(math.Asin, math32.Asin) }

// Acos returns the elementwise arccosine of the column.
func (cl *Column) Acos() *Column { return cl.unaryFloat(math.Acos, math32.Acos) }

// Atan returns the elementwise arctangent of the column.
func (cl *Column) Atan() *Column { return cl.unaryFloat(math.Atan, math32.Atan) }

// Exp returns the elementwise base e exponential of the column.
func (cl *Column) Exp() *Column { return cl.unaryFloat(math.Exp, math32.Exp) }

// Log returns the elementwise natural logarithm of the column.
func (cl *Column) Log() *Column { return cl.unaryFloat(math.Log, math32.Log) }

// Sqrt returns the elementwise square root of the column.
func (cl *Column) Sqrt() *Column { return cl.unaryFloat(math.Sqrt, math32.Sqrt) }
