// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"math"
	"slices"
	"strconv"

	"cogentcore.org/core/base/num"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/frame/dtype"
)

// DataTypes are the primitive element types that column storage can
// hold directly.
type DataTypes interface {
	string | bool | float32 | float64 |
		int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64
}

// KindOf returns the dtype kind that stores primitive type T.
func KindOf[T DataTypes]() dtype.Kind {
	var v T
	switch any(v).(type) {
	case string:
		return dtype.String
	case bool:
		return dtype.Bool
	case float32:
		return dtype.Float32
	case float64:
		return dtype.Float64
	case int8:
		return dtype.Int8
	case int16:
		return dtype.Int16
	case int32:
		return dtype.Int32
	case int64:
		return dtype.Int64
	case uint8:
		return dtype.Uint8
	case uint16:
		return dtype.Uint16
	case uint32:
		return dtype.Uint32
	}
	return dtype.Uint64
}

// Data is the typed value storage behind a [Column]. It knows nothing
// about nulls or categories; those live on the Column. The 1D accessors
// convert between the stored type and the access type, so generic code
// can read and write any storage.
type Data interface {

	// DataType returns the dtype of the stored elements.
	DataType() dtype.Dtype

	// Len returns the number of stored elements.
	Len() int

	// IsString returns true if the stored elements are strings.
	IsString() bool

	// Float1D returns the element at index i as a float64.
	Float1D(i int) float64

	// SetFloat1D sets the element at index i from a float64.
	SetFloat1D(val float64, i int)

	// Int1D returns the element at index i as an int.
	Int1D(i int) int

	// SetInt1D sets the element at index i from an int.
	SetInt1D(val int, i int)

	// String1D returns the element at index i as a string.
	String1D(i int) string

	// SetString1D sets the element at index i from a string.
	SetString1D(val string, i int)

	// Clone returns a deep copy of this storage.
	Clone() Data

	// Take returns new storage holding the elements at the given
	// indexes, in order. Index -1 yields the zero element.
	Take(indexes []int) Data
}

// Base is the shared storage implementation underlying the concrete
// [Data] types, holding the dtype and the values.
type Base[T any] struct {
	dt     dtype.Dtype
	Values []T
}

func (br *Base[T]) DataType() dtype.Dtype { return br.dt }

func (br *Base[T]) Len() int { return len(br.Values) }

func (br *Base[T]) String1D(i int) string { return reflectx.ToString(br.Values[i]) }

// Number is [Data] storage for a numeric element type. Temporal
// columns use Number[int64] storage with a Time or Duration dtype.
type Number[T num.Number] struct {
	Base[T]
}

func newNumber[T num.Number](dt dtype.Dtype, vals []T) *Number[T] {
	return &Number[T]{Base[T]{dt: dt, Values: vals}}
}

func (nr *Number[T]) IsString() bool { return false }

func (nr *Number[T]) Float1D(i int) float64 { return float64(nr.Values[i]) }

func (nr *Number[T]) SetFloat1D(val float64, i int) { nr.Values[i] = T(val) }

func (nr *Number[T]) Int1D(i int) int { return int(nr.Values[i]) }

func (nr *Number[T]) SetInt1D(val int, i int) { nr.Values[i] = T(val) }

func (nr *Number[T]) SetString1D(val string, i int) {
	if fv, err := strconv.ParseFloat(val, 64); err == nil {
		nr.Values[i] = T(fv)
	}
}

func (nr *Number[T]) Clone() Data {
	return newNumber(nr.dt, slices.Clone(nr.Values))
}

func (nr *Number[T]) Take(indexes []int) Data {
	out := make([]T, len(indexes))
	for oi, ix := range indexes {
		if ix >= 0 {
			out[oi] = nr.Values[ix]
		}
	}
	return newNumber(nr.dt, out)
}

// String is [Data] storage for string elements.
type String struct {
	Base[string]
}

func newString(vals []string) *String {
	return &String{Base[string]{dt: dtype.Of(dtype.String), Values: vals}}
}

func (sr *String) IsString() bool { return true }

func (sr *String) Float1D(i int) float64 {
	if fv, err := strconv.ParseFloat(sr.Values[i], 64); err == nil {
		return fv
	}
	return math.NaN()
}

func (sr *String) SetFloat1D(val float64, i int) {
	sr.Values[i] = strconv.FormatFloat(val, 'g', -1, 64)
}

func (sr *String) Int1D(i int) int {
	if iv, err := strconv.Atoi(sr.Values[i]); err == nil {
		return iv
	}
	return 0
}

func (sr *String) SetInt1D(val int, i int) { sr.Values[i] = strconv.Itoa(val) }

func (sr *String) String1D(i int) string { return sr.Values[i] }

func (sr *String) SetString1D(val string, i int) { sr.Values[i] = val }

func (sr *String) Clone() Data { return newString(slices.Clone(sr.Values)) }

func (sr *String) Take(indexes []int) Data {
	out := make([]string, len(indexes))
	for oi, ix := range indexes {
		if ix >= 0 {
			out[oi] = sr.Values[ix]
		}
	}
	return newString(out)
}

// Bool is [Data] storage for bool elements, accessed numerically
// as 0 and 1.
type Bool struct {
	Base[bool]
}

func newBool(vals []bool) *Bool {
	return &Bool{Base[bool]{dt: dtype.Of(dtype.Bool), Values: vals}}
}

func (bl *Bool) IsString() bool { return false }

func (bl *Bool) Float1D(i int) float64 {
	if bl.Values[i] {
		return 1
	}
	return 0
}

func (bl *Bool) SetFloat1D(val float64, i int) { bl.Values[i] = val != 0 }

func (bl *Bool) Int1D(i int) int {
	if bl.Values[i] {
		return 1
	}
	return 0
}

func (bl *Bool) SetInt1D(val int, i int) { bl.Values[i] = val != 0 }

func (bl *Bool) SetString1D(val string, i int) {
	if bv, err := strconv.ParseBool(val); err == nil {
		bl.Values[i] = bv
	}
}

func (bl *Bool) Clone() Data { return newBool(slices.Clone(bl.Values)) }

func (bl *Bool) Take(indexes []int) Data {
	out := make([]bool, len(indexes))
	for oi, ix := range indexes {
		if ix >= 0 {
			out[oi] = bl.Values[ix]
		}
	}
	return newBool(out)
}

// newOfType returns zeroed [Data] storage of the given dtype.
// Category dtypes have no direct storage and panic here.
func newOfType(dt dtype.Dtype, n int) Data {
	switch dt.Kind {
	case dtype.String:
		return newString(make([]string, n))
	case dtype.Bool:
		return newBool(make([]bool, n))
	case dtype.Float32:
		return newNumber(dt, make([]float32, n))
	case dtype.Float64:
		return newNumber(dt, make([]float64, n))
	case dtype.Int8:
		return newNumber(dt, make([]int8, n))
	case dtype.Int16:
		return newNumber(dt, make([]int16, n))
	case dtype.Int32:
		return newNumber(dt, make([]int32, n))
	case dtype.Int64, dtype.Time, dtype.Duration:
		return newNumber(dt, make([]int64, n))
	case dtype.Uint8:
		return newNumber(dt, make([]uint8, n))
	case dtype.Uint16:
		return newNumber(dt, make([]uint16, n))
	case dtype.Uint32:
		return newNumber(dt, make([]uint32, n))
	case dtype.Uint64:
		return newNumber(dt, make([]uint64, n))
	}
	panic("column: no storage for dtype " + dt.String())
}
