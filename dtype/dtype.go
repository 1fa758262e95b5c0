// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype defines the closed set of element types that frame
// columns hold, and the promotion rules for combining them.
package dtype

import "fmt"

// Kind is the element kind of a column dtype.
type Kind int32

const (
	// Bool is a true / false value.
	Bool Kind = iota

	// Int8 is a signed 8 bit integer.
	Int8

	// Int16 is a signed 16 bit integer.
	Int16

	// Int32 is a signed 32 bit integer.
	Int32

	// Int64 is a signed 64 bit integer.
	Int64

	// Uint8 is an unsigned 8 bit integer.
	Uint8

	// Uint16 is an unsigned 16 bit integer.
	Uint16

	// Uint32 is an unsigned 32 bit integer.
	Uint32

	// Uint64 is an unsigned 64 bit integer.
	Uint64

	// Float32 is a 32 bit floating point number.
	Float32

	// Float64 is a 64 bit floating point number.
	Float64

	// String is a variable length string.
	String

	// Time is an absolute point in time, stored as an integer count
	// of [Unit] ticks since the Unix epoch.
	Time

	// Duration is a signed span of time, stored as an integer count
	// of [Unit] ticks.
	Duration

	// Category is a dictionary encoded type: an ordered set of unique
	// category values of an element dtype, with rows stored as Int32
	// codes indexing into that set.
	Category
)

var kindNames = [...]string{"bool", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "float32", "float64", "string", "time", "duration", "category"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsSigned returns true for the signed integer kinds.
func (k Kind) IsSigned() bool {
	return k >= Int8 && k <= Int64
}

// IsUnsigned returns true for the unsigned integer kinds.
func (k Kind) IsUnsigned() bool {
	return k >= Uint8 && k <= Uint64
}

// IsInteger returns true for the signed and unsigned integer kinds.
func (k Kind) IsInteger() bool {
	return k >= Int8 && k <= Uint64
}

// IsFloat returns true for the floating point kinds.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsNumeric returns true for the integer and floating point kinds.
// Bool and the temporal kinds are not numeric.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k.IsFloat()
}

// IsTemporal returns true for Time and Duration.
func (k Kind) IsTemporal() bool {
	return k == Time || k == Duration
}

// Bits returns the storage width of the kind in bits,
// or 0 for String and Category.
func (k Kind) Bits() int {
	switch k {
	case Bool, Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64, Time, Duration:
		return 64
	}
	return 0
}

// Unit is the tick resolution of a temporal dtype.
// Larger values are finer resolutions.
type Unit int32

const (
	// Seconds resolution.
	Seconds Unit = iota

	// Milliseconds resolution.
	Milliseconds

	// Microseconds resolution.
	Microseconds

	// Nanoseconds resolution.
	Nanoseconds
)

var unitNames = [...]string{"s", "ms", "us", "ns"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// TicksPerSecond returns the number of ticks of this unit in one second.
func (u Unit) TicksPerSecond() int64 {
	switch u {
	case Seconds:
		return 1
	case Milliseconds:
		return 1e3
	case Microseconds:
		return 1e6
	}
	return 1e9
}

// Dtype is the full element type of a column. Plain dtypes are just a
// [Kind]; temporal dtypes add a [Unit]; Category dtypes add the element
// dtype of the category values and whether the categories are ordered.
type Dtype struct {

	// Kind is the element kind.
	Kind Kind

	// Unit is the tick resolution, for Time and Duration kinds only.
	Unit Unit

	// Elem is the dtype of the category values, for Category only.
	Elem *Dtype

	// Ordered is whether the categories have a meaningful order,
	// for Category only.
	Ordered bool
}

// Of returns the dtype for a plain (non temporal, non category) kind.
// It panics if given Time, Duration, or Category, which require
// [Temporal] or [Categorical].
func Of(k Kind) Dtype {
	if k.IsTemporal() || k == Category {
		panic("dtype.Of: kind " + k.String() + " requires Temporal or Categorical")
	}
	return Dtype{Kind: k}
}

// Temporal returns a Time or Duration dtype with the given resolution.
// It panics on non temporal kinds.
func Temporal(k Kind, u Unit) Dtype {
	if !k.IsTemporal() {
		panic("dtype.Temporal: kind " + k.String() + " is not temporal")
	}
	return Dtype{Kind: k, Unit: u}
}

// Categorical returns a Category dtype whose category values have the
// given element dtype. It panics if elem is itself a Category.
func Categorical(elem Dtype, ordered bool) Dtype {
	if elem.Kind == Category {
		panic("dtype.Categorical: element dtype cannot be a category")
	}
	return Dtype{Kind: Category, Elem: &elem, Ordered: ordered}
}

// Equal reports whether two dtypes are structurally equal: same kind,
// same unit for temporal kinds, and same element dtype and orderedness
// for categories. Equality of the category values themselves is a
// column level concern.
func (d Dtype) Equal(o Dtype) bool {
	if d.Kind != o.Kind {
		return false
	}
	switch d.Kind {
	case Time, Duration:
		return d.Unit == o.Unit
	case Category:
		if d.Ordered != o.Ordered {
			return false
		}
		if d.Elem == nil || o.Elem == nil {
			return d.Elem == o.Elem
		}
		return d.Elem.Equal(*o.Elem)
	}
	return true
}

// IsNumeric returns true for integer and floating point dtypes.
func (d Dtype) IsNumeric() bool { return d.Kind.IsNumeric() }

// IsInteger returns true for signed and unsigned integer dtypes.
func (d Dtype) IsInteger() bool { return d.Kind.IsInteger() }

// IsFloat returns true for floating point dtypes.
func (d Dtype) IsFloat() bool { return d.Kind.IsFloat() }

// IsTemporal returns true for Time and Duration dtypes.
func (d Dtype) IsTemporal() bool { return d.Kind.IsTemporal() }

// IsCategory returns true for Category dtypes.
func (d Dtype) IsCategory() bool { return d.Kind == Category }

// IsString returns true for the String dtype.
func (d Dtype) IsString() bool { return d.Kind == String }

// IsBool returns true for the Bool dtype.
func (d Dtype) IsBool() bool { return d.Kind == Bool }

// Size returns the storage size of one element in bytes,
// or 0 for String and Category.
func (d Dtype) Size() int { return d.Kind.Bits() / 8 }

func (d Dtype) String() string {
	switch d.Kind {
	case Time, Duration:
		return d.Kind.String() + "[" + d.Unit.String() + "]"
	case Category:
		elem := "?"
		if d.Elem != nil {
			elem = d.Elem.String()
		}
		if d.Ordered {
			return "category[" + elem + ", ordered]"
		}
		return "category[" + elem + "]"
	}
	return d.Kind.String()
}
