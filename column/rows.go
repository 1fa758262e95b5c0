// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"cmp"
	"encoding/binary"
	"math"
	"sort"
	"strings"

	"cogentcore.org/frame/dtype"
	"github.com/cespare/xxhash/v2"
)

// EqualRows reports whether the value at row i equals the value at row
// j of other. Null compares equal to null and unequal to any value;
// NaN compares equal to NaN. Both columns must have equal dtypes;
// categorical columns compare their decoded category values.
func (cl *Column) EqualRows(i int, other *Column, j int) bool {
	ni, nj := cl.IsNull(i), other.IsNull(j)
	if ni || nj {
		return ni && nj
	}
	dk := cl.DataType().Kind
	switch {
	case dk == dtype.Category:
		if other.Cat == nil {
			return false
		}
		return cl.Cat.Categories.EqualRows(cl.Data.Int1D(i), other.Cat.Categories, other.Data.Int1D(j))
	case cl.Data.IsString():
		return cl.Data.String1D(i) == other.Data.String1D(j)
	case dk.IsFloat():
		a, b := cl.Data.Float1D(i), other.Data.Float1D(j)
		if math.IsNaN(a) && math.IsNaN(b) {
			return true
		}
		return a == b
	}
	return cl.Data.Int1D(i) == other.Data.Int1D(j)
}

// compareRows orders the value at row i against the value at row j of
// other, returning -1, 0, or 1. Null orders before any valid value.
// Both columns must have equal dtypes.
func compareRows(cl *Column, i int, other *Column, j int) int {
	ni, nj := cl.IsNull(i), other.IsNull(j)
	switch {
	case ni && nj:
		return 0
	case ni:
		return -1
	case nj:
		return 1
	}
	dk := cl.DataType().Kind
	switch {
	case dk == dtype.Category:
		return compareRows(cl.Cat.Categories, cl.Data.Int1D(i), other.Cat.Categories, other.Data.Int1D(j))
	case cl.Data.IsString():
		return strings.Compare(cl.Data.String1D(i), other.Data.String1D(j))
	case dk.IsFloat():
		return cmp.Compare(cl.Data.Float1D(i), other.Data.Float1D(j))
	case dk.IsUnsigned():
		return cmp.Compare(uint64(cl.Data.Int1D(i)), uint64(other.Data.Int1D(j)))
	}
	return cmp.Compare(cl.Data.Int1D(i), other.Data.Int1D(j))
}

// CopyRow copies the value and null state at row j of src into row i.
// Both columns must have equal dtypes; for categorical columns that
// includes sharing the same category values.
func (cl *Column) CopyRow(i int, src *Column, j int) {
	if src.IsNull(j) {
		cl.SetNull(i)
		return
	}
	cl.Nulls.SetValid(i)
	switch {
	case cl.Data.IsString():
		cl.Data.SetString1D(src.Data.String1D(j), i)
	case cl.DataType().Kind.IsFloat():
		cl.Data.SetFloat1D(src.Data.Float1D(j), i)
	default:
		cl.Data.SetInt1D(src.Data.Int1D(j), i)
	}
}

// Hash tags keep values of different kinds from colliding.
const (
	hashNull   = byte(0)
	hashInt    = byte('i')
	hashFloat  = byte('f')
	hashString = byte('s')
)

// HashRow writes the value at row i into the hash digest. Equal values
// under [Column.EqualRows] produce equal digest input, so rows can be
// bucketed by hash and verified by equality.
func (cl *Column) HashRow(dg *xxhash.Digest, i int) {
	if cl.IsNull(i) {
		dg.Write([]byte{hashNull})
		return
	}
	var b [9]byte
	dk := cl.DataType().Kind
	switch {
	case cl.Data.IsString():
		b[0] = hashString
		dg.Write(b[:1])
		dg.WriteString(cl.Data.String1D(i))
		dg.Write([]byte{0})
	case dk == dtype.Category:
		cl.Cat.Categories.HashRow(dg, cl.Data.Int1D(i))
	case dk.IsFloat():
		v := cl.Data.Float1D(i)
		if math.IsNaN(v) {
			v = math.NaN() // canonical bits, so any NaN hashes the same
		}
		if v == 0 {
			v = 0 // negative zero hashes as positive zero
		}
		b[0] = hashFloat
		binary.LittleEndian.PutUint64(b[1:], math.Float64bits(v))
		dg.Write(b[:])
	default:
		b[0] = hashInt
		binary.LittleEndian.PutUint64(b[1:], uint64(cl.Data.Int1D(i)))
		dg.Write(b[:])
	}
}

// Side selects which end of a run of equal values [Column.SearchSorted]
// returns.
type Side int32

const (
	// SideLeft returns the first possible insertion point.
	SideLeft Side = iota

	// SideRight returns the last possible insertion point.
	SideRight
)

// SearchSorted returns, for each row of values, the index at which that
// value would be inserted into cl to keep it sorted. cl must already be
// sorted ascending, and both columns must have equal dtypes.
func (cl *Column) SearchSorted(values *Column, side Side) []int {
	out := make([]int, values.Len())
	for vi := range out {
		out[vi] = sort.Search(cl.Len(), func(i int) bool {
			c := compareRows(cl, i, values, vi)
			if side == SideLeft {
				return c >= 0
			}
			return c > 0
		})
	}
	return out
}
