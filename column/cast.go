// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"cogentcore.org/frame/dtype"
)

// ErrCast is returned by [Column.Cast] when a value cannot be
// represented in the target dtype.
var ErrCast = errors.New("column: cast error")

// CanCastSafely reports whether every value in the column can be cast
// to the given dtype without losing information. The check is value
// aware: an int64 column whose values all happen to fit in int32 can
// safely cast down, while an int64 column with values beyond 2^53
// cannot safely cast to float64. Null rows are ignored. Categorical,
// string, and bool dtypes only cast safely to themselves.
func (cl *Column) CanCastSafely(to dtype.Dtype) bool {
	from := cl.DataType()
	if from.Equal(to) {
		return true
	}
	switch {
	case from.IsCategory() || to.IsCategory():
		return false
	case from.IsTemporal() && to.IsTemporal():
		if from.Kind != to.Kind {
			return false
		}
		if to.Unit >= from.Unit {
			return true
		}
		div := from.Unit.TicksPerSecond() / to.Unit.TicksPerSecond()
		for i := range cl.Len() {
			if !cl.IsNull(i) && int64(cl.Data.Int1D(i))%div != 0 {
				return false
			}
		}
		return true
	case from.IsNumeric() && to.IsNumeric():
		for i := range cl.Len() {
			if !cl.IsNull(i) && !cl.fitsLossless(i, from.Kind, to.Kind) {
				return false
			}
		}
		return true
	}
	return false
}

// fitsLossless reports whether the valid value at row i survives a
// round trip through the target kind.
func (cl *Column) fitsLossless(i int, fk, tk dtype.Kind) bool {
	switch {
	case fk.IsFloat():
		v := cl.Data.Float1D(i)
		switch tk {
		case dtype.Float64:
			return true
		case dtype.Float32:
			return math.IsNaN(v) || float64(float32(v)) == v
		}
		if math.IsNaN(v) || math.Trunc(v) != v {
			return false
		}
		lo, hi := floatBounds(tk)
		return v >= lo && v < hi
	case fk.IsUnsigned():
		u := uint64(cl.Data.Int1D(i))
		switch {
		case tk.IsFloat():
			f := float64(u)
			if tk == dtype.Float32 {
				f = float64(float32(f))
			}
			if f < 0 || f >= 0x1p64 {
				return false
			}
			return uint64(f) == u
		case tk.IsUnsigned():
			return u <= maxUint(tk)
		}
		return u <= uint64(maxInt(tk))
	}
	v := int64(cl.Data.Int1D(i))
	switch {
	case tk.IsFloat():
		f := float64(v)
		if tk == dtype.Float32 {
			f = float64(float32(f))
		}
		if f >= 0x1p63 || f < -0x1p63 {
			return false
		}
		return int64(f) == v
	case tk.IsUnsigned():
		return v >= 0 && uint64(v) <= maxUint(tk)
	}
	return v >= minInt(tk) && v <= maxInt(tk)
}

// Cast returns a copy of the column converted to the given dtype.
// Integer to float casts round silently, matching numeric promotion;
// everything else that would lose information fails with [ErrCast]:
// out of range values, non integral floats cast to integers, and
// temporal casts that lose resolution. Categorical columns are decoded
// to their category values first; casting to a Category dtype is not
// supported, use [Factorize].
func (cl *Column) Cast(to dtype.Dtype) (*Column, error) {
	from := cl.DataType()
	if from.Equal(to) {
		return cl.Clone(), nil
	}
	if cl.Cat != nil {
		dec := cl.decode()
		if dec.DataType().Equal(to) {
			return dec, nil
		}
		return dec.Cast(to)
	}
	switch {
	case to.IsCategory():
		return nil, fmt.Errorf("%w: cannot cast %v to %v", ErrCast, from, to)
	case from.IsTemporal() && to.IsTemporal():
		return cl.castTemporal(to)
	case from.IsTemporal() || to.IsTemporal():
		return nil, fmt.Errorf("%w: cannot cast %v to %v", ErrCast, from, to)
	case to.IsString():
		return cl.castToString(to), nil
	case from.IsString():
		return cl.castFromString(to)
	}
	return cl.castNumeric(to)
}

func (cl *Column) castTemporal(to dtype.Dtype) (*Column, error) {
	from := cl.DataType()
	if from.Kind != to.Kind {
		return nil, fmt.Errorf("%w: cannot cast %v to %v", ErrCast, from, to)
	}
	n := cl.Len()
	out := NewOfType(to, n)
	out.Nulls = cl.Nulls.Clone()
	if to.Unit >= from.Unit {
		mult := int(to.Unit.TicksPerSecond() / from.Unit.TicksPerSecond())
		for i := range n {
			if !cl.IsNull(i) {
				out.Data.SetInt1D(cl.Data.Int1D(i)*mult, i)
			}
		}
		return out, nil
	}
	div := from.Unit.TicksPerSecond() / to.Unit.TicksPerSecond()
	for i := range n {
		if cl.IsNull(i) {
			continue
		}
		v := int64(cl.Data.Int1D(i))
		if v%div != 0 {
			return nil, fmt.Errorf("%w: %v value at row %d loses resolution in %v", ErrCast, from, i, to)
		}
		out.Data.SetInt1D(int(v/div), i)
	}
	return out, nil
}

func (cl *Column) castToString(to dtype.Dtype) *Column {
	n := cl.Len()
	out := NewOfType(to, n)
	out.Nulls = cl.Nulls.Clone()
	for i := range n {
		if !cl.IsNull(i) {
			out.Data.SetString1D(cl.Data.String1D(i), i)
		}
	}
	return out
}

func (cl *Column) castFromString(to dtype.Dtype) (*Column, error) {
	n := cl.Len()
	out := NewOfType(to, n)
	out.Nulls = cl.Nulls.Clone()
	for i := range n {
		if cl.IsNull(i) {
			continue
		}
		s := cl.Data.String1D(i)
		fail := func() error {
			return fmt.Errorf("%w: cannot parse %q at row %d as %v", ErrCast, s, i, to)
		}
		switch {
		case to.IsBool():
			bv, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fail()
			}
			if bv {
				out.Data.SetFloat1D(1, i)
			}
		case to.IsFloat():
			fv, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fail()
			}
			out.Data.SetFloat1D(fv, i)
		case to.Kind.IsUnsigned():
			uv, err := strconv.ParseUint(s, 10, to.Kind.Bits())
			if err != nil {
				return nil, fail()
			}
			out.Data.SetInt1D(int(uv), i)
		default:
			iv, err := strconv.ParseInt(s, 10, to.Kind.Bits())
			if err != nil {
				return nil, fail()
			}
			out.Data.SetInt1D(int(iv), i)
		}
	}
	return out, nil
}

func (cl *Column) castNumeric(to dtype.Dtype) (*Column, error) {
	n := cl.Len()
	out := NewOfType(to, n)
	out.Nulls = cl.Nulls.Clone()
	fk, tk := cl.Data.DataType().Kind, to.Kind
	for i := range n {
		if cl.IsNull(i) {
			continue
		}
		ok := true
		switch {
		case fk.IsFloat():
			v := cl.Data.Float1D(i)
			if tk.IsFloat() || tk == dtype.Bool {
				if tk == dtype.Float32 && !math.IsInf(v, 0) && math.IsInf(float64(float32(v)), 0) {
					ok = false
					break
				}
				out.Data.SetFloat1D(v, i)
				break
			}
			if math.IsNaN(v) || math.Trunc(v) != v {
				ok = false
				break
			}
			lo, hi := floatBounds(tk)
			if v < lo || v >= hi {
				ok = false
				break
			}
			if tk.IsUnsigned() {
				out.Data.SetInt1D(int(uint64(v)), i)
			} else {
				out.Data.SetInt1D(int(int64(v)), i)
			}
		case fk.IsUnsigned():
			u := uint64(cl.Data.Int1D(i))
			switch {
			case tk.IsFloat() || tk == dtype.Bool:
				out.Data.SetFloat1D(float64(u), i)
			case tk.IsUnsigned():
				if u > maxUint(tk) {
					ok = false
					break
				}
				out.Data.SetInt1D(int(u), i)
			default:
				if u > uint64(maxInt(tk)) {
					ok = false
					break
				}
				out.Data.SetInt1D(int(u), i)
			}
		default: // signed and bool sources
			v := int64(cl.Data.Int1D(i))
			switch {
			case tk.IsFloat() || tk == dtype.Bool:
				out.Data.SetFloat1D(float64(v), i)
			case tk.IsUnsigned():
				if v < 0 || uint64(v) > maxUint(tk) {
					ok = false
					break
				}
				out.Data.SetInt1D(int(v), i)
			default:
				if v < minInt(tk) || v > maxInt(tk) {
					ok = false
					break
				}
				out.Data.SetInt1D(int(v), i)
			}
		}
		if !ok {
			return nil, fmt.Errorf("%w: value %s at row %d does not fit %v", ErrCast, cl.Data.String1D(i), i, to)
		}
	}
	return out, nil
}

// floatBounds returns the half open range [lo, hi) of float values
// representable in an integer kind. The bounds are powers of two, so
// the comparisons are exact.
func floatBounds(k dtype.Kind) (lo, hi float64) {
	b := k.Bits()
	if k.IsUnsigned() {
		return 0, math.Ldexp(1, b)
	}
	return -math.Ldexp(1, b-1), math.Ldexp(1, b-1)
}

func maxInt(k dtype.Kind) int64 { return int64(uint64(1)<<(uint(k.Bits())-1) - 1) }

func minInt(k dtype.Kind) int64 { return int64(-1) << (uint(k.Bits()) - 1) }

func maxUint(k dtype.Kind) uint64 {
	if k.Bits() == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(k.Bits()) - 1
}
