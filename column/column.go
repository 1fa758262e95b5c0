// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package column provides the typed, nullable column type that frame
// tables are made of, along with the row kernels (hashing, equality,
// casting, gathering) that the join machinery is built on.
package column

import (
	"slices"
	"strconv"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/keylist"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/frame/dtype"
)

// List is an ordered, name indexed list of columns.
type List = keylist.List[string, *Column]

// Cat is the categorical overlay of a column: the dictionary of unique
// category values, and whether those values have a meaningful order.
// Categories must be unique, non null, and sorted ascending.
type Cat struct {

	// Categories holds the unique category values.
	Categories *Column

	// Ordered is whether the categories have a meaningful order.
	Ordered bool
}

// Column is one column of data: typed storage, an optional validity
// mask, and an optional categorical overlay. When Cat is non nil the
// column is categorical: Data holds Int32 codes indexing into
// Cat.Categories, and the column's dtype is a Category dtype.
type Column struct {

	// Data is the typed element storage.
	Data Data

	// Nulls is the validity bitmap: bit i set means row i is valid.
	// A nil Nulls means every row is valid.
	Nulls Mask

	// Cat is the categorical overlay, nil for plain columns.
	Cat *Cat
}

func newColumn(dd Data) *Column { return &Column{Data: dd} }

// New returns a column of the natural dtype for T holding the given
// values, with every row valid.
func New[T DataTypes](vals ...T) *Column {
	dt := dtype.Of(KindOf[T]())
	switch vs := any(vals).(type) {
	case []string:
		return newColumn(newString(vs))
	case []bool:
		return newColumn(newBool(vs))
	case []float32:
		return newColumn(newNumber(dt, vs))
	case []float64:
		return newColumn(newNumber(dt, vs))
	case []int8:
		return newColumn(newNumber(dt, vs))
	case []int16:
		return newColumn(newNumber(dt, vs))
	case []int32:
		return newColumn(newNumber(dt, vs))
	case []int64:
		return newColumn(newNumber(dt, vs))
	case []uint8:
		return newColumn(newNumber(dt, vs))
	case []uint16:
		return newColumn(newNumber(dt, vs))
	case []uint32:
		return newColumn(newNumber(dt, vs))
	}
	return newColumn(newNumber(dt, any(vals).([]uint64)))
}

// NewFloat64 returns a Float64 column holding the given values.
func NewFloat64(vals ...float64) *Column { return New(vals...) }

// NewFloat32 returns a Float32 column holding the given values.
func NewFloat32(vals ...float32) *Column { return New(vals...) }

// NewInt64 returns an Int64 column holding the given values.
func NewInt64(vals ...int64) *Column { return New(vals...) }

// NewInt32 returns an Int32 column holding the given values.
func NewInt32(vals ...int32) *Column { return New(vals...) }

// NewString returns a String column holding the given values.
func NewString(vals ...string) *Column { return New(vals...) }

// NewBool returns a Bool column holding the given values.
func NewBool(vals ...bool) *Column { return New(vals...) }

// NewOfType returns a column of the given dtype with the given number
// of zero valued, all valid rows. Category dtypes panic here; use
// [NewCategorical].
func NewOfType(dt dtype.Dtype, rows int) *Column {
	return newColumn(newOfType(dt, rows))
}

// NewTime returns a Time column at the given resolution from times.
func NewTime(u dtype.Unit, times ...time.Time) *Column {
	vals := make([]int64, len(times))
	for i, tm := range times {
		vals[i] = timeTicks(tm, u)
	}
	return newColumn(newNumber(dtype.Temporal(dtype.Time, u), vals))
}

func timeTicks(tm time.Time, u dtype.Unit) int64 {
	switch u {
	case dtype.Seconds:
		return tm.Unix()
	case dtype.Milliseconds:
		return tm.UnixMilli()
	case dtype.Microseconds:
		return tm.UnixMicro()
	}
	return tm.UnixNano()
}

// NewDuration returns a Duration column at the given resolution.
func NewDuration(u dtype.Unit, durs ...time.Duration) *Column {
	perTick := int64(time.Second) / u.TicksPerSecond()
	vals := make([]int64, len(durs))
	for i, d := range durs {
		vals[i] = int64(d) / perTick
	}
	return newColumn(newNumber(dtype.Temporal(dtype.Duration, u), vals))
}

// NewCategorical returns a categorical column from codes indexing into
// the given categories. Negative codes become null rows. The categories
// column must hold unique, non null values sorted ascending.
func NewCategorical(codes []int32, categories *Column, ordered bool) *Column {
	cl := &Column{
		Data: newNumber(dtype.Of(dtype.Int32), slices.Clone(codes)),
		Cat:  &Cat{Categories: categories, Ordered: ordered},
	}
	for i, c := range codes {
		if c < 0 {
			cl.SetNull(i)
		}
	}
	return cl
}

// FromStrings returns a column of the given dtype parsed from string
// records. Unparseable records and empty records become null, except
// for the String dtype where every record is taken as is. Time records
// parse as RFC3339, a date time, a date, or raw integer ticks.
func FromStrings(dt dtype.Dtype, recs []string) *Column {
	if dt.IsCategory() {
		base := FromStrings(*dt.Elem, recs)
		return Factorize(base, dt.Ordered)
	}
	n := len(recs)
	cl := NewOfType(dt, n)
	for i, rec := range recs {
		switch {
		case dt.IsString():
			cl.Data.SetString1D(rec, i)
		case rec == "":
			cl.SetNull(i)
		case dt.Kind == dtype.Time:
			if tv, ok := parseTime(rec); ok {
				cl.Data.SetInt1D(int(timeTicks(tv, dt.Unit)), i)
			} else if iv, err := strconv.ParseInt(rec, 10, 64); err == nil {
				cl.Data.SetInt1D(int(iv), i) // raw ticks in the column unit
			} else {
				cl.SetNull(i)
			}
		case dt.Kind == dtype.Duration:
			if dv, err := time.ParseDuration(rec); err == nil {
				cl.Data.SetInt1D(int(int64(dv)/(int64(time.Second)/dt.Unit.TicksPerSecond())), i)
			} else if iv, err := strconv.ParseInt(rec, 10, 64); err == nil {
				cl.Data.SetInt1D(int(iv), i)
			} else {
				cl.SetNull(i)
			}
		case dt.IsBool():
			bv, err := strconv.ParseBool(rec)
			if err != nil {
				cl.SetNull(i)
				continue
			}
			if bv {
				cl.Data.SetFloat1D(1, i)
			}
		case dt.IsFloat():
			fv, err := strconv.ParseFloat(rec, 64)
			if err != nil {
				cl.SetNull(i)
				continue
			}
			cl.Data.SetFloat1D(fv, i)
		case dt.Kind.IsUnsigned():
			uv, err := strconv.ParseUint(rec, 10, dt.Kind.Bits())
			if err != nil {
				cl.SetNull(i)
				continue
			}
			cl.Data.SetInt1D(int(uv), i)
		default:
			iv, err := strconv.ParseInt(rec, 10, dt.Kind.Bits())
			if err != nil {
				cl.SetNull(i)
				continue
			}
			cl.Data.SetInt1D(int(iv), i)
		}
	}
	return cl
}

var timeFormats = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(rec string) (time.Time, bool) {
	for _, fm := range timeFormats {
		if tv, err := time.Parse(fm, rec); err == nil {
			return tv, true
		}
	}
	return time.Time{}, false
}

// Len returns the number of rows.
func (cl *Column) Len() int { return cl.Data.Len() }

// DataType returns the dtype of the column. Categorical columns report
// a Category dtype over their category element dtype.
func (cl *Column) DataType() dtype.Dtype {
	if cl.Cat != nil {
		return dtype.Categorical(cl.Cat.Categories.DataType(), cl.Cat.Ordered)
	}
	return cl.Data.DataType()
}

// IsCategorical returns whether this is a categorical column.
func (cl *Column) IsCategorical() bool { return cl.Cat != nil }

// Categories returns the category values of a categorical column,
// or nil for a plain column.
func (cl *Column) Categories() *Column {
	if cl.Cat == nil {
		return nil
	}
	return cl.Cat.Categories
}

// Ordered returns whether the categories of a categorical column are
// ordered. Always false for plain columns.
func (cl *Column) Ordered() bool { return cl.Cat != nil && cl.Cat.Ordered }

// Codes returns the Int32 code column of a categorical column, sharing
// the underlying storage and mask, or nil for a plain column.
func (cl *Column) Codes() *Column {
	if cl.Cat == nil {
		return nil
	}
	return &Column{Data: cl.Data, Nulls: cl.Nulls}
}

// IsNull returns whether row i is null.
func (cl *Column) IsNull(i int) bool { return !cl.Nulls.IsValid(i) }

// IsValid returns whether row i holds a valid value.
func (cl *Column) IsValid(i int) bool { return cl.Nulls.IsValid(i) }

// SetNull marks row i null, materializing the mask if needed.
func (cl *Column) SetNull(i int) {
	if cl.Nulls == nil {
		cl.Nulls = NewMask(cl.Len())
	}
	cl.Nulls.SetNull(i)
}

// NullCount returns the number of null rows.
func (cl *Column) NullCount() int {
	if cl.Nulls == nil {
		return 0
	}
	return cl.Len() - cl.Nulls.NumValid(cl.Len())
}

// Clone returns a deep copy of the column. The category values of a
// categorical column are cloned too.
func (cl *Column) Clone() *Column {
	out := &Column{Data: cl.Data.Clone(), Nulls: cl.Nulls.Clone()}
	if cl.Cat != nil {
		out.Cat = &Cat{Categories: cl.Cat.Categories.Clone(), Ordered: cl.Cat.Ordered}
	}
	return out
}

// Take returns a new column holding the rows at the given indexes, in
// order. Index -1 yields a null row. The category values of a
// categorical column are shared, not copied.
func (cl *Column) Take(indexes []int) *Column {
	out := &Column{Data: cl.Data.Take(indexes)}
	if cl.Cat != nil {
		out.Cat = &Cat{Categories: cl.Cat.Categories, Ordered: cl.Cat.Ordered}
	}
	if cl.Nulls == nil && !slices.Contains(indexes, -1) {
		return out
	}
	out.Nulls = NewMask(len(indexes))
	for oi, ix := range indexes {
		if ix < 0 || cl.IsNull(ix) {
			out.Nulls.SetNull(oi)
		}
	}
	return out
}

// FillNulls returns a copy of the column with null rows replaced by
// the given value, which is converted to the column dtype. Categorical
// columns are returned unchanged.
func (cl *Column) FillNulls(value any) *Column {
	out := cl.Clone()
	if out.Nulls == nil || out.Cat != nil {
		return out
	}
	for i := range out.Len() {
		if !out.IsNull(i) {
			continue
		}
		if out.Data.IsString() {
			out.Data.SetString1D(reflectx.ToString(value), i)
		} else {
			out.Data.SetFloat1D(errors.Ignore1(reflectx.ToFloat(value)), i)
		}
	}
	out.Nulls = nil
	return out
}

// Neutral returns the neutral fill value for a dtype: zero for numeric
// and temporal dtypes, the empty string for String, false for Bool.
func Neutral(dt dtype.Dtype) any {
	switch {
	case dt.IsString():
		return ""
	case dt.IsBool():
		return false
	}
	return float64(0)
}

// DtypeEqual reports whether two columns have equal dtypes. For
// categorical columns this includes the category values themselves:
// same length, same values in the same order, same orderedness.
func DtypeEqual(a, b *Column) bool {
	da, db := a.DataType(), b.DataType()
	if !da.Equal(db) {
		return false
	}
	if !da.IsCategory() {
		return true
	}
	ca, cb := a.Cat.Categories, b.Cat.Categories
	if ca.Len() != cb.Len() {
		return false
	}
	for i := range ca.Len() {
		if !ca.EqualRows(i, cb, i) {
			return false
		}
	}
	return true
}

// Factorize returns a categorical column built from the values of a
// plain column: the unique valid values, sorted ascending, become the
// category set, and each row becomes the Int32 code of its value.
// Null rows stay null. A categorical input is returned as a clone.
func Factorize(cl *Column, ordered bool) *Column {
	if cl.Cat != nil {
		return cl.Clone()
	}
	n := cl.Len()
	var uniq []int
	seen := map[string]int32{}
	for i := range n {
		if cl.IsNull(i) {
			continue
		}
		key := cl.Data.String1D(i)
		if _, ok := seen[key]; !ok {
			seen[key] = 0
			uniq = append(uniq, i)
		}
	}
	slices.SortFunc(uniq, func(a, b int) int { return compareRows(cl, a, cl, b) })
	for code, ix := range uniq {
		seen[cl.Data.String1D(ix)] = int32(code)
	}
	codes := make([]int32, n)
	for i := range n {
		if cl.IsNull(i) {
			codes[i] = -1
			continue
		}
		codes[i] = seen[cl.Data.String1D(i)]
	}
	return NewCategorical(codes, cl.Take(uniq), ordered)
}

// decode returns the plain column of category values for a categorical
// column, replacing each row's code with its category value.
func (cl *Column) decode() *Column {
	cats := cl.Cat.Categories
	n := cl.Len()
	out := NewOfType(cats.DataType(), n)
	for i := range n {
		if cl.IsNull(i) {
			out.SetNull(i)
			continue
		}
		out.CopyRow(i, cats, cl.Data.Int1D(i))
	}
	return out
}

func (cl *Column) String() string {
	return cl.DataType().String() + "[" + strconv.Itoa(cl.Len()) + "]"
}
