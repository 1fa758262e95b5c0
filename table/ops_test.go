// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"math"
	"slices"
	"testing"

	"cogentcore.org/frame/column"
	"cogentcore.org/frame/dtype"
	"github.com/stretchr/testify/assert"
)

func intsFrom(recs ...string) *column.Column {
	return column.FromStrings(dtype.Of(dtype.Int64), recs)
}

func TestGatherTable(t *testing.T) {
	dt := tbl("a", column.NewInt64(1, 2, 3), "b", column.NewString("x", "y", "z"))
	dt.Index = NewIndex("i", column.NewInt64(10, 20, 30))

	out := dt.Gather([]int{2, 0, -1})
	assert.Equal(t, 3, out.NumRows())
	assert.Equal(t, []int64{3, 1, 0}, i64s(out.Column("a")))
	assert.True(t, out.Column("a").IsNull(2))
	assert.Equal(t, []string{"z", "x", ""}, strs(out.Column("b")))
	assert.Equal(t, []int64{30, 10, 0}, i64s(out.Index.Levels[0]))
	assert.True(t, out.Index.Levels[0].IsNull(2))
}

func TestDropNulls(t *testing.T) {
	dt := tbl(
		"a", intsFrom("1", "", "3", ""),
		"b", intsFrom("10", "20", "", ""),
	)

	out, err := dt.DropNulls(DropAny, nil, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
	assert.Equal(t, []int64{1}, i64s(out.Column("a")))

	out, err = dt.DropNulls(DropAll, nil, 0)
	assert.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())

	// thresh overrides how
	out, err = dt.DropNulls(DropAny, nil, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())

	out, err = dt.DropNulls(DropAny, []string{"a"}, 0)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, i64s(out.Column("a")))

	_, err = dt.DropNulls(DropAny, []string{"nope"}, 0)
	assert.Error(t, err)
}

func TestDropNullColumns(t *testing.T) {
	dt := tbl(
		"full", column.NewInt64(1, 2, 3),
		"holes", intsFrom("1", "", "3"),
		"empty", intsFrom("", "", ""),
	)

	out := dt.DropNullColumns(DropAny, 0)
	assert.Equal(t, []string{"full"}, out.ColumnNames())
	assert.Equal(t, 3, out.NumRows())

	out = dt.DropNullColumns(DropAll, 0)
	assert.Equal(t, []string{"full", "holes"}, out.ColumnNames())

	out = dt.DropNullColumns(DropAny, 2)
	assert.Equal(t, []string{"full", "holes"}, out.ColumnNames())
}

func TestDropDuplicates(t *testing.T) {
	dt := tbl(
		"a", column.NewInt64(1, 2, 1, 3, 1),
		"b", column.NewString("x", "y", "x", "z", "q"),
	)

	out, err := dt.DropDuplicates(nil, KeepFirst)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 1}, i64s(out.Column("a")))
	assert.Equal(t, []string{"x", "y", "z", "q"}, strs(out.Column("b")))

	out, err = dt.DropDuplicates(nil, KeepLast)
	assert.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "z", "q"}, strs(out.Column("b")))

	out, err = dt.DropDuplicates(nil, KeepNone)
	assert.NoError(t, err)
	assert.Equal(t, []string{"y", "z", "q"}, strs(out.Column("b")))

	out, err = dt.DropDuplicates([]string{"a"}, KeepFirst)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, i64s(out.Column("a")))

	_, err = dt.DropDuplicates([]string{"nope"}, KeepFirst)
	assert.Error(t, err)
}

func TestDropDuplicatesNulls(t *testing.T) {
	dt := tbl("a", intsFrom("1", "", "", "1"))
	out, err := dt.DropDuplicates(nil, KeepFirst)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())
	assert.True(t, out.Column("a").IsNull(1))
}

func TestApplyBooleanMask(t *testing.T) {
	dt := tbl("a", column.NewInt64(1, 2, 3, 4))

	mask := column.FromStrings(dtype.Of(dtype.Bool), []string{"true", "false", "true", ""})
	out, err := dt.ApplyBooleanMask(mask)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, i64s(out.Column("a")))

	_, err = dt.ApplyBooleanMask(column.NewInt64(1, 0, 1, 0))
	assert.Error(t, err)
	_, err = dt.ApplyBooleanMask(column.NewBool(true))
	assert.Error(t, err)
}

func TestTableMath(t *testing.T) {
	dt := tbl("v", column.NewInt64(1, 4, 9), "nm", column.NewString("a", "b", "c"))
	dt.Index = NewIndex("i", column.NewInt64(1, 2, 3))

	out := dt.Sqrt()
	v := out.Column("v")
	assert.Equal(t, dtype.Float64, v.DataType().Kind)
	assert.Equal(t, []float64{1, 2, 3}, []float64{v.Data.Float1D(0), v.Data.Float1D(1), v.Data.Float1D(2)})
	assert.Equal(t, []string{"a", "b", "c"}, strs(out.Column("nm")))
	assert.Equal(t, []int64{1, 2, 3}, i64s(out.Index.Levels[0]))

	out = dt.Sin()
	assert.InDelta(t, math.Sin(4), out.Column("v").Data.Float1D(1), 1e-12)
}

func TestTableSearchSorted(t *testing.T) {
	dt := tbl("v", column.NewInt64(1, 3, 5))
	idxs, err := dt.SearchSorted(column.NewInt64(3, 0, 6), column.SideLeft)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3}, idxs)

	idxs, err = dt.SearchSorted(column.NewInt64(3), column.SideRight)
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, idxs)

	two := tbl("a", column.NewInt64(1), "b", column.NewInt64(2))
	_, err = two.SearchSorted(column.NewInt64(1), column.SideLeft)
	assert.Error(t, err)
}

func TestHashRows(t *testing.T) {
	dt := tbl("k", column.NewInt64(1, 1, 2), "v", column.NewString("a", "b", "c"))

	hs, err := dt.HashRows("k")
	assert.NoError(t, err)
	assert.Equal(t, dtype.Uint64, hs.DataType().Kind)
	kh := hs.Data.(*column.Number[uint64]).Values
	assert.Equal(t, kh[0], kh[1])
	assert.NotEqual(t, kh[0], kh[2])

	full, err := dt.HashRows()
	assert.NoError(t, err)
	fh := full.Data.(*column.Number[uint64]).Values
	assert.NotEqual(t, fh[0], fh[1]) // v differs

	// null keys hash like any other shared value
	dt.Column("k").SetNull(0)
	dt.Column("k").SetNull(2)
	hs, err = dt.HashRows("k")
	assert.NoError(t, err)
	nh := hs.Data.(*column.Number[uint64]).Values
	assert.Equal(t, nh[0], nh[2])
	assert.NotEqual(t, nh[0], nh[1])

	_, err = dt.HashRows("nope")
	assert.Error(t, err)
}

func TestHashPartition(t *testing.T) {
	dt := tbl(
		"k", column.NewInt64(1, 2, 1, 3, 2, 1),
		"seq", column.NewInt64(0, 1, 2, 3, 4, 5),
	)

	out, offsets, err := dt.HashPartition([]string{"k"}, 3)
	assert.NoError(t, err)
	assert.Equal(t, 6, out.NumRows())
	assert.Equal(t, 3, len(offsets))
	assert.Equal(t, 0, offsets[0])

	bounds := append(slices.Clone(offsets), out.NumRows())
	part := map[int64]int{}
	for p := 0; p < 3; p++ {
		assert.LessOrEqual(t, bounds[p], bounds[p+1])
		prev := int64(-1)
		for ri := bounds[p]; ri < bounds[p+1]; ri++ {
			k := int64(out.Column("k").Data.Int1D(ri))
			if fp, ok := part[k]; ok {
				assert.Equal(t, fp, p, "a key must stay in one partition")
			} else {
				part[k] = p
			}
			seq := int64(out.Column("seq").Data.Int1D(ri))
			assert.Greater(t, seq, prev, "rows keep their original order")
			prev = seq
		}
	}

	_, _, err = dt.HashPartition([]string{"k"}, 0)
	assert.Error(t, err)
	_, _, err = dt.HashPartition([]string{"nope"}, 2)
	assert.Error(t, err)
}

func TestQuantiles(t *testing.T) {
	dt := tbl(
		"id", column.NewInt64(40, 10, 30, 20),
		"w", column.FromStrings(dtype.Of(dtype.Float64), []string{"4", "1", "", "2"}),
		"z", column.FromStrings(dtype.Of(dtype.Float64), []string{"", "", "", ""}),
		"nm", column.NewString("a", "b", "c", "d"),
	)

	qt, err := dt.Quantiles([]float64{0, 0.5, 1}, Linear)
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "w", "z"}, qt.ColumnNames())
	assert.Equal(t, 3, qt.NumRows())
	assert.Equal(t, []string{"q"}, qt.Index.Names)
	assert.Equal(t, 0.5, qt.Index.Levels[0].Data.Float1D(1))

	id := qt.Column("id")
	assert.Equal(t, dtype.Float64, id.DataType().Kind)
	assert.Equal(t, 10.0, id.Data.Float1D(0))
	assert.Equal(t, 25.0, id.Data.Float1D(1))
	assert.Equal(t, 40.0, id.Data.Float1D(2))

	// nulls are skipped, so w interpolates over [1, 2, 4]
	assert.Equal(t, 2.0, qt.Column("w").Data.Float1D(1))
	// all nulls give null quantiles
	assert.Equal(t, 3, qt.Column("z").NullCount())

	lo, err := dt.Quantiles([]float64{0.5}, Lower)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, lo.Column("id").Data.Float1D(0))
	hi, err := dt.Quantiles([]float64{0.5}, Higher)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, hi.Column("id").Data.Float1D(0))
	nr, err := dt.Quantiles([]float64{0.5}, Nearest)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, nr.Column("id").Data.Float1D(0))
	md, err := dt.Quantiles([]float64{0.5}, Midpoint)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, md.Column("id").Data.Float1D(0))

	_, err = dt.Quantiles([]float64{1.5}, Linear)
	assert.Error(t, err)
}
