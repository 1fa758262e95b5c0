// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
)

func TestEqualRows(t *testing.T) {
	a := NewInt64(1, 2, 3)
	b := NewInt64(3, 2, 1)
	assert.True(t, a.EqualRows(1, b, 1))
	assert.True(t, a.EqualRows(0, b, 2))
	assert.False(t, a.EqualRows(0, b, 0))

	a.SetNull(0)
	b.SetNull(2)
	assert.True(t, a.EqualRows(0, b, 2), "null equals null")
	assert.False(t, a.EqualRows(0, b, 1), "null does not equal a value")

	f := NewFloat64(math.NaN(), 0)
	g := NewFloat64(math.NaN(), math.Copysign(0, -1))
	assert.True(t, f.EqualRows(0, g, 0), "NaN equals NaN")
	assert.True(t, f.EqualRows(1, g, 1), "zero equals negative zero")

	ct := Factorize(NewString("x", "y"), false)
	cu := Factorize(NewString("y", "x"), false)
	assert.True(t, ct.EqualRows(0, cu, 1))
	assert.False(t, ct.EqualRows(0, cu, 0))
}

func TestHashRowMatchesEqualRows(t *testing.T) {
	a := NewFloat64(1.5, math.NaN(), 0)
	b := NewFloat64(1.5, math.NaN(), math.Copysign(0, -1))
	for i := range 3 {
		da, db := xxhash.New(), xxhash.New()
		a.HashRow(da, i)
		b.HashRow(db, i)
		assert.Equal(t, da.Sum64(), db.Sum64(), "row %d", i)
	}

	n1 := NewInt64(5)
	n1.SetNull(0)
	n2 := NewInt64(7)
	n2.SetNull(0)
	da, db := xxhash.New(), xxhash.New()
	n1.HashRow(da, 0)
	n2.HashRow(db, 0)
	assert.Equal(t, da.Sum64(), db.Sum64(), "all nulls hash the same")
}

func TestCopyRow(t *testing.T) {
	dst := NewInt64(0, 0)
	src := NewInt64(7, 8)
	src.SetNull(1)
	dst.CopyRow(0, src, 0)
	dst.CopyRow(1, src, 1)
	assert.Equal(t, int64(7), dst.Data.(*Number[int64]).Values[0])
	assert.True(t, dst.IsNull(1))

	sd := NewString("", "")
	ss := NewString("hi", "yo")
	sd.CopyRow(1, ss, 0)
	assert.Equal(t, "hi", sd.Data.String1D(1))
}

func TestSearchSorted(t *testing.T) {
	cl := NewInt64(1, 3, 3, 5)
	vals := NewInt64(3, 0, 6, 5)
	assert.Equal(t, []int{1, 0, 4, 3}, cl.SearchSorted(vals, SideLeft))
	assert.Equal(t, []int{3, 0, 4, 4}, cl.SearchSorted(vals, SideRight))

	sc := NewString("b", "d")
	sv := NewString("a", "c", "e")
	assert.Equal(t, []int{0, 1, 2}, sc.SearchSorted(sv, SideLeft))
}
