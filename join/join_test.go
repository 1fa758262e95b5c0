// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package join

import (
	"testing"

	"cogentcore.org/frame/column"
	"github.com/stretchr/testify/assert"
)

func cols(kv ...any) *column.List {
	ls := &column.List{}
	for i := 0; i < len(kv); i += 2 {
		ls.Add(kv[i].(string), kv[i+1].(*column.Column))
	}
	return ls
}

func i64(cl *column.Column) []int64 { return cl.Data.(*column.Number[int64]).Values }

func TestInner(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("id", column.NewInt64(1, 2, 3), "x", column.NewInt64(10, 20, 30)),
		Right:  cols("id", column.NewInt64(2, 3, 4), "y", column.NewInt64(200, 300, 400)),
		LeftOn: []string{"id"}, RightOn: []string{"id"},
		Kind: Inner,
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"id", "x", "y"}, out.Columns.Keys)
	assert.Equal(t, []int64{2, 3}, i64(out.Columns.At("id")))
	assert.Equal(t, []int64{20, 30}, i64(out.Columns.At("x")))
	assert.Equal(t, []int64{200, 300}, i64(out.Columns.At("y")))
	assert.Nil(t, out.Index)
}

func TestLeft(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("id", column.NewInt64(1, 2), "x", column.NewInt64(10, 20)),
		Right:  cols("id", column.NewInt64(2), "y", column.NewInt64(200)),
		LeftOn: []string{"id"}, RightOn: []string{"id"},
		Kind: Left,
	})
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, i64(out.Columns.At("id")))
	yc := out.Columns.At("y")
	assert.True(t, yc.IsNull(0))
	assert.Equal(t, int64(200), i64(yc)[1])
}

func TestOuter(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("id", column.NewInt64(1, 2), "x", column.NewInt64(10, 20)),
		Right:  cols("id", column.NewInt64(2, 4), "y", column.NewInt64(200, 400)),
		LeftOn: []string{"id"}, RightOn: []string{"id"},
		Kind: Outer,
	})
	assert.NoError(t, err)
	idc := out.Columns.At("id")
	assert.Equal(t, []int64{1, 2, 4}, i64(idc), "shared key coalesced from the right")
	assert.Equal(t, 0, idc.NullCount())
	xc := out.Columns.At("x")
	assert.True(t, xc.IsNull(2))
	yc := out.Columns.At("y")
	assert.True(t, yc.IsNull(0))
	assert.Equal(t, int64(400), i64(yc)[2])
}

func TestMultiKey(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left: cols("a", column.NewInt64(1, 1, 2), "b", column.NewString("p", "q", "p"),
			"x", column.NewInt64(10, 11, 12)),
		Right: cols("a", column.NewInt64(1, 2), "c", column.NewString("q", "p"),
			"y", column.NewInt64(20, 21)),
		LeftOn: []string{"a", "b"}, RightOn: []string{"a", "c"},
		Kind: Inner,
	})
	assert.NoError(t, err)
	// "a" is shared and emitted once; "b" and "c" both survive
	assert.Equal(t, []string{"a", "b", "x", "c", "y"}, out.Columns.Keys)
	assert.Equal(t, []int64{1, 2}, i64(out.Columns.At("a")))
	assert.Equal(t, []int64{11, 12}, i64(out.Columns.At("x")))
	assert.Equal(t, []int64{20, 21}, i64(out.Columns.At("y")))
}

func TestNullKeysMatch(t *testing.T) {
	lk := column.NewInt64(1, 0)
	lk.SetNull(1)
	rk := column.NewInt64(0, 5)
	rk.SetNull(0)
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("k", lk, "x", column.NewInt64(10, 11)),
		Right:  cols("k", rk, "y", column.NewInt64(20, 21)),
		LeftOn: []string{"k"}, RightOn: []string{"k"},
		Kind: Inner,
	})
	assert.NoError(t, err)
	kc := out.Columns.At("k")
	assert.Equal(t, 1, kc.Len(), "null joins against null")
	assert.True(t, kc.IsNull(0))
	assert.Equal(t, []int64{11}, i64(out.Columns.At("x")))
	assert.Equal(t, []int64{20}, i64(out.Columns.At("y")))
}

func TestDuplicateMatches(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("id", column.NewInt64(7), "x", column.NewInt64(1)),
		Right:  cols("id", column.NewInt64(7, 7), "y", column.NewInt64(2, 3)),
		LeftOn: []string{"id"}, RightOn: []string{"id"},
		Kind: Inner,
	})
	assert.NoError(t, err)
	assert.Equal(t, []int64{7, 7}, i64(out.Columns.At("id")))
	assert.Equal(t, []int64{2, 3}, i64(out.Columns.At("y")), "matches come out in right row order")
}

func TestIndexJoin(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:      cols("x", column.NewInt64(10, 20, 30)),
		Right:     cols("y", column.NewInt64(200, 300, 400)),
		LeftIndex: column.NewInt64(1, 2, 3), RightIndex: column.NewInt64(2, 3, 4),
		Kind: Outer,
	})
	assert.NoError(t, err)
	assert.NotNil(t, out.Index)
	assert.Equal(t, []int64{1, 2, 3, 4}, i64(out.Index))
	assert.Equal(t, 0, out.Index.NullCount())
	xc := out.Columns.At("x")
	assert.True(t, xc.IsNull(3))
	yc := out.Columns.At("y")
	assert.True(t, yc.IsNull(0))
}

func TestIndexAgainstColumn(t *testing.T) {
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:      cols("x", column.NewInt64(10, 20)),
		Right:     cols("k", column.NewInt64(2), "y", column.NewInt64(200)),
		LeftIndex: column.NewInt64(1, 2),
		RightOn:   []string{"k"},
		Kind:      Inner,
	})
	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, i64(out.Index))
	assert.Equal(t, []int64{20}, i64(out.Columns.At("x")))
	assert.Equal(t, []int64{2}, i64(out.Columns.At("k")))
}

func TestKeyErrors(t *testing.T) {
	en := &Engine{}
	_, err := en.Run(&Request{
		Left:   cols("id", column.NewInt64(1)),
		Right:  cols("id", column.NewString("1")),
		LeftOn: []string{"id"}, RightOn: []string{"id"},
		Kind: Inner,
	})
	assert.ErrorIs(t, err, ErrKeyMismatch)

	_, err = en.Run(&Request{
		Left:   cols("id", column.NewInt64(1)),
		Right:  cols("id", column.NewInt64(1)),
		LeftOn: []string{"id"}, RightOn: []string{},
		Kind: Inner,
	})
	assert.ErrorIs(t, err, ErrKeyMismatch)

	_, err = en.Run(&Request{
		Left:   cols("id", column.NewInt64(1)),
		Right:  cols("id", column.NewInt64(1)),
		LeftOn: []string{"nope"}, RightOn: []string{"id"},
		Kind: Inner,
	})
	assert.ErrorIs(t, err, ErrKeyMismatch)

	_, err = en.Run(&Request{
		Left:  cols("id", column.NewInt64(1)),
		Right: cols("id", column.NewInt64(1)),
		Kind:  Inner,
	})
	assert.ErrorIs(t, err, ErrKeyMismatch)
}

func TestCategoricalCodesRideThrough(t *testing.T) {
	// the merge layer substitutes codes for categorical keys; the
	// engine just sees Int32 columns
	lk := column.NewInt32(0, 1)
	rk := column.NewInt32(1)
	en := &Engine{}
	out, err := en.Run(&Request{
		Left:   cols("c_codes", lk, "x", column.NewInt64(10, 11)),
		Right:  cols("c_codes", rk, "y", column.NewInt64(20)),
		LeftOn: []string{"c_codes"}, RightOn: []string{"c_codes"},
		Kind: Left,
	})
	assert.NoError(t, err)
	cc := out.Columns.At("c_codes")
	assert.Equal(t, []int32{0, 1}, cc.Data.(*column.Number[int32]).Values)
	assert.True(t, out.Columns.At("y").IsNull(0))
}
