// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package join implements equality joins over column lists using a
// single pass hash join: build a hash table over the right side keys,
// probe it with the left side keys, and gather the output columns
// through the resulting row maps.
package join

import (
	"errors"
	"fmt"

	"cogentcore.org/frame/column"
	"github.com/cespare/xxhash/v2"
)

// ErrKeyMismatch is returned when the requested key columns are
// missing, empty, or pair up with unequal dtypes.
var ErrKeyMismatch = errors.New("join: key columns do not match")

// Kind is the join type.
type Kind int32

const (
	// Inner keeps only rows with a key match on both sides.
	Inner Kind = iota

	// Left keeps every left row, nulling right columns where the
	// right side has no match.
	Left

	// Outer keeps every row from both sides, nulling the other side
	// where there is no match.
	Outer
)

func (k Kind) String() string {
	switch k {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Outer:
		return "outer"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Request describes one join over two column lists.
type Request struct {

	// Left and Right are the two sides. Every column in each list is
	// carried into the output.
	Left, Right *column.List

	// LeftOn and RightOn name the key columns in Left and Right.
	// They must have equal lengths; keys pair up positionally.
	// A pair sharing one name is emitted once, under that name.
	LeftOn, RightOn []string

	// LeftIndex and RightIndex, when non nil, join on these columns
	// as the leading key pair, ahead of any named keys. They are not
	// part of the Left and Right lists and come back coalesced in
	// [Output.Index].
	LeftIndex, RightIndex *column.Column

	// Kind is the join type.
	Kind Kind
}

// Output is the result of a join.
type Output struct {

	// Columns holds the joined columns: left columns in left list
	// order, then unshared right columns in right list order.
	Columns *column.List

	// Index is the coalesced index column for index joins, nil
	// otherwise.
	Index *column.Column
}

// Engine executes join requests. The zero value is ready to use, and
// one Engine can serve any number of requests.
type Engine struct{}

// keyPair is one resolved key column pair, with the names used in
// error messages.
type keyPair struct {
	lname, rname string
	left, right  *column.Column
	shared       bool
}

// Run executes one join request.
func (en *Engine) Run(req *Request) (*Output, error) {
	pairs, err := resolveKeys(req)
	if err != nil {
		return nil, err
	}
	leftMap, rightMap := probe(pairs, req.Kind)
	return gather(req, pairs, leftMap, rightMap)
}

// sideKey is one key column on one side: the index column or a named
// column from the list.
type sideKey struct {
	name  string
	col   *column.Column
	named bool
}

// resolveKeys flattens each side into its key columns, index first,
// and pairs the two sides positionally. An index can therefore pair
// with a named column on the other side.
func resolveKeys(req *Request) ([]keyPair, error) {
	collect := func(side string, idx *column.Column, on []string, ls *column.List) ([]sideKey, error) {
		var keys []sideKey
		if idx != nil {
			keys = append(keys, sideKey{name: side + " index", col: idx})
		}
		for _, nm := range on {
			cl := ls.At(nm)
			if cl == nil {
				return nil, fmt.Errorf("%w: %s key %q not found", ErrKeyMismatch, side, nm)
			}
			keys = append(keys, sideKey{name: nm, col: cl, named: true})
		}
		return keys, nil
	}
	lks, err := collect("left", req.LeftIndex, req.LeftOn, req.Left)
	if err != nil {
		return nil, err
	}
	rks, err := collect("right", req.RightIndex, req.RightOn, req.Right)
	if err != nil {
		return nil, err
	}
	if len(lks) != len(rks) {
		return nil, fmt.Errorf("%w: %d left keys vs %d right keys", ErrKeyMismatch, len(lks), len(rks))
	}
	if len(lks) == 0 {
		return nil, fmt.Errorf("%w: no key columns", ErrKeyMismatch)
	}
	pairs := make([]keyPair, len(lks))
	for i := range lks {
		kp := keyPair{
			lname: lks[i].name, rname: rks[i].name,
			left: lks[i].col, right: rks[i].col,
			shared: lks[i].named && rks[i].named && lks[i].name == rks[i].name,
		}
		if !column.DtypeEqual(kp.left, kp.right) {
			return nil, fmt.Errorf("%w: %q is %v but %q is %v", ErrKeyMismatch,
				kp.lname, kp.left.DataType(), kp.rname, kp.right.DataType())
		}
		pairs[i] = kp
	}
	return pairs, nil
}

// probe builds the hash table over the right rows and probes it with
// the left rows, producing parallel row maps into the two sides, with
// -1 marking rows that have no source on that side.
func probe(pairs []keyPair, kind Kind) (leftMap, rightMap []int) {
	leftRows := pairs[0].left.Len()
	rightRows := pairs[0].right.Len()

	dg := xxhash.New()
	hashRow := func(side func(kp keyPair) *column.Column, i int) uint64 {
		dg.Reset()
		for _, kp := range pairs {
			side(kp).HashRow(dg, i)
		}
		return dg.Sum64()
	}
	leftCol := func(kp keyPair) *column.Column { return kp.left }
	rightCol := func(kp keyPair) *column.Column { return kp.right }

	buckets := make(map[uint64][]int, rightRows)
	for ri := range rightRows {
		h := hashRow(rightCol, ri)
		buckets[h] = append(buckets[h], ri)
	}

	rowsEqual := func(li, ri int) bool {
		for _, kp := range pairs {
			if !kp.left.EqualRows(li, kp.right, ri) {
				return false
			}
		}
		return true
	}

	var rightHit []bool
	if kind == Outer {
		rightHit = make([]bool, rightRows)
	}
	for li := range leftRows {
		matched := false
		for _, ri := range buckets[hashRow(leftCol, li)] {
			if !rowsEqual(li, ri) {
				continue
			}
			leftMap = append(leftMap, li)
			rightMap = append(rightMap, ri)
			matched = true
			if rightHit != nil {
				rightHit[ri] = true
			}
		}
		if !matched && kind != Inner {
			leftMap = append(leftMap, li)
			rightMap = append(rightMap, -1)
		}
	}
	for ri, hit := range rightHit {
		if !hit {
			leftMap = append(leftMap, -1)
			rightMap = append(rightMap, ri)
		}
	}
	return leftMap, rightMap
}

// gather pulls every column of both sides through the row maps.
// A shared key pair is emitted once: gathered from the left, then
// back filled from the right for rows only the right side has.
func gather(req *Request, pairs []keyPair, leftMap, rightMap []int) (*Output, error) {
	shared := map[string]*column.Column{}
	for _, kp := range pairs {
		if kp.shared {
			shared[kp.lname] = kp.right
		}
	}

	out := &Output{Columns: &column.List{}}
	for i, nm := range req.Left.Keys {
		gc := req.Left.Values[i].Take(leftMap)
		if rc, ok := shared[nm]; ok {
			coalesce(gc, leftMap, rc, rightMap)
		}
		if err := out.Columns.Add(nm, gc); err != nil {
			return nil, fmt.Errorf("join: duplicate output column %q", nm)
		}
	}
	for i, nm := range req.Right.Keys {
		if _, ok := shared[nm]; ok {
			continue
		}
		if err := out.Columns.Add(nm, req.Right.Values[i].Take(rightMap)); err != nil {
			return nil, fmt.Errorf("join: duplicate output column %q", nm)
		}
	}

	if req.LeftIndex != nil || req.RightIndex != nil {
		switch {
		case req.LeftIndex == nil:
			out.Index = req.RightIndex.Take(rightMap)
		case req.RightIndex == nil:
			out.Index = req.LeftIndex.Take(leftMap)
		default:
			out.Index = req.LeftIndex.Take(leftMap)
			coalesce(out.Index, leftMap, req.RightIndex, rightMap)
		}
	}
	return out, nil
}

// coalesce back fills rows that were not gathered from the left with
// the matching right side values.
func coalesce(gc *column.Column, leftMap []int, rc *column.Column, rightMap []int) {
	for oi, lix := range leftMap {
		if lix < 0 && rightMap[oi] >= 0 {
			gc.CopyRow(oi, rc, rightMap[oi])
		}
	}
}
