// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"cogentcore.org/frame/column"
	"github.com/cespare/xxhash/v2"
)

// HashRows returns a Uint64 column holding one hash per row, computed
// over the given columns, or over all columns for an empty subset.
// Rows that compare equal hash equal, null against null included.
func (dt *Table) HashRows(subset ...string) (*column.Column, error) {
	cols, err := dt.subsetColumns(subset)
	if err != nil {
		return nil, err
	}
	return column.New(rowHashes(cols, dt.NumRows())...), nil
}

// rowHashes computes one hash per row over the given columns.
func rowHashes(cols []*column.Column, n int) []uint64 {
	dg := xxhash.New()
	hs := make([]uint64, n)
	for ri := range n {
		dg.Reset()
		for _, cl := range cols {
			cl.HashRow(dg, ri)
		}
		hs[ri] = dg.Sum64()
	}
	return hs
}

// HashPartition splits the rows into n partitions keyed by the row
// hash over the given columns (or all columns for a nil list), modulo
// n. The partitions come back as one table holding each partition's
// rows contiguously, rows keeping their original relative order, plus
// the starting row offset of each partition. Rows with equal values in
// the hashed columns always land in the same partition.
func (dt *Table) HashPartition(columns []string, n int) (*Table, []int, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("table.Table: HashPartition needs a positive partition count, got %d", n)
	}
	cols, err := dt.subsetColumns(columns)
	if err != nil {
		return nil, nil, err
	}
	parts := make([][]int, n)
	for ri, h := range rowHashes(cols, dt.NumRows()) {
		p := int(h % uint64(n))
		parts[p] = append(parts[p], ri)
	}
	offsets := make([]int, n)
	order := make([]int, 0, dt.NumRows())
	for p, rows := range parts {
		offsets[p] = len(order)
		order = append(order, rows...)
	}
	return dt.Gather(order), offsets, nil
}
