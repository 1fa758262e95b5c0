// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"slices"

	"cogentcore.org/frame/column"
	"cogentcore.org/frame/dtype"
)

// DropHow selects how many nulls drop a row or column in
// [Table.DropNulls] and [Table.DropNullColumns].
type DropHow int32

const (
	// DropAny drops a row with any null among the considered columns.
	DropAny DropHow = iota

	// DropAll drops only rows that are null in every considered
	// column.
	DropAll
)

// Keep selects which of a set of duplicate rows survives
// [Table.DropDuplicates].
type Keep int32

const (
	// KeepFirst keeps the first occurrence of each duplicated row.
	KeepFirst Keep = iota

	// KeepLast keeps the last occurrence.
	KeepLast

	// KeepNone drops every row that has a duplicate.
	KeepNone
)

// Gather returns a new table with the rows at the given indexes, in
// order. A -1 index yields a null row. Index levels come along too.
func (dt *Table) Gather(indexes []int) *Table {
	out := NewTable()
	out.Meta.Copy(dt.Meta)
	for i, nm := range dt.Columns.Keys {
		out.AddColumn(nm, dt.Columns.Values[i].Take(indexes))
	}
	out.Columns.Rows = len(indexes)
	out.Index = dt.Index.take(indexes)
	return out
}

// DropNulls returns a copy of the table without rows containing nulls.
// With [DropAny] a single null among the subset columns drops the row;
// with [DropAll] every subset column must be null. A nil subset
// considers all columns. thresh > 0 overrides how: rows with fewer
// than thresh valid values among the subset columns are dropped.
func (dt *Table) DropNulls(how DropHow, subset []string, thresh int) (*Table, error) {
	cols, err := dt.subsetColumns(subset)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return dt.Clone(), nil
	}
	need := thresh
	if need <= 0 {
		need = len(cols)
		if how == DropAll {
			need = 1
		}
	}
	var keep []int
	for ri := range dt.NumRows() {
		nv := 0
		for _, cl := range cols {
			if cl.IsValid(ri) {
				nv++
			}
		}
		if nv >= need {
			keep = append(keep, ri)
		}
	}
	return dt.Gather(keep), nil
}

// DropNullColumns returns a copy of the table without columns
// containing nulls, the column axis analog of [Table.DropNulls].
// thresh > 0 keeps only columns with at least thresh valid values.
func (dt *Table) DropNullColumns(how DropHow, thresh int) *Table {
	rows := dt.NumRows()
	need := thresh
	if need <= 0 {
		need = rows
		if how == DropAll {
			need = 1
		}
	}
	out := NewTable()
	out.Meta.Copy(dt.Meta)
	for i, nm := range dt.Columns.Keys {
		cl := dt.Columns.Values[i]
		if cl.Len()-cl.NullCount() < need {
			continue
		}
		out.AddColumn(nm, cl.Clone())
	}
	out.Columns.Rows = rows
	out.Index = dt.Index.Clone()
	return out
}

// DropDuplicates returns a copy of the table with duplicated rows
// removed, keeping the rows in their original order. Rows are compared
// over the subset columns, or all columns for a nil subset. Null
// compares equal to null here, so all-null rows deduplicate too.
func (dt *Table) DropDuplicates(subset []string, keep Keep) (*Table, error) {
	cols, err := dt.subsetColumns(subset)
	if err != nil {
		return nil, err
	}
	type group struct {
		first, last, count int
	}
	buckets := map[uint64][]int{} // representative row per distinct value
	groups := map[int]*group{}
	for ri, h := range rowHashes(cols, dt.NumRows()) {
		rep := -1
		for _, cand := range buckets[h] {
			if rowsEqual(cols, cand, ri) {
				rep = cand
				break
			}
		}
		if rep < 0 {
			buckets[h] = append(buckets[h], ri)
			groups[ri] = &group{first: ri, last: ri, count: 1}
			continue
		}
		gr := groups[rep]
		gr.last = ri
		gr.count++
	}
	var keepRows []int
	for _, gr := range groups {
		switch keep {
		case KeepFirst:
			keepRows = append(keepRows, gr.first)
		case KeepLast:
			keepRows = append(keepRows, gr.last)
		case KeepNone:
			if gr.count == 1 {
				keepRows = append(keepRows, gr.first)
			}
		}
	}
	slices.Sort(keepRows)
	return dt.Gather(keepRows), nil
}

// ApplyBooleanMask returns a copy of the table keeping only the rows
// where the given bool column is true. Null mask rows drop their row.
func (dt *Table) ApplyBooleanMask(mask *column.Column) (*Table, error) {
	if mask.DataType().Kind != dtype.Bool {
		return nil, fmt.Errorf("table.Table: boolean mask has dtype %s, must be bool", mask.DataType())
	}
	if mask.Len() != dt.NumRows() {
		return nil, fmt.Errorf("table.Table: boolean mask has %d rows, table has %d", mask.Len(), dt.NumRows())
	}
	var keep []int
	for ri := range mask.Len() {
		if mask.IsValid(ri) && mask.Data.Int1D(ri) != 0 {
			keep = append(keep, ri)
		}
	}
	return dt.Gather(keep), nil
}

// SearchSorted returns the insertion indexes that would keep this
// table's single sorted column sorted when inserting the given values.
// See [column.Column.SearchSorted] for the side semantics.
func (dt *Table) SearchSorted(values *column.Column, side column.Side) ([]int, error) {
	if dt.NumColumns() != 1 {
		return nil, fmt.Errorf("table.Table: SearchSorted requires exactly 1 column, table has %d", dt.NumColumns())
	}
	return dt.Columns.Values[0].SearchSorted(values, side), nil
}

// subsetColumns resolves a list of column names, or all columns for a
// nil list.
func (dt *Table) subsetColumns(subset []string) ([]*column.Column, error) {
	if len(subset) == 0 {
		return slices.Clone(dt.Columns.Values), nil
	}
	cols := make([]*column.Column, len(subset))
	for i, nm := range subset {
		cl, err := dt.ColumnTry(nm)
		if err != nil {
			return nil, err
		}
		cols[i] = cl
	}
	return cols, nil
}

func rowsEqual(cols []*column.Column, i, j int) bool {
	for _, cl := range cols {
		if !cl.EqualRows(i, cl, j) {
			return false
		}
	}
	return true
}

// applyFloat returns a copy of the table with the given function
// applied to every column. Non-numeric columns come back unchanged.
func (dt *Table) applyFloat(fn func(*column.Column) *column.Column) *Table {
	out := NewTable()
	out.Meta.Copy(dt.Meta)
	for i, nm := range dt.Columns.Keys {
		out.AddColumn(nm, fn(dt.Columns.Values[i]))
	}
	out.Columns.Rows = dt.Columns.Rows
	out.Index = dt.Index.Clone()
	return out
}

// Sin returns a copy with [column.Column.Sin] applied to every column.
func (dt *Table) Sin() *Table { return dt.applyFloat((*column.Column).Sin) }

// Cos returns a copy with [column.Column.Cos] applied to every column.
func (dt *Table) Cos() *Table { return dt.applyFloat((*column.Column).Cos) }

// Tan returns a copy with [column.Column.Tan] applied to every column.
func (dt *Table) Tan() *Table { return dt.applyFloat((*column.Column).Tan) }

// Asin returns a copy with [column.Column.Asin] applied to every column.
func (dt *Table) Asin() *Table { return dt.applyFloat((*column.Column).Asin) }

// Acos returns a copy with [column.Column.Acos] applied to every column.
func (dt *Table) Acos() *Table { return dt.applyFloat((*column.Column).Acos) }

// Atan returns a copy with [column.Column.Atan] applied to every column.
func (dt *Table) Atan() *Table { return dt.applyFloat((*column.Column).Atan) }

// Exp returns a copy with [column.Column.Exp] applied to every column.
func (dt *Table) Exp() *Table { return dt.applyFloat((*column.Column).Exp) }

// Log returns a copy with [column.Column.Log] applied to every column.
func (dt *Table) Log() *Table { return dt.applyFloat((*column.Column).Log) }

// Sqrt returns a copy with [column.Column.Sqrt] applied to every column.
func (dt *Table) Sqrt() *Table { return dt.applyFloat((*column.Column).Sqrt) }
