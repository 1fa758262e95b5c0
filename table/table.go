// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table provides a table of nullable columns aligned by a
// common row dimension, with an optional row index, relational merge
// operations between pairs of tables, and CSV file I/O.
package table

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/metadata"
	"cogentcore.org/frame/column"
)

// Columns is the ordered list of named [column.Column] data for a
// table. All columns share a common number of rows.
type Columns struct {
	column.List

	// Rows is the number of rows, which all columns must have.
	Rows int
}

// NewColumns returns a new Columns.
func NewColumns() *Columns {
	return &Columns{}
}

// AddColumn adds the given column under the given name, returning an
// error and not adding if the name is not unique or the column length
// does not match the current number of rows. The first column added
// sets the number of rows.
func (cs *Columns) AddColumn(name string, cl *column.Column) error {
	if cs.Len() == 0 {
		cs.Rows = cl.Len()
	} else if cl.Len() != cs.Rows {
		return fmt.Errorf("table.Columns: column %q has %d rows, table has %d", name, cl.Len(), cs.Rows)
	}
	return cs.Add(name, cl)
}

// Clone returns a complete copy of the columns, cloning the underlying
// column data.
func (cs *Columns) Clone() *Columns {
	cp := NewColumns()
	cp.Rows = cs.Rows
	for i, nm := range cs.Keys {
		cp.Add(nm, cs.Values[i].Clone())
	}
	return cp
}

// Index is the row index of a table: one or more named index columns
// called levels. Tables made by this package always have one level,
// but indexes read from other sources can have more.
type Index struct {

	// Names are the level names, aligned with Levels.
	Names []string

	// Levels are the index columns, outermost first.
	Levels []*column.Column
}

// NewIndex returns a new single level index with the given name and
// column.
func NewIndex(name string, cl *column.Column) *Index {
	return &Index{Names: []string{name}, Levels: []*column.Column{cl}}
}

// NumLevels returns the number of index levels, 0 for a nil index.
func (ix *Index) NumLevels() int {
	if ix == nil {
		return 0
	}
	return len(ix.Levels)
}

// Clone returns a complete copy of the index, cloning the level data.
// Returns nil for a nil index.
func (ix *Index) Clone() *Index {
	if ix == nil {
		return nil
	}
	cp := &Index{Names: slices.Clone(ix.Names)}
	for _, lv := range ix.Levels {
		cp.Levels = append(cp.Levels, lv.Clone())
	}
	return cp
}

// take returns a copy of the index with the rows at the given indexes,
// in order. A -1 index yields a null row.
func (ix *Index) take(indexes []int) *Index {
	if ix == nil {
		return nil
	}
	cp := &Index{Names: slices.Clone(ix.Names)}
	for _, lv := range ix.Levels {
		cp.Levels = append(cp.Levels, lv.Take(indexes))
	}
	return cp
}

// Table is a table of [column.Column] data aligned by a common row
// dimension, with an optional row [Index]. Use [Table.Column] to access
// columns by name, and [Merge] to join two tables.
type Table struct {

	// Columns has the list of column data for this table.
	Columns *Columns

	// Index is the optional row index. Most tables have none; merges
	// can join on it instead of (or along with) data columns.
	Index *Index

	// Meta is misc metadata for the table. Use lower-case key names
	// following the struct tag convention:
	//	- name string = name of table
	//	- doc string = documentation, description
	//	- precision int = n for precision to write out floats in csv.
	Meta metadata.Data
}

// NewTable returns a new empty Table.
// Can pass an optional name which sets metadata.
func NewTable(name ...string) *Table {
	dt := &Table{}
	dt.Columns = NewColumns()
	if len(name) > 0 {
		dt.Meta.Set("name", name[0])
	}
	return dt
}

// Metadata returns this table's metadata.
func (dt *Table) Metadata() *metadata.Data { return &dt.Meta }

// NumRows returns the number of rows.
func (dt *Table) NumRows() int { return dt.Columns.Rows }

// NumColumns returns the number of columns.
func (dt *Table) NumColumns() int { return dt.Columns.Len() }

// Column returns the column with the given name, nil if not found.
func (dt *Table) Column(name string) *column.Column {
	return dt.Columns.At(name)
}

// ColumnTry is a version of [Table.Column] that also returns an error
// if the column name is not found, for cases when error is needed.
func (dt *Table) ColumnTry(name string) (*column.Column, error) {
	cl := dt.Column(name)
	if cl != nil {
		return cl, nil
	}
	return nil, fmt.Errorf("table.Table: column named %q not found", name)
}

// ColumnIndex returns the column at the given index.
func (dt *Table) ColumnIndex(idx int) *column.Column {
	return dt.Columns.Values[idx]
}

// ColumnName returns the name of given column.
func (dt *Table) ColumnName(i int) string {
	return dt.Columns.Keys[i]
}

// ColumnNames returns the list of column names.
func (dt *Table) ColumnNames() []string {
	return slices.Clone(dt.Columns.Keys)
}

// AddColumn adds the given column to the table, returning an error and
// not adding if the name is not unique or the length does not match
// the current number of rows.
func (dt *Table) AddColumn(name string, cl *column.Column) error {
	return dt.Columns.AddColumn(name, cl)
}

// AddColumn adds a new column to the table holding the given values,
// under the given name (which must be unique).
func AddColumn[T column.DataTypes](dt *Table, name string, vals ...T) (*column.Column, error) {
	cl := column.New(vals...)
	if err := dt.AddColumn(name, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// DeleteColumnName deletes column of given name.
// returns false if not found.
func (dt *Table) DeleteColumnName(name string) bool {
	return dt.Columns.DeleteByKey(name)
}

// DeleteAll deletes all columns, does full reset.
func (dt *Table) DeleteAll() {
	dt.Columns.Reset()
	dt.Columns.Rows = 0
}

// SetIndex moves the named column out of the data columns and makes it
// the table's index, replacing any current index.
func (dt *Table) SetIndex(name string) error {
	cl, err := dt.ColumnTry(name)
	if err != nil {
		return err
	}
	dt.Columns.DeleteByKey(name)
	dt.Index = NewIndex(name, cl)
	return nil
}

// ResetIndex moves the index levels back into the data columns, at the
// front, and clears the index. Returns an error without modifying the
// table if a level name collides with an existing column name.
func (dt *Table) ResetIndex() error {
	if dt.Index == nil {
		return nil
	}
	for _, nm := range dt.Index.Names {
		if dt.Columns.IndexByKey(nm) >= 0 {
			return fmt.Errorf("table.Table: cannot reset index, column named %q already exists", nm)
		}
	}
	for i := dt.Index.NumLevels() - 1; i >= 0; i-- {
		dt.Columns.Insert(0, dt.Index.Names[i], dt.Index.Levels[i])
	}
	if dt.Columns.Len() == dt.Index.NumLevels() {
		dt.Columns.Rows = dt.Index.Levels[0].Len()
	}
	dt.Index = nil
	return nil
}

// Clone returns a complete copy of this table, including cloning the
// underlying column data, the index, and the metadata.
func (dt *Table) Clone() *Table {
	cp := &Table{}
	cp.Columns = dt.Columns.Clone()
	cp.Index = dt.Index.Clone()
	cp.Meta.Copy(dt.Meta)
	return cp
}

// String returns a short descriptive string, listing column names and
// the number of rows.
func (dt *Table) String() string {
	return fmt.Sprintf("Table %v rows: %d", dt.Columns.Keys, dt.NumRows())
}
