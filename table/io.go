// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/metadata"
	"cogentcore.org/frame/column"
	"cogentcore.org/frame/dtype"
)

// Delims are standard CSV delimiter options (Tab, Comma, Space).
type Delims int32

const (
	// Tab is the tab rune delimiter, for TSV tab separated values.
	Tab Delims = iota

	// Comma is the comma rune delimiter, for CSV comma separated values.
	Comma

	// Space is the space rune delimiter, for SSV space separated values.
	Space
)

func (dl Delims) Rune() rune {
	switch dl {
	case Tab:
		return '\t'
	case Comma:
		return ','
	case Space:
		return ' '
	}
	return '\t'
}

const (
	// Headers is passed to CSV methods for the headers arg, to use
	// headers that capture the column name and dtype.
	Headers = true

	// NoHeaders is passed to CSV methods for the headers arg, to not
	// use headers.
	NoHeaders = false
)

// SaveCSV writes a table to a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg).
// If headers = true then generate column headers that capture the
// column name and dtype, enabling full reloading of the same table
// format and data (recommended). Otherwise, only the data is written.
func (dt *Table) SaveCSV(filename string, delim Delims, headers bool) error {
	fp, err := os.Create(filename)
	defer fp.Close()
	if err != nil {
		log.Println(err)
		return err
	}
	bw := bufio.NewWriter(fp)
	err = dt.WriteCSV(bw, delim, headers)
	bw.Flush()
	return err
}

// OpenCSV reads a table from a comma-separated-values (CSV) file
// (where comma = any delimiter, specified in the delim arg), using the
// Go standard encoding/csv reader conforming to the official CSV
// standard. The first row of the file must hold the column names,
// either as typed headers written by [Table.WriteCSV] with headers on,
// or as plain names, in which case column dtypes are inferred from the
// data values.
func (dt *Table) OpenCSV(filename string, delim Delims) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errors.Log(err)
	}
	defer fp.Close()
	return dt.ReadCSV(bufio.NewReader(fp), delim)
}

// OpenFS is the version of [Table.OpenCSV] that uses an [fs.FS]
// filesystem.
func (dt *Table) OpenFS(fsys fs.FS, filename string, delim Delims) error {
	fp, err := fsys.Open(filename)
	if err != nil {
		return errors.Log(err)
	}
	defer fp.Close()
	return dt.ReadCSV(bufio.NewReader(fp), delim)
}

// ReadCSV reads a table from the given reader, replacing any existing
// columns. See [Table.OpenCSV] for the format. Empty cells in
// non-string columns become nulls.
func (dt *Table) ReadCSV(r io.Reader, delim Delims) error {
	cr := csv.NewReader(r)
	cr.Comma = delim.Rune()
	rec, err := cr.ReadAll()
	if err != nil || len(rec) == 0 {
		return err
	}
	var names []string
	var dts []dtype.Dtype
	body := rec[1:]
	if DetectTableHeaders(rec[0]) {
		names, dts = ConfigFromTableHeaders(rec[0])
	} else {
		names, dts = ConfigFromDataValues(rec[0], body)
	}
	dt.DeleteAll()
	for ci, nm := range names {
		recs := make([]string, len(body))
		for ri := range body {
			if ci < len(body[ri]) {
				recs[ri] = strings.TrimSpace(body[ri][ci])
			}
		}
		if err := dt.AddColumn(nm, column.FromStrings(dts[ci], recs)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes a table to the given writer.
// If headers = true then generate column headers that capture the
// column name and dtype. Null cells are written as empty strings.
// Categorical columns write their category values and read back as
// plain columns; temporal columns write their raw ticks.
func (dt *Table) WriteCSV(w io.Writer, delim Delims, headers bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim.Rune()
	if headers {
		if err := cw.Write(dt.TableHeaders()); err != nil {
			return errors.Log(err)
		}
	}
	prec := -1
	if p, err := metadata.Get[int](dt, "precision"); err == nil {
		prec = p
	}
	rec := make([]string, dt.NumColumns())
	for ri := range dt.NumRows() {
		for ci, cl := range dt.Columns.Values {
			rec[ci] = csvValue(cl, ri, prec)
		}
		if err := cw.Write(rec); err != nil {
			return errors.Log(err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableHeaders generates the special header strings from the table,
// one per column, with the type prefix character for each.
func (dt *Table) TableHeaders() []string {
	hdrs := make([]string, dt.NumColumns())
	for i, nm := range dt.Columns.Keys {
		ch := TableHeaderChar(dt.Columns.Values[i].DataType())
		hdrs[i] = string([]byte{ch}) + nm
	}
	return hdrs
}

// csvValue formats one cell. Categoricals format their category value,
// and floats honor the precision when one is set.
func csvValue(cl *column.Column, ri int, prec int) string {
	if cl.IsNull(ri) {
		return ""
	}
	if cl.IsCategorical() {
		return csvValue(cl.Categories(), cl.Data.Int1D(ri), prec)
	}
	if prec >= 0 && cl.DataType().IsFloat() {
		return strconv.FormatFloat(cl.Data.Float1D(ri), 'g', prec, 64)
	}
	return cl.Data.String1D(ri)
}

// TableHeaderToKind maps the special header prefix characters to
// column dtype kinds.
var TableHeaderToKind = map[byte]dtype.Kind{
	'$': dtype.String,
	'%': dtype.Float32,
	'#': dtype.Float64,
	'|': dtype.Int64,
	'^': dtype.Bool,
}

// TableHeaderChar returns the special header prefix character for the
// given dtype. Categorical columns use their value dtype's character,
// and temporal columns use the integer character for their raw ticks.
func TableHeaderChar(dt dtype.Dtype) byte {
	switch {
	case dt.IsCategory():
		return TableHeaderChar(*dt.Elem)
	case dt.Kind == dtype.Bool:
		return '^'
	case dt.Kind == dtype.Float32:
		return '%'
	case dt.Kind == dtype.Float64:
		return '#'
	case dt.Kind == dtype.String:
		return '$'
	}
	return '|'
}

// TableColumnType parses a column header cell for the type prefix,
// returning the dtype and the remaining column name.
func TableColumnType(nm string) (dtype.Dtype, string) {
	if k, ok := TableHeaderToKind[nm[0]]; ok {
		return dtype.Of(k), nm[1:]
	}
	return dtype.Of(dtype.String), nm
}

// DetectTableHeaders looks for the special header prefix characters,
// returning true if every non-empty cell starts with one.
func DetectTableHeaders(hdrs []string) bool {
	for _, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			continue
		}
		if _, ok := TableHeaderToKind[hd[0]]; !ok {
			return false
		}
	}
	return true
}

// ConfigFromTableHeaders returns the column names and dtypes encoded
// in special table headers.
func ConfigFromTableHeaders(hdrs []string) ([]string, []dtype.Dtype) {
	var names []string
	var dts []dtype.Dtype
	for _, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			continue
		}
		typ, nm := TableColumnType(hd)
		names = append(names, nm)
		dts = append(dts, typ)
	}
	return names, dts
}

// ConfigFromDataValues returns column names from the given plain
// header cells and dtypes inferred from the string representation of
// the data values.
func ConfigFromDataValues(hdrs []string, rec [][]string) ([]string, []dtype.Dtype) {
	names := make([]string, len(hdrs))
	dts := make([]dtype.Dtype, len(hdrs))
	for ci, hd := range hdrs {
		hd = strings.TrimSpace(hd)
		if hd == "" {
			hd = fmt.Sprintf("col_%d", ci)
		}
		names[ci] = hd
		dts[ci] = dtype.Of(inferColumnKind(rec, ci))
	}
	return names, dts
}

func inferColumnKind(rec [][]string, ci int) dtype.Kind {
	k := dtype.String
	seen := false
	for ri := range rec {
		if ci >= len(rec[ri]) {
			continue
		}
		rv := strings.TrimSpace(rec[ri][ci])
		if rv == "" {
			continue
		}
		ck := InferDataType(rv)
		switch {
		case ck == dtype.String: // definitive
			return dtype.String
		case !seen:
			k = ck
			seen = true
		case k == dtype.Int64 && ck == dtype.Float64: // upgrade
			k = ck
		}
	}
	return k
}

// InferDataType returns the inferred dtype kind for the given string,
// only deciding between Int64, Float64, and String.
func InferDataType(str string) dtype.Kind {
	if strings.Contains(str, ".") {
		if _, err := strconv.ParseFloat(str, 64); err == nil {
			return dtype.Float64
		}
	}
	if _, err := strconv.ParseInt(str, 10, 64); err == nil {
		return dtype.Int64
	}
	// try float again just in case..
	if _, err := strconv.ParseFloat(str, 64); err == nil {
		return dtype.Float64
	}
	return dtype.String
}
