// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"math"
	"slices"

	"cogentcore.org/frame/column"
	"cogentcore.org/frame/dtype"
)

// Interpolation selects how [Table.Quantiles] computes a quantile
// falling between two data points, at sorted position q * (n - 1).
type Interpolation int32

const (
	// Linear interpolates linearly between the two surrounding values.
	Linear Interpolation = iota

	// Lower takes the value at the position floor.
	Lower

	// Higher takes the value at the position ceiling.
	Higher

	// Nearest takes the value at the rounded position.
	Nearest

	// Midpoint takes the mean of the two surrounding values.
	Midpoint
)

// Quantiles returns the quantiles of every numeric column at the given
// fractions, which must be in [0, 1]. Nulls are skipped per column,
// and non numeric columns are dropped. The result holds one Float64
// row per fraction, indexed by the fractions under "q", with null
// cells for columns having no valid values.
func (dt *Table) Quantiles(qs []float64, interp Interpolation) (*Table, error) {
	for _, q := range qs {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("table.Table: quantile fraction %g outside [0, 1]", q)
		}
	}
	out := NewTable()
	out.Meta.Copy(dt.Meta)
	for i, nm := range dt.Columns.Keys {
		cl := dt.Columns.Values[i]
		if !cl.DataType().IsNumeric() {
			continue
		}
		var vals []float64
		for ri := range cl.Len() {
			if cl.IsValid(ri) {
				vals = append(vals, cl.Data.Float1D(ri))
			}
		}
		slices.Sort(vals)
		qc := column.NewOfType(dtype.Of(dtype.Float64), len(qs))
		for qi, q := range qs {
			if len(vals) == 0 {
				qc.SetNull(qi)
				continue
			}
			qc.Data.SetFloat1D(quantile(vals, q, interp), qi)
		}
		out.AddColumn(nm, qc)
	}
	out.Columns.Rows = len(qs)
	out.Index = NewIndex("q", column.NewFloat64(slices.Clone(qs)...))
	return out, nil
}

// quantile computes one quantile of the sorted non-empty values.
func quantile(vals []float64, q float64, interp Interpolation) float64 {
	pos := q * float64(len(vals)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	switch interp {
	case Lower:
		return vals[lo]
	case Higher:
		return vals[hi]
	case Nearest:
		return vals[int(math.Round(pos))]
	case Midpoint:
		return (vals[lo] + vals[hi]) / 2
	}
	return vals[lo] + (pos-float64(lo))*(vals[hi]-vals[lo])
}
