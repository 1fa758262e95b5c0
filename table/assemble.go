// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"slices"

	"cogentcore.org/frame/column"
	"cogentcore.org/frame/join"
)

// assemble turns the raw engine output into the final table.
// Categorical keys that joined through their decoded values are
// rebuilt from the codes shadow column, then every output column is
// placed either in original pre-join name order or in name-sorted
// groups. Engine columns that fit neither are an engine contract
// violation, not user error.
func (mg *merger) assemble(out *join.Output) (*Table, error) {
	pool := out.Columns
	for _, nm := range mg.subs {
		codes := pool.At(nm + codesSuffix)
		if codes == nil || pool.At(nm) == nil {
			return nil, fmt.Errorf("table.Merge: engine output missing %q for categorical key %q", nm+codesSuffix, nm)
		}
		pool.Set(nm, &column.Column{Data: codes.Data, Nulls: codes.Nulls, Cat: mg.cats[nm]})
		pool.DeleteByKey(nm + codesSuffix)
	}
	res := NewTable()
	names := mg.org
	if mg.opts.Sort {
		names = mg.sortedNames()
	}
	for _, nm := range names {
		cl := pool.At(nm)
		if cl == nil {
			continue
		}
		if err := res.AddColumn(nm, cl); err != nil {
			return nil, err
		}
		pool.DeleteByKey(nm)
	}
	if pool.Len() > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnconsumedColumn, pool.Keys)
	}
	if out.Index != nil {
		res.Index = NewIndex(mg.indexName, out.Index)
		if res.NumColumns() == 0 {
			res.Columns.Rows = out.Index.Len()
		}
	}
	return res, nil
}

// sortedNames returns the output column names in three name-sorted
// groups: left-only columns, key columns, right-only columns.
func (mg *merger) sortedNames() []string {
	var lnk, rnk []string
	for _, nm := range mg.lcols.Keys {
		if !slices.Contains(mg.leftOn, nm) {
			lnk = append(lnk, nm)
		}
	}
	for _, nm := range mg.rcols.Keys {
		if !slices.Contains(mg.rightOn, nm) {
			rnk = append(rnk, nm)
		}
	}
	keys := slices.Concat(mg.leftOn, mg.rightOn)
	slices.Sort(lnk)
	slices.Sort(keys)
	keys = slices.Compact(keys)
	slices.Sort(rnk)
	return slices.Concat(lnk, keys, rnk)
}
