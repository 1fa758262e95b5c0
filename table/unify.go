// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/frame/column"
	"cogentcore.org/frame/dtype"
)

// codesSuffix names the shadow column that carries a categorical key's
// codes through the join engine, so the assembly step can rebuild the
// categorical column afterwards.
const codesSuffix = "_codes"

// unifyResult is the outcome of dtype unification for one key pair.
type unifyResult struct {
	target     dtype.Dtype
	ok         bool // false with nil error: leave the pair to the engine
	substLeft  bool // the left key joins through its decoded values
	substRight bool
}

// unifyDtypes computes the common dtype for one key column pair.
// The rules, in order:
//   - equal dtypes need nothing.
//   - two categoricals with different categories cannot join.
//   - a categorical against a plain column joins on the category value
//     dtype, unless how would drop the categorical side entirely, or
//     allowCat is false (index joins), which leaves the pair alone.
//   - a left join keeps the left dtype when every right value (nulls
//     filled with a neutral value) fits in it losslessly; otherwise
//     both sides move to their common supertype, with a warning.
//     A right join mirrors this.
//   - otherwise numeric pairs promote per the usual numpy-style
//     lattice, and temporal pairs of one kind take the finer unit.
//
// Pairs no rule covers come back with ok false and the engine rejects
// them when their dtypes differ.
func unifyDtypes(lname, rname string, lc, rc *column.Column, how How, allowCat bool) (unifyResult, error) {
	if column.DtypeEqual(lc, rc) {
		return unifyResult{target: lc.DataType(), ok: true}, nil
	}
	dl, dr := lc.DataType(), rc.DataType()
	if dl.IsCategory() && dr.IsCategory() {
		return unifyResult{}, fmt.Errorf("%w: %q and %q", ErrCategoryMismatch, lname, rname)
	}
	if dl.IsCategory() || dr.IsCategory() {
		if !allowCat {
			return unifyResult{}, nil
		}
		if dl.IsCategory() {
			if how == Right {
				return unifyResult{}, fmt.Errorf("%w: %q would replace categorical %q", ErrCategoryDropped, rname, lname)
			}
			return unifyResult{target: *dl.Elem, ok: true, substLeft: true}, nil
		}
		if how == Left {
			return unifyResult{}, fmt.Errorf("%w: %q would replace categorical %q", ErrCategoryDropped, lname, rname)
		}
		return unifyResult{target: *dr.Elem, ok: true, substRight: true}, nil
	}
	switch how {
	case Left:
		if rc.FillNulls(column.Neutral(dr)).CanCastSafely(dl) {
			return unifyResult{target: dl, ok: true}, nil
		}
		res, err := unifyDtypes(lname, rname, lc, rc, Inner, allowCat)
		if err != nil || !res.ok {
			return res, err
		}
		slog.Warn("table.Merge: cannot safely cast key column, using common supertype",
			"column", rname, "from", dr.String(), "to", dl.String(), "supertype", res.target.String())
		return res, nil
	case Right:
		if lc.FillNulls(column.Neutral(dl)).CanCastSafely(dr) {
			return unifyResult{target: dr, ok: true}, nil
		}
		res, err := unifyDtypes(lname, rname, lc, rc, Inner, allowCat)
		if err != nil || !res.ok {
			return res, err
		}
		slog.Warn("table.Merge: cannot safely cast key column, using common supertype",
			"column", lname, "from", dl.String(), "to", dr.String(), "supertype", res.target.String())
		return res, nil
	}
	if t, ok := dtype.Promote(dl, dr); ok {
		return unifyResult{target: t, ok: true}, nil
	}
	if t, ok := dtype.PromoteTemporal(dl, dr); ok {
		return unifyResult{target: t, ok: true}, nil
	}
	return unifyResult{}, nil
}

// unifyTypes casts each key pair to a common dtype so the join engine
// sees matching keys. Pairs are processed in left name order so that
// the warnings and errors come out deterministically. A categorical
// key paired with a plain column joins on its decoded values, with the
// codes carried through the engine in a shadow column.
func (mg *merger) unifyTypes() error {
	mg.cats = map[string]*column.Cat{}
	for i, nm := range mg.lcols.Keys {
		if cl := mg.lcols.Values[i]; cl.IsCategorical() {
			mg.cats[nm] = cl.Cat
		}
	}
	for i, nm := range mg.rcols.Keys {
		if cl := mg.rcols.Values[i]; cl.IsCategorical() {
			mg.cats[nm] = cl.Cat
		}
	}
	if mg.opts.LeftIndex || mg.opts.RightIndex {
		return mg.unifyIndexes()
	}
	type pair struct{ l, r string }
	pairs := make([]pair, len(mg.leftOn))
	for i := range mg.leftOn {
		pairs[i] = pair{mg.leftOn[i], mg.rightOn[i]}
	}
	slices.SortFunc(pairs, func(a, b pair) int { return strings.Compare(a.l, b.l) })
	for _, p := range pairs {
		lc, rc := mg.lcols.At(p.l), mg.rcols.At(p.r)
		res, err := unifyDtypes(p.l, p.r, lc, rc, mg.opts.How, true)
		if err != nil {
			return err
		}
		if !res.ok {
			continue
		}
		if res.substLeft {
			mg.lcols.Set(p.l+codesSuffix, lc.Codes())
			mg.subs = append(mg.subs, p.l)
		}
		if res.substRight {
			mg.rcols.Set(p.r+codesSuffix, rc.Codes())
			mg.subs = append(mg.subs, p.r)
		}
		if err := castInList(mg.lcols, p.l, res.target); err != nil {
			return err
		}
		if err := castInList(mg.rcols, p.r, res.target); err != nil {
			return err
		}
	}
	return nil
}

// unifyIndexes handles the index join modes. With both indexes in
// play, the pair is unified like a named key pair but without code
// substitution: a categorical index joins as-is or not at all. With
// one index joining against the other side's leading named key, the
// index casts to that column's dtype.
func (mg *merger) unifyIndexes() error {
	if mg.lindex != nil && mg.rindex != nil {
		res, err := unifyDtypes(mg.lhs.Index.Names[0], mg.rhs.Index.Names[0],
			mg.lindex, mg.rindex, mg.opts.How, false)
		if err != nil || !res.ok {
			return err
		}
		if mg.lindex, err = castColumn(mg.lindex, res.target); err != nil {
			return err
		}
		mg.rindex, err = castColumn(mg.rindex, res.target)
		return err
	}
	if mg.lindex != nil {
		cast, err := castIndexToKey(mg.lindex, mg.rcols.At(mg.rightOn[0]))
		if err != nil {
			return err
		}
		mg.lindex = cast
		return nil
	}
	cast, err := castIndexToKey(mg.rindex, mg.lcols.At(mg.leftOn[0]))
	if err != nil {
		return err
	}
	mg.rindex = cast
	return nil
}

func castIndexToKey(ix, key *column.Column) (*column.Column, error) {
	target := key.DataType()
	if target.IsCategory() {
		return ix, nil
	}
	return castColumn(ix, target)
}

func castColumn(cl *column.Column, target dtype.Dtype) (*column.Column, error) {
	if cl.DataType().Equal(target) {
		return cl, nil
	}
	return cl.Cast(target)
}

func castInList(ls *column.List, nm string, target dtype.Dtype) error {
	cast, err := castColumn(ls.At(nm), target)
	if err != nil {
		return err
	}
	ls.Set(nm, cast)
	return nil
}
