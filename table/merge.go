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

// How is the kind of join a [Merge] performs.
type How int32

const (
	// Inner keeps only rows with key matches on both sides.
	Inner How = iota

	// Left keeps every left row, null filling right columns for rows
	// without a match.
	Left

	// Right keeps every right row, null filling left columns for rows
	// without a match.
	Right

	// Outer keeps every row from both sides.
	Outer
)

func (h How) String() string {
	switch h {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Right:
		return "right"
	case Outer:
		return "outer"
	}
	return fmt.Sprintf("How(%d)", int(h))
}

// JoinEngine executes the row matching step of a [Merge]. The default
// is a [join.Engine]; tests can substitute their own.
type JoinEngine interface {
	Run(req *join.Request) (*join.Output, error)
}

// MergeOptions configures a [Merge].
type MergeOptions struct {

	// On names key columns that must be present in both tables.
	// Mutually exclusive with LeftOn and RightOn.
	On []string

	// LeftOn and RightOn name key columns per side. They must have the
	// same length; keys pair up positionally.
	LeftOn, RightOn []string

	// LeftIndex and RightIndex use the table index as a join key,
	// ahead of any named keys.
	LeftIndex, RightIndex bool

	// How is the join kind, default [Inner].
	How How

	// LeftSuffix and RightSuffix are appended to column names present
	// in both tables that are not congruent join keys. Both must be
	// given when such an overlap exists.
	LeftSuffix, RightSuffix string

	// Sort orders the output columns by name within three groups:
	// left-only columns, key columns, right-only columns. The default
	// preserves the original pre-join name order.
	Sort bool

	// Engine overrides the default join engine.
	Engine JoinEngine
}

// Merge joins two tables on the given keys, returning a new table.
// Neither input table is modified, so concurrent merges over shared
// tables are safe. When no keys are named, the columns sharing a name
// across both tables become the keys. Key columns with unequal dtypes
// are cast to a common dtype before joining; see [MergeOptions] for
// the knobs. Errors wrap the Err sentinels in this package.
func Merge(lhs, rhs *Table, opts MergeOptions) (*Table, error) {
	if opts.How == Right {
		// a right join is a left join with the operands swapped
		swapped := opts
		swapped.How = Left
		swapped.LeftOn, swapped.RightOn = opts.RightOn, opts.LeftOn
		swapped.LeftIndex, swapped.RightIndex = opts.RightIndex, opts.LeftIndex
		swapped.LeftSuffix, swapped.RightSuffix = opts.RightSuffix, opts.LeftSuffix
		return Merge(rhs, lhs, swapped)
	}
	mg := &merger{lhs: lhs, rhs: rhs, opts: opts}
	return mg.merge()
}

// Merge joins this table with the given right table.
// See the [Merge] function for details.
func (dt *Table) Merge(rt *Table, opts MergeOptions) (*Table, error) {
	return Merge(dt, rt, opts)
}

// merger carries the working state of one merge: the effective key
// lists, suffixed copies of the column lists, and the bookkeeping the
// assembly step needs to restore column order and categorical keys.
type merger struct {
	lhs, rhs *Table
	opts     MergeOptions

	leftOn, rightOn []string       // effective key lists, post rename
	lcols, rcols    *column.List   // working column lists, post rename
	lindex, rindex  *column.Column // index key columns when requested
	indexName       string
	org             []string // pre-join output name order
	subs            []string // keys joined through substituted codes
	cats            map[string]*column.Cat
}

func (mg *merger) merge() (*Table, error) {
	if err := mg.validate(); err != nil {
		return nil, err
	}
	if err := mg.resolve(); err != nil {
		return nil, err
	}
	if err := mg.unifyTypes(); err != nil {
		return nil, err
	}
	out, err := mg.run()
	if err != nil {
		return nil, err
	}
	return mg.assemble(out)
}

// validate checks the requested join without modifying anything,
// and records the effective key lists. Key inference from shared
// column names happens here.
func (mg *merger) validate() error {
	if mg.opts.LeftIndex {
		if n := mg.lhs.Index.NumLevels(); n != 1 {
			return fmt.Errorf("%w: left index has %d levels", ErrKeyStructure, n)
		}
	}
	if mg.opts.RightIndex {
		if n := mg.rhs.Index.NumLevels(); n != 1 {
			return fmt.Errorf("%w: right index has %d levels", ErrKeyStructure, n)
		}
	}
	switch mg.opts.How {
	case Inner, Left, Outer:
	default:
		return fmt.Errorf("%w: %s", ErrJoinKind, mg.opts.How)
	}
	if len(mg.opts.On) > 0 && (len(mg.opts.LeftOn) > 0 || len(mg.opts.RightOn) > 0) {
		return ErrAmbiguousKeys
	}
	mg.leftOn = slices.Clone(mg.opts.LeftOn)
	mg.rightOn = slices.Clone(mg.opts.RightOn)
	if len(mg.opts.On) > 0 {
		mg.leftOn = slices.Clone(mg.opts.On)
		mg.rightOn = slices.Clone(mg.opts.On)
	}
	ln := len(mg.leftOn) + btoi(mg.opts.LeftIndex)
	rn := len(mg.rightOn) + btoi(mg.opts.RightIndex)
	if ln != rn {
		return fmt.Errorf("%w: %d vs %d", ErrKeyCount, ln, rn)
	}
	if ln == 0 {
		shared := sharedNames(&mg.lhs.Columns.List, &mg.rhs.Columns.List)
		if len(shared) == 0 {
			return ErrNoJoinKeys
		}
		mg.leftOn = shared
		mg.rightOn = slices.Clone(shared)
	}
	for _, nm := range sharedNames(&mg.lhs.Columns.List, &mg.rhs.Columns.List) {
		if congruentKey(nm, mg.leftOn, mg.rightOn) {
			continue
		}
		if mg.opts.LeftSuffix == "" && mg.opts.RightSuffix == "" {
			return fmt.Errorf("%w: column %q", ErrOverlap, nm)
		}
		if mg.opts.LeftSuffix == mg.opts.RightSuffix {
			return fmt.Errorf("%w: column %q, suffixes are equal", ErrOverlap, nm)
		}
	}
	for _, nm := range mg.leftOn {
		if mg.lhs.Column(nm) == nil {
			return fmt.Errorf("%w: %q in left table", ErrMissingKey, nm)
		}
	}
	for _, nm := range mg.rightOn {
		if mg.rhs.Column(nm) == nil {
			return fmt.Errorf("%w: %q in right table", ErrMissingKey, nm)
		}
	}
	return nil
}

// resolve builds the working column lists, applying the suffixes to
// shared names that are not congruent keys. The column data itself is
// shared with the inputs, never copied, so everything downstream must
// replace columns rather than modify them.
func (mg *merger) resolve() error {
	mg.lcols = shallowList(&mg.lhs.Columns.List)
	mg.rcols = shallowList(&mg.rhs.Columns.List)
	for _, nm := range sharedNames(mg.lcols, mg.rcols) {
		if congruentKey(nm, mg.leftOn, mg.rightOn) {
			continue
		}
		lnm := nm + mg.opts.LeftSuffix
		rnm := nm + mg.opts.RightSuffix
		if err := renameColumn(mg.lcols, nm, lnm); err != nil {
			return err
		}
		if err := renameColumn(mg.rcols, nm, rnm); err != nil {
			return err
		}
		replaceAll(mg.leftOn, nm, lnm)
		replaceAll(mg.rightOn, nm, rnm)
	}
	mg.org = slices.Concat(mg.lcols.Keys, mg.rcols.Keys)
	if mg.opts.LeftIndex {
		mg.lindex = mg.lhs.Index.Levels[0]
		mg.indexName = mg.lhs.Index.Names[0]
	}
	if mg.opts.RightIndex {
		mg.rindex = mg.rhs.Index.Levels[0]
		if mg.indexName == "" {
			mg.indexName = mg.rhs.Index.Names[0]
		}
	}
	return nil
}

func (mg *merger) run() (*join.Output, error) {
	en := mg.opts.Engine
	if en == nil {
		en = &join.Engine{}
	}
	return en.Run(&join.Request{
		Left:       mg.lcols,
		Right:      mg.rcols,
		LeftOn:     mg.leftOn,
		RightOn:    mg.rightOn,
		LeftIndex:  mg.lindex,
		RightIndex: mg.rindex,
		Kind:       joinKind(mg.opts.How),
	})
}

func joinKind(h How) join.Kind {
	switch h {
	case Left:
		return join.Left
	case Outer:
		return join.Outer
	}
	return join.Inner
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// sharedNames returns the names present in both lists, in a's order.
func sharedNames(a, b *column.List) []string {
	var out []string
	for _, nm := range a.Keys {
		if b.IndexByKey(nm) >= 0 {
			out = append(out, nm)
		}
	}
	return out
}

// congruentKey reports whether the given name is a join key at the
// same position on both sides. Congruent keys are emitted once and
// never suffixed.
func congruentKey(nm string, leftOn, rightOn []string) bool {
	li := slices.Index(leftOn, nm)
	return li >= 0 && li == slices.Index(rightOn, nm)
}

// shallowList returns a new list with the same keys and column
// pointers as the source.
func shallowList(src *column.List) *column.List {
	out := &column.List{}
	for i, nm := range src.Keys {
		out.Add(nm, src.Values[i])
	}
	return out
}

func renameColumn(ls *column.List, old, nm string) error {
	if nm == old { // empty suffix on this side
		return nil
	}
	if ls.IndexByKey(nm) >= 0 {
		return fmt.Errorf("%w: suffixed name %q already exists", ErrOverlap, nm)
	}
	ls.RenameIndex(ls.IndexByKey(old), nm)
	return nil
}

func replaceAll(ss []string, old, nm string) {
	for i, s := range ss {
		if s == old {
			ss[i] = nm
		}
	}
}
