// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "errors"

// Sentinel errors returned by [Merge]. Match with [errors.Is]; the
// returned errors wrap these with the names involved.
var (
	// ErrKeyStructure indicates a join on a missing or multi level
	// index, which merges do not support.
	ErrKeyStructure = errors.New("table: unsupported index structure for merge")

	// ErrJoinKind indicates an unrecognized [How] value.
	ErrJoinKind = errors.New("table: unsupported join kind")

	// ErrAmbiguousKeys indicates that On was combined with LeftOn or
	// RightOn, which are mutually exclusive ways to name keys.
	ErrAmbiguousKeys = errors.New("table: ambiguous join keys, On excludes LeftOn and RightOn")

	// ErrKeyCount indicates that the two sides name different numbers
	// of join keys.
	ErrKeyCount = errors.New("table: left and right join key counts differ")

	// ErrNoJoinKeys indicates that no keys were given and the tables
	// share no column names to infer them from.
	ErrNoJoinKeys = errors.New("table: no join keys given or inferable")

	// ErrOverlap indicates a column name present in both tables that
	// is not a join key, with no usable suffix pair to disambiguate.
	ErrOverlap = errors.New("table: overlapping column names require suffixes")

	// ErrMissingKey indicates a named join key that does not exist in
	// its table.
	ErrMissingKey = errors.New("table: join key column not found")

	// ErrCategoryMismatch indicates joining two categorical key
	// columns with different categories.
	ErrCategoryMismatch = errors.New("table: categorical join keys have different categories")

	// ErrCategoryDropped indicates a join that would discard the
	// categorical side of a key pair.
	ErrCategoryDropped = errors.New("table: join would drop categorical key column")

	// ErrUnconsumedColumn indicates a join engine returning columns
	// the merge did not plan for.
	ErrUnconsumedColumn = errors.New("table: join engine returned unplanned columns")
)
