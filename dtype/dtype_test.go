// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClasses(t *testing.T) {
	assert.True(t, Int8.IsSigned())
	assert.True(t, Int64.IsSigned())
	assert.False(t, Uint8.IsSigned())
	assert.True(t, Uint32.IsUnsigned())
	assert.True(t, Uint64.IsInteger())
	assert.True(t, Float32.IsFloat())
	assert.False(t, Float64.IsInteger())
	assert.True(t, Int16.IsNumeric())
	assert.False(t, Bool.IsNumeric())
	assert.False(t, String.IsNumeric())
	assert.True(t, Time.IsTemporal())
	assert.True(t, Duration.IsTemporal())
	assert.False(t, Time.IsNumeric())
}

func TestDtypeString(t *testing.T) {
	assert.Equal(t, "int64", Of(Int64).String())
	assert.Equal(t, "float32", Of(Float32).String())
	assert.Equal(t, "time[ms]", Temporal(Time, Milliseconds).String())
	assert.Equal(t, "duration[ns]", Temporal(Duration, Nanoseconds).String())
	assert.Equal(t, "category[string]", Categorical(Of(String), false).String())
	assert.Equal(t, "category[int32, ordered]", Categorical(Of(Int32), true).String())
}

func TestDtypeEqual(t *testing.T) {
	assert.True(t, Of(Int64).Equal(Of(Int64)))
	assert.False(t, Of(Int64).Equal(Of(Uint64)))
	assert.True(t, Temporal(Time, Seconds).Equal(Temporal(Time, Seconds)))
	assert.False(t, Temporal(Time, Seconds).Equal(Temporal(Time, Milliseconds)))
	assert.False(t, Temporal(Time, Seconds).Equal(Temporal(Duration, Seconds)))
	assert.True(t, Categorical(Of(String), true).Equal(Categorical(Of(String), true)))
	assert.False(t, Categorical(Of(String), true).Equal(Categorical(Of(String), false)))
	assert.False(t, Categorical(Of(String), false).Equal(Categorical(Of(Int64), false)))
	assert.False(t, Categorical(Of(String), false).Equal(Of(String)))
}

func TestDtypeSize(t *testing.T) {
	assert.Equal(t, 1, Of(Bool).Size())
	assert.Equal(t, 1, Of(Int8).Size())
	assert.Equal(t, 2, Of(Uint16).Size())
	assert.Equal(t, 4, Of(Float32).Size())
	assert.Equal(t, 8, Of(Int64).Size())
	assert.Equal(t, 8, Temporal(Time, Nanoseconds).Size())
	assert.Equal(t, 0, Of(String).Size())
}

func TestOfPanics(t *testing.T) {
	assert.Panics(t, func() { Of(Time) })
	assert.Panics(t, func() { Of(Category) })
	assert.Panics(t, func() { Temporal(Int64, Seconds) })
	assert.Panics(t, func() { Categorical(Categorical(Of(String), false), false) })
}
