// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"math/bits"
	"slices"
)

// Mask is a validity bitmap: bit i set means row i holds a valid value.
// A nil Mask means every row is valid.
type Mask []uint64

// NewMask returns a mask covering n rows with every bit set valid.
func NewMask(n int) Mask {
	ms := make(Mask, (n+63)/64)
	for i := range ms {
		ms[i] = ^uint64(0)
	}
	return ms
}

// IsValid returns whether bit i is set. A nil mask is all valid.
func (ms Mask) IsValid(i int) bool {
	return ms == nil || ms[i>>6]&(1<<(uint(i)&63)) != 0
}

// SetValid sets bit i. No-op on a nil mask, which is already all valid.
func (ms Mask) SetValid(i int) {
	if ms != nil {
		ms[i>>6] |= 1 << (uint(i) & 63)
	}
}

// SetNull clears bit i. No-op on a nil mask; use [Column.SetNull] to
// materialize a mask first.
func (ms Mask) SetNull(i int) {
	if ms != nil {
		ms[i>>6] &^= 1 << (uint(i) & 63)
	}
}

// NumValid returns the number of valid bits among the first n.
func (ms Mask) NumValid(n int) int {
	if ms == nil {
		return n
	}
	nw := n >> 6
	nv := 0
	for i := range nw {
		nv += bits.OnesCount64(ms[i])
	}
	if rem := uint(n) & 63; rem != 0 {
		nv += bits.OnesCount64(ms[nw] & (1<<rem - 1))
	}
	return nv
}

// Clone returns a copy of the mask; nil stays nil.
func (ms Mask) Clone() Mask { return slices.Clone(ms) }
