// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtype

// Promote returns the smallest numeric dtype that can represent values
// of both a and b, following the standard numeric promotion lattice:
//   - Two dtypes of the same class (signed, unsigned, float) promote
//     to the wider of the two.
//   - Signed x unsigned promotes to the signed type if it is strictly
//     wider than the unsigned one, otherwise to the next signed type
//     wider than the unsigned one; uint64 mixed with any signed type
//     promotes to float64.
//   - Integer x float promotes to float64, except that integers of 16
//     bits or fewer combined with float32 stay float32.
//
// The second return value is false when either dtype is not numeric.
func Promote(a, b Dtype) (Dtype, bool) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Dtype{}, false
	}
	if a.Equal(b) {
		return a, true
	}
	ak, bk := a.Kind, b.Kind
	switch {
	case ak.IsFloat() && bk.IsFloat():
		return Of(widerKind(ak, bk)), true
	case ak.IsFloat() || bk.IsFloat():
		fk, ik := ak, bk
		if bk.IsFloat() {
			fk, ik = bk, ak
		}
		if fk == Float32 && ik.Bits() <= 16 {
			return Of(Float32), true
		}
		return Of(Float64), true
	case ak.IsSigned() == bk.IsSigned():
		return Of(widerKind(ak, bk)), true
	}
	sk, uk := ak, bk
	if bk.IsSigned() {
		sk, uk = bk, ak
	}
	if sk.Bits() > uk.Bits() {
		return Of(sk), true
	}
	switch uk {
	case Uint8:
		return Of(Int16), true
	case Uint16:
		return Of(Int32), true
	case Uint32:
		return Of(Int64), true
	}
	return Of(Float64), true
}

// widerKind returns the kind with more bits; ties go to a.
func widerKind(a, b Kind) Kind {
	if b.Bits() > a.Bits() {
		return b
	}
	return a
}

// PromoteTemporal returns the common dtype for two temporal dtypes of
// the same kind, which is the one with the finer resolution. It returns
// false when the dtypes are not both Time or both Duration.
func PromoteTemporal(a, b Dtype) (Dtype, bool) {
	if !a.IsTemporal() || a.Kind != b.Kind {
		return Dtype{}, false
	}
	u := a.Unit
	if b.Unit > u {
		u = b.Unit
	}
	return Temporal(a.Kind, u), true
}
