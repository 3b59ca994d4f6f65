/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

// Package u128 implements the minimal 128-bit unsigned integer arithmetic
// needed to pack and increment wide ULID-style identifiers as a pair of
// uint64 words, the same way the guid package's original K type packed a
// 96-bit k-order number as an (hi, lo) pair.
package u128

// U128 is an unsigned 128-bit integer, most significant word first.
type U128 struct {
	Hi, Lo uint64
}

// Add1 returns u+1, wrapping on overflow.
func (u U128) Add1() U128 {
	lo := u.Lo + 1
	hi := u.Hi
	if lo == 0 {
		hi++
	}
	return U128{Hi: hi, Lo: lo}
}

// Cmp returns -1, 0 or 1 as u is less than, equal to, or greater than v.
func (u U128) Cmp(v U128) int {
	switch {
	case u.Hi < v.Hi:
		return -1
	case u.Hi > v.Hi:
		return 1
	case u.Lo < v.Lo:
		return -1
	case u.Lo > v.Lo:
		return 1
	default:
		return 0
	}
}

// Equal reports whether u and v hold the same value.
func (u U128) Equal(v U128) bool { return u.Hi == v.Hi && u.Lo == v.Lo }

// Less reports whether u is strictly less than v.
func (u U128) Less(v U128) bool { return u.Cmp(v) < 0 }

// And returns the bitwise AND of u and v.
func (u U128) And(v U128) U128 { return U128{Hi: u.Hi & v.Hi, Lo: u.Lo & v.Lo} }

// Or returns the bitwise OR of u and v.
func (u U128) Or(v U128) U128 { return U128{Hi: u.Hi | v.Hi, Lo: u.Lo | v.Lo} }

// ShiftLeft returns u<<n, discarding bits shifted out past bit 127.
func (u U128) ShiftLeft(n uint) U128 {
	hi, lo := shiftLeft(u.Hi, u.Lo, n)
	return U128{Hi: hi, Lo: lo}
}

// ShiftRight returns u>>n (logical shift).
func (u U128) ShiftRight(n uint) U128 {
	hi, lo := shiftRight(u.Hi, u.Lo, n)
	return U128{Hi: hi, Lo: lo}
}

func shiftLeft(hi, lo uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return hi, lo
	case n >= 128:
		return 0, 0
	case n >= 64:
		return lo << (n - 64), 0
	default:
		return (hi << n) | (lo >> (64 - n)), lo << n
	}
}

func shiftRight(hi, lo uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return hi, lo
	case n >= 128:
		return 0, 0
	case n >= 64:
		return 0, hi >> (n - 64)
	default:
		return hi >> n, (lo >> n) | (hi << (64 - n))
	}
}

// Max returns the largest U128 representable in width bits (0 for width==0,
// all-ones in the low width bits otherwise).
func Max(width uint) U128 {
	switch {
	case width == 0:
		return U128{}
	case width >= 128:
		return U128{Hi: ^uint64(0), Lo: ^uint64(0)}
	case width > 64:
		return U128{Hi: uint64(1)<<(width-64) - 1, Lo: ^uint64(0)}
	default:
		return U128{Lo: uint64(1)<<width - 1}
	}
}

// FitsWidth reports whether u has no bits set above the given width.
func FitsWidth(u U128, width uint) bool {
	return u.Cmp(Max(width)) <= 0
}
