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

// Package base32 encodes 64 and 128-bit identifiers using Crockford's
// base-32 alphabet, the encoding ULID itself specifies: a sortable,
// human-typeable text form where lexical order of the encoded string
// matches numeric order of the underlying id.
package base32

import (
	"errors"
	"strings"

	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/idflow/layout"
)

const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// OverflowError reports that a decoded string carries non-zero bits above
// the expected width — either it was corrupted, or it was never a valid
// encoding of this id family to begin with.
type OverflowError struct {
	Input string
}

func (e *OverflowError) Error() string {
	return "idflow: base32: decoded value overflows expected width: " + e.Input
}

// ErrInvalidChar is returned when the input contains a byte outside the
// Crockford alphabet (after case-folding and the standard I/L/O
// corrections).
var ErrInvalidChar = errors.New("idflow: base32: invalid character")

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

func normalize(s string) string {
	s = strings.ToUpper(s)
	s = strings.NewReplacer("I", "1", "L", "1", "O", "0").Replace(s)
	return s
}

// Encode64 renders a 64-bit id as 13 Crockford base-32 characters,
// most-significant digit first.
func Encode64(id uint64) string {
	var out [13]byte
	for i := 12; i >= 0; i-- {
		out[i] = alphabet[id&0x1f]
		id >>= 5
	}
	return string(out[:])
}

// Decode64 parses a Crockford base-32 string back into a 64-bit id. It
// accepts the standard I/L/O corrections and is case-insensitive. It
// returns ErrInvalidChar for out-of-alphabet input and an *OverflowError
// if the decoded value does not fit in 64 bits.
func Decode64(s string) (uint64, error) {
	norm := normalize(s)

	var v uint64
	for i := 0; i < len(norm); i++ {
		d := decodeTable[norm[i]]
		if d < 0 {
			return 0, ErrInvalidChar
		}
		if v > (^uint64(0))>>5 {
			return 0, &OverflowError{Input: s}
		}
		v = v<<5 | uint64(d)
	}
	return v, nil
}

// Encode128 renders a 128-bit id as 26 Crockford base-32 characters,
// matching the canonical ULID text form.
func Encode128(id u128.U128) string {
	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = alphabet[id.Lo&0x1f]
		id = id.ShiftRight(5)
	}
	return string(out[:])
}

// Decode128 parses a Crockford base-32 string back into a 128-bit id. A
// 26-character string carries 130 bits of raw base-32 payload for a
// 128-bit id, so the two high bits of the very first character must be
// zero; Decode128 reports that case as an *OverflowError rather than
// silently truncating it, the same way a fixed-width ULID field rejects a
// value whose reserved bits are non-zero.
func Decode128(s string) (u128.U128, error) {
	norm := normalize(s)

	excess := len(norm)*5 - 128

	var v u128.U128
	for i := 0; i < len(norm); i++ {
		d := decodeTable[norm[i]]
		if d < 0 {
			return u128.U128{}, ErrInvalidChar
		}
		if i == 0 && excess > 0 && d>>(5-excess) != 0 {
			return u128.U128{}, &OverflowError{Input: s}
		}
		v = v.ShiftLeft(5).Or(u128.U128{Lo: uint64(d)})
	}
	return v, nil
}

// DecodeSnowflake decodes s against l and additionally rejects a value
// whose reserved bits are non-zero, catching text that was corrupted or
// was never a valid encoding of an id from this layout.
func DecodeSnowflake(l layout.Layout, s string) (uint64, error) {
	v, err := Decode64(s)
	if err != nil {
		return 0, err
	}
	if v&layout.ReservedMask64(l) != 0 {
		return 0, &OverflowError{Input: s}
	}
	return v, nil
}
