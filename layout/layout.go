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

/*

Package layout implements the compile-time bit-field descriptor for a
k-ordered identifier family. A Layout partitions a 64 or 128-bit backing
integer into contiguous fields — reserved, timestamp, and either
machine_id+sequence (snowflake) or random (ulid) — and provides the pure
pack/unpack accessors the generator state machine is built on.
*/
package layout

import (
	"errors"
	"fmt"

	"github.com/fogfish/idflow/internal/u128"
)

// ErrMalformed is returned when a Layout's field widths do not sum exactly
// to its backing integer width.
var ErrMalformed = errors.New("idflow: malformed layout")

// ErrFieldOverflow is returned when a value supplied to Pack exceeds the
// field's maximum representable value.
var ErrFieldOverflow = errors.New("idflow: field value exceeds its bit width")

// ErrWrongKind is returned when a Snowflake-only or ULID-only operation is
// applied to a Layout of the other Kind.
var ErrWrongKind = errors.New("idflow: operation not valid for this layout kind")

// Kind distinguishes the two identifier families this package supports.
type Kind int

const (
	// Snowflake identifiers pack [reserved | timestamp | machine_id | sequence].
	Snowflake Kind = iota
	// ULID identifiers pack [reserved | timestamp | random].
	ULID
)

// Field describes one contiguous bit field of a backing integer: its
// LSB-relative offset and its width in bits.
type Field struct {
	Offset uint
	Width  uint
}

// Mask returns the field's bit mask, right-aligned to bit 0.
func (f Field) Mask() uint64 {
	if f.Width == 0 {
		return 0
	}
	if f.Width >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<f.Width - 1
}

// Max returns the largest value the field can hold, equal to its Mask.
func (f Field) Max() uint64 { return f.Mask() }

// Max128 returns the largest value the field can hold as a 128-bit
// quantity, for fields that may exceed 64 bits (e.g. an 80-bit random
// tail).
func (f Field) Max128() u128.U128 { return u128.Max(f.Width) }

// Layout is an immutable, per-ID-family bit-field descriptor. Widths
// always sum exactly to TotalBits (64 or 128); Reserved bits are always
// stored as zero.
type Layout struct {
	Name      string
	Kind      Kind
	TotalBits uint

	Reserved  Field
	Timestamp Field
	MachineID Field // populated for Kind == Snowflake
	Sequence  Field // populated for Kind == Snowflake
	Random    Field // populated for Kind == ULID
}

// NewSnowflake builds a 64-bit snowflake layout: [reserved | timestamp |
// machine_id | sequence], MSB to LSB. It returns ErrMalformed if the
// widths don't sum to 64.
func NewSnowflake(name string, reservedBits, timestampBits, machineIDBits, sequenceBits uint) (Layout, error) {
	sum := reservedBits + timestampBits + machineIDBits + sequenceBits
	if sum != 64 {
		return Layout{}, fmt.Errorf("%w: %s widths sum to %d bits, want 64", ErrMalformed, name, sum)
	}

	seq := Field{Offset: 0, Width: sequenceBits}
	mid := Field{Offset: sequenceBits, Width: machineIDBits}
	ts := Field{Offset: sequenceBits + machineIDBits, Width: timestampBits}
	res := Field{Offset: sequenceBits + machineIDBits + timestampBits, Width: reservedBits}

	return Layout{
		Name: name, Kind: Snowflake, TotalBits: 64,
		Reserved: res, Timestamp: ts, MachineID: mid, Sequence: seq,
	}, nil
}

// MustNewSnowflake is NewSnowflake, panicking on error. It is intended for
// package-level preset layouts, never for user-supplied widths.
func MustNewSnowflake(name string, reservedBits, timestampBits, machineIDBits, sequenceBits uint) Layout {
	l, err := NewSnowflake(name, reservedBits, timestampBits, machineIDBits, sequenceBits)
	if err != nil {
		panic(err)
	}
	return l
}

// NewULID builds a ULID-style layout: [reserved | timestamp | random], MSB
// to LSB, over a 64 or 128-bit backing integer. It returns ErrMalformed if
// the widths don't sum to totalBits or totalBits is neither 64 nor 128.
func NewULID(name string, totalBits, reservedBits, timestampBits, randomBits uint) (Layout, error) {
	if totalBits != 64 && totalBits != 128 {
		return Layout{}, fmt.Errorf("%w: %s must be 64 or 128 bits wide, got %d", ErrMalformed, name, totalBits)
	}
	sum := reservedBits + timestampBits + randomBits
	if sum != totalBits {
		return Layout{}, fmt.Errorf("%w: %s widths sum to %d bits, want %d", ErrMalformed, name, sum, totalBits)
	}

	rnd := Field{Offset: 0, Width: randomBits}
	ts := Field{Offset: randomBits, Width: timestampBits}
	res := Field{Offset: randomBits + timestampBits, Width: reservedBits}

	return Layout{
		Name: name, Kind: ULID, TotalBits: totalBits,
		Reserved: res, Timestamp: ts, Random: rnd,
	}, nil
}

// MustNewULID is NewULID, panicking on error. It is intended for
// package-level preset layouts, never for user-supplied widths.
func MustNewULID(name string, totalBits, reservedBits, timestampBits, randomBits uint) Layout {
	l, err := NewULID(name, totalBits, reservedBits, timestampBits, randomBits)
	if err != nil {
		panic(err)
	}
	return l
}

// PackSnowflake composes a 64-bit snowflake id from its components. It
// fails with ErrWrongKind for a non-snowflake layout and ErrFieldOverflow
// if any component exceeds its field width.
func PackSnowflake(l Layout, timestamp, machineID, sequence uint64) (uint64, error) {
	if l.Kind != Snowflake {
		return 0, fmt.Errorf("%w: %s is not a snowflake layout", ErrWrongKind, l.Name)
	}
	if timestamp > l.Timestamp.Max() || machineID > l.MachineID.Max() || sequence > l.Sequence.Max() {
		return 0, fmt.Errorf("%w: snowflake component exceeds field width", ErrFieldOverflow)
	}

	return timestamp<<l.Timestamp.Offset |
		machineID<<l.MachineID.Offset |
		sequence<<l.Sequence.Offset, nil
}

// UnpackSnowflake extracts timestamp, machine_id and sequence from a
// packed snowflake id.
func UnpackSnowflake(l Layout, id uint64) (timestamp, machineID, sequence uint64) {
	timestamp = id >> l.Timestamp.Offset & l.Timestamp.Mask()
	machineID = id >> l.MachineID.Offset & l.MachineID.Mask()
	sequence = id >> l.Sequence.Offset & l.Sequence.Mask()
	return
}

// PackULID64 composes a 64-bit ULID-style id from a timestamp and random
// tail. It is only valid for ULID layouts whose TotalBits is 64.
func PackULID64(l Layout, timestamp, random uint64) (uint64, error) {
	if l.Kind != ULID {
		return 0, fmt.Errorf("%w: %s is not a ulid layout", ErrWrongKind, l.Name)
	}
	if l.TotalBits != 64 {
		return 0, fmt.Errorf("%w: %s is not a 64-bit ulid layout", ErrWrongKind, l.Name)
	}
	if timestamp > l.Timestamp.Max() || random > l.Random.Max() {
		return 0, fmt.Errorf("%w: ulid component exceeds field width", ErrFieldOverflow)
	}

	return timestamp<<l.Timestamp.Offset | random<<l.Random.Offset, nil
}

// UnpackULID64 extracts timestamp and random tail from a packed 64-bit
// ULID-style id.
func UnpackULID64(l Layout, id uint64) (timestamp, random uint64) {
	timestamp = id >> l.Timestamp.Offset & l.Timestamp.Mask()
	random = id >> l.Random.Offset & l.Random.Mask()
	return
}

// PackULID128 composes a 128-bit ULID-style id from a timestamp and random
// tail. It is only valid for ULID layouts whose TotalBits is 128.
func PackULID128(l Layout, timestamp uint64, random u128.U128) (u128.U128, error) {
	if l.Kind != ULID {
		return u128.U128{}, fmt.Errorf("%w: %s is not a ulid layout", ErrWrongKind, l.Name)
	}
	if l.TotalBits != 128 {
		return u128.U128{}, fmt.Errorf("%w: %s is not a 128-bit ulid layout", ErrWrongKind, l.Name)
	}
	if timestamp > l.Timestamp.Max() {
		return u128.U128{}, fmt.Errorf("%w: timestamp exceeds field width", ErrFieldOverflow)
	}
	if !u128.FitsWidth(random, l.Random.Width) {
		return u128.U128{}, fmt.Errorf("%w: random exceeds field width", ErrFieldOverflow)
	}

	ts := u128.U128{Lo: timestamp}.ShiftLeft(l.Timestamp.Offset)
	rnd := random.ShiftLeft(l.Random.Offset)
	return ts.Or(rnd), nil
}

// UnpackULID128 extracts timestamp and random tail from a packed 128-bit
// ULID-style id.
func UnpackULID128(l Layout, id u128.U128) (timestamp uint64, random u128.U128) {
	timestamp = id.ShiftRight(l.Timestamp.Offset).And(u128.Max(l.Timestamp.Width)).Lo
	random = id.ShiftRight(l.Random.Offset).And(u128.Max(l.Random.Width))
	return
}

// ReservedMask64 returns the reserved field's mask shifted into its
// position within the packed 64-bit word.
func ReservedMask64(l Layout) uint64 {
	return l.Reserved.Mask() << l.Reserved.Offset
}

// ReservedMask128 returns the reserved field's mask shifted into its
// position within the packed 128-bit word.
func ReservedMask128(l Layout) u128.U128 {
	return u128.Max(l.Reserved.Width).ShiftLeft(l.Reserved.Offset)
}
