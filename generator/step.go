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

// Package generator implements the id generation state machine: a pure
// transition function of (layout, prior state, now, entropy) to (new
// state, status), and three concurrency shells over it — single-owner
// (Basic), mutex-guarded (Mutex) and lock-free compare-and-swap (Atomic) —
// that must all agree, id for id, on the sequence of Ready/Pending
// outcomes they produce for identical inputs.
package generator

import (
	"errors"
	"fmt"

	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/idflow/layout"
)

// ErrMachineIDRange is returned when a machine_id supplied to a generator
// constructor does not fit the layout's machine_id field.
var ErrMachineIDRange = errors.New("idflow: machine_id exceeds the layout's field width")

// SnowflakeState is the mutable part of a snowflake generator's state: the
// last logical (epoch-relative) millisecond it minted an id for, and the
// sequence counter used within that millisecond.
type SnowflakeState struct {
	Timestamp uint64
	Sequence  uint64
}

// ULID64State is the mutable part of a 64-bit ULID generator's state.
type ULID64State struct {
	Timestamp uint64
	Random    uint64
}

// ULID128State is the mutable part of a 128-bit ULID generator's state.
type ULID128State struct {
	Timestamp uint64
	Random    u128.U128
}

// stepSnowflake advances a snowflake generator by one call. now is the
// wall-clock millisecond count; epoch is the layout's epoch in the same
// units. The function is pure: identical inputs always produce identical
// outputs, which is what lets the Basic, Mutex and Atomic shells share it
// and stay observably identical.
//
// The zero SnowflakeState doubles as "no id minted yet"; a generator whose
// very first call lands exactly on logical time zero therefore takes the
// same-millisecond branch and its first id carries sequence 1, not 0.
func stepSnowflake(l layout.Layout, epoch uint64, prior SnowflakeState, now, machineID uint64) (SnowflakeState, Status, error) {
	logicalNow := logicalTime(now, epoch)

	switch {
	case logicalNow > prior.Timestamp:
		next := SnowflakeState{Timestamp: logicalNow, Sequence: 0}
		id, err := layout.PackSnowflake(l, next.Timestamp, machineID, next.Sequence)
		if err != nil {
			return prior, Status{}, err
		}
		return next, ReadyStatus(id), nil

	case logicalNow == prior.Timestamp:
		seq := prior.Sequence + 1
		if seq > l.Sequence.Max() {
			return prior, PendingStatus(1), nil
		}
		next := SnowflakeState{Timestamp: prior.Timestamp, Sequence: seq}
		id, err := layout.PackSnowflake(l, next.Timestamp, machineID, next.Sequence)
		if err != nil {
			return prior, Status{}, err
		}
		return next, ReadyStatus(id), nil

	default: // logicalNow < prior.Timestamp: wall clock regressed
		return prior, PendingStatus(prior.Timestamp - logicalNow), nil
	}
}

// stepULID64 advances a 64-bit ULID generator by one call, drawing fresh
// entropy for the random tail whenever the logical millisecond advances
// and incrementing it by one within a millisecond, mirroring the ULID
// monotonic-mode algorithm.
func stepULID64(l layout.Layout, epoch uint64, prior ULID64State, now uint64, draw func() uint64) (ULID64State, Status, error) {
	logicalNow := logicalTime(now, epoch)

	switch {
	case logicalNow > prior.Timestamp:
		random := draw() & l.Random.Max()
		next := ULID64State{Timestamp: logicalNow, Random: random}
		id, err := layout.PackULID64(l, next.Timestamp, next.Random)
		if err != nil {
			return prior, Status{}, err
		}
		return next, ReadyStatus(id), nil

	case logicalNow == prior.Timestamp:
		random := prior.Random + 1
		if random > l.Random.Max() {
			return prior, PendingStatus(1), nil
		}
		next := ULID64State{Timestamp: prior.Timestamp, Random: random}
		id, err := layout.PackULID64(l, next.Timestamp, next.Random)
		if err != nil {
			return prior, Status{}, err
		}
		return next, ReadyStatus(id), nil

	default:
		return prior, PendingStatus(prior.Timestamp - logicalNow), nil
	}
}

// stepULID128 is stepULID64 generalized to a 128-bit random tail.
func stepULID128(l layout.Layout, epoch uint64, prior ULID128State, now uint64, draw func() u128.U128) (ULID128State, Status128, error) {
	logicalNow := logicalTime(now, epoch)
	max := u128.Max(l.Random.Width)

	switch {
	case logicalNow > prior.Timestamp:
		random := draw().And(max)
		next := ULID128State{Timestamp: logicalNow, Random: random}
		id, err := layout.PackULID128(l, next.Timestamp, next.Random)
		if err != nil {
			return prior, Status128{}, err
		}
		return next, ReadyStatus128(id), nil

	case logicalNow == prior.Timestamp:
		random := prior.Random.Add1()
		if random.Cmp(max) > 0 {
			return prior, PendingStatus128(1), nil
		}
		next := ULID128State{Timestamp: prior.Timestamp, Random: random}
		id, err := layout.PackULID128(l, next.Timestamp, next.Random)
		if err != nil {
			return prior, Status128{}, err
		}
		return next, ReadyStatus128(id), nil

	default:
		return prior, PendingStatus128(prior.Timestamp - logicalNow), nil
	}
}

// logicalTime converts a wall-clock millisecond reading into a layout's
// epoch-relative timestamp, clamping to zero if now precedes epoch rather
// than underflowing.
func logicalTime(now, epoch uint64) uint64 {
	if now < epoch {
		return 0
	}
	return now - epoch
}

func checkMachineID(l layout.Layout, machineID uint64) error {
	if machineID > l.MachineID.Max() {
		return fmt.Errorf("%w: %d exceeds %d-bit field", ErrMachineIDRange, machineID, l.MachineID.Width)
	}
	return nil
}
