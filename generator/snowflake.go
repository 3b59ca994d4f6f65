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

package generator

import (
	"sync"

	"github.com/fogfish/idflow/clock"
	"github.com/fogfish/idflow/internal/padded"
	"github.com/fogfish/idflow/layout"
)

// BasicSnowflake is the single-owner shell over the snowflake state
// machine: it holds no synchronization of its own and is only safe when
// exactly one goroutine calls TryNext. It exists for callers that already
// serialize access externally (e.g. one generator per worker) and want to
// avoid paying for a mutex or CAS retry loop they don't need.
type BasicSnowflake struct {
	layout    layout.Layout
	epoch     uint64
	machineID uint64
	clock     clock.Source
	state     SnowflakeState
}

// NewBasicSnowflake builds a BasicSnowflake generator for l, anchored at
// epochMillis, minting ids tagged with machineID. It fails with
// ErrMachineIDRange if machineID does not fit l's machine_id field.
func NewBasicSnowflake(l layout.Layout, epochMillis, machineID uint64, src clock.Source) (*BasicSnowflake, error) {
	if err := checkMachineID(l, machineID); err != nil {
		return nil, err
	}
	return &BasicSnowflake{layout: l, epoch: epochMillis, machineID: machineID, clock: src}, nil
}

// TryNext advances the generator by one step, returning either a fresh id
// or the number of milliseconds the caller must wait before trying again.
func (g *BasicSnowflake) TryNext() (Status, error) {
	next, status, err := stepSnowflake(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.machineID)
	if err != nil {
		return Status{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// MutexSnowflake is the mutex-guarded shell over the snowflake state
// machine: any number of goroutines may call TryNext concurrently, each
// call fully serialized behind a single sync.Mutex.
type MutexSnowflake struct {
	layout    layout.Layout
	epoch     uint64
	machineID uint64
	clock     clock.Source

	mu    sync.Mutex
	state SnowflakeState
}

// NewMutexSnowflake builds a MutexSnowflake generator for l, anchored at
// epochMillis, minting ids tagged with machineID.
func NewMutexSnowflake(l layout.Layout, epochMillis, machineID uint64, src clock.Source) (*MutexSnowflake, error) {
	if err := checkMachineID(l, machineID); err != nil {
		return nil, err
	}
	return &MutexSnowflake{layout: l, epoch: epochMillis, machineID: machineID, clock: src}, nil
}

// TryNext advances the generator by one step under the internal mutex.
func (g *MutexSnowflake) TryNext() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, status, err := stepSnowflake(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.machineID)
	if err != nil {
		return Status{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// AtomicSnowflake is the lock-free shell over the snowflake state machine:
// state is packed into a single atomic.Uint64 word and advanced through a
// compare-and-swap retry loop, in the manner of a classic 64-bit snowflake
// implementation with a busy CAS-and-retry sequence counter.
type AtomicSnowflake struct {
	layout    layout.Layout
	epoch     uint64
	machineID uint64
	clock     clock.Source

	word padded.Uint64
}

// NewAtomicSnowflake builds an AtomicSnowflake generator for l, anchored
// at epochMillis, minting ids tagged with machineID.
func NewAtomicSnowflake(l layout.Layout, epochMillis, machineID uint64, src clock.Source) (*AtomicSnowflake, error) {
	if err := checkMachineID(l, machineID); err != nil {
		return nil, err
	}
	return &AtomicSnowflake{layout: l, epoch: epochMillis, machineID: machineID, clock: src}, nil
}

func packSnowflakeState(l layout.Layout, s SnowflakeState) uint64 {
	return s.Timestamp<<l.Sequence.Width | s.Sequence
}

func unpackSnowflakeState(l layout.Layout, word uint64) SnowflakeState {
	return SnowflakeState{
		Timestamp: word >> l.Sequence.Width,
		Sequence:  word & l.Sequence.Mask(),
	}
}

// TryNext advances the generator by one step via compare-and-swap,
// retrying whenever a concurrent caller wins the race to update the
// state word first.
func (g *AtomicSnowflake) TryNext() (Status, error) {
	for {
		word := g.word.Load()
		prior := unpackSnowflakeState(g.layout, word)

		next, status, err := stepSnowflake(g.layout, g.epoch, prior, g.clock.NowMillis(), g.machineID)
		if err != nil {
			return Status{}, err
		}
		if !status.IsReady() {
			return status, nil
		}

		if g.word.CompareAndSwap(word, packSnowflakeState(g.layout, next)) {
			return status, nil
		}
	}
}
