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
	"github.com/fogfish/idflow/entropy"
	"github.com/fogfish/idflow/layout"
)

// BasicULID128 is the single-owner shell over the 128-bit ULID state
// machine.
//
// There is deliberately no AtomicULID128: Go's sync/atomic offers no
// 128-bit compare-and-swap primitive (unlike, say, Rust's portable_atomic
// crate on platforms with a cmpxchg16b instruction), so a lock-free shell
// for the wide ULID layout cannot be built without an unsafe,
// platform-specific escape hatch. Basic and Mutex are the two available
// concurrency strategies for this width.
type BasicULID128 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source
	state   ULID128State
}

// NewBasicULID128 builds a BasicULID128 generator for l, anchored at
// epochMillis.
func NewBasicULID128(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *BasicULID128 {
	return &BasicULID128{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

// TryNext advances the generator by one step.
func (g *BasicULID128) TryNext() (Status128, error) {
	next, status, err := stepULID128(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.entropy.U128)
	if err != nil {
		return Status128{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// MutexULID128 is the mutex-guarded shell over the 128-bit ULID state
// machine.
type MutexULID128 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source

	mu    sync.Mutex
	state ULID128State
}

// NewMutexULID128 builds a MutexULID128 generator for l, anchored at
// epochMillis.
func NewMutexULID128(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *MutexULID128 {
	return &MutexULID128{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

// TryNext advances the generator by one step under the internal mutex.
func (g *MutexULID128) TryNext() (Status128, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, status, err := stepULID128(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.entropy.U128)
	if err != nil {
		return Status128{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// BasicRandomULID128 is the non-monotonic ULID variant: every call draws a
// fresh random tail regardless of whether the millisecond has advanced,
// trading intra-millisecond sort order for the ability to mint many ids
// concurrently from independent, uncoordinated generators without ever
// returning Pending. It always returns Ready.
type BasicRandomULID128 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source
}

// NewBasicRandomULID128 builds a BasicRandomULID128 generator for l,
// anchored at epochMillis.
func NewBasicRandomULID128(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *BasicRandomULID128 {
	return &BasicRandomULID128{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

// Next mints a fresh id. Unlike the monotonic generators it never yields:
// timestamp and random tail are independent draws with no shared state to
// exhaust.
func (g *BasicRandomULID128) Next() (Status128, error) {
	now := logicalTime(g.clock.NowMillis(), g.epoch)
	random := g.entropy.U128().And(g.layout.Random.Max128())

	id, err := layout.PackULID128(g.layout, now, random)
	if err != nil {
		return Status128{}, err
	}
	return ReadyStatus128(id), nil
}
