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
	"github.com/fogfish/idflow/internal/padded"
	"github.com/fogfish/idflow/layout"
)

// BasicULID64 is the single-owner shell over the 64-bit ULID state
// machine.
type BasicULID64 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source
	state   ULID64State
}

// NewBasicULID64 builds a BasicULID64 generator for l, anchored at
// epochMillis.
func NewBasicULID64(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *BasicULID64 {
	return &BasicULID64{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

// TryNext advances the generator by one step.
func (g *BasicULID64) TryNext() (Status, error) {
	next, status, err := stepULID64(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.entropy.Uint64)
	if err != nil {
		return Status{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// MutexULID64 is the mutex-guarded shell over the 64-bit ULID state
// machine.
type MutexULID64 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source

	mu    sync.Mutex
	state ULID64State
}

// NewMutexULID64 builds a MutexULID64 generator for l, anchored at
// epochMillis.
func NewMutexULID64(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *MutexULID64 {
	return &MutexULID64{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

// TryNext advances the generator by one step under the internal mutex.
func (g *MutexULID64) TryNext() (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, status, err := stepULID64(g.layout, g.epoch, g.state, g.clock.NowMillis(), g.entropy.Uint64)
	if err != nil {
		return Status{}, err
	}
	if status.IsReady() {
		g.state = next
	}
	return status, nil
}

// AtomicULID64 is the lock-free shell over the 64-bit ULID state machine.
// Because the whole state fits in 64 bits, it can be advanced with a
// single atomic.Uint64 compare-and-swap, unlike the 128-bit ULID variants
// which have no such native primitive in Go.
type AtomicULID64 struct {
	layout  layout.Layout
	epoch   uint64
	clock   clock.Source
	entropy entropy.Source

	word padded.Uint64
}

// NewAtomicULID64 builds an AtomicULID64 generator for l, anchored at
// epochMillis.
func NewAtomicULID64(l layout.Layout, epochMillis uint64, src clock.Source, rnd entropy.Source) *AtomicULID64 {
	return &AtomicULID64{layout: l, epoch: epochMillis, clock: src, entropy: rnd}
}

func packULID64State(l layout.Layout, s ULID64State) uint64 {
	return s.Timestamp<<l.Random.Width | s.Random
}

func unpackULID64State(l layout.Layout, word uint64) ULID64State {
	return ULID64State{
		Timestamp: word >> l.Random.Width,
		Random:    word & l.Random.Mask(),
	}
}

// TryNext advances the generator by one step via compare-and-swap.
func (g *AtomicULID64) TryNext() (Status, error) {
	for {
		word := g.word.Load()
		prior := unpackULID64State(g.layout, word)

		next, status, err := stepULID64(g.layout, g.epoch, prior, g.clock.NowMillis(), g.entropy.Uint64)
		if err != nil {
			return Status{}, err
		}
		if !status.IsReady() {
			return status, nil
		}

		if g.word.CompareAndSwap(word, packULID64State(g.layout, next)) {
			return status, nil
		}
	}
}
