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

// Package clock implements the TimeSource contract the generator state
// machine is built on: a monotonic, non-decreasing millisecond clock that
// never regresses even if the wall clock does, plus deterministic test
// doubles that drive the pure step function from fixed or scripted values.
package clock

import (
	"sync/atomic"
	"time"
)

// Source yields the current time as milliseconds elapsed since some fixed
// epoch. Implementations must be safe for concurrent use and must never
// return a value lower than any value they have already returned.
type Source interface {
	NowMillis() uint64
}

// Monotonic is a Source backed by time.Now(), watermarked through an
// atomic so that a backward jump in the wall clock (NTP step, VM pause)
// never produces a NowMillis() lower than a value already handed out.
type Monotonic struct {
	epoch     time.Time
	watermark atomic.Uint64
}

// NewMonotonic returns a Monotonic clock anchored at epoch. Millisecond
// values are computed from time.Since(epoch). That difference follows the
// runtime's monotonic clock only when epoch itself carries a monotonic
// reading (a value derived from time.Now()); for an epoch built from a
// calendar value such as time.UnixMilli it follows the wall clock, and the
// watermark is what keeps the result from going backwards when the wall
// clock is stepped back.
func NewMonotonic(epoch time.Time) *Monotonic {
	return &Monotonic{epoch: epoch}
}

// NowMillis returns the current time in milliseconds since the clock's
// epoch, guaranteed non-decreasing across calls.
func (c *Monotonic) NowMillis() uint64 {
	now := uint64(time.Since(c.epoch).Milliseconds())

	for {
		prev := c.watermark.Load()
		if now <= prev {
			return prev
		}
		if c.watermark.CompareAndSwap(prev, now) {
			return now
		}
	}
}

// Fixed is a Source that always returns the same value. It is useful for
// tests that only exercise a single instant.
type Fixed uint64

// NowMillis returns the fixed value f.
func (f Fixed) NowMillis() uint64 { return uint64(f) }

// Func adapts a plain function to the Source interface.
type Func func() uint64

// NowMillis calls f.
func (f Func) NowMillis() uint64 { return f() }

// Sequence is a Source test double that replays a scripted list of
// values, one per call, and repeats the final value once the script is
// exhausted. It is intended for scenario tests that need to drive the
// generator state machine through a specific, reproducible timeline —
// e.g. spec scenarios that hold the clock still across several calls,
// then jump it forward.
type Sequence struct {
	values []uint64
	next   atomic.Uint64
}

// NewSequence builds a Sequence that replays values in order.
func NewSequence(values ...uint64) *Sequence {
	return &Sequence{values: values}
}

// NowMillis returns the next scripted value, or the last one if the
// script has been exhausted.
func (s *Sequence) NowMillis() uint64 {
	i := s.next.Add(1) - 1
	if int(i) >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	return s.values[i]
}
