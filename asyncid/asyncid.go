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

// Package asyncid adapts the generator package's synchronous TryNext
// contract to a blocking, context-aware Await call: on Pending it sleeps
// for the requested duration and retries, returning as soon as a caller
// gets Ready or its context is done. The underlying generator's Rust
// counterpart drives this same retry as a Future poll loop; Go has no
// native equivalent, so the idiomatic shape here is a plain blocking loop
// a caller can put behind its own goroutine.
package asyncid

import (
	"context"
	"time"

	"github.com/fogfish/idflow/internal/u128"
)

// Sleeper abstracts the delay asyncid.Await64/Await128 waits between
// retries, so tests can advance a fake clock instantly instead of
// blocking for real wall-clock milliseconds.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimeSleeper is the production Sleeper, backed by a context-aware
// time.Timer.
type TimeSleeper struct{}

// Sleep blocks for d or until ctx is done, whichever comes first.
func (TimeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MinSleepMillis floors the wait between retries. A generator can report
// YieldFor as low as 1ms; sleeping for exactly that long on a busy system
// tends to oversleep by the scheduler's tick granularity anyway, so there
// is no benefit to sleeping any shorter than this floor.
const MinSleepMillis = 1

// Status64 is the minimal outcome shape Await64 needs from a generator:
// either ready with an id, or pending for some number of milliseconds.
// generator.Status already satisfies this shape.
type Status64 interface {
	IsReady() bool
	YieldFor() uint64
}

// Await64 repeatedly calls next until it returns Ready, sleeping between
// Pending results, or until ctx is cancelled.
func Await64[S Status64](ctx context.Context, sleep Sleeper, next func() (S, error), id func(S) uint64) (uint64, error) {
	for {
		s, err := next()
		if err != nil {
			return 0, err
		}
		if s.IsReady() {
			return id(s), nil
		}

		wait := s.YieldFor()
		if wait < MinSleepMillis {
			wait = MinSleepMillis
		}
		if err := sleep.Sleep(ctx, time.Duration(wait)*time.Millisecond); err != nil {
			return 0, err
		}
	}
}

// Status128 is the minimal outcome shape Await128 needs from a 128-bit
// generator. generator.Status128 already satisfies this shape.
type Status128 interface {
	IsReady() bool
	YieldFor() uint64
}

// Await128 is Await64 for the 128-bit ULID generators.
func Await128[S Status128](ctx context.Context, sleep Sleeper, next func() (S, error), id func(S) u128.U128) (u128.U128, error) {
	for {
		s, err := next()
		if err != nil {
			return u128.U128{}, err
		}
		if s.IsReady() {
			return id(s), nil
		}

		wait := s.YieldFor()
		if wait < MinSleepMillis {
			wait = MinSleepMillis
		}
		if err := sleep.Sleep(ctx, time.Duration(wait)*time.Millisecond); err != nil {
			return u128.U128{}, err
		}
	}
}
