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

import "github.com/fogfish/idflow/internal/u128"

// Status is the outcome of a single call into a 64-bit id generator: it is
// either Ready, carrying a freshly minted id, or Pending, meaning the
// generator has exhausted its sequence for the current millisecond, or the
// clock reading is behind the last timestamp it issued, and the caller
// must wait YieldFor milliseconds before trying again. Pending is an
// expected, steady-state outcome under load, never an error.
type Status struct {
	ready    bool
	id       uint64
	yieldFor uint64
}

// ReadyStatus wraps a freshly minted id as a Ready outcome.
func ReadyStatus(id uint64) Status { return Status{ready: true, id: id} }

// PendingStatus wraps a required wait, in milliseconds, as a Pending
// outcome.
func PendingStatus(yieldFor uint64) Status { return Status{ready: false, yieldFor: yieldFor} }

// IsReady reports whether the call produced an id.
func (s Status) IsReady() bool { return s.ready }

// ID returns the minted id. It is only meaningful when IsReady is true.
func (s Status) ID() uint64 { return s.id }

// YieldFor returns the number of milliseconds the caller should wait
// before retrying. It is only meaningful when IsReady is false.
func (s Status) YieldFor() uint64 { return s.yieldFor }

// Status128 is Status for the 128-bit ULID generators.
type Status128 struct {
	ready    bool
	id       u128.U128
	yieldFor uint64
}

// ReadyStatus128 wraps a freshly minted 128-bit id as a Ready outcome.
func ReadyStatus128(id u128.U128) Status128 { return Status128{ready: true, id: id} }

// PendingStatus128 wraps a required wait, in milliseconds, as a Pending
// outcome.
func PendingStatus128(yieldFor uint64) Status128 { return Status128{ready: false, yieldFor: yieldFor} }

// IsReady reports whether the call produced an id.
func (s Status128) IsReady() bool { return s.ready }

// ID returns the minted id. It is only meaningful when IsReady is true.
func (s Status128) ID() u128.U128 { return s.id }

// YieldFor returns the number of milliseconds the caller should wait
// before retrying. It is only meaningful when IsReady is false.
func (s Status128) YieldFor() uint64 { return s.yieldFor }
