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

// Package padded wraps an atomic.Uint64 with enough trailing padding to
// occupy a full cache line, so that a generator's hot CAS word does not
// share a cache line with neighboring fields and suffer false sharing
// under concurrent access. It is a pure performance knob; nothing in this
// module depends on it for correctness.
package padded

import "sync/atomic"

// cacheLineSize is the padding target. 64 bytes covers the common case on
// x86-64 and arm64; getting it exactly right on every microarchitecture
// is not worth the complexity this module is meant to avoid.
const cacheLineSize = 64

// Uint64 is an atomic.Uint64 padded out to a full cache line.
type Uint64 struct {
	v atomic.Uint64
	_ [cacheLineSize - 8]byte
}

// Load reads the current value.
func (p *Uint64) Load() uint64 { return p.v.Load() }

// Store sets the current value.
func (p *Uint64) Store(val uint64) { p.v.Store(val) }

// CompareAndSwap atomically compares and swaps the current value.
func (p *Uint64) CompareAndSwap(old, new uint64) bool {
	return p.v.CompareAndSwap(old, new)
}
