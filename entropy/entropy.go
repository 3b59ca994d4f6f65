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

// Package entropy implements the RandSource contract: a source of
// uniformly distributed random bits used to seed the random tail of a
// ULID-style identifier. Sources need not be cryptographically secure —
// only uniformly distributed and cheap to call on the hot path.
package entropy

import (
	"crypto/rand"
	"math/rand/v2"
	"sync"

	"github.com/fogfish/idflow/internal/u128"
	"github.com/google/uuid"
)

// Source supplies random 64-bit or 128-bit values, used to seed the random
// tail of a fresh ULID-style identifier; callers mask the value down to
// their field width.
type Source interface {
	// Uint64 returns a uniformly random value in [0, 2^64).
	Uint64() uint64
	// U128 returns a uniformly random 128-bit value.
	U128() u128.U128
}

// CryptoRand draws from crypto/rand, matching the teacher's own choice of
// crypto/rand for its node-id generator. It panics if the OS entropy pool
// cannot be read, exactly as the teacher's WithNodeRandom option does,
// since a broken system RNG is not a condition callers can recover from.
type CryptoRand struct{}

// Uint64 returns 8 cryptographically random bytes as a uint64.
func (CryptoRand) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("idflow: entropy.CryptoRand: " + err.Error())
	}
	return beUint64(buf[:])
}

// U128 returns 16 cryptographically random bytes as a U128.
func (CryptoRand) U128() u128.U128 {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("idflow: entropy.CryptoRand: " + err.Error())
	}
	return u128.U128{Hi: beUint64(buf[0:8]), Lo: beUint64(buf[8:16])}
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// PCG draws from math/rand/v2's PCG generator, a fast, non-cryptographic
// source appropriate for the hot generation path where crypto/rand's
// syscall overhead is unwanted. It is safe for concurrent use.
type PCG struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPCG seeds a PCG source from two caller-supplied seed words. Callers
// that need non-deterministic seeding should draw seed1/seed2 once at
// startup from CryptoRand.
func NewPCG(seed1, seed2 uint64) *PCG {
	return &PCG{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Uint64 returns a uniformly random uint64.
func (p *PCG) Uint64() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Uint64()
}

// U128 returns a uniformly random U128.
func (p *PCG) U128() u128.U128 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return u128.U128{Hi: p.rng.Uint64(), Lo: p.rng.Uint64()}
}

// UUIDSource draws its random tail from google/uuid's random-generation
// path (a UUIDv4). It does not enable that library's buffered entropy
// pool, so each call reads fresh bytes from the library's random reader.
// A UUIDv4 fixes 6 of its 128 bits (the version nibble in byte 6 and the
// two variant bits at the top of byte 8), so values from this source are
// not uniform over the full 64 or 128 bits.
type UUIDSource struct{}

// Uint64 returns the low 8 bytes of a fresh random UUIDv4.
func (UUIDSource) Uint64() uint64 {
	id := uuid.New()
	return beUint64(id[8:16])
}

// U128 returns a fresh random UUIDv4 reinterpreted as a U128.
func (UUIDSource) U128() u128.U128 {
	id := uuid.New()
	return u128.U128{Hi: beUint64(id[0:8]), Lo: beUint64(id[8:16])}
}

// Fixed is a Source test double that always returns the same value.
type Fixed struct {
	Value  uint64
	Value2 u128.U128
}

// Uint64 returns f.Value.
func (f Fixed) Uint64() uint64 { return f.Value }

// U128 returns f.Value2.
func (f Fixed) U128() u128.U128 { return f.Value2 }
