package generator_test

import (
	"testing"

	"github.com/fogfish/idflow/clock"
	"github.com/fogfish/idflow/entropy"
	"github.com/fogfish/idflow/generator"
	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/idflow/layout"
	"github.com/fogfish/idflow/schema"
	"github.com/fogfish/it/v2"
)

// ulid128NarrowRandomLayout carries an 8-bit random tail so exhausting its
// space in a test takes 256 calls rather than 2^80.
var ulid128NarrowRandomLayout = layout.MustNewULID("ulid128-narrow", 128, 0, 120, 8)

func TestBasicULID128MonotonicWithinMillisecond(t *testing.T) {
	src := clock.Fixed(42)
	rnd := entropy.Fixed{Value2: u128.U128{Lo: 1}}

	g := generator.NewBasicULID128(schema.ULID, 0, src, rnd)

	first, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	second, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)

	it.Ok(t).
		If(first.IsReady()).Should().Equal(true).
		If(second.IsReady()).Should().Equal(true).
		If(second.ID().Cmp(first.ID())).Should().Equal(1)
}

func TestMutexULID128AgreesWithBasic(t *testing.T) {
	seq := []uint64{5, 5, 6}
	rnd := entropy.Fixed{Value2: u128.U128{Lo: 3}}

	basic := generator.NewBasicULID128(schema.ULID, 0, clock.NewSequence(seq...), rnd)
	mutex := generator.NewMutexULID128(schema.ULID, 0, clock.NewSequence(seq...), rnd)

	for range seq {
		b, err := basic.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)
		m, err := mutex.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)

		it.Ok(t).If(m.IsReady()).Should().Equal(b.IsReady())
		if b.IsReady() {
			it.Ok(t).If(m.ID().Equal(b.ID())).Should().Equal(true)
		}
	}
}

// TestBasicULID128RandomExhaustionRecoversAtRandomZero pins down that a
// Pending random-tail overflow leaves the generator's state untouched:
// once the clock advances, the first id of the new millisecond draws a
// fresh random tail of exactly zero rather than continuing an increment
// chain seeded from the exhausted value.
func TestBasicULID128RandomExhaustionRecoversAtRandomZero(t *testing.T) {
	max := ulid128NarrowRandomLayout.Random.Max()

	values := make([]uint64, 0, max+3)
	for i := uint64(0); i < max+2; i++ {
		values = append(values, 700)
	}
	values = append(values, 701)

	src := clock.NewSequence(values...)
	rnd := entropy.Fixed{Value2: u128.U128{}}
	g := generator.NewBasicULID128(ulid128NarrowRandomLayout, 0, src, rnd)

	for i := uint64(0); i <= max; i++ {
		s, err := g.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)
		it.Ok(t).If(s.IsReady()).Should().Equal(true)
	}

	overflowed, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).
		If(overflowed.IsReady()).Should().Equal(false).
		If(overflowed.YieldFor()).Should().Equal(uint64(1))

	recovered, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).If(recovered.IsReady()).Should().Equal(true)

	ts, random := layout.UnpackULID128(ulid128NarrowRandomLayout, recovered.ID())
	it.Ok(t).
		If(ts).Should().Equal(uint64(701)).
		If(random).Should().Equal(u128.U128{})
}

func TestBasicRandomULID128AlwaysReady(t *testing.T) {
	g := generator.NewBasicRandomULID128(schema.ULID, 0, clock.Fixed(99), entropy.CryptoRand{})

	first, err := g.Next()
	it.Ok(t).If(err).Should().Equal(nil)
	second, err := g.Next()
	it.Ok(t).If(err).Should().Equal(nil)

	it.Ok(t).
		If(first.IsReady()).Should().Equal(true).
		If(second.IsReady()).Should().Equal(true).
		If(first.ID().Equal(second.ID())).Should().Equal(false)
}
