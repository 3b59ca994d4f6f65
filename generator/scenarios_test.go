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

// These scenarios walk a single generator through a scripted timeline of
// clock readings, checking the exact sequence of Ready/Pending outcomes
// rather than just spot-checking individual calls — the property that
// matters for a k-ordered generator is the whole trajectory, not any one
// id in isolation.

func TestScenarioSteadyClockAdvance(t *testing.T) {
	src := clock.NewSequence(100, 101, 102, 103)
	g, _ := generator.NewBasicSnowflake(schema.Twitter, 0, 1, src)

	var results []generator.Status
	for i := 0; i < 4; i++ {
		s, err := g.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)
		results = append(results, s)
	}

	for i, s := range results {
		it.Ok(t).If(s.IsReady()).Should().Equal(true)
		if i > 0 {
			it.Ok(t).If(s.ID() > results[i-1].ID()).Should().Equal(true)
		}
	}
}

func TestScenarioBurstWithinOneMillisecondThenAdvance(t *testing.T) {
	src := clock.NewSequence(50, 50, 50, 51)
	g, _ := generator.NewBasicSnowflake(schema.Twitter, 0, 2, src)

	var ids []uint64
	for i := 0; i < 4; i++ {
		s, err := g.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)
		it.Ok(t).If(s.IsReady()).Should().Equal(true)
		ids = append(ids, s.ID())
	}

	for i := 1; i < len(ids); i++ {
		it.Ok(t).If(ids[i] > ids[i-1]).Should().Equal(true)
	}
}

func TestScenarioBurstBelowSequenceCapacityStaysReady(t *testing.T) {
	src := clock.NewSequence(1, 1, 1, 1, 1) // fewer readings than the sequence space
	g, _ := generator.NewBasicSnowflake(schema.Mastodon, 0, 0, src)

	var last generator.Status
	var err error
	for i := 0; i < 5; i++ {
		last, err = g.TryNext()
		it.Ok(t).If(err).Should().Equal(nil)
	}

	it.Ok(t).If(last.IsReady()).Should().Equal(true)
}

func TestScenarioClockRegressionThenCatchesUp(t *testing.T) {
	src := clock.NewSequence(500, 400, 500)
	g, _ := generator.NewBasicSnowflake(schema.Discord, 0, 1, src)

	first, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).If(first.IsReady()).Should().Equal(true)

	regressed, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).
		If(regressed.IsReady()).Should().Equal(false).
		If(regressed.YieldFor()).Should().Equal(uint64(100))

	caughtUp, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).
		If(caughtUp.IsReady()).Should().Equal(true).
		If(caughtUp.ID() > first.ID()).Should().Equal(true)
}

func TestScenarioColdStartAtEpoch(t *testing.T) {
	src := clock.Fixed(0)
	g, _ := generator.NewBasicSnowflake(schema.Instagram, 0, 0, src)

	s, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)

	ts, mid, seq := layout.UnpackSnowflake(schema.Instagram, s.ID())
	it.Ok(t).
		If(s.IsReady()).Should().Equal(true).
		If(ts).Should().Equal(uint64(0)).
		If(mid).Should().Equal(uint64(0)).
		If(seq).Should().Equal(uint64(1))
}

// sequenceU128 draws u128 values off a fixed script, repeating the last
// entry once exhausted, mirroring clock.Sequence's replay behavior but for
// entropy.Source.
type sequenceU128 struct {
	values []u128.U128
	next   int
}

func (s *sequenceU128) Uint64() uint64 { return 0 }

func (s *sequenceU128) U128() u128.U128 {
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

// TestConcreteEndToEndScenarios walks the six reference timelines a
// conforming generator must reproduce exactly, tuple for tuple: given a
// fixed clock/entropy script, both the Ready ids and the Pending
// yield_for values are pinned down to specific numbers, not just checked
// for shape.
func TestConcreteEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "TwitterThreeCallsSameMillisecond",
			run: func(t *testing.T) {
				src := clock.NewSequence(100, 100, 100)
				g, err := generator.NewBasicSnowflake(schema.Twitter, 0, 1, src)
				it.Ok(t).If(err).Should().Equal(nil)

				wantSeq := []uint64{0, 1, 2}
				for _, want := range wantSeq {
					s, err := g.TryNext()
					it.Ok(t).If(err).Should().Equal(nil)
					it.Ok(t).If(s.IsReady()).Should().Equal(true)

					ts, mid, seq := layout.UnpackSnowflake(schema.Twitter, s.ID())
					it.Ok(t).
						If(ts).Should().Equal(uint64(100)).
						If(mid).Should().Equal(uint64(1)).
						If(seq).Should().Equal(want)
				}
			},
		},
		{
			name: "TwitterClockAdvancesResetsSequence",
			run: func(t *testing.T) {
				src := clock.NewSequence(100, 101)
				g, err := generator.NewBasicSnowflake(schema.Twitter, 0, 1, src)
				it.Ok(t).If(err).Should().Equal(nil)

				first, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, mid, seq := layout.UnpackSnowflake(schema.Twitter, first.ID())
				it.Ok(t).
					If(first.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(100)).
					If(mid).Should().Equal(uint64(1)).
					If(seq).Should().Equal(uint64(0))

				second, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, mid, seq = layout.UnpackSnowflake(schema.Twitter, second.ID())
				it.Ok(t).
					If(second.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(101)).
					If(mid).Should().Equal(uint64(1)).
					If(seq).Should().Equal(uint64(0))
			},
		},
		{
			name: "TwitterClockRegressionYieldsPendingOne",
			run: func(t *testing.T) {
				src := clock.NewSequence(100, 99)
				g, err := generator.NewBasicSnowflake(schema.Twitter, 0, 1, src)
				it.Ok(t).If(err).Should().Equal(nil)

				first, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, mid, seq := layout.UnpackSnowflake(schema.Twitter, first.ID())
				it.Ok(t).
					If(first.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(100)).
					If(mid).Should().Equal(uint64(1)).
					If(seq).Should().Equal(uint64(0))

				second, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				it.Ok(t).
					If(second.IsReady()).Should().Equal(false).
					If(second.YieldFor()).Should().Equal(uint64(1))
			},
		},
		{
			name: "MastodonSequenceSpaceExhaustsThenPendsUntilClockAdvances",
			run: func(t *testing.T) {
				src := clock.Fixed(7)
				g, err := generator.NewBasicSnowflake(schema.Mastodon, 0, 0, src)
				it.Ok(t).If(err).Should().Equal(nil)

				max := schema.Mastodon.Sequence.Max() // 65535
				for want := uint64(0); want <= max; want++ {
					s, err := g.TryNext()
					it.Ok(t).If(err).Should().Equal(nil)
					it.Ok(t).If(s.IsReady()).Should().Equal(true)

					ts, mid, seq := layout.UnpackSnowflake(schema.Mastodon, s.ID())
					it.Ok(t).
						If(ts).Should().Equal(uint64(7)).
						If(mid).Should().Equal(uint64(0)).
						If(seq).Should().Equal(want)
				}

				for i := 0; i < 2; i++ {
					s, err := g.TryNext()
					it.Ok(t).If(err).Should().Equal(nil)
					it.Ok(t).
						If(s.IsReady()).Should().Equal(false).
						If(s.YieldFor()).Should().Equal(uint64(1))
				}
			},
		},
		{
			name: "ULID128RandomTailIncrementsWithinSameMillisecond",
			run: func(t *testing.T) {
				seed := u128.U128{Hi: 0xAAAA, Lo: 0xAAAAAAAAAAAAAAAA} // 80 bits of 0xA
				src := clock.Fixed(500)
				rnd := entropy.Fixed{Value2: seed}
				g := generator.NewBasicULID128(schema.ULID, 0, src, rnd)

				first, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, random := layout.UnpackULID128(schema.ULID, first.ID())
				it.Ok(t).
					If(first.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(500)).
					If(random).Should().Equal(seed)

				second, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, random = layout.UnpackULID128(schema.ULID, second.ID())
				it.Ok(t).
					If(second.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(500)).
					If(random).Should().Equal(seed.Add1())
			},
		},
		{
			name: "ULID128ClockAdvanceDrawsFreshRandomEachCall",
			run: func(t *testing.T) {
				r1 := u128.U128{Lo: 0x1111111111111111}
				r2 := u128.U128{Lo: 0x2222222222222222}
				src := clock.NewSequence(500, 501)
				rnd := &sequenceU128{values: []u128.U128{r1, r2}}
				g := generator.NewBasicULID128(schema.ULID, 0, src, rnd)

				first, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, random := layout.UnpackULID128(schema.ULID, first.ID())
				it.Ok(t).
					If(first.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(500)).
					If(random).Should().Equal(r1)

				second, err := g.TryNext()
				it.Ok(t).If(err).Should().Equal(nil)
				ts, random = layout.UnpackULID128(schema.ULID, second.ID())
				it.Ok(t).
					If(second.IsReady()).Should().Equal(true).
					If(ts).Should().Equal(uint64(501)).
					If(random).Should().Equal(r2)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, c.run)
	}
}

func TestScenario128BitRandomTailOverflowRecoversWhenClockAdvances(t *testing.T) {
	src := clock.NewSequence(7, 7, 8)
	rnd := entropy.Fixed{Value2: u128.Max(schema.ULID.Random.Width)}

	g := generator.NewBasicULID128(schema.ULID, 0, src, rnd)

	first, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).If(first.IsReady()).Should().Equal(true)

	overflowed, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)

	it.Ok(t).
		If(overflowed.IsReady()).Should().Equal(false).
		If(overflowed.YieldFor()).Should().Equal(uint64(1))

	recovered, err := g.TryNext()
	it.Ok(t).If(err).Should().Equal(nil)
	it.Ok(t).If(recovered.IsReady()).Should().Equal(true)
}
