package clock_test

import (
	"testing"
	"time"

	"github.com/fogfish/idflow/clock"
	"github.com/fogfish/it/v2"
)

func TestFixed(t *testing.T) {
	c := clock.Fixed(42)

	it.Ok(t).
		If(c.NowMillis()).Should().Equal(uint64(42)).
		If(c.NowMillis()).Should().Equal(uint64(42))
}

func TestFunc(t *testing.T) {
	calls := 0
	c := clock.Func(func() uint64 { calls++; return uint64(calls) })

	it.Ok(t).
		If(c.NowMillis()).Should().Equal(uint64(1)).
		If(c.NowMillis()).Should().Equal(uint64(2))
}

func TestSequenceRepeatsLastValue(t *testing.T) {
	s := clock.NewSequence(10, 20, 30)

	it.Ok(t).
		If(s.NowMillis()).Should().Equal(uint64(10)).
		If(s.NowMillis()).Should().Equal(uint64(20)).
		If(s.NowMillis()).Should().Equal(uint64(30)).
		If(s.NowMillis()).Should().Equal(uint64(30)).
		If(s.NowMillis()).Should().Equal(uint64(30))
}

func TestMonotonicNeverRegresses(t *testing.T) {
	m := clock.NewMonotonic(time.Now().Add(-time.Hour))

	first := m.NowMillis()
	second := m.NowMillis()

	it.Ok(t).
		If(second >= first).Should().Equal(true)
}
