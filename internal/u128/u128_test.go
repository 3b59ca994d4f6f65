package u128_test

import (
	"testing"

	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/it/v2"
)

func TestAdd1Carries(t *testing.T) {
	a := u128.U128{Hi: 0, Lo: ^uint64(0)}
	b := a.Add1()

	it.Ok(t).
		If(b.Hi).Should().Equal(uint64(1)).
		If(b.Lo).Should().Equal(uint64(0))
}

func TestCmp(t *testing.T) {
	a := u128.U128{Hi: 1, Lo: 0}
	b := u128.U128{Hi: 0, Lo: ^uint64(0)}

	it.Ok(t).
		If(a.Cmp(b)).Should().Equal(1).
		If(b.Cmp(a)).Should().Equal(-1).
		If(a.Cmp(a)).Should().Equal(0).
		If(a.Less(b)).Should().Equal(false).
		If(b.Less(a)).Should().Equal(true)
}

func TestShiftAcrossBoundary(t *testing.T) {
	a := u128.U128{Hi: 0, Lo: 1}
	shifted := a.ShiftLeft(64)

	it.Ok(t).
		If(shifted.Hi).Should().Equal(uint64(1)).
		If(shifted.Lo).Should().Equal(uint64(0))

	back := shifted.ShiftRight(64)
	it.Ok(t).
		If(back.Hi).Should().Equal(uint64(0)).
		If(back.Lo).Should().Equal(uint64(1))
}

func TestMaxAndFitsWidth(t *testing.T) {
	max80 := u128.Max(80)

	it.Ok(t).
		If(max80.Hi).Should().Equal(uint64(0xffff)).
		If(max80.Lo).Should().Equal(^uint64(0)).
		If(u128.FitsWidth(max80, 80)).Should().Equal(true).
		If(u128.FitsWidth(max80.Add1(), 80)).Should().Equal(false)
}
