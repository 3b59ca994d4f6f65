package generator_test

import (
	"testing"

	"github.com/fogfish/idflow/generator"
	"github.com/fogfish/idflow/internal/u128"
	"github.com/fogfish/it/v2"
)

func TestStatusReadyAndPending(t *testing.T) {
	ready := generator.ReadyStatus(42)
	pending := generator.PendingStatus(7)

	it.Ok(t).
		If(ready.IsReady()).Should().Equal(true).
		If(ready.ID()).Should().Equal(uint64(42)).
		If(pending.IsReady()).Should().Equal(false).
		If(pending.YieldFor()).Should().Equal(uint64(7))
}

func TestStatus128ReadyAndPending(t *testing.T) {
	id := u128.U128{Hi: 1, Lo: 2}
	ready := generator.ReadyStatus128(id)
	pending := generator.PendingStatus128(3)

	it.Ok(t).
		If(ready.IsReady()).Should().Equal(true).
		If(ready.ID()).Should().Equal(id).
		If(pending.IsReady()).Should().Equal(false).
		If(pending.YieldFor()).Should().Equal(uint64(3))
}
