package padded_test

import (
	"testing"
	"unsafe"

	"github.com/fogfish/idflow/internal/padded"
	"github.com/fogfish/it/v2"
)

func TestLoadStoreCompareAndSwap(t *testing.T) {
	var p padded.Uint64

	p.Store(5)
	it.Ok(t).If(p.Load()).Should().Equal(uint64(5))

	ok := p.CompareAndSwap(5, 9)
	it.Ok(t).
		If(ok).Should().Equal(true).
		If(p.Load()).Should().Equal(uint64(9))

	stale := p.CompareAndSwap(5, 1)
	it.Ok(t).
		If(stale).Should().Equal(false).
		If(p.Load()).Should().Equal(uint64(9))
}

func TestOccupiesAFullCacheLine(t *testing.T) {
	var p padded.Uint64

	it.Ok(t).
		If(unsafe.Sizeof(p) >= uintptr(64)).Should().Equal(true)
}
