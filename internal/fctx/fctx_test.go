package fctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const done = ^uintptr(0)

func TestRoundTrip(t *testing.T) {
	var mainSlot Context

	callee := Make(0, func(arg uintptr) {
		// Entry argument comes from the first jump's word; send it back
		// incremented so both directions of the rendezvous are exercised.
		Exit(&mainSlot, arg+1)
	})

	got := Jump(&mainSlot, callee, 41)
	assert.Equal(t, uintptr(42), got)
}

func TestPingPong(t *testing.T) {
	const rounds = 10000

	var mainSlot Context
	var fib *Context
	fib = Make(0, func(arg uintptr) {
		// local lives in this frame across every suspension below.
		local := int(arg)
		for i := 0; i < rounds; i++ {
			local++
			Jump(fib, &mainSlot, uintptr(local))
		}
		Exit(&mainSlot, done)
	})

	mainCount := 0
	v := Jump(&mainSlot, fib, 0)
	for v != done {
		mainCount++
		// The fiber echoes its own counter; the two must stay in lockstep
		// or state was corrupted across a switch.
		require.Equal(t, mainCount, int(v))
		v = Jump(&mainSlot, fib, 0)
	}
	assert.Equal(t, rounds, mainCount)
}

func TestTwoFibers(t *testing.T) {
	const rounds = 1000

	var mainSlot Context
	var a, b *Context

	counts := [2]int{}
	spin := func(idx int, self **Context) Entry {
		return func(uintptr) {
			for i := 0; i < rounds; i++ {
				counts[idx]++
				Jump(*self, &mainSlot, uintptr(idx))
			}
			Exit(&mainSlot, done)
		}
	}
	a = Make(0, spin(0, &a))
	b = Make(0, spin(1, &b))

	// Alternate resumes so each fiber's frame survives interleaved
	// suspensions, not just its own.
	finished := 0
	va := Jump(&mainSlot, a, 0)
	vb := Jump(&mainSlot, b, 0)
	for finished < 2 {
		if va == done && vb == done {
			finished = 2
			break
		}
		if va != done {
			va = Jump(&mainSlot, a, 0)
		}
		if vb != done {
			vb = Jump(&mainSlot, b, 0)
		}
	}
	assert.Equal(t, rounds, counts[0])
	assert.Equal(t, rounds, counts[1])
}

func TestMakeStackSizing(t *testing.T) {
	assert.Equal(t, DefaultStackSize, Make(0, func(uintptr) {}).StackSize())
	assert.Equal(t, MinStackSize, Make(1, func(uintptr) {}).StackSize())

	odd := Make(MinStackSize+1, func(uintptr) {})
	assert.Zero(t, odd.StackSize()%stackAlign)
	assert.GreaterOrEqual(t, odd.StackSize(), MinStackSize+1)
}
