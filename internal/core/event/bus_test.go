package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_EventsVisibleNextTick(t *testing.T) {
	b := NewBus()
	var got []ActorDied
	Subscribe(b, func(ev ActorDied) { got = append(got, ev) })

	Emit(b, ActorDied{UnitID: 1, Kind: "Player"})
	b.DispatchAll()
	assert.Empty(t, got, "emitted events wait for the buffer swap")
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].UnitID)
	assert.Equal(t, 0, b.Pending())

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, got, 1, "dispatched events are not delivered twice")
}

func TestBus_TypedRouting(t *testing.T) {
	b := NewBus()
	deaths, blasts := 0, 0
	Subscribe(b, func(ActorDied) { deaths++ })
	Subscribe(b, func(ev Detonated) {
		blasts++
		assert.True(t, ev.Area)
	})

	Emit(b, Detonated{Kind: "Grenade", Area: true})
	Emit(b, ActorDied{})
	Emit(b, Detonated{Kind: "Mine", Area: true})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, 1, deaths)
	assert.Equal(t, 2, blasts)
}
