package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_ScheduledFiresAfterDelay(t *testing.T) {
	c := New()
	fired := 0
	c.Scheduled(3, func() { fired++ })

	c.Tick()
	c.Tick()
	assert.Equal(t, 0, fired, "callback must not fire before its tick")
	assert.Equal(t, 1, c.Pending())

	c.Tick()
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.Pending())

	c.Tick()
	assert.Equal(t, 1, fired, "one-shot callback fires once")
}

func TestClock_FiresInSchedulingOrder(t *testing.T) {
	c := New()
	var order []string
	c.Scheduled(2, func() { order = append(order, "a") })
	c.Scheduled(1, func() { order = append(order, "b") })
	c.Scheduled(2, func() { order = append(order, "c") })

	c.Tick()
	c.Tick()
	assert.Equal(t, []string{"b", "a", "c"}, order)
}

func TestClock_ScheduleFromCallbackWaitsForNextTick(t *testing.T) {
	c := New()
	fired := 0
	c.Scheduled(1, func() {
		c.Scheduled(0, func() { fired++ })
	})

	c.Tick()
	assert.Equal(t, 0, fired)
	c.Tick()
	assert.Equal(t, 1, fired)
}

func TestClock_SubscribersRunEveryTickInOrder(t *testing.T) {
	c := New()
	var calls []int
	c.Subscribe(func() { calls = append(calls, 1) })
	c.Subscribe(func() { calls = append(calls, 2) })

	c.Tick()
	c.Tick()
	assert.Equal(t, []int{1, 2, 1, 2}, calls)
	assert.Equal(t, 2, c.Now())
}

func TestClock_Every(t *testing.T) {
	c := New()
	require.True(t, c.Every(3))
	c.Tick()
	assert.False(t, c.Every(3))
	c.Tick()
	c.Tick()
	assert.True(t, c.Every(3))
}

func TestClock_NilCallbackPanics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.Scheduled(1, nil) })
	assert.Panics(t, func() { c.Subscribe(nil) })
}
