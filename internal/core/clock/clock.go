package clock

// Clock is the simulation's time source: a monotonic tick counter with
// delayed one-shot callbacks and per-tick subscribers.
// Accessed only from the game loop goroutine, so it takes no locks.
type Clock struct {
	now         int
	schedules   []schedule
	subscribers []func()
}

type schedule struct {
	when int
	fn   func()
}

func New() *Clock {
	return &Clock{
		schedules:   make([]schedule, 0, 16),
		subscribers: make([]func(), 0, 4),
	}
}

// Now returns the current tick.
func (c *Clock) Now() int { return c.now }

// Every reports whether the current tick is a multiple of n.
func (c *Clock) Every(n int) bool { return c.now%n == 0 }

// Tick advances the clock by one, fires every callback whose trigger tick
// has been reached and then runs all subscribers in subscription order.
//
// A callback fires once now >= its trigger tick. Callbacks scheduled while
// firing are kept for a later Tick even when their delay is zero.
func (c *Clock) Tick() {
	c.now++

	pending := c.schedules
	c.schedules = make([]schedule, 0, len(pending))
	var due []func()
	for _, s := range pending {
		if c.now >= s.when {
			due = append(due, s.fn)
		} else {
			c.schedules = append(c.schedules, s)
		}
	}
	for _, fn := range due {
		fn()
	}

	for _, sub := range c.subscribers {
		sub()
	}
}

// Scheduled registers fn to run once, ticks ticks from now.
func (c *Clock) Scheduled(ticks int, fn func()) {
	if fn == nil {
		panic("clock: nil callback")
	}
	c.schedules = append(c.schedules, schedule{when: c.now + ticks, fn: fn})
}

// Subscribe registers fn to run on every Tick.
func (c *Clock) Subscribe(fn func()) {
	if fn == nil {
		panic("clock: nil subscriber")
	}
	c.subscribers = append(c.subscribers, fn)
}

// Pending returns the number of callbacks that have not fired yet.
func (c *Clock) Pending() int { return len(c.schedules) }
