package core

import "time"

// UpdateRate is the fixed simulation rate handed to App.OnUpdate.
const UpdateRate = 60

// fixedClock turns wall time into whole update ticks plus the fraction of a
// tick left over for render interpolation.
type fixedClock struct {
	tick     time.Duration
	maxTicks int // per frame; the backlog past it is dropped
	accum    time.Duration
}

func newFixedClock(rate, maxTicks int) *fixedClock {
	return &fixedClock{tick: time.Second / time.Duration(rate), maxTicks: maxTicks}
}

// advance adds elapsed time and returns the ticks to run now and the
// interpolation alpha in [0, 1).
func (c *fixedClock) advance(elapsed time.Duration) (ticks int, alpha float64) {
	if elapsed > 0 {
		c.accum += elapsed
	}
	for c.accum >= c.tick && ticks < c.maxTicks {
		c.accum -= c.tick
		ticks++
	}
	if c.accum >= c.tick {
		// Too far behind: skip ahead instead of spiralling.
		c.accum %= c.tick
	}
	return ticks, float64(c.accum) / float64(c.tick)
}

// dt is the tick length in seconds.
func (c *fixedClock) dt() float64 { return c.tick.Seconds() }
