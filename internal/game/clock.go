package game

import (
	"time"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
)

// Clock reports elapsed scene time, in seconds, once per tick.
type Clock interface {
	Tick() float32
}

// WallClock measures time since its first tick.
type WallClock struct {
	now   func() time.Time
	start time.Time
}

// NewWallClock returns a clock reading now. A nil now uses time.Now.
func NewWallClock(now func() time.Time) *WallClock {
	if now == nil {
		now = time.Now
	}
	return &WallClock{now: now}
}

// Tick returns seconds since the first call. The first call returns 0.
func (c *WallClock) Tick() float32 {
	t := c.now()
	if c.start.IsZero() {
		c.start = t
	}
	return float32(t.Sub(c.start).Seconds())
}

// FixedClock advances by a constant step every tick.
type FixedClock struct {
	step    float64
	elapsed float64
}

// NewFixedClock returns a clock advancing step seconds per tick.
func NewFixedClock(step float64) *FixedClock {
	return &FixedClock{step: step}
}

// Tick advances the clock and returns the new elapsed time.
func (c *FixedClock) Tick() float32 {
	c.elapsed += c.step
	return float32(c.elapsed)
}

// NewClock picks the clock for a driver. The reference driver is too slow
// for wall time to give smooth motion, so it steps by fixedStep instead.
func NewClock(driver gpu.DriverType, fixedStep float64) Clock {
	if driver == gpu.DriverReference {
		return NewFixedClock(fixedStep)
	}
	return NewWallClock(nil)
}
