package t6963c

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Clock measures the busy-wait delays the bus protocol needs.
//
// Delays are spun on Elapsed until the requested time has passed; a Clock
// that never advances hangs the driver.
type Clock interface {
	// Start resets the elapsed time to zero and starts counting.
	Start()
	// Elapsed returns the time since Start.
	Elapsed() time.Duration
	// Stop halts counting.
	Stop()
}

// SystemClock is a Clock backed by the Go runtime's monotonic clock.
type SystemClock struct {
	start time.Time
}

// Start implements Clock.
func (c *SystemClock) Start() {
	c.start = time.Now()
}

// Elapsed implements Clock.
func (c *SystemClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Stop implements Clock.
func (c *SystemClock) Stop() {}

// Counter is a free running hardware timer.
type Counter interface {
	// Start clears the count and starts the timer.
	Start()
	// Count returns the current tick count. It wraps at 16 bits.
	Count() uint16
	// Stop halts the timer.
	Stop()
}

// TickClock is a Clock over a 16-bit hardware Counter ticking at Freq.
//
// The longest measurable delay is 65535 ticks; at 40MHz (25ns per tick)
// that is about 1.6ms, well above the 60µs command delay.
type TickClock struct {
	Counter Counter
	Freq    physic.Frequency
}

// Start implements Clock.
func (c *TickClock) Start() {
	c.Counter.Start()
}

// Elapsed implements Clock.
func (c *TickClock) Elapsed() time.Duration {
	return time.Duration(c.Counter.Count()) * c.Freq.Period()
}

// Stop implements Clock.
func (c *TickClock) Stop() {
	c.Counter.Stop()
}

// delay spins on clk until d has elapsed.
func delay(clk Clock, d time.Duration) {
	clk.Start()
	for clk.Elapsed() < d {
	}
	clk.Stop()
}
