package t6963csim

import "time"

// Clock is a deterministic t6963c.Clock: every call to Elapsed advances it
// by Step.
type Clock struct {
	// Step is the time added per Elapsed call (default: 100ns).
	Step time.Duration

	// Total is the time spent in delays so far.
	Total time.Duration
	// Delays counts calls to Start.
	Delays int

	elapsed time.Duration
	running bool
}

// Start implements t6963c.Clock.
func (c *Clock) Start() {
	c.elapsed = 0
	c.running = true
	c.Delays++
}

// Elapsed implements t6963c.Clock.
func (c *Clock) Elapsed() time.Duration {
	if c.running {
		step := c.Step
		if step <= 0 {
			step = 100 * time.Nanosecond
		}
		c.elapsed += step
		c.Total += step
	}
	return c.elapsed
}

// Stop implements t6963c.Clock.
func (c *Clock) Stop() {
	c.running = false
}
