package t6963c

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"
)

// fakeCounter advances by one tick per Count call.
type fakeCounter struct {
	ticks   uint16
	running bool
	starts  int
}

func (c *fakeCounter) Start() {
	c.ticks = 0
	c.running = true
	c.starts++
}

func (c *fakeCounter) Count() uint16 {
	if c.running {
		c.ticks++
	}
	return c.ticks
}

func (c *fakeCounter) Stop() {
	c.running = false
}

func TestTickClockElapsed(t *testing.T) {
	tests := []struct {
		name  string
		freq  physic.Frequency
		ticks int
		want  time.Duration
	}{
		{"40MHz one tick", 40 * physic.MegaHertz, 1, 25 * time.Nanosecond},
		{"40MHz eight ticks", 40 * physic.MegaHertz, 8, 200 * time.Nanosecond},
		{"1MHz", physic.MegaHertz, 3, 3 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &TickClock{Counter: &fakeCounter{}, Freq: tt.freq}
			c.Start()
			var got time.Duration
			for i := 0; i < tt.ticks; i++ {
				got = c.Elapsed()
			}
			c.Stop()
			if got != tt.want {
				t.Errorf("Elapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDelayTickClock(t *testing.T) {
	counter := &fakeCounter{}
	c := &TickClock{Counter: counter, Freq: 40 * physic.MegaHertz}

	delay(c, commandDelay)
	if counter.ticks != 2400 {
		t.Errorf("delay(60µs) took %d ticks, want 2400", counter.ticks)
	}
	if counter.running {
		t.Error("delay should stop the counter")
	}
	delay(c, strobeHold)
	if counter.ticks != 8 {
		t.Errorf("delay(200ns) took %d ticks, want 8", counter.ticks)
	}
	if counter.starts != 2 {
		t.Errorf("counter started %d times, want 2", counter.starts)
	}
}

func TestDelaySystemClock(t *testing.T) {
	c := &SystemClock{}
	start := time.Now()
	delay(c, commandDelay)
	if elapsed := time.Since(start); elapsed < commandDelay {
		t.Errorf("delay(60µs) returned after %v", elapsed)
	}
}
