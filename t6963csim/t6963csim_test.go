package t6963csim

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/t6963c"
)

// ready returns a panel with every line configured and idle.
func ready(t *testing.T) *Panel {
	t.Helper()
	p := NewPanel(2, 4)
	for _, l := range t6963c.Lines {
		if err := p.Output(l); err != nil {
			t.Fatalf("Output(%s) error = %v", l, err)
		}
	}
	if err := p.DataOutput(); err != nil {
		t.Fatalf("DataOutput() error = %v", err)
	}
	return p
}

// cycle latches b as a command or data byte.
func cycle(p *Panel, command bool, b byte) {
	_ = p.Set(t6963c.CD, gpio.Level(command))
	_ = p.Set(t6963c.WR, gpio.Low)
	_ = p.Data(b)
	_ = p.Set(t6963c.CE, gpio.Low)
	_ = p.Set(t6963c.CE, gpio.High)
	_ = p.Set(t6963c.WR, gpio.High)
}

func TestPanelLatchesOnCERisingEdge(t *testing.T) {
	p := ready(t)
	_ = p.Set(t6963c.CD, gpio.Low)
	_ = p.Set(t6963c.WR, gpio.Low)
	_ = p.Data(0x12)
	_ = p.Set(t6963c.CE, gpio.Low)
	if p.Strobes != 0 {
		t.Fatal("byte latched on the falling edge of CE")
	}
	// The data lines may change until CE rises.
	_ = p.Data(0x34)
	_ = p.Set(t6963c.CE, gpio.High)
	if p.Strobes != 1 {
		t.Fatalf("Strobes = %d, want 1", p.Strobes)
	}
	cycle(p, false, 0x01)
	cycle(p, true, 0x24)
	if p.Address() != 0x0134 {
		t.Errorf("Address() = 0x%04X, want 0x0134", p.Address())
	}
	if len(p.Violations) != 0 {
		t.Errorf("Violations = %v", p.Violations)
	}
}

func TestPanelAutoWrite(t *testing.T) {
	p := ready(t)
	cycle(p, false, 0x04)
	cycle(p, false, 0x00)
	cycle(p, true, 0x24)
	cycle(p, true, 0xB0)
	for _, b := range []byte{0x21, 0x22, 0x23} {
		cycle(p, false, b)
	}
	cycle(p, true, 0xB2)

	if p.Auto() {
		t.Error("auto-write still active")
	}
	if p.AutoWrites != 3 {
		t.Errorf("AutoWrites = %d, want 3", p.AutoWrites)
	}
	for i, want := range []byte{0x21, 0x22, 0x23} {
		if got := p.Mem(uint16(4 + i)); got != want {
			t.Errorf("Mem(%d) = 0x%02X, want 0x%02X", 4+i, got, want)
		}
	}
	if p.Address() != 7 {
		t.Errorf("Address() = %d, want 7", p.Address())
	}
}

func TestPanelText(t *testing.T) {
	p := ready(t)
	cycle(p, false, 0x00)
	cycle(p, false, 0x00)
	cycle(p, true, 0x40)
	cycle(p, false, 4)
	cycle(p, false, 0x00)
	cycle(p, true, 0x41)
	cycle(p, false, 0x00)
	cycle(p, false, 0x00)
	cycle(p, true, 0x24)
	cycle(p, true, 0xB0)
	for _, c := range []byte("abc de") {
		cycle(p, false, c-0x20)
	}
	cycle(p, true, 0xB2)

	want := []string{"abc ", "de  "}
	for i, row := range p.Text() {
		if row != want[i] {
			t.Errorf("Row(%d) = %q, want %q", i, row, want[i])
		}
	}
}

func TestPanelViolations(t *testing.T) {
	tests := []struct {
		name string
		run  func(p *Panel)
	}{
		{"command during auto-write", func(p *Panel) {
			cycle(p, true, 0xB0)
			cycle(p, false, 0)
			cycle(p, false, 0)
			cycle(p, true, 0x24)
		}},
		{"auto reset while idle", func(p *Panel) { cycle(p, true, 0xB2) }},
		{"missing arguments", func(p *Panel) {
			cycle(p, false, 0)
			cycle(p, true, 0x21)
		}},
		{"unexpected arguments", func(p *Panel) {
			cycle(p, false, 0)
			cycle(p, true, 0x9F)
		}},
		{"three arguments", func(p *Panel) {
			cycle(p, false, 0)
			cycle(p, false, 0)
			cycle(p, false, 0)
		}},
		{"unsupported command", func(p *Panel) { cycle(p, true, 0xE0) }},
		{"strobe without write", func(p *Panel) {
			_ = p.Set(t6963c.CE, gpio.Low)
			_ = p.Set(t6963c.CE, gpio.High)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ready(t)
			tt.run(p)
			if len(p.Violations) == 0 {
				t.Error("expected a violation")
			}
		})
	}
}

func TestPanelReset(t *testing.T) {
	p := ready(t)
	cycle(p, true, 0xB0)
	_ = p.Set(t6963c.RST, gpio.Low)
	if p.Auto() {
		t.Error("reset should leave auto-write")
	}
	cycle(p, true, 0x9F)
	if len(p.Commands) != 1 {
		t.Errorf("Commands = %v, bytes latched while in reset", p.Commands)
	}
	_ = p.Set(t6963c.RST, gpio.High)
	cycle(p, true, 0x9F)
	if _, display, _ := p.Mode(); display != 0x9F {
		t.Errorf("display mode = 0x%02X, want 0x9F", display)
	}
}

func TestPanelRequiresOutputs(t *testing.T) {
	p := NewPanel(1, 2)
	if err := p.Set(t6963c.CE, gpio.Low); err == nil {
		t.Error("Set before Output should fail")
	}
	if err := p.Data(0); err == nil {
		t.Error("Data before DataOutput should fail")
	}
	if err := p.Output(t6963c.Line(9)); err == nil {
		t.Error("Output on an unknown line should fail")
	}
}

func TestClock(t *testing.T) {
	c := &Clock{Step: 50 * time.Nanosecond}
	if c.Elapsed() != 0 {
		t.Error("Elapsed() should not advance before Start")
	}
	c.Start()
	c.Elapsed()
	if got := c.Elapsed(); got != 100*time.Nanosecond {
		t.Errorf("Elapsed() = %v, want 100ns", got)
	}
	c.Stop()
	if got := c.Elapsed(); got != 100*time.Nanosecond {
		t.Errorf("Elapsed() = %v after Stop, want 100ns", got)
	}
	c.Start()
	if got := c.Elapsed(); got != 50*time.Nanosecond {
		t.Errorf("Elapsed() = %v after restart, want 50ns", got)
	}
	if c.Total != 150*time.Nanosecond || c.Delays != 2 {
		t.Errorf("Total, Delays = %v, %d, want 150ns, 2", c.Total, c.Delays)
	}

	d := &Clock{}
	d.Start()
	if got := d.Elapsed(); got != 100*time.Nanosecond {
		t.Errorf("default step = %v, want 100ns", got)
	}
}
