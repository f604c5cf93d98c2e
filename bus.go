package t6963c

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Line identifies one of the T6963C control lines.
type Line uint8

// Control lines. All but RST are strobes or selects driven by the protocol;
// CE and WR are active low, C/D is High for a command byte.
const (
	RST Line = iota // Reset, active low
	CD              // Command/Data select
	CE              // Chip enable
	RD              // Read strobe
	WR              // Write strobe
)

var lineNames = [...]string{"RST", "C/D", "CE", "RD", "WR"}

func (l Line) String() string {
	if int(l) < len(lineNames) {
		return lineNames[l]
	}
	return fmt.Sprintf("Line(%d)", uint8(l))
}

// Lines lists every control line in the order Init configures them.
var Lines = []Line{RST, CD, CE, RD, WR}

// Bus is the parallel bus to the controller: five control lines and an
// 8-bit data bus. One implementation exists per board wiring.
type Bus interface {
	// Output configures line l as an output.
	Output(l Line) error
	// Set drives line l to level.
	Set(l Line, level gpio.Level) error
	// DataOutput configures the 8 data lines as outputs.
	DataOutput() error
	// Data places b on the data lines.
	Data(b byte) error
}

// PinBus is a Bus made of periph.io GPIO pins.
//
// Output drives a pin High, the inactive level of every control line; the
// periph.io gpio API configures direction and level in one call.
type PinBus struct {
	RST, CD, CE, RD, WR gpio.PinOut
	DB                  [8]gpio.PinOut // DB[0] is the least significant bit
}

// Output implements Bus.
func (p *PinBus) Output(l Line) error {
	return p.Set(l, gpio.High)
}

// Set implements Bus.
func (p *PinBus) Set(l Line, level gpio.Level) error {
	pin := p.pin(l)
	if pin == nil {
		return fmt.Errorf("t6963c: %s pin not connected", l)
	}
	if err := pin.Out(level); err != nil {
		return fmt.Errorf("t6963c: failed to pull %s %s: %w", l, level, err)
	}
	return nil
}

// DataOutput implements Bus.
func (p *PinBus) DataOutput() error {
	return p.Data(0)
}

// Data implements Bus.
func (p *PinBus) Data(b byte) error {
	for i, pin := range p.DB {
		if pin == nil {
			return fmt.Errorf("t6963c: DB%d pin not connected", i)
		}
		if err := pin.Out(gpio.Level(b&(1<<i) != 0)); err != nil {
			return fmt.Errorf("t6963c: failed to drive DB%d: %w", i, err)
		}
	}
	return nil
}

func (p *PinBus) pin(l Line) gpio.PinOut {
	switch l {
	case RST:
		return p.RST
	case CD:
		return p.CD
	case CE:
		return p.CE
	case RD:
		return p.RD
	case WR:
		return p.WR
	}
	return nil
}
