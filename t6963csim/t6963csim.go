// Package t6963csim is a software T6963C for tests and demos.
//
// Panel implements t6963c.Bus. It decodes bus cycles the way the controller
// does, latching the data lines on the rising edge of CE while WR is low,
// and keeps the resulting display memory, registers and cursor. Misuse of
// the protocol is recorded in Violations rather than corrupting memory
// silently.
package t6963csim

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/t6963c"
)

// MemSize is the size of the display memory.
const MemSize = 0x10000

// Panel is a simulated T6963C with its text grid size.
type Panel struct {
	Rows, Columns int

	// Violations lists protocol errors seen on the bus.
	Violations []string
	// Commands lists every command byte received, in order.
	Commands []byte
	// AutoWrites counts data bytes written in auto-write mode.
	AutoWrites int
	// Strobes counts latched bus cycles.
	Strobes int

	mem []byte

	level  [5]gpio.Level
	output [5]bool
	dataOK bool
	data   byte

	args []byte
	auto bool

	addr                     uint16
	cursorRow, cursorCol     byte
	textHome, textArea       uint16
	graphicHome, graphicArea uint16
	mode, display, cursor    byte
}

// NewPanel returns a Panel for a rows×columns text display.
func NewPanel(rows, columns int) *Panel {
	return &Panel{
		Rows:    rows,
		Columns: columns,
		mem:     make([]byte, MemSize),
	}
}

// Output implements t6963c.Bus.
func (p *Panel) Output(l t6963c.Line) error {
	if int(l) >= len(p.output) {
		return fmt.Errorf("t6963csim: unknown line %s", l)
	}
	p.output[l] = true
	p.level[l] = gpio.High
	return nil
}

// Set implements t6963c.Bus.
func (p *Panel) Set(l t6963c.Line, level gpio.Level) error {
	if int(l) >= len(p.output) {
		return fmt.Errorf("t6963csim: unknown line %s", l)
	}
	if !p.output[l] {
		return fmt.Errorf("t6963csim: %s is not an output", l)
	}
	prev := p.level[l]
	p.level[l] = level
	switch {
	case l == t6963c.RST && level == gpio.Low:
		p.reset()
	case l == t6963c.CE && prev == gpio.Low && level == gpio.High:
		p.latch()
	}
	return nil
}

// DataOutput implements t6963c.Bus.
func (p *Panel) DataOutput() error {
	p.dataOK = true
	return nil
}

// Data implements t6963c.Bus.
func (p *Panel) Data(b byte) error {
	if !p.dataOK {
		return fmt.Errorf("t6963csim: data bus is not an output")
	}
	p.data = b
	return nil
}

func (p *Panel) reset() {
	p.args = p.args[:0]
	p.auto = false
	p.addr = 0
	p.cursorRow, p.cursorCol = 0, 0
	p.mode, p.display, p.cursor = 0, 0, 0
}

func (p *Panel) latch() {
	if p.level[t6963c.RST] == gpio.Low {
		return
	}
	if p.level[t6963c.WR] != gpio.Low || p.level[t6963c.RD] != gpio.High {
		p.violate("CE strobe without a write cycle")
		return
	}
	p.Strobes++
	if p.level[t6963c.CD] == gpio.High {
		p.command(p.data)
		return
	}
	if p.auto {
		p.mem[p.addr] = p.data
		p.addr++
		p.AutoWrites++
		return
	}
	if len(p.args) == 2 {
		p.violate(fmt.Sprintf("data byte 0x%02X exceeds two command arguments", p.data))
		p.args = p.args[1:]
	}
	p.args = append(p.args, p.data)
}

func (p *Panel) command(c byte) {
	p.Commands = append(p.Commands, c)
	args := p.args
	p.args = nil

	if p.auto && c != 0xB2 {
		p.violate(fmt.Sprintf("command 0x%02X during auto-write", c))
		return
	}

	need := 0
	if c == 0x21 || c == 0x24 || c >= 0x40 && c <= 0x43 {
		need = 2
	}
	if len(args) != need {
		p.violate(fmt.Sprintf("command 0x%02X with %d arguments, want %d", c, len(args), need))
		return
	}

	switch {
	case c == 0x21:
		p.cursorCol, p.cursorRow = args[0], args[1]
	case c == 0x24:
		p.addr = word(args)
	case c == 0x40:
		p.textHome = word(args)
	case c == 0x41:
		p.textArea = word(args)
	case c == 0x42:
		p.graphicHome = word(args)
	case c == 0x43:
		p.graphicArea = word(args)
	case c&0xF0 == 0x80:
		p.mode = c
	case c&0xF0 == 0x90:
		p.display = c
	case c >= 0xA0 && c <= 0xA7:
		p.cursor = c
	case c == 0xB0:
		p.auto = true
	case c == 0xB2:
		if !p.auto {
			p.violate("auto reset outside auto-write")
		}
		p.auto = false
	default:
		p.violate(fmt.Sprintf("unsupported command 0x%02X", c))
	}
}

func (p *Panel) violate(msg string) {
	p.Violations = append(p.Violations, msg)
}

func word(args []byte) uint16 {
	return uint16(args[0]) | uint16(args[1])<<8
}

// Auto reports whether the controller is in auto-write mode.
func (p *Panel) Auto() bool {
	return p.auto
}

// Address returns the address pointer.
func (p *Panel) Address() uint16 {
	return p.addr
}

// Cursor returns the cursor position.
func (p *Panel) Cursor() (row, col int) {
	return int(p.cursorRow), int(p.cursorCol)
}

// Mem returns the byte of display memory at addr.
func (p *Panel) Mem(addr uint16) byte {
	return p.mem[addr]
}

// Registers returns the text and graphic home and area registers.
func (p *Panel) Registers() (textHome, textArea, graphicHome, graphicArea uint16) {
	return p.textHome, p.textArea, p.graphicHome, p.graphicArea
}

// Mode returns the last mode set, display mode and cursor pattern commands.
func (p *Panel) Mode() (mode, display, cursor byte) {
	return p.mode, p.display, p.cursor
}

// Code returns the character ROM code of the cell at (row, col).
func (p *Panel) Code(row, col int) byte {
	return p.mem[p.cell(p.textHome, p.textArea, row, col)]
}

// Attr returns the attribute of the cell at (row, col).
func (p *Panel) Attr(row, col int) t6963c.Attr {
	return t6963c.Attr(p.mem[p.cell(p.graphicHome, p.graphicArea, row, col)])
}

// Row returns the text of row as ASCII.
func (p *Panel) Row(row int) string {
	var sb strings.Builder
	for col := 0; col < p.Columns; col++ {
		sb.WriteByte(p.Code(row, col) + 0x20)
	}
	return sb.String()
}

// Text returns every row of the text plane.
func (p *Panel) Text() []string {
	rows := make([]string, p.Rows)
	for i := range rows {
		rows[i] = p.Row(i)
	}
	return rows
}

func (p *Panel) cell(home, area uint16, row, col int) uint16 {
	return home + uint16(row)*area + uint16(col)
}
