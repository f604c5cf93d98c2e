// Package t6963c controls a T6963C character LCD over its 8-bit parallel bus.
//
// The T6963C is a dot-matrix LCD controller with an internal character ROM.
// This driver runs it in text attribute mode: a text plane of character codes
// plus a parallel attribute plane (invert, inhibit, blink per cell).
//
// See the examples for how to use this package.
package t6963c

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Protocol timing.
const (
	strobeHold    = 200 * time.Nanosecond   // CE low, then CE high before the next byte
	commandDelay  = 60000 * time.Nanosecond // controller busy after a command
	autoWriteHold = 6000 * time.Nanosecond  // settle after an auto-write data byte
	resetCycles   = 10                      // RST held low for resetCycles*commandDelay
)

// Command bytes.
const (
	cmdCursorPointer  = 0x21
	cmdAddressPointer = 0x24
	cmdTextHome       = 0x40
	cmdTextArea       = 0x41
	cmdGraphicHome    = 0x42
	cmdGraphicArea    = 0x43
	cmdModeTextAttr   = 0x84 // text attribute mode, internal CG ROM
	cmdDisplayAll     = 0x9F // graphic, text, cursor and blink on
	cmdCursor8Line    = 0xA7
	cmdAutoWrite      = 0xB0
	cmdAutoReset      = 0xB2
)

// AttrHome is the address of the attribute plane. The text plane starts at
// address 0, so it must hold at most AttrHome cells.
const AttrHome = 0x0300

// Attr is a text attribute code stored in the attribute plane.
type Attr byte

// Text attributes.
const (
	AttrNormal       Attr = 0x00
	AttrInvert       Attr = 0x05
	AttrInhibit      Attr = 0x03
	AttrBlink        Attr = 0x08
	AttrBlinkInvert  Attr = 0x0D
	AttrBlinkInhibit Attr = 0x0B
)

// ErrContract is wrapped by the value of every panic raised for a protocol
// misuse, such as issuing a command while auto-write is active.
var ErrContract = errors.New("t6963c: protocol contract violation")

// Opts is the configuration for the T6963C display.
type Opts struct {
	Rows    int   // Text rows (default: 16)
	Columns int   // Text columns (default: 40, 2 to 255)
	Clock   Clock // Delay clock (default: SystemClock)
}

// Dev is the device handle for the T6963C display.
//
// A Dev is not safe for concurrent use: the bus and the auto-write state are
// a single resource and every transaction depends on strict program order.
type Dev struct {
	bus  Bus
	clk  Clock
	rows int
	cols int

	// streaming is true between StartAutoWrite and StopAutoWrite.
	streaming bool
}

// New creates a new T6963C device on bus and initializes it.
//
// opts can be nil to use defaults (16x40 text, system clock).
func New(bus Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{Rows: 16, Columns: 40}
	}
	if opts.Rows <= 0 || opts.Rows > 255 {
		return nil, errors.New("t6963c: rows must be between 1 and 255")
	}
	if opts.Columns < 2 || opts.Columns > 255 {
		return nil, errors.New("t6963c: columns must be between 2 and 255")
	}
	if opts.Rows*opts.Columns > AttrHome {
		return nil, fmt.Errorf("t6963c: %dx%d text plane overlaps the attribute plane", opts.Rows, opts.Columns)
	}

	clk := opts.Clock
	if clk == nil {
		clk = &SystemClock{}
	}

	d := &Dev{
		bus:  bus,
		clk:  clk,
		rows: opts.Rows,
		cols: opts.Columns,
	}

	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init resets the controller and sets it up for text attribute mode, then
// clears both planes.
func (d *Dev) Init() error {
	w := busWriter{bus: d.bus}
	for _, l := range Lines {
		w.output(l)
	}
	w.dataOutput()

	w.set(WR, gpio.High)
	w.set(RD, gpio.High)
	w.set(CD, gpio.High)
	w.set(CE, gpio.High)
	// Hold the controller in reset while the bus settles.
	w.set(RST, gpio.Low)
	if w.err != nil {
		return fmt.Errorf("t6963c: failed to configure bus: %w", w.err)
	}
	for i := 0; i < resetCycles; i++ {
		delay(d.clk, commandDelay)
	}
	if err := d.bus.Set(RST, gpio.High); err != nil {
		return fmt.Errorf("t6963c: failed to pull RST high: %w", err)
	}
	d.streaming = false

	// Text plane at 0, attribute plane at AttrHome, both one row per
	// display row.
	cols := byte(d.cols)
	cmds := []struct {
		cmd  byte
		data []byte
	}{
		{cmdTextHome, []byte{0x00, 0x00}},
		{cmdTextArea, []byte{cols, 0x00}},
		{cmdGraphicHome, []byte{AttrHome & 0xFF, AttrHome >> 8}},
		{cmdGraphicArea, []byte{cols, 0x00}},
		{cmdModeTextAttr, nil},
		{cmdDisplayAll, nil},
		{cmdCursor8Line, nil},
	}
	for _, c := range cmds {
		if err := d.WriteCommand(c.cmd, c.data...); err != nil {
			return err
		}
	}

	// Wipe whatever was left in display memory.
	if err := d.Clear(); err != nil {
		return err
	}
	return d.SetAddress(0, 0)
}

// WriteByte performs one bus write cycle. command selects a command byte
// (C/D High) rather than a data byte.
//
// Command bytes must not be written while auto-write is active.
func (d *Dev) WriteByte(command bool, b byte) error {
	if command && d.streaming {
		contract("command 0x%02X written during auto-write", b)
	}
	return d.strobe(command, b, strobeHold)
}

// WriteCommand writes up to two data bytes followed by cmd, then waits for
// the controller to execute it.
func (d *Dev) WriteCommand(cmd byte, data ...byte) error {
	if d.streaming {
		contract("command 0x%02X issued during auto-write", cmd)
	}
	if len(data) > 2 {
		contract("command 0x%02X given %d data bytes", cmd, len(data))
	}
	for _, b := range data {
		if err := d.strobe(false, b, strobeHold); err != nil {
			return err
		}
	}
	if err := d.strobe(true, cmd, strobeHold); err != nil {
		return err
	}
	delay(d.clk, commandDelay)
	return nil
}

// StartAutoWrite enters auto-write mode. Until StopAutoWrite, only
// AutoWrite and AutoWriteChar may be used.
func (d *Dev) StartAutoWrite() error {
	if d.streaming {
		contract("auto-write already active")
	}
	if err := d.strobe(true, cmdAutoWrite, strobeHold); err != nil {
		return err
	}
	delay(d.clk, commandDelay)
	delay(d.clk, commandDelay)
	d.streaming = true
	return nil
}

// StopAutoWrite leaves auto-write mode. The session is over even when the
// bus fails.
func (d *Dev) StopAutoWrite() error {
	if !d.streaming {
		contract("auto-write not active")
	}
	err := d.strobe(true, cmdAutoReset, strobeHold)
	d.streaming = false
	if err != nil {
		return err
	}
	delay(d.clk, commandDelay)
	delay(d.clk, commandDelay)
	return nil
}

// Streaming reports whether auto-write mode is active.
func (d *Dev) Streaming() bool {
	return d.streaming
}

// AutoWrite writes b at the address pointer, which the controller then
// increments.
func (d *Dev) AutoWrite(b byte) error {
	if !d.streaming {
		contract("auto-write data 0x%02X outside auto-write", b)
	}
	return d.strobe(false, b, autoWriteHold)
}

// AutoWriteChar writes the printable ASCII character c (0x20 to 0x7E) as a
// character ROM code.
func (d *Dev) AutoWriteChar(c byte) error {
	checkPrintable(c)
	return d.AutoWrite(c - 0x20)
}

// WriteString writes s at the address pointer in one auto-write session.
// s must be printable ASCII.
func (d *Dev) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		checkPrintable(s[i])
	}
	return d.session(func() error {
		for i := 0; i < len(s); i++ {
			if err := d.AutoWriteChar(s[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetAddress sets the address pointer to a cell of the text plane.
func (d *Dev) SetAddress(row, col int) error {
	if err := d.checkCell(row, col); err != nil {
		return err
	}
	return d.setPointer(uint16(row*d.cols + col))
}

// SetCursorAddress moves the cursor to (row, col).
func (d *Dev) SetCursorAddress(row, col int) error {
	if err := d.checkCell(row, col); err != nil {
		return err
	}
	return d.WriteCommand(cmdCursorPointer, byte(col), byte(row))
}

// Clear blanks the text plane, resets the attribute plane to AttrNormal and
// homes the cursor.
func (d *Dev) Clear() error {
	n := d.rows * d.cols
	if err := d.SetAddress(0, 0); err != nil {
		return err
	}
	if err := d.fill(0x00, n); err != nil {
		return err
	}
	if err := d.setPointer(AttrHome); err != nil {
		return err
	}
	if err := d.fill(byte(AttrNormal), n); err != nil {
		return err
	}
	return d.SetCursorAddress(0, 0)
}

// SetAttr sets the attribute of n cells starting at (row, col), continuing
// on the following rows.
func (d *Dev) SetAttr(row, col, n int, a Attr) error {
	if err := d.checkCell(row, col); err != nil {
		return err
	}
	start := row*d.cols + col
	if n < 0 || start+n > d.rows*d.cols {
		return errors.New("t6963c: attribute run out of range")
	}
	if err := d.setPointer(uint16(AttrHome + start)); err != nil {
		return err
	}
	return d.fill(byte(a), n)
}

// Rows returns the number of text rows.
func (d *Dev) Rows() int {
	return d.rows
}

// Columns returns the number of text columns.
func (d *Dev) Columns() int {
	return d.cols
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("t6963c.Dev{%dx%d}", d.cols, d.rows)
}

func (d *Dev) setPointer(addr uint16) error {
	return d.WriteCommand(cmdAddressPointer, byte(addr), byte(addr>>8))
}

func (d *Dev) checkCell(row, col int) error {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return fmt.Errorf("t6963c: cell (%d, %d) out of range for %dx%d display", row, col, d.rows, d.cols)
	}
	return nil
}

// fill auto-writes n copies of b.
func (d *Dev) fill(b byte, n int) error {
	return d.session(func() error {
		for i := 0; i < n; i++ {
			if err := d.AutoWrite(b); err != nil {
				return err
			}
		}
		return nil
	})
}

// session runs write inside one auto-write session. If write fails the
// session is still closed, so the device accepts commands again.
func (d *Dev) session(write func() error) error {
	if err := d.StartAutoWrite(); err != nil {
		return err
	}
	if err := write(); err != nil {
		_ = d.StopAutoWrite()
		return err
	}
	return d.StopAutoWrite()
}

// strobe places b on the bus and pulses CE, then waits settle.
func (d *Dev) strobe(command bool, b byte, settle time.Duration) error {
	w := busWriter{bus: d.bus}
	w.set(CD, gpio.Level(command))
	w.set(WR, gpio.Low)
	w.data(b)
	w.set(CE, gpio.Low)
	if w.err != nil {
		return w.err
	}
	delay(d.clk, strobeHold)
	w.set(CE, gpio.High)
	w.set(WR, gpio.High)
	if w.err != nil {
		return w.err
	}
	delay(d.clk, settle)
	return nil
}

// busWriter issues bus operations until the first error.
type busWriter struct {
	bus Bus
	err error
}

func (w *busWriter) output(l Line) {
	if w.err == nil {
		w.err = w.bus.Output(l)
	}
}

func (w *busWriter) dataOutput() {
	if w.err == nil {
		w.err = w.bus.DataOutput()
	}
}

func (w *busWriter) set(l Line, level gpio.Level) {
	if w.err == nil {
		w.err = w.bus.Set(l, level)
	}
}

func (w *busWriter) data(b byte) {
	if w.err == nil {
		w.err = w.bus.Data(b)
	}
}

func checkPrintable(c byte) {
	if c < 0x20 || c > 0x7E {
		contract("character 0x%02X is not printable ASCII", c)
	}
}

func contract(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrContract}, args...)...))
}
