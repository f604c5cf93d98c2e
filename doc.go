// Package t6963c controls a T6963C character LCD over its 8-bit parallel bus.
//
// The T6963C is a dot-matrix LCD controller found on many 240×128 and
// 160×128 modules. This driver runs it in text attribute mode with the
// internal character ROM: a grid of character cells (40×16 by default)
// and a parallel attribute plane giving each cell an invert, inhibit or
// blink attribute.
//
// # Display Characteristics
//
// - Text plane at address 0x0000, one byte per cell
// - Attribute plane at address 0x0300 (AttrHome)
// - 8-line block cursor, blinking
// - Write-only: the driver never reads the controller back
//
// # Hardware Connection
//
// The controller needs five control lines and an 8-bit data bus, all driven
// as outputs:
//
//	Display Pin → System Pin
//	GND         → GND
//	VDD         → 5V
//	/RESET      → GPIO
//	C/D         → GPIO
//	/CE         → GPIO
//	/RD         → GPIO
//	/WR         → GPIO
//	DB0..DB7    → 8 GPIOs
//	FS          → GND (8×8 font)
//
// Any wiring can be supported by implementing Bus. PinBus covers the common
// case of individual periph.io GPIO pins.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/t6963c"
//		"periph.io/x/devices/v3/t6963c/terminal"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		bus := &t6963c.PinBus{
//			RST: gpioreg.ByName("GPIO12"),
//			CD:  gpioreg.ByName("GPIO8"),
//			CE:  gpioreg.ByName("GPIO9"),
//			RD:  gpioreg.ByName("GPIO10"),
//			WR:  gpioreg.ByName("GPIO11"),
//			// DB: ...
//		}
//
//		// Reset and clear the display
//		dev, _ := t6963c.New(bus, &t6963c.Opts{Rows: 16, Columns: 40})
//
//		// Make the display follow a terminal buffer
//		buf, _ := terminal.New(nil)
//		dev.Attach(buf, nil)
//		buf.Append("hello, world\n")
//	}
//
// # Auto-write Mode
//
// Bulk writes to display memory go through auto-write mode. Between
// StartAutoWrite and StopAutoWrite only AutoWrite and AutoWriteChar may be
// used; issuing a command, starting twice or stopping twice is a
// programming error and panics with an error wrapping ErrContract. So does
// writing a character outside printable ASCII.
//
//	dev.SetAddress(3, 0)
//	dev.StartAutoWrite()
//	for _, c := range []byte("status: ok") {
//		dev.AutoWriteChar(c)
//	}
//	dev.StopAutoWrite()
//
// WriteString does the same in one call.
//
// # Terminal Rendering
//
// RenderTerminal draws a terminal.Buffer on the whole display. When the
// text needs more rows than the display has, the oldest rows are removed
// from the buffer, which makes the display scroll. Every physical row shows
// Columns-1 characters; the last cell is kept blank.
//
// # Timing
//
// Every bus cycle holds CE low for 200ns and waits 200ns after it. A
// command is followed by a 60µs wait, entering and leaving auto-write by
// two. Auto-write data bytes settle for 6µs. These delays are spun on a
// Clock; SystemClock uses the Go runtime clock and TickClock a 16-bit
// hardware counter.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/Monochrome/Datasheet-T6963C.pdf
//
// Application note "Writing Software for T6963C based Graphic LCDs":
// https://www.sparkfun.com/datasheets/LCD/Monochrome/T6963C-AppNote.pdf
package t6963c
