package t6963c

import (
	"periph.io/x/devices/v3/t6963c/terminal"
)

// Terminal is the text source drawn by RenderTerminal. *terminal.Buffer
// implements it.
type Terminal interface {
	// Bytes returns the text to draw.
	Bytes() []byte
	// TrimFirstLine drops the first display row of the text.
	TrimFirstLine(rowWidth int)
}

// RenderTerminal draws t on the whole display, scrolling it first.
//
// While t needs more rows than the display has, its oldest row is dropped
// from t itself. The remaining text is drawn from the top left using the
// terminal package's wrapping rule: a row holds Columns-1 characters and its
// last cell is blank. The cursor is left after the last character and the
// rest of the display is blanked. t must only contain printable ASCII and
// '\n'; it is checked before anything is trimmed or drawn. On a bus error
// the auto-write session is closed before returning.
func (d *Dev) RenderTerminal(t Terminal) error {
	for _, c := range t.Bytes() {
		if c != '\n' {
			checkPrintable(c)
		}
	}

	// Scroll until the text fits.
	for terminal.LinesNeeded(t.Bytes(), d.cols) > d.rows {
		t.TrimFirstLine(d.cols)
	}
	text := t.Bytes()

	// Draw the text from the top left.
	if err := d.SetAddress(0, 0); err != nil {
		return err
	}
	row, col := 0, 0
	err := d.session(func() error {
		for _, c := range text {
			if c == '\n' {
				for ; col < d.cols; col++ {
					if err := d.AutoWriteChar(' '); err != nil {
						return err
					}
				}
				row, col = row+1, 0
				continue
			}
			if col == d.cols-1 {
				if err := d.AutoWriteChar(' '); err != nil {
					return err
				}
				row, col = row+1, 0
			}
			if err := d.AutoWriteChar(c); err != nil {
				return err
			}
			col++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := d.SetCursorAddress(row, col); err != nil {
		return err
	}

	// Blank the rest of the display.
	return d.session(func() error {
		for ; row < d.rows; row, col = row+1, 0 {
			for ; col < d.cols; col++ {
				if err := d.AutoWriteChar(' '); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Attach makes the display follow buf: every change to buf is rendered with
// RenderTerminal. Render errors are passed to onErr, which may be nil.
func (d *Dev) Attach(buf *terminal.Buffer, onErr func(error)) {
	buf.SetOnChange(func(b *terminal.Buffer) {
		if err := d.RenderTerminal(b); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
