// Package terminal provides a growable text buffer for feeding a character
// display, in the manner of a unix-like terminal scrollback.
//
// Text may only be added at the tail and removed from the tail (Discard) or
// from the head (TrimFirstLine). Every mutation made through Append,
// AppendByte, Write or Discard calls the change callback, which lets a
// display redraw itself whenever the content changes:
//
//	buf, _ := terminal.New(&terminal.Opts{Capacity: 64})
//	buf.SetOnChange(func(b *terminal.Buffer) {
//		fmt.Printf("%d lines\n", terminal.LinesNeeded(b.Bytes(), 40))
//	})
//	buf.Append("hello\n")
//	fmt.Fprintf(buf, "uptime %ds\n", 42)
//
// # Line wrapping
//
// A display row of width W holds W-1 characters; the last cell of every
// physical row is left blank. A '\n' always starts a new row, and the
// character following a full row starts the next one. LinesNeeded and
// DiscardFirstLine implement this rule and it is the rule the t6963c
// renderer draws with, so content that LinesNeeded says fits in N rows is
// drawn in at most N rows.
//
//	W = 4
//	"abcdef"   -> "abc" "def"       (2 rows)
//	"ab\ncd"   -> "ab"  "cd"        (2 rows)
//	"abc\n"    -> "abc" ""          (2 rows)
package terminal
