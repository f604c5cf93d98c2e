package terminal

import (
	"bytes"
	"errors"
	"fmt"
)

// DefaultCapacity is the initial capacity used when Opts is nil.
const DefaultCapacity = 64

// ErrNoSpace is returned when growing a Buffer would exceed its Limit.
var ErrNoSpace = errors.New("terminal: no space left in buffer")

// Opts is the configuration for a Buffer.
type Opts struct {
	// Capacity is the initial storage size in bytes (default: DefaultCapacity
	// when Opts is nil; zero is allowed).
	Capacity int
	// Limit caps the storage a Buffer may ever hold. Zero means unlimited.
	Limit int
}

// Buffer is a growable character sequence with an optional change callback.
//
// The content never contains NUL bytes. Capacity only grows; it is tracked
// independently from the content length.
type Buffer struct {
	content  []byte
	capacity int
	limit    int
	onChange func(*Buffer)
	released bool
}

// New creates an empty Buffer.
//
// opts can be nil to use defaults (DefaultCapacity, unlimited).
func New(opts *Opts) (*Buffer, error) {
	if opts == nil {
		opts = &Opts{Capacity: DefaultCapacity}
	}
	if opts.Capacity < 0 {
		return nil, errors.New("terminal: capacity must not be negative")
	}
	if opts.Limit < 0 {
		return nil, errors.New("terminal: limit must not be negative")
	}
	if opts.Limit > 0 && opts.Capacity > opts.Limit {
		return nil, fmt.Errorf("terminal: capacity %d exceeds limit %d: %w", opts.Capacity, opts.Limit, ErrNoSpace)
	}
	return &Buffer{
		content:  make([]byte, 0, opts.Capacity),
		capacity: opts.Capacity,
		limit:    opts.Limit,
	}, nil
}

// SetOnChange installs fn as the change callback. fn is called once after
// every successful Append, AppendByte, Write or Discard. Pass nil to remove
// it.
func (b *Buffer) SetOnChange(fn func(*Buffer)) {
	b.onChange = fn
}

// Append appends s to the content. s is cut at its first NUL byte.
//
// If the content would overflow the capacity, the capacity grows by twice
// the appended length. On error the buffer is left unchanged.
func (b *Buffer) Append(s string) error {
	if i := indexNUL(s); i >= 0 {
		s = s[:i]
	}
	b.mustBeLive()
	if len(b.content)+len(s) > b.capacity {
		if err := b.grow(len(b.content)+len(s), b.capacity+2*len(s)); err != nil {
			return err
		}
	}
	b.content = append(b.content, s...)
	b.changed()
	return nil
}

// AppendByte appends a single character to the content. A NUL byte appends
// nothing.
//
// If the content would overflow the capacity, the capacity doubles.
func (b *Buffer) AppendByte(c byte) error {
	b.mustBeLive()
	if c != 0 && len(b.content)+1 > b.capacity {
		if err := b.grow(len(b.content)+1, max(b.capacity*2, 1)); err != nil {
			return err
		}
	}
	if c != 0 {
		b.content = append(b.content, c)
	}
	b.changed()
	return nil
}

// Write appends p to the content and implements io.Writer. Bytes following
// a NUL in p are dropped but still reported as written.
func (b *Buffer) Write(p []byte) (int, error) {
	s := p
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if err := b.Append(string(s)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Discard removes the last n characters, or all of them if there are fewer
// than n.
func (b *Buffer) Discard(n int) {
	b.mustBeLive()
	n = min(max(n, 0), len(b.content))
	b.content = b.content[:len(b.content)-n]
	b.changed()
}

// TrimFirstLine removes the first display row of the content for a row of
// rowWidth cells, as DiscardFirstLine does.
//
// Unlike the other mutators it does not call the change callback: it is
// meant to be used from within that callback to scroll the content.
func (b *Buffer) TrimFirstLine(rowWidth int) {
	b.mustBeLive()
	b.content = DiscardFirstLine(b.content, rowWidth)
}

// Bytes returns the content. The slice is only valid until the next
// mutation.
func (b *Buffer) Bytes() []byte {
	return b.content
}

// String returns a copy of the content.
func (b *Buffer) String() string {
	return string(b.content)
}

// Len returns the content length.
func (b *Buffer) Len() int {
	return len(b.content)
}

// Cap returns the current capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Release frees the storage. The Buffer must not be used afterwards.
func (b *Buffer) Release() {
	b.content = nil
	b.capacity = 0
	b.onChange = nil
	b.released = true
}

// grow reallocates the storage to hold capacity bytes, clamped to the
// limit. need is the minimum that has to fit.
func (b *Buffer) grow(need, capacity int) error {
	if b.limit > 0 {
		if need > b.limit {
			return ErrNoSpace
		}
		capacity = min(capacity, b.limit)
	}
	content := make([]byte, len(b.content), capacity)
	copy(content, b.content)
	b.content = content
	b.capacity = capacity
	return nil
}

func (b *Buffer) changed() {
	if b.onChange != nil {
		b.onChange(b)
	}
}

func (b *Buffer) mustBeLive() {
	if b.released {
		panic("terminal: use of released buffer")
	}
}

func indexNUL(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return i
		}
	}
	return -1
}

// rowChars is the number of characters a row of rowWidth cells holds.
func rowChars(rowWidth int) int {
	return max(rowWidth-1, 1)
}

// LinesNeeded returns the number of display rows of rowWidth cells needed
// to show text. It is at least 1, even for empty text.
func LinesNeeded(text []byte, rowWidth int) int {
	n := rowChars(rowWidth)
	lines, col := 1, 0
	for _, c := range text {
		switch {
		case c == '\n':
			lines++
			col = 0
		case col == n:
			// c opens the next row.
			lines++
			col = 1
		default:
			col++
		}
	}
	return lines
}

// DiscardFirstLine removes the first display row from text in place and
// returns the shortened slice. The row ends at a '\n' found among its
// rowWidth-1 characters or right after them, and that newline is removed
// with it. Without such a newline exactly rowWidth-1 characters (or all of
// text, if shorter) are removed.
func DiscardFirstLine(text []byte, rowWidth int) []byte {
	n := rowChars(rowWidth)
	if i := bytes.IndexByte(text[:min(n+1, len(text))], '\n'); i >= 0 {
		n = i + 1
	}
	n = min(n, len(text))
	copy(text, text[n:])
	return text[:len(text)-n]
}
