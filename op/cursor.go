package op

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("read out of bounds")
	ErrMalformedRecord = errors.New("malformed record")
)

// Cursor reads an immutable image buffer. Every read is bounds checked.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte, pos uint32) *Cursor {
	return &Cursor{buf: buf, pos: int(pos)}
}

// Pos returns the current offset.
func (c *Cursor) Pos() uint32 { return uint32(c.pos) }

// SetPos moves the cursor to an absolute offset.
func (c *Cursor) SetPos(pos uint32) error {
	if int(pos) > len(c.buf) {
		return fmt.Errorf("seek 0x%04x past end 0x%04x: %w", pos, len(c.buf), ErrOutOfBounds)
	}
	c.pos = int(pos)
	return nil
}

// EOF reports whether the cursor reached the end of the buffer.
func (c *Cursor) EOF() bool { return c.pos >= len(c.buf) }

func (c *Cursor) need(n int) error {
	if c.pos < 0 || c.pos+n > len(c.buf) {
		return fmt.Errorf("read %d bytes at 0x%04x, image is 0x%04x bytes: %w", n, c.pos, len(c.buf), ErrOutOfBounds)
	}
	return nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *Cursor) ReadShort() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := Endian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadWord() (uint32, error) {
	if err := c.need(WordSize); err != nil {
		return 0, err
	}
	v := Endian.Uint32(c.buf[c.pos:])
	c.pos += WordSize
	return v, nil
}

// ReadCString reads up to and including the next NUL byte.
func (c *Cursor) ReadCString() (string, error) {
	if err := c.need(0); err != nil {
		return "", err
	}
	i := bytes.IndexByte(c.buf[c.pos:], 0)
	if i == -1 {
		return "", fmt.Errorf("unterminated string at 0x%04x: %w", c.pos, ErrMalformedRecord)
	}
	s := string(c.buf[c.pos : c.pos+i])
	c.pos += i + 1
	return s, nil
}

// Expect reads the record tag at the cursor and fails unless it matches.
func (c *Cursor) Expect(tag byte) error {
	at := c.pos
	b, err := c.ReadByte()
	if err != nil {
		return err
	}
	if b != tag {
		return fmt.Errorf("tag 0x%02x at 0x%04x, expected 0x%02x: %w", b, at, tag, ErrMalformedRecord)
	}
	return nil
}
