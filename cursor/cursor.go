// Package cursor implements a position-tracked byte buffer with an endian
// mode, typed readers/writers, and the wide-string codecs the console save
// formats embed (length-prefixed UTF-16, fixed-width NUL-padded UTF-16 and
// UTF-32). It is the foundation every other package in this module reads
// and writes through.
package cursor

import (
	"encoding/binary"

	"github.com/lce-tools/lcesave/lceerr"
)

// Order selects how multi-byte integers and wide-string code units are
// interpreted.
type Order int

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) byteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Cursor is a read/write position over an owned byte buffer.
type Cursor struct {
	buf   []byte
	pos   int
	order Order
}

// New wraps buf in a Cursor positioned at 0, defaulting to big-endian (the
// mode every console header in this module starts in).
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Bytes returns the underlying buffer. Callers must not retain it past the
// Cursor's lifetime if they intend to keep mutating through the Cursor.
func (c *Cursor) Bytes() []byte { return c.buf }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

func (c *Cursor) Order() Order { return c.order }

func (c *Cursor) SetOrder(o Order) { c.order = o }

// Position returns the current offset.
func (c *Cursor) Position() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Eof reports whether the cursor is at or past the end of the buffer.
func (c *Cursor) Eof() bool { return c.pos >= len(c.buf) }

// Seek moves to an absolute offset.
func (c *Cursor) Seek(abs int) error {
	if abs < 0 || abs > len(c.buf) {
		return lceerr.New(lceerr.OutOfBounds, "Cursor.Seek", nil)
	}
	c.pos = abs
	return nil
}

// Skip moves the cursor by a signed delta relative to its current position.
func (c *Cursor) Skip(delta int) error {
	return c.Seek(c.pos + delta)
}

func (c *Cursor) require(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return lceerr.New(lceerr.OutOfBounds, "Cursor.require", nil)
	}
	return nil
}

// ReadSlice returns a view into the underlying buffer of the next n bytes
// and advances the cursor past them. The returned slice aliases the
// Cursor's buffer.
func (c *Cursor) ReadSlice(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	s := c.buf[c.pos : c.pos+n]
	c.pos += n
	return s, nil
}

// ReadInto copies exactly len(dst) bytes into dst and advances the cursor.
func (c *Cursor) ReadInto(dst []byte) error {
	s, err := c.ReadSlice(len(dst))
	if err != nil {
		return err
	}
	copy(dst, s)
	return nil
}

// ReadFixedASCII reads n bytes and returns them as a string with trailing
// NUL bytes trimmed (used for STFS file-entry names and PNG chunk types).
func (c *Cursor) ReadFixedASCII(n int) (string, error) {
	s, err := c.ReadSlice(n)
	if err != nil {
		return "", err
	}
	end := len(s)
	for end > 0 && s[end-1] == 0 {
		end--
	}
	return string(s[:end]), nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := c.order.byteOrder().Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadUint24 reads a 24-bit integer, big-endian by default unless little is
// set (spec: "24-bit reads are big-endian by default with an optional
// little-endian flag").
func (c *Cursor) ReadUint24(little bool) (uint32, error) {
	s, err := c.ReadSlice(3)
	if err != nil {
		return 0, err
	}
	if little {
		return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16, nil
	}
	return uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2]), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := c.order.byteOrder().Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadUint64() (uint64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := c.order.byteOrder().Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}
