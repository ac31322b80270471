package uasset

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// Cursor reads little-endian primitives sequentially from a byte buffer.
// Reads never advance past the end of the buffer: a short read returns
// ErrUnexpectedEndOfData and leaves the position where it was.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the cursor to an absolute offset, as used when jumping to a
// table offset declared in the package summary.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("seek to %d outside buffer of %d bytes: %w", pos, len(c.data), ErrUnexpectedEndOfData)
	}
	c.pos = pos
	return nil
}

func (c *Cursor) Skip(n int) error {
	if n < 0 || n > len(c.data)-c.pos {
		return ErrUnexpectedEndOfData
	}
	c.pos += n
	return nil
}

// ReadBytes returns a view of the next n bytes. The slice aliases the
// underlying buffer; callers that keep it must copy. The count is
// compared against the remaining length so a huge corrupt n cannot
// overflow the bounds check.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(c.data)-c.pos {
		return nil, ErrUnexpectedEndOfData
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) ReadUint8() (uint8, error) {
	if c.pos+1 > len(c.data) {
		return 0, ErrUnexpectedEndOfData
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if c.pos+4 > len(c.data) {
		return 0, ErrUnexpectedEndOfData
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadUint64() (uint64, error) {
	if c.pos+8 > len(c.data) {
		return 0, ErrUnexpectedEndOfData
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadGUID reads a raw 16-byte GUID.
func (c *Cursor) ReadGUID() ([16]byte, error) {
	var g [16]byte
	b, err := c.ReadBytes(16)
	if err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// ReadFString reads a length-prefixed engine string. A positive length is
// that many UTF-8 bytes including a trailing NUL; a negative length is
// -length UTF-16LE code units including a trailing NUL unit; zero is the
// empty string with no further bytes consumed.
func (c *Cursor) ReadFString() (string, error) {
	length, err := c.ReadInt32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	if length < 0 {
		byteLen := int(-int64(length)) * 2
		b, err := c.ReadBytes(byteLen)
		if err != nil {
			return "", err
		}
		if byteLen >= 2 {
			b = b[:byteLen-2] // drop the NUL unit
		}
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
		if err != nil {
			return "", fmt.Errorf("decoding UTF-16 string: %w", err)
		}
		return string(decoded), nil
	}
	b, err := c.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	return string(b[:length-1]), nil // drop the NUL
}
