package bytebuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
)

// Sentinel errors recorded by Buffer reads.
var (
	// ErrOutOfRange means a read or seek went past the end of the buffer window.
	ErrOutOfRange = errors.New("bytebuf: read out of range")
	// ErrStringIndex means a string reference pointed outside the string table.
	ErrStringIndex = errors.New("bytebuf: string index out of range")
)

// Reserved string references. Any other value indexes the string table.
const (
	NullString  = 65534
	EmptyString = 65533
)

// Buffer is a big-endian cursor over an immutable byte window.
//
// Reads never fail loudly: the first failure is recorded and every later
// read returns the zero value. Callers check Err once after a group of reads.
type Buffer struct {
	data []byte
	pos  int
	err  error

	// Strings is the table indexed by ReadS. Slices of a buffer share it.
	Strings []string
}

// New returns a Buffer over data that resolves string references in strings.
func New(data []byte, strings []string) *Buffer {
	return &Buffer{data: data, Strings: strings}
}

// Err returns the first read error, if any.
func (b *Buffer) Err() error {
	return b.err
}

// Len returns the size of the window.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.pos
}

// Position returns the cursor offset from the start of the window.
func (b *Buffer) Position() int {
	return b.pos
}

// SetPosition moves the cursor to an absolute offset.
func (b *Buffer) SetPosition(pos int) {
	if pos < 0 || pos > len(b.data) {
		b.fail(pos, 0)
		return
	}
	b.pos = pos
}

// Skip advances the cursor by n bytes.
func (b *Buffer) Skip(n int) {
	b.SetPosition(b.pos + n)
}

// Bytes returns the whole window. The result must not be modified.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Slice returns a child buffer over [pos, pos+length) sharing the string
// table. Reads through the child can never cross its end. A window that
// does not fit inside b yields a child whose error is already set.
func (b *Buffer) Slice(pos, length int) *Buffer {
	child := &Buffer{Strings: b.Strings}
	if pos < 0 || length < 0 || pos+length > len(b.data) {
		child.err = fmt.Errorf("%w: slice [%d:%d] of %d bytes", ErrOutOfRange, pos, pos+length, len(b.data))
		return child
	}
	child.data = b.data[pos : pos+length]
	return child
}

// Seek relocates the cursor to an optional block described by the index
// table at indexTablePos.
//
// The table is [segCount:uint8][useShort:uint8] followed by segCount
// offsets, int16 when useShort is 1 and int32 otherwise. Offsets are
// relative to indexTablePos and zero marks an absent block. Seek reports
// whether the block exists; when it does not, the cursor stays where it
// was. Blocks past segCount are absent, so writers may append blocks
// without breaking older readers.
func (b *Buffer) Seek(indexTablePos, block int) bool {
	if b.err != nil {
		return false
	}
	saved := b.pos
	b.SetPosition(indexTablePos)
	segCount := int(b.ReadUint8())
	if b.err != nil || block < 0 || block >= segCount {
		b.pos = saved
		return false
	}

	var offset int
	if b.ReadUint8() == 1 {
		b.Skip(2 * block)
		offset = int(b.ReadShort())
	} else {
		b.Skip(4 * block)
		offset = int(b.ReadInt())
	}
	if b.err != nil || offset <= 0 {
		b.pos = saved
		return false
	}

	target := indexTablePos + offset
	if target > len(b.data) {
		b.pos = saved
		b.fail(target, 0)
		return false
	}
	b.pos = target
	return true
}

func (b *Buffer) fail(pos, n int) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: need %d bytes at %d, window is %d", ErrOutOfRange, n, pos, len(b.data))
	}
}

// take returns the next n bytes and advances, or nil after recording a failure.
func (b *Buffer) take(n int) []byte {
	if b.err != nil {
		return nil
	}
	if n < 0 || b.pos+n > len(b.data) {
		b.fail(b.pos, n)
		return nil
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p
}

// ReadUint8 reads one byte.
func (b *Buffer) ReadUint8() uint8 {
	p := b.take(1)
	if p == nil {
		return 0
	}
	return p[0]
}

// ReadBool reads one byte and reports whether it is 1.
func (b *Buffer) ReadBool() bool {
	return b.ReadUint8() == 1
}

// ReadShort reads a signed 16-bit integer.
func (b *Buffer) ReadShort() int16 {
	return int16(b.ReadUshort())
}

// ReadUshort reads an unsigned 16-bit integer.
func (b *Buffer) ReadUshort() uint16 {
	p := b.take(2)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint16(p)
}

// ReadInt reads a signed 32-bit integer.
func (b *Buffer) ReadInt() int32 {
	return int32(b.ReadUint())
}

// ReadUint reads an unsigned 32-bit integer.
func (b *Buffer) ReadUint() uint32 {
	p := b.take(4)
	if p == nil {
		return 0
	}
	return binary.BigEndian.Uint32(p)
}

// ReadFloat reads an IEEE 754 single precision float.
func (b *Buffer) ReadFloat() float32 {
	return math.Float32frombits(b.ReadUint())
}

// ReadS reads a string-table reference. ok is false for the null reference.
func (b *Buffer) ReadS() (s string, ok bool) {
	idx := int(b.ReadUshort())
	if b.err != nil {
		return "", false
	}
	switch idx {
	case NullString:
		return "", false
	case EmptyString:
		return "", true
	}
	if idx >= len(b.Strings) {
		b.err = fmt.Errorf("%w: %d of %d at %d", ErrStringIndex, idx, len(b.Strings), b.pos-2)
		return "", false
	}
	return b.Strings[idx], true
}

// ReadString reads an inline [len:uint16][utf8] string.
func (b *Buffer) ReadString() string {
	n := int(b.ReadUshort())
	p := b.take(n)
	if p == nil {
		return ""
	}
	return string(p)
}

// ReadColor reads four bytes as R, G, B, A.
func (b *Buffer) ReadColor() color.RGBA {
	p := b.take(4)
	if p == nil {
		return color.RGBA{}
	}
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// ReadBytes reads n raw bytes. The result aliases the window.
func (b *Buffer) ReadBytes(n int) []byte {
	return b.take(n)
}
