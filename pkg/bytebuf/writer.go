package bytebuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrTooLarge is recorded when a value does not fit its wire width.
var ErrTooLarge = errors.New("bytebuf: value too large for field")

// StringTable interns strings for ReadS references. One table is shared
// by every descriptor of a package.
type StringTable struct {
	list  []string
	index map[string]int
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Intern returns the index of s, adding it when missing.
func (t *StringTable) Intern(s string) int {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.list)
	t.list = append(t.list, s)
	t.index[s] = i
	return i
}

// List returns the interned strings in index order.
func (t *StringTable) List() []string {
	return t.list
}

// Writer builds big-endian payloads readable by Buffer.
// Like Buffer it keeps the first error and ignores writes that follow.
type Writer struct {
	buf     []byte
	strings *StringTable
	err     error
}

// NewWriter returns a Writer that interns strings into st.
// A nil st gives the writer a private table.
func NewWriter(st *StringTable) *Writer {
	if st == nil {
		st = NewStringTable()
	}
	return &Writer{strings: st}
}

// Bytes returns the written payload.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Err returns the first write error, if any.
func (w *Writer) Err() error { return w.err }

// Strings returns the string table used by WriteS.
func (w *Writer) Strings() *StringTable { return w.strings }

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *Writer) WriteShort(v int16) {
	w.WriteUshort(uint16(v))
}

func (w *Writer) WriteUshort(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// WriteCount writes n as an unsigned 16-bit count.
func (w *Writer) WriteCount(n int) {
	if n < 0 || n > math.MaxUint16 {
		w.setErr(fmt.Errorf("%w: count %d", ErrTooLarge, n))
		return
	}
	w.WriteUshort(uint16(n))
}

func (w *Writer) WriteInt(v int32) {
	w.WriteUint(uint32(v))
}

func (w *Writer) WriteUint(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteFloat(v float32) {
	w.WriteUint(math.Float32bits(v))
}

func (w *Writer) WriteColor(c color.RGBA) {
	w.buf = append(w.buf, c.R, c.G, c.B, c.A)
}

func (w *Writer) WriteBytes(p []byte) {
	w.buf = append(w.buf, p...)
}

// WriteS writes a string-table reference to s.
func (w *Writer) WriteS(s string) {
	if s == "" {
		w.WriteUshort(EmptyString)
		return
	}
	idx := w.strings.Intern(s)
	if idx >= EmptyString {
		w.setErr(fmt.Errorf("%w: string table holds %d entries", ErrTooLarge, idx+1))
		return
	}
	w.WriteUshort(uint16(idx))
}

// WriteNullS writes the null string reference.
func (w *Writer) WriteNullS() {
	w.WriteUshort(NullString)
}

// WriteOptionalS writes s, or the null reference when s is empty.
func (w *Writer) WriteOptionalS(s string) {
	if s == "" {
		w.WriteNullS()
		return
	}
	w.WriteS(s)
}

// WriteString writes an inline [len:uint16][utf8] string.
func (w *Writer) WriteString(s string) {
	if len(s) > math.MaxUint16 {
		w.setErr(fmt.Errorf("%w: inline string of %d bytes", ErrTooLarge, len(s)))
		return
	}
	w.WriteUshort(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

// BeginShortLen reserves a uint16 length prefix and returns its position.
func (w *Writer) BeginShortLen() int {
	at := len(w.buf)
	w.WriteUshort(0)
	return at
}

// EndShortLen fills the prefix reserved at at with the bytes written since.
func (w *Writer) EndShortLen(at int) {
	n := len(w.buf) - at - 2
	if n > math.MaxUint16 {
		w.setErr(fmt.Errorf("%w: segment of %d bytes", ErrTooLarge, n))
		return
	}
	binary.BigEndian.PutUint16(w.buf[at:], uint16(n))
}

// BeginIntLen reserves an int32 length prefix and returns its position.
func (w *Writer) BeginIntLen() int {
	at := len(w.buf)
	w.WriteInt(0)
	return at
}

// EndIntLen fills the prefix reserved at at with the bytes written since.
func (w *Writer) EndIntLen(at int) {
	binary.BigEndian.PutUint32(w.buf[at:], uint32(len(w.buf)-at-4))
}

// Table is an index table under construction. See Buffer.Seek.
type Table struct {
	w     *Writer
	pos   int
	count int
	short bool
}

// BlockTable writes an index table of count slots with 16-bit offsets.
func (w *Writer) BlockTable(count int) *Table {
	return w.blockTable(count, true)
}

// WideBlockTable writes an index table of count slots with 32-bit offsets.
func (w *Writer) WideBlockTable(count int) *Table {
	return w.blockTable(count, false)
}

func (w *Writer) blockTable(count int, short bool) *Table {
	t := &Table{w: w, pos: len(w.buf), count: count, short: short}
	w.WriteUint8(uint8(count))
	w.WriteBool(short)
	for range count {
		if short {
			w.WriteShort(0)
		} else {
			w.WriteInt(0)
		}
	}
	return t
}

// Pos returns the position of the table, the base of its offsets.
func (t *Table) Pos() int { return t.pos }

// Mark records the current write position as the start of slot.
func (t *Table) Mark(slot int) {
	w := t.w
	if slot < 0 || slot >= t.count {
		w.setErr(fmt.Errorf("bytebuf: slot %d outside table of %d", slot, t.count))
		return
	}
	offset := len(w.buf) - t.pos
	if t.short {
		if offset > math.MaxInt16 {
			w.setErr(fmt.Errorf("%w: block offset %d", ErrTooLarge, offset))
			return
		}
		binary.BigEndian.PutUint16(w.buf[t.pos+2+2*slot:], uint16(offset))
		return
	}
	binary.BigEndian.PutUint32(w.buf[t.pos+2+4*slot:], uint32(offset))
}
