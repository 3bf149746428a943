package binary

import (
	"io"
)

// Writer writes byte slices to an io.WriterAt at a tracked position.
type Writer struct {
	w   io.WriterAt
	pos int64
}

// NewWriter creates a writer positioned at offset 0.
func NewWriter(w io.WriterAt) *Writer {
	return &Writer{w: w}
}

// At returns a new writer positioned at the given offset.
func (w *Writer) At(offset int64) *Writer {
	return &Writer{w: w.w, pos: offset}
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.pos
}

// WriteBytes writes the given bytes at the current position.
func (w *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	n, err := w.w.WriteAt(data, w.pos)
	w.pos += int64(n)
	return err
}

// Buffer accumulates encoded values in memory. Headers are built in a
// Buffer so their checksum can be appended before they reach the file.
type Buffer struct {
	b []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int { return len(b.b) }

// Bytes returns the accumulated bytes.
func (b *Buffer) Bytes() []byte { return b.b }

// PutBytes appends raw bytes.
func (b *Buffer) PutBytes(p []byte) { b.b = append(b.b, p...) }

// PutUint8 appends an unsigned 8-bit integer.
func (b *Buffer) PutUint8(v uint8) { b.b = append(b.b, v) }

// PutUint16 appends an unsigned 16-bit integer.
func (b *Buffer) PutUint16(v uint16) { b.b = Order.AppendUint16(b.b, v) }

// PutUint32 appends an unsigned 32-bit integer.
func (b *Buffer) PutUint32(v uint32) { b.b = Order.AppendUint32(b.b, v) }

// PutUint64 appends an unsigned 64-bit integer.
func (b *Buffer) PutUint64(v uint64) { b.b = Order.AppendUint64(b.b, v) }

// PutString appends s prefixed by its uint16 byte length.
// Callers must keep s shorter than 64 KiB.
func (b *Buffer) PutString(s string) {
	b.PutUint16(uint16(len(s)))
	b.b = append(b.b, s...)
}

// PutZeros appends n zero bytes.
func (b *Buffer) PutZeros(n int) {
	for i := 0; i < n; i++ {
		b.b = append(b.b, 0)
	}
}

// SizedString returns the encoded size of s as written by PutString.
func SizedString(s string) int {
	return 2 + len(s)
}
