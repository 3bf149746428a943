package binary

import (
	"bytes"
	"testing"
)

// bytesWriterAt is a growable in-memory io.WriterAt.
type bytesWriterAt struct {
	data []byte
}

func (b *bytesWriterAt) WriteAt(p []byte, off int64) (int, error) {
	end := int(off) + len(p)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[off:], p)
	return len(p), nil
}

func TestWriterAt(t *testing.T) {
	buf := &bytesWriterAt{}
	w := NewWriter(buf)

	if err := w.At(4).WriteBytes([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	if err := w.WriteBytes([]byte{0x01}); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}

	want := []byte{0x01, 0x00, 0x00, 0x00, 0xAA, 0xBB}
	if !bytes.Equal(buf.data, want) {
		t.Errorf("expected %v, got %v", want, buf.data)
	}
	if w.Pos() != 1 {
		t.Errorf("expected position 1, got %d", w.Pos())
	}
}

func TestBufferPutValues(t *testing.T) {
	b := NewBuffer(0)
	b.PutUint8(0x01)
	b.PutUint16(0x0203)
	b.PutUint32(0x04050607)
	b.PutUint64(0x08090A0B0C0D0E0F)
	b.PutZeros(2)

	want := []byte{
		0x01,
		0x03, 0x02,
		0x07, 0x06, 0x05, 0x04,
		0x0F, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A, 0x09, 0x08,
		0x00, 0x00,
	}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("expected %v, got %v", want, b.Bytes())
	}
	if b.Len() != len(want) {
		t.Errorf("expected Len %d, got %d", len(want), b.Len())
	}
}

func TestWriterRoundTrip(t *testing.T) {
	b := NewBuffer(32)
	b.PutUint16(7)
	b.PutString("ObjectType")
	b.PutUint64(UndefinedAddress)

	dst := &bytesWriterAt{}
	if err := NewWriter(dst).At(8).WriteBytes(b.Bytes()); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}

	r := NewReader(bytes.NewReader(dst.data)).At(8)
	v16, _ := r.ReadUint16()
	s, _ := r.ReadString()
	addr, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if v16 != 7 || s != "ObjectType" || addr != UndefinedAddress {
		t.Errorf("round trip mismatch: %d %q %#x", v16, s, addr)
	}
	if r.Pos() != int64(8+b.Len()) {
		t.Errorf("expected position %d, got %d", 8+b.Len(), r.Pos())
	}
	if SizedString("ObjectType") != 12 {
		t.Errorf("SizedString = %d, want 12", SizedString("ObjectType"))
	}
}
