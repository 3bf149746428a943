package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x42, 0xFF, 0x00}))

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
}

func TestReaderReadUint16(t *testing.T) {
	// Little-endian: 0x0102 stored as [0x02, 0x01]
	r := NewReader(bytes.NewReader([]byte{0x02, 0x01}))

	v, err := r.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}
}

func TestReaderReadUint32And64(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678))
	binary.Write(&buf, binary.LittleEndian, uint64(0x0102030405060708))

	r := NewReader(bytes.NewReader(buf.Bytes()))

	v32, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v32 != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v32)
	}

	v64, err := r.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64 failed: %v", err)
	}
	if v64 != 0x0102030405060708 {
		t.Errorf("expected 0x0102030405060708, got 0x%016x", v64)
	}
	if r.Pos() != 12 {
		t.Errorf("expected position 12, got %d", r.Pos())
	}
}

func TestReaderAt(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04}
	r := NewReader(bytes.NewReader(data))

	r2 := r.At(3)
	v, err := r2.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x03 {
		t.Errorf("expected 0x03, got 0x%02x", v)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	if _, err := r.ReadUint32(); !errors.Is(err, ErrShortRead) {
		t.Errorf("expected ErrShortRead, got %v", err)
	}
	if r.Pos() != 0 {
		t.Errorf("failed read advanced position to %d", r.Pos())
	}
}

func TestReaderReadString(t *testing.T) {
	b := NewBuffer(16)
	b.PutString("Edges")
	b.PutString("")

	r := NewReader(bytes.NewReader(b.Bytes()))
	s, err := r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if s != "Edges" {
		t.Errorf("expected %q, got %q", "Edges", s)
	}
	s, err = r.ReadString()
	if err != nil {
		t.Fatalf("ReadString failed: %v", err)
	}
	if s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}
