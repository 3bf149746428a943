package object

import (
	"bytes"
	"errors"
	"testing"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

type memFile struct{ data []byte }

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(m.data) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	return copy(m.data[off:], p), nil
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(m.data).ReadAt(p, off)
}

func datasetMessages() []message.Message {
	return []message.Message{
		&message.Datatype{Datatype: dtype.Int32},
		&message.Dataspace{Dims: []uint64{1}},
		&message.Layout{Address: 200, StoredSize: 4, RawSize: 4},
		&message.Attribute{Name: "ObjectType", Datatype: dtype.String, Dims: []uint64{1}, Data: dtype.EncodeStrings([]string{"ScalarData<int32>"})},
	}
}

func TestWriteRead(t *testing.T) {
	f := &memFile{}
	msgs := datasetMessages()

	n, err := Write(binary.NewWriter(f).At(64), KindDataset, msgs)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != int64(Size(msgs)) {
		t.Errorf("wrote %d bytes, Size says %d", n, Size(msgs))
	}

	h, err := Read(binary.NewReader(f), 64)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if h.Kind != KindDataset || h.Address != 64 {
		t.Errorf("unexpected header %v at %d", h.Kind, h.Address)
	}
	if len(h.Messages) != len(msgs) {
		t.Fatalf("expected %d messages, got %d", len(msgs), len(h.Messages))
	}
	if h.Datatype() == nil || h.Datatype().Datatype != dtype.Int32 {
		t.Errorf("datatype = %v", h.Datatype())
	}
	if h.Layout() == nil || h.Layout().Address != 200 {
		t.Errorf("layout = %v", h.Layout())
	}
	if h.FilterPipeline() != nil {
		t.Error("unexpected filter pipeline")
	}
	if attrs := h.Attributes(); len(attrs) != 1 || attrs[0].Name != "ObjectType" {
		t.Errorf("attributes = %v", attrs)
	}
}

func TestGroupLinks(t *testing.T) {
	f := &memFile{}
	msgs := []message.Message{
		&message.Link{Name: "Vertices", Address: 100},
		&message.Link{Name: "Edges", Address: 300},
	}
	if _, err := Write(binary.NewWriter(f), KindGroup, msgs); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	h, err := Read(binary.NewReader(f), 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	links := h.Links()
	if len(links) != 2 || links[0].Name != "Vertices" || links[1].Address != 300 {
		t.Errorf("links = %+v", links)
	}
}

func TestReadCorrupt(t *testing.T) {
	good, err := Encode(KindGroup, []message.Message{&message.Link{Name: "a", Address: 1}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tests := []struct {
		name   string
		mutate func([]byte)
		want   error
	}{
		{"signature", func(b []byte) { b[0] = 'X' }, ErrInvalidHeader},
		{"version", func(b []byte) { b[4] = 9 }, ErrUnsupportedVersion},
		{"kind", func(b []byte) { b[5] = 7 }, ErrInvalidHeader},
		{"payload", func(b []byte) { b[prefixSize+messagePrefixSize+2] ^= 0xFF }, binary.ErrChecksum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]byte(nil), good...)
			tt.mutate(buf)
			_, err := Read(binary.NewReader(bytes.NewReader(buf)), 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	_, err = Read(binary.NewReader(bytes.NewReader(good[:len(good)-3])), 0)
	if !errors.Is(err, binary.ErrShortRead) {
		t.Errorf("expected ErrShortRead for truncated header, got %v", err)
	}
}
