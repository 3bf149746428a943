package message

import (
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
)

// Attribute is a small named value attached to a group or dataset.
// Data holds the encoded elements (see package dtype).
type Attribute struct {
	Name     string
	Datatype dtype.Datatype
	Dims     []uint64
	Data     []byte
}

func (m *Attribute) Type() Type { return TypeAttribute }

func (m *Attribute) Serialize(b *binary.Buffer) {
	b.PutString(m.Name)
	putDatatype(b, m.Datatype)
	putDims(b, m.Dims)
	b.PutUint32(uint32(len(m.Data)))
	b.PutBytes(m.Data)
}

func (m *Attribute) SerializedSize() int {
	return binary.SizedString(m.Name) + 2 + 1 + 8*len(m.Dims) + 4 + len(m.Data)
}

func parseAttribute(r *binary.Reader) (*Attribute, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("empty attribute name")
	}
	dt, err := readDatatype(r)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	dims, err := readDims(r)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, fmt.Errorf("attribute %q data: %w", name, err)
	}
	if !dt.IsString() {
		if size, ok := DataSize(dims, dt.Size); !ok || size != uint64(len(data)) {
			return nil, fmt.Errorf("attribute %q: %d bytes for %v %s elements", name, len(data), dims, dt)
		}
	}
	return &Attribute{Name: name, Datatype: dt, Dims: dims, Data: data}, nil
}
