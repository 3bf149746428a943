package message

import (
	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
)

// Datatype records the element type of a dataset.
type Datatype struct {
	dtype.Datatype
}

func (m *Datatype) Type() Type { return TypeDatatype }

func (m *Datatype) Serialize(b *binary.Buffer) {
	putDatatype(b, m.Datatype)
}

func (m *Datatype) SerializedSize() int { return 2 }

func parseDatatype(r *binary.Reader) (*Datatype, error) {
	dt, err := readDatatype(r)
	if err != nil {
		return nil, err
	}
	return &Datatype{Datatype: dt}, nil
}

func putDatatype(b *binary.Buffer, dt dtype.Datatype) {
	b.PutUint8(uint8(dt.Class))
	b.PutUint8(dt.Size)
}

func readDatatype(r *binary.Reader) (dtype.Datatype, error) {
	class, err := r.ReadUint8()
	if err != nil {
		return dtype.Datatype{}, err
	}
	size, err := r.ReadUint8()
	if err != nil {
		return dtype.Datatype{}, err
	}
	dt := dtype.Datatype{Class: dtype.Class(class), Size: size}
	if err := dt.Validate(); err != nil {
		return dtype.Datatype{}, err
	}
	return dt, nil
}
