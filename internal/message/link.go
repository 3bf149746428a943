package message

import (
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// Link names a child object of a group by its header address.
type Link struct {
	Name    string
	Address uint64
}

func (m *Link) Type() Type { return TypeLink }

func (m *Link) Serialize(b *binary.Buffer) {
	b.PutString(m.Name)
	b.PutUint64(m.Address)
}

func (m *Link) SerializedSize() int {
	return binary.SizedString(m.Name) + 8
}

func parseLink(r *binary.Reader) (*Link, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("empty link name")
	}
	addr, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &Link{Name: name, Address: addr}, nil
}
