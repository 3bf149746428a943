package message

import (
	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// Layout locates a dataset's contiguous data block. StoredSize is the
// size on disk after filters; RawSize is the size after decoding.
type Layout struct {
	Address    uint64
	StoredSize uint64
	RawSize    uint64
}

func (m *Layout) Type() Type { return TypeLayout }

func (m *Layout) Serialize(b *binary.Buffer) {
	b.PutUint64(m.Address)
	b.PutUint64(m.StoredSize)
	b.PutUint64(m.RawSize)
}

func (m *Layout) SerializedSize() int { return 24 }

// IsEmpty reports whether the dataset has no stored bytes.
func (m *Layout) IsEmpty() bool {
	return m.StoredSize == 0
}

func parseLayout(r *binary.Reader) (*Layout, error) {
	var (
		l   Layout
		err error
	)
	if l.Address, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if l.StoredSize, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	if l.RawSize, err = r.ReadUint64(); err != nil {
		return nil, err
	}
	return &l, nil
}
