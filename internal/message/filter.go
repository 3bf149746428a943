package message

import (
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// Filter IDs
const (
	FilterDeflate  uint16 = 1     // zlib
	FilterShuffle  uint16 = 2     // byte shuffle
	FilterChecksum uint16 = 3     // xxhash64 trailer
	FilterLZ4      uint16 = 32004 // lz4 block
)

// FilterInfo describes a single filter in the pipeline.
type FilterInfo struct {
	ID         uint16
	Flags      uint16 // bit 0: optional
	ClientData []uint32
}

// IsOptional returns true if this filter may be skipped when unavailable.
func (f *FilterInfo) IsOptional() bool {
	return f.Flags&0x01 != 0
}

// FilterPipeline lists the filters applied to a dataset, in encode order.
type FilterPipeline struct {
	Filters []FilterInfo
}

func (m *FilterPipeline) Type() Type { return TypeFilterPipeline }

// HasFilter returns true if the pipeline contains the given filter ID.
func (m *FilterPipeline) HasFilter(id uint16) bool {
	for _, f := range m.Filters {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (m *FilterPipeline) Serialize(b *binary.Buffer) {
	b.PutUint8(uint8(len(m.Filters)))
	for _, f := range m.Filters {
		b.PutUint16(f.ID)
		b.PutUint16(f.Flags)
		b.PutUint8(uint8(len(f.ClientData)))
		for _, v := range f.ClientData {
			b.PutUint32(v)
		}
	}
}

func (m *FilterPipeline) SerializedSize() int {
	size := 1
	for _, f := range m.Filters {
		size += 5 + 4*len(f.ClientData)
	}
	return size
}

func parseFilterPipeline(r *binary.Reader) (*FilterPipeline, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	fp := &FilterPipeline{Filters: make([]FilterInfo, n)}
	for i := range fp.Filters {
		f := &fp.Filters[i]
		if f.ID, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		if f.Flags, err = r.ReadUint16(); err != nil {
			return nil, err
		}
		ncd, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if ncd > 0 {
			f.ClientData = make([]uint32, ncd)
		}
		for j := range f.ClientData {
			if f.ClientData[j], err = r.ReadUint32(); err != nil {
				return nil, fmt.Errorf("filter %d client data: %w", f.ID, err)
			}
		}
	}
	return fp, nil
}
