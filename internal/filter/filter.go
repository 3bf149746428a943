package filter

import (
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Filter is the interface implemented by all dataset filters.
type Filter interface {
	// ID returns the filter identifier.
	ID() uint16

	// Encode transforms raw data to its stored form.
	Encode(input []byte) ([]byte, error)

	// Decode transforms stored data back to raw form.
	Decode(input []byte) ([]byte, error)
}

// Registry maps filter IDs to filter constructors.
var Registry = map[uint16]func([]uint32) Filter{
	message.FilterDeflate:  func(cd []uint32) Filter { return NewDeflate(cd) },
	message.FilterShuffle:  func(cd []uint32) Filter { return NewShuffle(cd) },
	message.FilterChecksum: func(cd []uint32) Filter { return NewChecksum(cd) },
	message.FilterLZ4:      func(cd []uint32) Filter { return NewLZ4(cd) },
}

// New creates a filter from a FilterInfo. It returns nil, nil for an
// unavailable optional filter.
func New(info message.FilterInfo) (Filter, error) {
	constructor, ok := Registry[info.ID]
	if !ok {
		if info.IsOptional() {
			return nil, nil
		}
		return nil, fmt.Errorf("unsupported filter ID: %d", info.ID)
	}
	return constructor(info.ClientData), nil
}

// DeflateInfo describes a deflate filter at the given level.
func DeflateInfo(level int) message.FilterInfo {
	return message.FilterInfo{ID: message.FilterDeflate, ClientData: []uint32{uint32(level)}}
}

// ShuffleInfo describes a shuffle filter for elements of elemSize bytes.
func ShuffleInfo(elemSize int) message.FilterInfo {
	return message.FilterInfo{ID: message.FilterShuffle, ClientData: []uint32{uint32(elemSize)}}
}

// ChecksumInfo describes a checksum filter.
func ChecksumInfo() message.FilterInfo {
	return message.FilterInfo{ID: message.FilterChecksum}
}

// LZ4Info describes an lz4 filter.
func LZ4Info() message.FilterInfo {
	return message.FilterInfo{ID: message.FilterLZ4}
}
