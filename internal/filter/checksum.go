package filter

import (
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Checksum appends an xxhash64 of the data and verifies it on decode.
type Checksum struct{}

// NewChecksum creates a new checksum filter.
func NewChecksum(clientData []uint32) *Checksum {
	return &Checksum{}
}

func (f *Checksum) ID() uint16 {
	return message.FilterChecksum
}

func (f *Checksum) Encode(input []byte) ([]byte, error) {
	b := binary.NewBuffer(len(input) + binary.ChecksumSize)
	b.PutBytes(input)
	b.AppendChecksum()
	return b.Bytes(), nil
}

func (f *Checksum) Decode(input []byte) ([]byte, error) {
	if err := binary.VerifyChecksum(input); err != nil {
		return nil, fmt.Errorf("data checksum: %w", err)
	}
	return input[:len(input)-binary.ChecksumSize], nil
}
