package filter

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

const (
	lz4Raw        = 0
	lz4Compressed = 1
	lz4HeaderSize = 5
)

// LZ4 implements lz4 block compression. The stored form is a uint32 raw
// length, a mode byte, and either the compressed block or the raw bytes
// when the data does not compress.
type LZ4 struct{}

// NewLZ4 creates a new lz4 filter.
func NewLZ4(clientData []uint32) *LZ4 {
	return &LZ4{}
}

func (f *LZ4) ID() uint16 {
	return message.FilterLZ4
}

func (f *LZ4) Encode(input []byte) ([]byte, error) {
	out := make([]byte, lz4HeaderSize+lz4.CompressBlockBound(len(input)))
	binary.LittleEndian.PutUint32(out, uint32(len(input)))

	n, err := lz4.CompressBlock(input, out[lz4HeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(input) {
		out = append(out[:lz4HeaderSize], input...)
		out[4] = lz4Raw
		return out, nil
	}
	out[4] = lz4Compressed
	return out[:lz4HeaderSize+n], nil
}

func (f *LZ4) Decode(input []byte) ([]byte, error) {
	if len(input) < lz4HeaderSize {
		return nil, fmt.Errorf("lz4: input too short for header")
	}
	rawLen := int(binary.LittleEndian.Uint32(input))
	payload := input[lz4HeaderSize:]

	switch input[4] {
	case lz4Raw:
		if len(payload) != rawLen {
			return nil, fmt.Errorf("lz4: raw payload %d bytes, header says %d", len(payload), rawLen)
		}
		return payload, nil
	case lz4Compressed:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if n != rawLen {
			return nil, fmt.Errorf("lz4: decompressed %d bytes, header says %d", n, rawLen)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("lz4: unknown block mode %d", input[4])
	}
}
