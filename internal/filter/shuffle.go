package filter

import (
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Shuffle implements the byte shuffle filter.
// Stored layout: [all byte 0s][all byte 1s]...[all byte N-1s]
type Shuffle struct {
	elemSize int
}

// NewShuffle creates a new shuffle filter.
// Client data: [0] = element size in bytes
func NewShuffle(clientData []uint32) *Shuffle {
	elemSize := 1
	if len(clientData) > 0 && clientData[0] > 0 {
		elemSize = int(clientData[0])
	}
	return &Shuffle{elemSize: elemSize}
}

func (f *Shuffle) ID() uint16 {
	return message.FilterShuffle
}

func (f *Shuffle) Encode(input []byte) ([]byte, error) {
	numElems := f.elements(input)
	if numElems == 0 {
		return input, nil
	}
	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[j*numElems+i] = input[i*f.elemSize+j]
		}
	}
	// Trailing bytes that do not form a whole element are left in place.
	copy(output[numElems*f.elemSize:], input[numElems*f.elemSize:])
	return output, nil
}

func (f *Shuffle) Decode(input []byte) ([]byte, error) {
	numElems := f.elements(input)
	if numElems == 0 {
		return input, nil
	}
	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}
	copy(output[numElems*f.elemSize:], input[numElems*f.elemSize:])
	return output, nil
}

func (f *Shuffle) elements(input []byte) int {
	if f.elemSize <= 1 {
		return 0
	}
	return len(input) / f.elemSize
}
