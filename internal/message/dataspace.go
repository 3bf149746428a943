package message

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// MaxRank is the largest number of dimensions a dataspace may have.
const MaxRank = 32

// Dataspace records the dimensions of a dataset. A rank-0 dataspace holds
// a single scalar element.
type Dataspace struct {
	Dims []uint64
}

func (m *Dataspace) Type() Type { return TypeDataspace }

// NumElements returns the total number of elements.
func (m *Dataspace) NumElements() uint64 {
	return NumElements(m.Dims)
}

func (m *Dataspace) Serialize(b *binary.Buffer) {
	putDims(b, m.Dims)
}

func (m *Dataspace) SerializedSize() int { return 1 + 8*len(m.Dims) }

func parseDataspace(r *binary.Reader) (*Dataspace, error) {
	dims, err := readDims(r)
	if err != nil {
		return nil, err
	}
	return &Dataspace{Dims: dims}, nil
}

// NumElements returns the product of dims, or 1 for a scalar. A product
// that overflows saturates at math.MaxUint64.
func NumElements(dims []uint64) uint64 {
	n, ok := CountElements(dims)
	if !ok {
		return math.MaxUint64
	}
	return n
}

// CountElements returns the product of dims. ok is false when the product
// overflows uint64.
func CountElements(dims []uint64) (n uint64, ok bool) {
	n = 1
	for _, d := range dims {
		hi, lo := bits.Mul64(n, d)
		if hi != 0 {
			return 0, false
		}
		n = lo
	}
	return n, true
}

// DataSize returns the byte size of dims elements of size bytes each. ok is
// false when it overflows uint64.
func DataSize(dims []uint64, size uint8) (uint64, bool) {
	n, ok := CountElements(dims)
	if !ok {
		return 0, false
	}
	hi, lo := bits.Mul64(n, uint64(size))
	return lo, hi == 0
}

func putDims(b *binary.Buffer, dims []uint64) {
	b.PutUint8(uint8(len(dims)))
	for _, d := range dims {
		b.PutUint64(d)
	}
}

func readDims(r *binary.Reader) ([]uint64, error) {
	rank, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	if rank > MaxRank {
		return nil, fmt.Errorf("rank %d exceeds maximum %d", rank, MaxRank)
	}
	dims := make([]uint64, rank)
	for i := range dims {
		if dims[i], err = r.ReadUint64(); err != nil {
			return nil, err
		}
	}
	if _, ok := CountElements(dims); !ok {
		return nil, fmt.Errorf("dimensions %v overflow", dims)
	}
	return dims, nil
}
