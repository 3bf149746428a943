package binary

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ChecksumSize is the width of a stored checksum.
const ChecksumSize = 8

// ErrChecksum is returned when a stored checksum does not match the data.
var ErrChecksum = errors.New("checksum mismatch")

// Checksum computes the metadata checksum used by superblocks and object
// headers.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// AppendChecksum appends the checksum of the buffer's current contents.
func (b *Buffer) AppendChecksum() {
	b.PutUint64(Checksum(b.b))
}

// VerifyChecksum checks that the last ChecksumSize bytes of block are the
// checksum of everything before them.
func VerifyChecksum(block []byte) error {
	if len(block) < ChecksumSize {
		return fmt.Errorf("block of %d bytes cannot hold a checksum: %w", len(block), ErrChecksum)
	}
	body := block[:len(block)-ChecksumSize]
	stored := Order.Uint64(block[len(block)-ChecksumSize:])
	if computed := Checksum(body); computed != stored {
		return fmt.Errorf("stored %#016x, computed %#016x: %w", stored, computed, ErrChecksum)
	}
	return nil
}
