package superblock

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// Signature identifies a container file.
var Signature = []byte{0x89, 'N', 'X', 'G', '\r', '\n', 0x1a, '\n'}

// Version is the superblock layout written by this package.
const Version = 1

// Size is the encoded size of a superblock.
const Size = 8 + 1 + 1 + 2 + 16 + 8 + 8 + binary.ChecksumSize

// Errors
var (
	ErrNotContainer       = errors.New("not a container file: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported superblock version")
	ErrInvalidSuperblock  = errors.New("invalid superblock structure")
)

// Superblock contains the file-level metadata.
type Superblock struct {
	Version uint8
	Flags   uint8

	// FileID is assigned when the file is created and kept across flushes.
	FileID uuid.UUID

	// RootAddress is the address of the root group object header.
	RootAddress uint64

	// EOFAddress is the logical end of file.
	EOFAddress uint64
}

// New returns a superblock for a freshly created file.
func New() *Superblock {
	return &Superblock{
		Version:     Version,
		FileID:      uuid.New(),
		RootAddress: binary.UndefinedAddress,
		EOFAddress:  Size,
	}
}

// Read parses the superblock at offset 0.
func Read(r io.ReaderAt) (*Superblock, error) {
	buf, err := binary.NewReader(r).ReadBytes(Size)
	if err != nil {
		if errors.Is(err, binary.ErrShortRead) {
			return nil, fmt.Errorf("%w: file shorter than a superblock", ErrNotContainer)
		}
		return nil, fmt.Errorf("reading superblock: %w", err)
	}
	if !bytes.Equal(buf[:8], Signature) {
		return nil, ErrNotContainer
	}
	if buf[8] != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, buf[8])
	}
	if err := binary.VerifyChecksum(buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuperblock, err)
	}

	sb := &Superblock{
		Version:     buf[8],
		Flags:       buf[9],
		RootAddress: binary.Order.Uint64(buf[28:]),
		EOFAddress:  binary.Order.Uint64(buf[36:]),
	}
	copy(sb.FileID[:], buf[12:28])

	if sb.RootAddress == binary.UndefinedAddress {
		return nil, fmt.Errorf("%w: root address undefined", ErrInvalidSuperblock)
	}
	if sb.RootAddress < Size || sb.RootAddress >= sb.EOFAddress {
		return nil, fmt.Errorf("%w: root address %d outside [%d, %d)", ErrInvalidSuperblock, sb.RootAddress, Size, sb.EOFAddress)
	}
	return sb, nil
}

// Encode returns the on-disk form of the superblock.
func (sb *Superblock) Encode() []byte {
	b := binary.NewBuffer(Size)
	b.PutBytes(Signature)
	b.PutUint8(sb.Version)
	b.PutUint8(sb.Flags)
	b.PutZeros(2)
	b.PutBytes(sb.FileID[:])
	b.PutUint64(sb.RootAddress)
	b.PutUint64(sb.EOFAddress)
	b.AppendChecksum()
	return b.Bytes()
}

// Write writes the superblock at offset 0.
func (sb *Superblock) Write(w io.WriterAt) error {
	if _, err := w.WriteAt(sb.Encode(), 0); err != nil {
		return fmt.Errorf("writing superblock: %w", err)
	}
	return nil
}
