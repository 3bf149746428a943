package object

import (
	"fmt"
	"math"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Size returns the encoded size of a header holding messages.
func Size(messages []message.Message) int {
	return prefixSize + messageBlockSize(messages) + binary.ChecksumSize
}

func messageBlockSize(messages []message.Message) int {
	size := 0
	for _, msg := range messages {
		size += messagePrefixSize + msg.SerializedSize()
	}
	return size
}

// Encode builds a complete object header, checksum included.
func Encode(kind Kind, messages []message.Message) ([]byte, error) {
	if len(messages) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d messages", ErrInvalidHeader, len(messages))
	}
	blockSize := messageBlockSize(messages)
	if blockSize > MaxMessageBlock {
		return nil, fmt.Errorf("%w: message block of %d bytes", ErrInvalidHeader, blockSize)
	}

	b := binary.NewBuffer(prefixSize + blockSize + binary.ChecksumSize)
	b.PutBytes(Signature)
	b.PutUint8(Version)
	b.PutUint8(uint8(kind))
	b.PutUint16(uint16(len(messages)))
	b.PutUint32(uint32(blockSize))

	for _, msg := range messages {
		start := b.Len()
		b.PutUint8(uint8(msg.Type()))
		b.PutUint8(0)
		b.PutUint32(uint32(msg.SerializedSize()))
		msg.Serialize(b)
		if got := b.Len() - start - messagePrefixSize; got != msg.SerializedSize() {
			return nil, fmt.Errorf("%s message wrote %d bytes, expected %d", msg.Type(), got, msg.SerializedSize())
		}
	}

	b.AppendChecksum()
	return b.Bytes(), nil
}

// Write encodes a header and writes it at the writer's position.
// It returns the number of bytes written.
func Write(w *binary.Writer, kind Kind, messages []message.Message) (int64, error) {
	buf, err := Encode(kind, messages)
	if err != nil {
		return 0, err
	}
	if err := w.WriteBytes(buf); err != nil {
		return 0, fmt.Errorf("writing object header: %w", err)
	}
	return int64(len(buf)), nil
}
