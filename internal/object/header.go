package object

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Signature starts every object header.
var Signature = []byte{'O', 'H', 'D', 'R'}

// Version is the header layout written by this package.
const Version = 1

const (
	prefixSize        = 4 + 1 + 1 + 2 + 4
	messagePrefixSize = 1 + 1 + 4
)

// MaxMessageBlock bounds the message block size a reader will accept.
const MaxMessageBlock = 1 << 30

// Kind is the type of object a header describes.
type Kind uint8

const (
	KindGroup   Kind = 1
	KindDataset Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Errors
var (
	ErrInvalidHeader      = errors.New("invalid object header")
	ErrUnsupportedVersion = errors.New("unsupported object header version")
)

// Header represents a parsed object header.
type Header struct {
	// Address is the file address where this header was found
	Address  uint64
	Kind     Kind
	Messages []message.Message
}

// Read parses an object header at the given address.
func Read(r *binary.Reader, address uint64) (*Header, error) {
	hr := r.At(int64(address))

	prefix, err := hr.ReadBytes(prefixSize)
	if err != nil {
		return nil, fmt.Errorf("reading object header at %d: %w", address, err)
	}
	if !bytes.Equal(prefix[:4], Signature) {
		return nil, fmt.Errorf("%w: bad signature at address %d", ErrInvalidHeader, address)
	}
	if prefix[4] != Version {
		return nil, fmt.Errorf("%w: %d at address %d", ErrUnsupportedVersion, prefix[4], address)
	}
	kind := Kind(prefix[5])
	if kind != KindGroup && kind != KindDataset {
		return nil, fmt.Errorf("%w: unknown kind %d at address %d", ErrInvalidHeader, prefix[5], address)
	}
	count := int(binary.Order.Uint16(prefix[6:]))
	size := binary.Order.Uint32(prefix[8:])
	if size > MaxMessageBlock {
		return nil, fmt.Errorf("%w: message block of %d bytes at address %d", ErrInvalidHeader, size, address)
	}

	rest, err := hr.ReadBytes(int(size) + binary.ChecksumSize)
	if err != nil {
		return nil, fmt.Errorf("reading object header at %d: %w", address, err)
	}
	block := append(prefix, rest...)
	if err := binary.VerifyChecksum(block); err != nil {
		return nil, fmt.Errorf("object header at %d: %w", address, err)
	}

	h := &Header{Address: address, Kind: kind, Messages: make([]message.Message, 0, count)}
	body := rest[:size]
	for i := 0; i < count; i++ {
		if len(body) < messagePrefixSize {
			return nil, fmt.Errorf("%w: message %d truncated at address %d", ErrInvalidHeader, i, address)
		}
		typ := message.Type(body[0])
		msgSize := int(binary.Order.Uint32(body[2:]))
		body = body[messagePrefixSize:]
		if msgSize > len(body) {
			return nil, fmt.Errorf("%w: message %d overruns header at address %d", ErrInvalidHeader, i, address)
		}
		msg, err := message.Parse(typ, body[:msgSize])
		if err != nil {
			return nil, fmt.Errorf("object header at %d: %w", address, err)
		}
		h.Messages = append(h.Messages, msg)
		body = body[msgSize:]
	}
	if len(body) != 0 {
		return nil, fmt.Errorf("%w: %d unused bytes at address %d", ErrInvalidHeader, len(body), address)
	}
	return h, nil
}

// GetMessage returns the first message of the given type, or nil if not found.
func (h *Header) GetMessage(typ message.Type) message.Message {
	for _, msg := range h.Messages {
		if msg.Type() == typ {
			return msg
		}
	}
	return nil
}

// Links returns the link messages in stored order.
func (h *Header) Links() []*message.Link {
	var out []*message.Link
	for _, msg := range h.Messages {
		if l, ok := msg.(*message.Link); ok {
			out = append(out, l)
		}
	}
	return out
}

// Attributes returns the attribute messages in stored order.
func (h *Header) Attributes() []*message.Attribute {
	var out []*message.Attribute
	for _, msg := range h.Messages {
		if a, ok := msg.(*message.Attribute); ok {
			out = append(out, a)
		}
	}
	return out
}

// Dataspace returns the dataspace message if present.
func (h *Header) Dataspace() *message.Dataspace {
	msg, _ := h.GetMessage(message.TypeDataspace).(*message.Dataspace)
	return msg
}

// Datatype returns the datatype message if present.
func (h *Header) Datatype() *message.Datatype {
	msg, _ := h.GetMessage(message.TypeDatatype).(*message.Datatype)
	return msg
}

// Layout returns the layout message if present.
func (h *Header) Layout() *message.Layout {
	msg, _ := h.GetMessage(message.TypeLayout).(*message.Layout)
	return msg
}

// FilterPipeline returns the filter pipeline message if present.
func (h *Header) FilterPipeline() *message.FilterPipeline {
	msg, _ := h.GetMessage(message.TypeFilterPipeline).(*message.FilterPipeline)
	return msg
}
