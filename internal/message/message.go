package message

import (
	"bytes"
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
)

// Type identifies a header message.
type Type uint8

const (
	TypeLink           Type = 0x01
	TypeAttribute      Type = 0x02
	TypeDatatype       Type = 0x03
	TypeDataspace      Type = 0x04
	TypeLayout         Type = 0x05
	TypeFilterPipeline Type = 0x06
)

func (t Type) String() string {
	switch t {
	case TypeLink:
		return "link"
	case TypeAttribute:
		return "attribute"
	case TypeDatatype:
		return "datatype"
	case TypeDataspace:
		return "dataspace"
	case TypeLayout:
		return "layout"
	case TypeFilterPipeline:
		return "filter pipeline"
	default:
		return fmt.Sprintf("message(0x%02x)", uint8(t))
	}
}

// Message is the interface implemented by all header messages.
type Message interface {
	Type() Type
	// Serialize appends the message payload to b.
	Serialize(b *binary.Buffer)
	// SerializedSize returns the payload size in bytes.
	SerializedSize() int
}

// Parse parses a header message payload.
func Parse(typ Type, data []byte) (Message, error) {
	r := binary.NewReader(bytes.NewReader(data))
	var (
		msg Message
		err error
	)
	switch typ {
	case TypeLink:
		msg, err = parseLink(r)
	case TypeAttribute:
		msg, err = parseAttribute(r)
	case TypeDatatype:
		msg, err = parseDatatype(r)
	case TypeDataspace:
		msg, err = parseDataspace(r)
	case TypeLayout:
		msg, err = parseLayout(r)
	case TypeFilterPipeline:
		msg, err = parseFilterPipeline(r)
	default:
		return &Unknown{typ: typ, data: data}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s message: %w", typ, err)
	}
	if r.Pos() != int64(len(data)) {
		return nil, fmt.Errorf("parsing %s message: %d trailing bytes", typ, int64(len(data))-r.Pos())
	}
	return msg, nil
}

// Unknown represents an unrecognized message type. It is preserved
// verbatim so newer files can still be walked.
type Unknown struct {
	typ  Type
	data []byte
}

func (m *Unknown) Type() Type                 { return m.typ }
func (m *Unknown) Data() []byte               { return m.data }
func (m *Unknown) Serialize(b *binary.Buffer) { b.PutBytes(m.data) }
func (m *Unknown) SerializedSize() int        { return len(m.data) }
