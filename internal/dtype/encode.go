package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Element is the set of Go types that map onto numeric datatypes.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | bool
}

// ErrSize is returned when a byte buffer does not hold a whole number of
// elements of the expected count.
var ErrSize = errors.New("byte length does not match element count")

// Of returns the datatype that stores T.
func Of[T Element]() Datatype {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return Bool
	}
}

// Encode returns the little-endian representation of values.
func Encode[T Element](values []T) ([]byte, error) {
	if len(values) == 0 {
		return []byte{}, nil
	}
	out, err := binary.Append(make([]byte, 0, len(values)*int(Of[T]().Size)), binary.LittleEndian, values)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", Of[T](), err)
	}
	return out, nil
}

// Decode fills dst from raw, which must hold exactly len(dst) elements of
// the stored datatype stored. The stored datatype must equal Of[T]().
func Decode[T Element](stored Datatype, raw []byte, dst []T) error {
	want := Of[T]()
	if stored != want {
		return fmt.Errorf("%w: stored %s, requested %s", ErrUnsupported, stored, want)
	}
	if len(raw) != len(dst)*int(want.Size) {
		return fmt.Errorf("%w: %d bytes for %d %s elements", ErrSize, len(raw), len(dst), want)
	}
	if len(dst) == 0 {
		return nil
	}
	if _, err := binary.Decode(raw, binary.LittleEndian, dst); err != nil {
		return fmt.Errorf("decoding %s: %w", want, err)
	}
	return nil
}

// Count returns how many elements of d fit in n bytes.
func Count(d Datatype, n int) (int, error) {
	if d.Size == 0 {
		return 0, fmt.Errorf("%w: %s has no fixed size", ErrUnsupported, d)
	}
	if n%int(d.Size) != 0 {
		return 0, fmt.Errorf("%w: %d bytes of %s", ErrSize, n, d)
	}
	return n / int(d.Size), nil
}

// EncodeStrings stores each value as a uint32 byte length followed by its
// UTF-8 bytes.
func EncodeStrings(values []string) []byte {
	size := 0
	for _, v := range values {
		size += 4 + len(v)
	}
	out := make([]byte, 0, size)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(v)))
		out = append(out, v...)
	}
	return out
}

// DecodeStrings parses exactly n strings written by EncodeStrings.
func DecodeStrings(raw []byte, n int) ([]string, error) {
	if n < 0 || n > len(raw)/4 {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d strings", ErrSize, len(raw), n)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if len(raw) < 4 {
			return nil, fmt.Errorf("%w: string %d length truncated", ErrSize, i)
		}
		l := int(binary.LittleEndian.Uint32(raw))
		raw = raw[4:]
		if l > len(raw) {
			return nil, fmt.Errorf("%w: string %d wants %d bytes, %d remain", ErrSize, i, l, len(raw))
		}
		if !utf8.Valid(raw[:l]) {
			return nil, fmt.Errorf("string %d is not valid UTF-8", i)
		}
		out = append(out, string(raw[:l]))
		raw = raw[l:]
	}
	if len(raw) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d strings", ErrSize, len(raw), n)
	}
	return out, nil
}
