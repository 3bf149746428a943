package dtype

import (
	"errors"
	"fmt"
)

// Class identifies the family of a datatype.
type Class uint8

const (
	ClassSigned Class = iota + 1
	ClassUnsigned
	ClassFloat
	ClassBool
	ClassString
)

func (c Class) String() string {
	switch c {
	case ClassSigned:
		return "signed"
	case ClassUnsigned:
		return "unsigned"
	case ClassFloat:
		return "float"
	case ClassBool:
		return "bool"
	case ClassString:
		return "string"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Datatype is the on-disk element type of a dataset or attribute.
// Size is the element width in bytes and is zero for strings.
type Datatype struct {
	Class Class
	Size  uint8
}

var (
	Int8    = Datatype{ClassSigned, 1}
	Int16   = Datatype{ClassSigned, 2}
	Int32   = Datatype{ClassSigned, 4}
	Int64   = Datatype{ClassSigned, 8}
	Uint8   = Datatype{ClassUnsigned, 1}
	Uint16  = Datatype{ClassUnsigned, 2}
	Uint32  = Datatype{ClassUnsigned, 4}
	Uint64  = Datatype{ClassUnsigned, 8}
	Float32 = Datatype{ClassFloat, 4}
	Float64 = Datatype{ClassFloat, 8}
	Bool    = Datatype{ClassBool, 1}
	String  = Datatype{ClassString, 0}
)

// ErrUnsupported is returned for datatypes outside the supported set.
var ErrUnsupported = errors.New("unsupported datatype")

// Validate reports whether d is one of the supported datatypes.
func (d Datatype) Validate() error {
	switch d.Class {
	case ClassSigned, ClassUnsigned:
		switch d.Size {
		case 1, 2, 4, 8:
			return nil
		}
	case ClassFloat:
		if d.Size == 4 || d.Size == 8 {
			return nil
		}
	case ClassBool:
		if d.Size == 1 {
			return nil
		}
	case ClassString:
		if d.Size == 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: %s of size %d", ErrUnsupported, d.Class, d.Size)
}

// IsString reports whether d holds strings.
func (d Datatype) IsString() bool {
	return d.Class == ClassString
}

func (d Datatype) String() string {
	switch d.Class {
	case ClassSigned:
		return fmt.Sprintf("int%d", int(d.Size)*8)
	case ClassUnsigned:
		return fmt.Sprintf("uint%d", int(d.Size)*8)
	case ClassFloat:
		return fmt.Sprintf("float%d", int(d.Size)*8)
	case ClassBool:
		return "bool"
	case ClassString:
		return "string"
	default:
		return fmt.Sprintf("%s(%d)", d.Class, d.Size)
	}
}
