package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a type tag names no known variant.
var ErrUnknownType = errors.New("unknown type tag")

// DataType is the element type of arrays, scalars and neighbor lists.
type DataType uint8

const (
	Int8 DataType = iota + 1
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bool
)

var dataTypeNames = [...]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Bool:    "bool",
}

// DataTypes lists every element type in declaration order.
func DataTypes() []DataType {
	out := make([]DataType, 0, len(dataTypeNames)-1)
	for dt := Int8; dt <= Bool; dt++ {
		out = append(out, dt)
	}
	return out
}

func (dt DataType) String() string {
	if dt.Valid() {
		return dataTypeNames[dt]
	}
	return fmt.Sprintf("DataType(%d)", uint8(dt))
}

// Valid reports whether dt is a known element type.
func (dt DataType) Valid() bool {
	return dt >= Int8 && dt <= Bool
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(s string) (DataType, error) {
	for dt := Int8; dt <= Bool; dt++ {
		if dataTypeNames[dt] == s {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("%w: element type %q", ErrUnknownType, s)
}

// MarshalText renders dt by name, so element types read naturally in JSON.
func (dt DataType) MarshalText() ([]byte, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(dt))
	}
	return []byte(dt.String()), nil
}

func (dt *DataType) UnmarshalText(b []byte) error {
	v, err := ParseDataType(string(b))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

// Element is the set of Go types that can be stored in a node.
type Element interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64 | bool
}

// DataTypeOf returns the DataType for T.
func DataTypeOf[T Element]() DataType {
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

// Kind is the node variant.
type Kind uint8

const (
	KindDataGroup Kind = iota + 1
	KindAttributeMatrix
	KindDataArray
	KindScalarData
	KindStringArray
	KindNeighborList
	KindImageGeom
	KindRectGridGeom
	KindVertexGeom
	KindEdgeGeom
	KindTriangleGeom
	KindQuadGeom
	KindTetrahedralGeom
	KindHexahedralGeom
)

var kindNames = [...]string{
	KindDataGroup:       "DataGroup",
	KindAttributeMatrix: "AttributeMatrix",
	KindDataArray:       "DataArray",
	KindScalarData:      "ScalarData",
	KindStringArray:     "StringArray",
	KindNeighborList:    "NeighborList",
	KindImageGeom:       "ImageGeom",
	KindRectGridGeom:    "RectGridGeom",
	KindVertexGeom:      "VertexGeom",
	KindEdgeGeom:        "EdgeGeom",
	KindTriangleGeom:    "TriangleGeom",
	KindQuadGeom:        "QuadGeom",
	KindTetrahedralGeom: "TetrahedralGeom",
	KindHexahedralGeom:  "HexahedralGeom",
}

func (k Kind) String() string {
	if k >= KindDataGroup && k <= KindHexahedralGeom {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Generic reports whether nodes of this kind carry an element type.
func (k Kind) Generic() bool {
	return k == KindDataArray || k == KindScalarData || k == KindNeighborList
}

// IsGroup reports whether nodes of this kind may have children.
func (k Kind) IsGroup() bool {
	return k == KindDataGroup || k == KindAttributeMatrix || k.IsGeometry()
}

// IsGeometry reports whether k is one of the geometry kinds.
func (k Kind) IsGeometry() bool {
	return k >= KindImageGeom && k <= KindHexahedralGeom
}

// IsGrid reports whether k is a grid geometry.
func (k Kind) IsGrid() bool {
	return k == KindImageGeom || k == KindRectGridGeom
}

// Dimension returns the topological dimension of a node geometry, or -1
// for grid geometries and non-geometries.
func (k Kind) Dimension() int {
	switch k {
	case KindVertexGeom:
		return 0
	case KindEdgeGeom:
		return 1
	case KindTriangleGeom, KindQuadGeom:
		return 2
	case KindTetrahedralGeom, KindHexahedralGeom:
		return 3
	}
	return -1
}

// Type is the immutable type tag of a node. Elem is set only for generic
// kinds.
type Type struct {
	Kind Kind
	Elem DataType
}

// TypeOf returns the tag of a non-generic kind.
func TypeOf(k Kind) Type {
	return Type{Kind: k}
}

// GenericType returns the tag of a generic kind with element type dt.
func GenericType(k Kind, dt DataType) Type {
	return Type{Kind: k, Elem: dt}
}

// Valid reports whether t is one of the closed set returned by Types.
func (t Type) Valid() bool {
	if t.Kind < KindDataGroup || t.Kind > KindHexahedralGeom {
		return false
	}
	if t.Kind.Generic() {
		return t.Elem.Valid()
	}
	return t.Elem == 0
}

// String renders the tag as stored on disk, e.g. "DataArray<int32>".
func (t Type) String() string {
	if t.Kind.Generic() {
		return t.Kind.String() + "<" + t.Elem.String() + ">"
	}
	return t.Kind.String()
}

// ParseType parses a tag produced by Type.String. Unknown kinds and element
// types fail with ErrUnknownType.
func ParseType(s string) (Type, error) {
	name, elem, generic := strings.Cut(s, "<")
	if generic {
		var ok bool
		if elem, ok = strings.CutSuffix(elem, ">"); !ok {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
	}
	for k := KindDataGroup; k <= KindHexahedralGeom; k++ {
		if kindNames[k] != name {
			continue
		}
		if k.Generic() != generic {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		if !generic {
			return TypeOf(k), nil
		}
		dt, err := ParseDataType(elem)
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return GenericType(k, dt), nil
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Types lists every valid type tag.
func Types() []Type {
	var out []Type
	for k := KindDataGroup; k <= KindHexahedralGeom; k++ {
		if !k.Generic() {
			out = append(out, TypeOf(k))
			continue
		}
		for _, dt := range DataTypes() {
			out = append(out, GenericType(k, dt))
		}
	}
	return out
}
