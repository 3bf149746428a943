package graph

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/slices"
)

// Errors
var (
	ErrNotFound    = errors.New("node not found")
	ErrExists      = errors.New("id already in use")
	ErrWrongType   = errors.New("node has a different type")
	ErrNotGroup    = errors.New("node cannot have children")
	ErrInvalidName = errors.New("invalid node name")
	ErrInvalidRole = errors.New("geometry has no such role")
	ErrShape       = errors.New("data does not match shape")
	ErrCycle       = errors.New("node would become its own ancestor")
)

// Node is implemented by every node variant in this package and by no
// other type.
type Node interface {
	ID() ID
	Name() string
	Type() Type
	// Parent returns the parent id, absent for roots.
	Parent() OptionalID

	base() *Base
	clone() Node
	sameContent(other Node) bool
}

// Base holds the fields every node has.
type Base struct {
	id     ID
	name   string
	typ    Type
	parent OptionalID
}

func newBase(id ID, name string, t Type) Base {
	return Base{id: id, name: name, typ: t}
}

func (b *Base) ID() ID             { return b.id }
func (b *Base) Name() string       { return b.name }
func (b *Base) Type() Type         { return b.typ }
func (b *Base) Parent() OptionalID { return b.parent }
func (b *Base) base() *Base        { return b }

func (b *Base) String() string {
	return fmt.Sprintf("%s %q (id %d)", b.typ, b.name, b.id)
}

// ValidateName checks that name can name a node.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.Contains(name, "/"):
		return fmt.Errorf("%w: %q contains '/'", ErrInvalidName, name)
	}
	return nil
}

// DataGroup is a plain container of other nodes.
type DataGroup struct {
	Base
}

// NewDataGroup creates a group with a fresh id.
func NewDataGroup(g *Graph, name string, parent OptionalID) (*DataGroup, error) {
	return ImportDataGroup(g, name, g.NextID(), parent)
}

// ImportDataGroup creates a group with the given id.
func ImportDataGroup(g *Graph, name string, id ID, parent OptionalID) (*DataGroup, error) {
	n := &DataGroup{Base: newBase(id, name, TypeOf(KindDataGroup))}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *DataGroup) clone() Node {
	c := *n
	return &c
}

func (n *DataGroup) sameContent(other Node) bool {
	_, ok := other.(*DataGroup)
	return ok
}

// AttributeMatrix groups arrays that share a tuple shape.
type AttributeMatrix struct {
	Base
	TupleShape []uint64
}

// NewAttributeMatrix creates an attribute matrix with a fresh id.
func NewAttributeMatrix(g *Graph, name string, tupleShape []uint64, parent OptionalID) (*AttributeMatrix, error) {
	return ImportAttributeMatrix(g, name, g.NextID(), tupleShape, parent)
}

// ImportAttributeMatrix creates an attribute matrix with the given id.
func ImportAttributeMatrix(g *Graph, name string, id ID, tupleShape []uint64, parent OptionalID) (*AttributeMatrix, error) {
	n := &AttributeMatrix{
		Base:       newBase(id, name, TypeOf(KindAttributeMatrix)),
		TupleShape: slices.Clone(tupleShape),
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

// NumTuples returns the product of the tuple shape.
func (n *AttributeMatrix) NumTuples() uint64 {
	return product(n.TupleShape)
}

func (n *AttributeMatrix) clone() Node {
	c := *n
	c.TupleShape = slices.Clone(n.TupleShape)
	return &c
}

func (n *AttributeMatrix) sameContent(other Node) bool {
	o, ok := other.(*AttributeMatrix)
	return ok && slices.Equal(n.TupleShape, o.TupleShape)
}

func product(shape []uint64) uint64 {
	n := uint64(1)
	for _, d := range shape {
		n *= d
	}
	return n
}

// checkedProduct multiplies every dimension of shapes. ok is false on
// overflow.
func checkedProduct(shapes ...[]uint64) (n uint64, ok bool) {
	n = 1
	for _, shape := range shapes {
		for _, d := range shape {
			hi, lo := bits.Mul64(n, d)
			if hi != 0 {
				return 0, false
			}
			n = lo
		}
	}
	return n, true
}
