package graph

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// DataArray is a typed array of tuples, each holding ComponentShape
// elements. Data is tuple-major.
type DataArray[T Element] struct {
	Base
	TupleShape     []uint64
	ComponentShape []uint64
	Data           []T
}

// NewDataArray creates a zero-filled array with a fresh id.
func NewDataArray[T Element](g *Graph, name string, tupleShape, componentShape []uint64, parent OptionalID) (*DataArray[T], error) {
	return ImportDataArray[T](g, name, g.NextID(), tupleShape, componentShape, nil, parent)
}

// ImportDataArray creates an array with the given id. A nil data slice is
// allocated zero-filled; otherwise its length must match the shapes.
func ImportDataArray[T Element](g *Graph, name string, id ID, tupleShape, componentShape []uint64, data []T, parent OptionalID) (*DataArray[T], error) {
	if len(componentShape) == 0 {
		componentShape = []uint64{1}
	}
	want, ok := checkedProduct(tupleShape, componentShape)
	if !ok || want > math.MaxInt {
		return nil, fmt.Errorf("%w: %q shape %v x %v is too large", ErrShape, name, tupleShape, componentShape)
	}
	if data == nil {
		data = make([]T, want)
	} else if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: %q has %d elements, shape %v x %v needs %d", ErrShape, name, len(data), tupleShape, componentShape, want)
	}
	n := &DataArray[T]{
		Base:           newBase(id, name, GenericType(KindDataArray, DataTypeOf[T]())),
		TupleShape:     slices.Clone(tupleShape),
		ComponentShape: slices.Clone(componentShape),
		Data:           data,
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

// NumTuples returns the product of the tuple shape.
func (a *DataArray[T]) NumTuples() uint64 { return product(a.TupleShape) }

// NumComponents returns the product of the component shape.
func (a *DataArray[T]) NumComponents() uint64 { return product(a.ComponentShape) }

// Tuple returns the components of tuple i.
func (a *DataArray[T]) Tuple(i uint64) []T {
	nc := a.NumComponents()
	return a.Data[i*nc : (i+1)*nc]
}

func (a *DataArray[T]) clone() Node {
	c := *a
	c.TupleShape = slices.Clone(a.TupleShape)
	c.ComponentShape = slices.Clone(a.ComponentShape)
	c.Data = slices.Clone(a.Data)
	return &c
}

func (a *DataArray[T]) sameContent(other Node) bool {
	o, ok := other.(*DataArray[T])
	return ok &&
		slices.Equal(a.TupleShape, o.TupleShape) &&
		slices.Equal(a.ComponentShape, o.ComponentShape) &&
		slices.Equal(a.Data, o.Data)
}

func (a *DataArray[T]) checkShape() error {
	if want := a.NumTuples() * a.NumComponents(); uint64(len(a.Data)) != want {
		return fmt.Errorf("%w: %s has %d elements, expected %d", ErrShape, &a.Base, len(a.Data), want)
	}
	return nil
}

// ScalarData holds exactly one value.
type ScalarData[T Element] struct {
	Base
	Value T
}

// NewScalarData creates a scalar with a fresh id.
func NewScalarData[T Element](g *Graph, name string, value T, parent OptionalID) (*ScalarData[T], error) {
	return ImportScalarData(g, name, g.NextID(), value, parent)
}

// ImportScalarData creates a scalar with the given id.
func ImportScalarData[T Element](g *Graph, name string, id ID, value T, parent OptionalID) (*ScalarData[T], error) {
	n := &ScalarData[T]{
		Base:  newBase(id, name, GenericType(KindScalarData, DataTypeOf[T]())),
		Value: value,
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ScalarData[T]) clone() Node {
	c := *s
	return &c
}

func (s *ScalarData[T]) sameContent(other Node) bool {
	o, ok := other.(*ScalarData[T])
	return ok && s.Value == o.Value
}

// StringArray is a one-dimensional array of strings.
type StringArray struct {
	Base
	Values []string
}

// NewStringArray creates a string array with a fresh id.
func NewStringArray(g *Graph, name string, values []string, parent OptionalID) (*StringArray, error) {
	return ImportStringArray(g, name, g.NextID(), values, parent)
}

// ImportStringArray creates a string array with the given id.
func ImportStringArray(g *Graph, name string, id ID, values []string, parent OptionalID) (*StringArray, error) {
	n := &StringArray{
		Base:   newBase(id, name, TypeOf(KindStringArray)),
		Values: slices.Clone(values),
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *StringArray) clone() Node {
	c := *s
	c.Values = slices.Clone(s.Values)
	return &c
}

func (s *StringArray) sameContent(other Node) bool {
	o, ok := other.(*StringArray)
	return ok && slices.Equal(s.Values, o.Values)
}

// NeighborList holds a variable-length list per tuple.
type NeighborList[T Element] struct {
	Base
	Lists [][]T
}

// NewNeighborList creates a neighbor list with a fresh id.
func NewNeighborList[T Element](g *Graph, name string, lists [][]T, parent OptionalID) (*NeighborList[T], error) {
	return ImportNeighborList(g, name, g.NextID(), lists, parent)
}

// ImportNeighborList creates a neighbor list with the given id.
func ImportNeighborList[T Element](g *Graph, name string, id ID, lists [][]T, parent OptionalID) (*NeighborList[T], error) {
	n := &NeighborList[T]{
		Base:  newBase(id, name, GenericType(KindNeighborList, DataTypeOf[T]())),
		Lists: cloneLists(lists),
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

// NumNeighborsName is the name of the sibling dataset holding list lengths
// when the list is stored.
func (l *NeighborList[T]) NumNeighborsName() string {
	return l.name + "_NumNeighbors"
}

// NumTuples returns the number of lists.
func (l *NeighborList[T]) NumTuples() uint64 { return uint64(len(l.Lists)) }

func (l *NeighborList[T]) clone() Node {
	c := *l
	c.Lists = cloneLists(l.Lists)
	return &c
}

func (l *NeighborList[T]) sameContent(other Node) bool {
	o, ok := other.(*NeighborList[T])
	if !ok || len(l.Lists) != len(o.Lists) {
		return false
	}
	for i := range l.Lists {
		if !slices.Equal(l.Lists[i], o.Lists[i]) {
			return false
		}
	}
	return true
}

func cloneLists[T Element](lists [][]T) [][]T {
	out := make([][]T, len(lists))
	for i, l := range lists {
		out[i] = slices.Clone(l)
	}
	return out
}

// NumTuples returns the number of strings.
func (s *StringArray) NumTuples() uint64 { return uint64(len(s.Values)) }
