package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// Mode selects how an action applies. Preflight builds structure only;
// Execute also fills in data.
type Mode uint8

const (
	ModePreflight Mode = iota
	ModeExecute
)

func (m Mode) String() string {
	if m == ModeExecute {
		return "execute"
	}
	return "preflight"
}

// Action is a structural change to a graph.
type Action interface {
	Apply(ctx context.Context, g *graph.Graph, mode Mode) error
	String() string
}

// OutputActions are what a filter's preflight reports.
type OutputActions struct {
	Actions  []Action
	Warnings result.Warnings
}

// Append adds actions in order.
func (o *OutputActions) Append(acts ...Action) {
	o.Actions = append(o.Actions, acts...)
}

// Apply applies every action in order, stopping at the first failure.
func (o *OutputActions) Apply(ctx context.Context, g *graph.Graph, mode Mode) error {
	for _, a := range o.Actions {
		if err := result.Canceled(ctx); err != nil {
			return err
		}
		if err := a.Apply(ctx, g, mode); err != nil {
			if result.GetCode(err) != 0 {
				return fmt.Errorf("%s: %w", a, err)
			}
			return result.Wrap(CodeAction, err, "%s (%s)", a, mode)
		}
	}
	return nil
}

// splitPath resolves the parent of a slash-separated node path.
func splitPath(g *graph.Graph, path string) (graph.OptionalID, string, error) {
	path = strings.Trim(path, "/")
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return graph.None, path, nil
	}
	parent, err := g.FindByPath(path[:i])
	if err != nil {
		return graph.None, "", err
	}
	return graph.Some(parent.ID()), path[i+1:], nil
}

// CreateDataGroup adds a data group at Path.
type CreateDataGroup struct {
	Path string
}

func (a CreateDataGroup) String() string { return "create data group " + a.Path }

func (a CreateDataGroup) Apply(_ context.Context, g *graph.Graph, _ Mode) error {
	parent, name, err := splitPath(g, a.Path)
	if err != nil {
		return err
	}
	_, err = graph.NewDataGroup(g, name, parent)
	return err
}

// CreateArray adds a data array at Path. When executed every element is
// set to Fill.
type CreateArray struct {
	Path           string
	Type           graph.DataType
	TupleShape     []uint64
	ComponentShape []uint64
	Fill           float64
}

func (a CreateArray) String() string {
	return fmt.Sprintf("create %s %s %v x %v", graph.GenericType(graph.KindDataArray, a.Type), a.Path, a.TupleShape, a.ComponentShape)
}

func (a CreateArray) Apply(_ context.Context, g *graph.Graph, mode Mode) error {
	ops, ok := elements[a.Type]
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownType, a.Type)
	}
	parent, name, err := splitPath(g, a.Path)
	if err != nil {
		return err
	}
	return ops.array(g, name, a.TupleShape, a.ComponentShape, parent, a.Fill, mode == ModeExecute)
}

// CreateScalar adds a scalar at Path holding Value converted to Type.
type CreateScalar struct {
	Path  string
	Type  graph.DataType
	Value float64
}

func (a CreateScalar) String() string {
	return fmt.Sprintf("create %s %s = %v", graph.GenericType(graph.KindScalarData, a.Type), a.Path, a.Value)
}

func (a CreateScalar) Apply(_ context.Context, g *graph.Graph, _ Mode) error {
	ops, ok := elements[a.Type]
	if !ok {
		return fmt.Errorf("%w: %s", graph.ErrUnknownType, a.Type)
	}
	parent, name, err := splitPath(g, a.Path)
	if err != nil {
		return err
	}
	return ops.scalar(g, name, a.Value, parent)
}

// DeleteData removes the node at Path and everything below it.
type DeleteData struct {
	Path string
}

func (a DeleteData) String() string { return "delete " + a.Path }

func (a DeleteData) Apply(_ context.Context, g *graph.Graph, _ Mode) error {
	n, err := g.FindByPath(a.Path)
	if err != nil {
		return err
	}
	return g.Remove(n.ID())
}

// elementOps constructs nodes of one element type from untyped values.
type elementOps struct {
	array  func(g *graph.Graph, name string, tuples, comps []uint64, parent graph.OptionalID, fill float64, doFill bool) error
	scalar func(g *graph.Graph, name string, value float64, parent graph.OptionalID) error
}

var elements = map[graph.DataType]elementOps{
	graph.Int8:    opsFor[int8](),
	graph.Int16:   opsFor[int16](),
	graph.Int32:   opsFor[int32](),
	graph.Int64:   opsFor[int64](),
	graph.Uint8:   opsFor[uint8](),
	graph.Uint16:  opsFor[uint16](),
	graph.Uint32:  opsFor[uint32](),
	graph.Uint64:  opsFor[uint64](),
	graph.Float32: opsFor[float32](),
	graph.Float64: opsFor[float64](),
	graph.Bool:    opsFor[bool](),
}

func opsFor[T graph.Element]() elementOps {
	return elementOps{
		array: func(g *graph.Graph, name string, tuples, comps []uint64, parent graph.OptionalID, fill float64, doFill bool) error {
			a, err := graph.NewDataArray[T](g, name, tuples, comps, parent)
			if err != nil || !doFill || fill == 0 {
				return err
			}
			v := fromFloat[T](fill)
			for i := range a.Data {
				a.Data[i] = v
			}
			return nil
		},
		scalar: func(g *graph.Graph, name string, value float64, parent graph.OptionalID) error {
			_, err := graph.NewScalarData(g, name, fromFloat[T](value), parent)
			return err
		},
	}
}

func fromFloat[T graph.Element](v float64) T {
	var out T
	switch p := any(&out).(type) {
	case *int8:
		*p = int8(v)
	case *int16:
		*p = int16(v)
	case *int32:
		*p = int32(v)
	case *int64:
		*p = int64(v)
	case *uint8:
		*p = uint8(v)
	case *uint16:
		*p = uint16(v)
	case *uint32:
		*p = uint32(v)
	case *uint64:
		*p = uint64(v)
	case *float32:
		*p = float32(v)
	case *float64:
		*p = v
	case *bool:
		*p = v != 0
	}
	return out
}
