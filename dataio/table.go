package dataio

import (
	"sync"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
)

// strategy reads and writes one node variant.
type strategy interface {
	// read constructs the node stored as name under parent. It may return
	// a node together with an error when the node was constructed before
	// a later step failed.
	read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error)
	write(w *writer, n graph.Node, parent *container.Group) error
}

var strategies = sync.OnceValue(buildTable)

func buildTable() map[graph.Type]strategy {
	table := groupStrategies()
	table[graph.TypeOf(graph.KindStringArray)] = stringArrayStrategy{}
	addElementStrategies[int8](table)
	addElementStrategies[int16](table)
	addElementStrategies[int32](table)
	addElementStrategies[int64](table)
	addElementStrategies[uint8](table)
	addElementStrategies[uint16](table)
	addElementStrategies[uint32](table)
	addElementStrategies[uint64](table)
	addElementStrategies[float32](table)
	addElementStrategies[float64](table)
	addElementStrategies[bool](table)
	return table
}

func addElementStrategies[T graph.Element](table map[graph.Type]strategy) {
	dt := graph.DataTypeOf[T]()
	table[graph.GenericType(graph.KindDataArray, dt)] = dataArrayStrategy[T]{}
	table[graph.GenericType(graph.KindScalarData, dt)] = scalarStrategy[T]{}
	table[graph.GenericType(graph.KindNeighborList, dt)] = neighborListStrategy[T]{}
}

// Supported reports whether t has a strategy.
func Supported(t graph.Type) bool {
	_, ok := strategies()[t]
	return ok
}
