// Package graph is the in-memory data structure: an arena of typed nodes
// keyed by integer id.
//
// Parent and child relations and the role slots of geometries are plain
// ids resolved through the Graph, never pointers, so a geometry and the
// arrays it refers to can reference each other freely. The set of node
// variants is closed; every node's Type is fixed at construction.
//
// Basic usage:
//
//	g := graph.New()
//	geom, _ := graph.NewGeometry(g, graph.KindEdgeGeom, "Edges", graph.None)
//	edges, _ := graph.NewDataArray[uint64](g, "Edge List", []uint64{4}, []uint64{2}, graph.Some(geom.ID()))
//	geom.SetSlot(graph.RoleSharedEdgeList, graph.Some(edges.ID()))
//	if err := g.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// A Graph is not safe for concurrent use.
package graph
