package dataio

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

var baseGroupLayer = &layer{
	name:       "base group",
	openCode:   CodeGroupOpen,
	createCode: CodeGroupCreate,
	read: func(r *reader, n graph.Node, grp *container.Group) error {
		return r.readChildren(grp, graph.Some(n.ID()))
	},
	write: func(w *writer, n graph.Node, grp *container.Group) error {
		if err := w.writeObjectAttrs(grp, n, CodeObjectAttrs); err != nil {
			return err
		}
		return w.writeChildren(grp, w.g.Children(n.ID()))
	},
}

var attributeMatrixLayer = &layer{
	name:       "attribute matrix",
	base:       baseGroupLayer,
	openCode:   CodeTupleDimsRead,
	createCode: CodeTupleDimsWrite,
	read: func(r *reader, n graph.Node, grp *container.Group) error {
		dims, err := container.AttrSlice[uint64](grp, AttrTupleDims)
		if err != nil {
			return result.Wrap(CodeTupleDimsRead, err, "reading tuple shape of %s", grp.Path())
		}
		n.(*graph.AttributeMatrix).TupleShape = dims
		return nil
	},
	write: func(w *writer, n graph.Node, grp *container.Group) error {
		if err := container.SetAttrSlice(grp, AttrTupleDims, n.(*graph.AttributeMatrix).TupleShape); err != nil {
			return result.Wrap(CodeTupleDimsWrite, err, "writing tuple shape of %s", grp.Path())
		}
		return nil
	},
}

var (
	geometryLayer = slotLayer("geometry", baseGroupLayer, graph.GeometryRoles,
		CodeGeometryOpen, CodeGeometryCreate, CodeGeometrySlot)
	gridLayer = slotLayer("grid geometry", geometryLayer, graph.GridRoles,
		CodeGeometryOpen, CodeGeometryCreate, CodeGeometrySlot)

	node0DLayer = slotLayer("0-D node geometry", geometryLayer, graph.Node0DRoles,
		CodeNodeGeomOpen, CodeNodeGeomCreate, CodeNodeGeomSlot)
	node1DLayer = slotLayer("1-D node geometry", node0DLayer, graph.Node1DRoles,
		CodeNodeGeomOpen, CodeNodeGeomCreate, CodeNodeGeomSlot)
	node2DLayer = slotLayer("2-D node geometry", node1DLayer, graph.Node2DRoles,
		CodeNodeGeomOpen, CodeNodeGeomCreate, CodeNodeGeomSlot)
	node3DLayer = slotLayer("3-D node geometry", node2DLayer, graph.Node3DRoles,
		CodeNodeGeomOpen, CodeNodeGeomCreate, CodeNodeGeomSlot)
)

var imageLayer = &layer{
	name:       "image geometry",
	base:       gridLayer,
	openCode:   CodeImageGroup,
	createCode: CodeImageGroup,
	read: func(r *reader, n graph.Node, grp *container.Group) error {
		img := n.(*graph.ImageGeom)
		dims, err := readVec3[uint64](grp, AttrImageDimensions)
		if err != nil {
			return result.Wrap(CodeImageDims, err, "reading dimensions of %s", grp.Path())
		}
		spacing, err := readVec3[float32](grp, AttrImageSpacing)
		if err != nil {
			return result.Wrap(CodeImageSpacing, err, "reading spacing of %s", grp.Path())
		}
		origin, err := readVec3[float32](grp, AttrImageOrigin)
		if err != nil {
			return result.Wrap(CodeImageOrigin, err, "reading origin of %s", grp.Path())
		}
		img.Dimensions, img.Spacing, img.Origin = dims, spacing, origin
		return nil
	},
	write: func(w *writer, n graph.Node, grp *container.Group) error {
		img := n.(*graph.ImageGeom)
		if err := container.SetAttrSlice(grp, AttrImageDimensions, img.Dimensions[:]); err != nil {
			return result.Wrap(CodeImageDims, err, "writing dimensions of %s", grp.Path())
		}
		if err := container.SetAttrSlice(grp, AttrImageOrigin, img.Origin[:]); err != nil {
			return result.Wrap(CodeImageOrigin, err, "writing origin of %s", grp.Path())
		}
		if err := container.SetAttrSlice(grp, AttrImageSpacing, img.Spacing[:]); err != nil {
			return result.Wrap(CodeImageSpacing, err, "writing spacing of %s", grp.Path())
		}
		return nil
	},
}

var rectGridLayer = &layer{
	name:       "rectilinear grid geometry",
	base:       gridLayer,
	openCode:   CodeRectGridGroup,
	createCode: CodeRectGridGroup,
	read: func(r *reader, n graph.Node, grp *container.Group) error {
		rg := n.(*graph.RectGridGeom)
		dims, err := readVec3[uint64](grp, AttrRectGridDimensions)
		if err != nil {
			return result.Wrap(CodeRectGridDims, err, "reading dimensions of %s", grp.Path())
		}
		rg.Dimensions = dims
		return r.readSlots(rg, grp, graph.RectGridRoles, CodeRectGridSlot)
	},
	write: func(w *writer, n graph.Node, grp *container.Group) error {
		rg := n.(*graph.RectGridGeom)
		if err := container.SetAttrSlice(grp, AttrRectGridDimensions, rg.Dimensions[:]); err != nil {
			return result.Wrap(CodeRectGridDims, err, "writing dimensions of %s", grp.Path())
		}
		return writeSlots(rg, grp, graph.RectGridRoles, CodeRectGridSlot)
	},
}

var errVec3 = errors.New("expected 3 elements")

func readVec3[T container.Element](grp *container.Group, name string) ([3]T, error) {
	var out [3]T
	v, err := container.AttrSlice[T](grp, name)
	if err != nil {
		return out, err
	}
	if len(v) != 3 {
		return out, fmt.Errorf("%w, %q has %d", errVec3, name, len(v))
	}
	copy(out[:], v)
	return out, nil
}

// shellFunc constructs a group node with its stored id before any of its
// layers run.
type shellFunc func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error)

// groupStrategy handles a variant stored as a container group.
type groupStrategy struct {
	shell shellFunc
	top   *layer
}

func (s *groupStrategy) read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error) {
	n, err := s.shell(r.g, name, id, parentID)
	if err != nil {
		return nil, result.Wrap(CodeGroupImport, err, "constructing %s", container.JoinPath(parent.Path(), name))
	}
	r.constructed(n)
	return n, s.top.readNode(r, n, parent, name)
}

func (s *groupStrategy) write(w *writer, n graph.Node, parent *container.Group) error {
	return s.top.writeNode(w, n, parent)
}

func groupStrategies() map[graph.Type]strategy {
	node := func(k graph.Kind, top *layer) (graph.Type, strategy) {
		return graph.TypeOf(k), &groupStrategy{
			top: top,
			shell: func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error) {
				return graph.ImportGeometry(g, k, name, id, parent)
			},
		}
	}
	table := map[graph.Type]strategy{
		graph.TypeOf(graph.KindDataGroup): &groupStrategy{
			top: baseGroupLayer,
			shell: func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error) {
				return graph.ImportDataGroup(g, name, id, parent)
			},
		},
		graph.TypeOf(graph.KindAttributeMatrix): &groupStrategy{
			top: attributeMatrixLayer,
			shell: func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error) {
				return graph.ImportAttributeMatrix(g, name, id, nil, parent)
			},
		},
		graph.TypeOf(graph.KindImageGeom): &groupStrategy{
			top: imageLayer,
			shell: func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error) {
				return graph.ImportImageGeom(g, name, id, parent)
			},
		},
		graph.TypeOf(graph.KindRectGridGeom): &groupStrategy{
			top: rectGridLayer,
			shell: func(g *graph.Graph, name string, id graph.ID, parent graph.OptionalID) (graph.Node, error) {
				return graph.ImportRectGridGeom(g, name, id, parent)
			},
		},
	}
	for k, top := range map[graph.Kind]*layer{
		graph.KindVertexGeom:      node0DLayer,
		graph.KindEdgeGeom:        node1DLayer,
		graph.KindTriangleGeom:    node2DLayer,
		graph.KindQuadGeom:        node2DLayer,
		graph.KindTetrahedralGeom: node3DLayer,
		graph.KindHexahedralGeom:  node3DLayer,
	} {
		t, s := node(k, top)
		table[t] = s
	}
	return table
}
