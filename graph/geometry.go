package graph

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// GeometryNode is implemented by *Geometry, *ImageGeom and *RectGridGeom.
type GeometryNode interface {
	Node
	Slot(r Role) OptionalID
	SetSlot(r Role, id OptionalID) error

	geometry() *Geometry
}

// Geometry is a group with role slots. Node geometries (vertex through
// hexahedral) use it directly; grid geometries embed it.
type Geometry struct {
	Base
	slots map[Role]ID
}

func newGeometry(id ID, name string, k Kind) Geometry {
	return Geometry{Base: newBase(id, name, TypeOf(k)), slots: make(map[Role]ID)}
}

// NewGeometry creates a node geometry of kind k with a fresh id. Grid
// geometries are created with NewImageGeom and NewRectGridGeom.
func NewGeometry(g *Graph, k Kind, name string, parent OptionalID) (*Geometry, error) {
	return ImportGeometry(g, k, name, g.NextID(), parent)
}

// ImportGeometry creates a node geometry with the given id.
func ImportGeometry(g *Graph, k Kind, name string, id ID, parent OptionalID) (*Geometry, error) {
	if k.Dimension() < 0 {
		return nil, fmt.Errorf("%w: %s is not a node geometry", ErrWrongType, k)
	}
	n := newGeometry(id, name, k)
	if err := g.insert(&n, parent); err != nil {
		return nil, err
	}
	return &n, nil
}

func (g *Geometry) geometry() *Geometry { return g }

// Slot returns the id stored in role r.
func (g *Geometry) Slot(r Role) OptionalID {
	if id, ok := g.slots[r]; ok {
		return Some(id)
	}
	return None
}

// SetSlot stores id in role r, or clears it when id is absent.
func (g *Geometry) SetSlot(r Role, id OptionalID) error {
	if !g.typ.Kind.HasRole(r) {
		return fmt.Errorf("%w: %s has no %q", ErrInvalidRole, g.typ, r)
	}
	if id.Valid {
		g.slots[r] = id.ID
	} else {
		delete(g.slots, r)
	}
	return nil
}

// clearRefs drops every slot pointing at a removed id.
func (g *Geometry) clearRefs(removed map[ID]struct{}) {
	for r, id := range g.slots {
		if _, ok := removed[id]; ok {
			delete(g.slots, r)
		}
	}
}

func (g *Geometry) cloneGeometry() Geometry {
	c := *g
	c.slots = maps.Clone(g.slots)
	return c
}

func (g *Geometry) clone() Node {
	c := g.cloneGeometry()
	return &c
}

func (g *Geometry) sameContent(other Node) bool {
	o, ok := other.(*Geometry)
	return ok && o.typ == g.typ
}

// ImageGeom is a regular grid described by its cell counts, origin and
// spacing.
type ImageGeom struct {
	Geometry
	Dimensions [3]uint64
	Origin     [3]float32
	Spacing    [3]float32
}

// NewImageGeom creates an image geometry with a fresh id, unit spacing and
// zero dimensions.
func NewImageGeom(g *Graph, name string, parent OptionalID) (*ImageGeom, error) {
	return ImportImageGeom(g, name, g.NextID(), parent)
}

// ImportImageGeom creates an image geometry with the given id.
func ImportImageGeom(g *Graph, name string, id ID, parent OptionalID) (*ImageGeom, error) {
	n := &ImageGeom{
		Geometry: newGeometry(id, name, KindImageGeom),
		Spacing:  [3]float32{1, 1, 1},
	}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

// NumCells returns the number of cells in the grid.
func (n *ImageGeom) NumCells() uint64 {
	return n.Dimensions[0] * n.Dimensions[1] * n.Dimensions[2]
}

func (n *ImageGeom) clone() Node {
	c := *n
	c.Geometry = n.cloneGeometry()
	return &c
}

func (n *ImageGeom) sameContent(other Node) bool {
	o, ok := other.(*ImageGeom)
	return ok && n.Dimensions == o.Dimensions && n.Origin == o.Origin && n.Spacing == o.Spacing
}

// RectGridGeom is a rectilinear grid whose cell boundaries are held by the
// arrays in its bounds slots.
type RectGridGeom struct {
	Geometry
	Dimensions [3]uint64
}

// NewRectGridGeom creates a rectilinear grid geometry with a fresh id.
func NewRectGridGeom(g *Graph, name string, parent OptionalID) (*RectGridGeom, error) {
	return ImportRectGridGeom(g, name, g.NextID(), parent)
}

// ImportRectGridGeom creates a rectilinear grid geometry with the given id.
func ImportRectGridGeom(g *Graph, name string, id ID, parent OptionalID) (*RectGridGeom, error) {
	n := &RectGridGeom{Geometry: newGeometry(id, name, KindRectGridGeom)}
	if err := g.insert(n, parent); err != nil {
		return nil, err
	}
	return n, nil
}

// NumCells returns the number of cells in the grid.
func (n *RectGridGeom) NumCells() uint64 {
	return n.Dimensions[0] * n.Dimensions[1] * n.Dimensions[2]
}

func (n *RectGridGeom) clone() Node {
	c := *n
	c.Geometry = n.cloneGeometry()
	return &c
}

func (n *RectGridGeom) sameContent(other Node) bool {
	o, ok := other.(*RectGridGeom)
	return ok && n.Dimensions == o.Dimensions
}
