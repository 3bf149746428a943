package graph

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Graph owns every node and the parent/child order between them.
type Graph struct {
	nodes    map[ID]Node
	children map[ID][]ID
	roots    []ID
	nextID   ID

	// reserved holds ids claimed without a node, such as the id of a node
	// that failed to load.
	reserved map[ID]struct{}
}

// New returns an empty graph whose first fresh id is 1.
func New() *Graph {
	return &Graph{
		nodes:    make(map[ID]Node),
		children: make(map[ID][]ID),
		reserved: make(map[ID]struct{}),
		nextID:   1,
	}
}

// NextID returns the id the next New* constructor will assign.
func (g *Graph) NextID() ID {
	return g.nextID
}

// SetNextID sets the next fresh id. It never moves below an id already in
// use or reserved.
func (g *Graph) SetNextID(id ID) {
	for used := range g.nodes {
		if used >= id {
			id = used + 1
		}
	}
	for used := range g.reserved {
		if used >= id {
			id = used + 1
		}
	}
	g.nextID = id
}

// ReserveID claims a fresh id that no node will be given.
func (g *Graph) ReserveID() ID {
	id := g.nextID
	g.Reserve(id)
	return id
}

// Reserve marks id as claimed but unresolved. References to it do not
// resolve, and no node can later be inserted with it.
func (g *Graph) Reserve(id ID) {
	g.reserved[id] = struct{}{}
	if id >= g.nextID {
		g.nextID = id + 1
	}
}

// IsReserved reports whether id was reserved without a node.
func (g *Graph) IsReserved(id ID) bool {
	_, ok := g.reserved[id]
	return ok
}

func (g *Graph) insert(n Node, parent OptionalID) error {
	b := n.base()
	if err := ValidateName(b.name); err != nil {
		return err
	}
	if !b.typ.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownType, b.typ)
	}
	if _, ok := g.nodes[b.id]; ok {
		return fmt.Errorf("%w: %d", ErrExists, b.id)
	}
	if g.IsReserved(b.id) {
		return fmt.Errorf("%w: %d is reserved", ErrExists, b.id)
	}
	if parent.Valid {
		p, ok := g.nodes[parent.ID]
		if !ok {
			return fmt.Errorf("%w: parent %d of %q", ErrNotFound, parent.ID, b.name)
		}
		if !p.Type().Kind.IsGroup() {
			return fmt.Errorf("%w: %s", ErrNotGroup, p.base())
		}
		g.children[parent.ID] = append(g.children[parent.ID], b.id)
	} else {
		g.roots = append(g.roots, b.id)
	}
	b.parent = parent
	g.nodes[b.id] = n
	if b.id >= g.nextID {
		g.nextID = b.id + 1
	}
	return nil
}

// Get returns the node with the given id.
func (g *Graph) Get(id ID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Contains reports whether a node with the given id exists.
func (g *Graph) Contains(id ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Lookup returns the node with the given id as a T.
func Lookup[T Node](g *Graph, id ID) (T, error) {
	var zero T
	n, ok := g.nodes[id]
	if !ok {
		return zero, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t, ok := n.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongType, n.base(), n)
	}
	return t, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// IDs returns every node id in ascending order.
func (g *Graph) IDs() []ID {
	ids := maps.Keys(g.nodes)
	slices.Sort(ids)
	return ids
}

// Roots returns the ids of parentless nodes in insertion order.
func (g *Graph) Roots() []ID {
	return slices.Clone(g.roots)
}

// Children returns the ids of id's children in insertion order.
func (g *Graph) Children(id ID) []ID {
	return slices.Clone(g.children[id])
}

// Parent returns id's parent, absent for roots and unknown ids.
func (g *Graph) Parent(id ID) OptionalID {
	if n, ok := g.nodes[id]; ok {
		return n.Parent()
	}
	return None
}

// PathOf returns the slash-separated names from a root down to id.
func (g *Graph) PathOf(id ID) (string, error) {
	var names []string
	for cur := Some(id); cur.Valid; {
		n, ok := g.nodes[cur.ID]
		if !ok {
			return "", fmt.Errorf("%w: %d", ErrNotFound, cur.ID)
		}
		names = append(names, n.Name())
		cur = n.Parent()
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, "/"), nil
}

// FindByPath returns the node at a slash-separated path of names. Where
// siblings share a name the first one in insertion order wins.
func (g *Graph) FindByPath(path string) (Node, error) {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	level := g.roots
	var found Node
	for _, name := range parts {
		found = nil
		for _, id := range level {
			if n := g.nodes[id]; n.Name() == name {
				found = n
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
		}
		level = g.children[found.ID()]
	}
	return found, nil
}

// ChildByName returns the first child of parent with the given name; an
// absent parent searches the roots.
func (g *Graph) ChildByName(parent OptionalID, name string) (Node, bool) {
	level := g.roots
	if parent.Valid {
		level = g.children[parent.ID]
	}
	for _, id := range level {
		if n := g.nodes[id]; n.Name() == name {
			return n, true
		}
	}
	return nil, false
}

// Rename changes a node's name. Names need not be unique among siblings.
func (g *Graph) Rename(id ID, name string) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	n.base().name = name
	return nil
}

// Move reparents id under parent, or makes it a root when parent is
// absent. Moving a node below itself fails with ErrCycle.
func (g *Graph) Move(id ID, parent OptionalID) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if parent.Valid {
		p, ok := g.nodes[parent.ID]
		if !ok {
			return fmt.Errorf("%w: parent %d", ErrNotFound, parent.ID)
		}
		if !p.Type().Kind.IsGroup() {
			return fmt.Errorf("%w: %s", ErrNotGroup, p.base())
		}
		for cur := parent; cur.Valid; cur = g.nodes[cur.ID].Parent() {
			if cur.ID == id {
				return fmt.Errorf("%w: %s under %s", ErrCycle, n.base(), p.base())
			}
		}
	}
	g.unlink(n)
	if parent.Valid {
		g.children[parent.ID] = append(g.children[parent.ID], id)
	} else {
		g.roots = append(g.roots, id)
	}
	n.base().parent = parent
	return nil
}

func (g *Graph) unlink(n Node) {
	if p := n.Parent(); p.Valid {
		g.children[p.ID] = slices.DeleteFunc(g.children[p.ID], func(c ID) bool { return c == n.ID() })
	} else {
		g.roots = slices.DeleteFunc(g.roots, func(c ID) bool { return c == n.ID() })
	}
}

// Remove deletes id and everything below it. Geometry slots anywhere in
// the graph that pointed at a removed node become absent.
func (g *Graph) Remove(id ID) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	g.unlink(n)

	removed := make(map[ID]struct{})
	stack := []ID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		removed[cur] = struct{}{}
		stack = append(stack, g.children[cur]...)
		delete(g.children, cur)
		delete(g.nodes, cur)
	}
	for _, other := range g.nodes {
		if geom, ok := other.(GeometryNode); ok {
			geom.geometry().clearRefs(removed)
		}
	}
	return nil
}

// WalkFunc is called for each node during Walk with its depth below the
// roots. Returning an error stops the walk.
type WalkFunc func(n Node, depth int) error

// Walk visits every node depth-first, parents before children, roots and
// children in insertion order.
func (g *Graph) Walk(fn WalkFunc) error {
	for _, id := range g.roots {
		if err := g.walk(id, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) walk(id ID, depth int, fn WalkFunc) error {
	if err := fn(g.nodes[id], depth); err != nil {
		return err
	}
	for _, c := range g.children[id] {
		if err := g.walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
