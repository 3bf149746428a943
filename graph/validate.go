package graph

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Errors
var (
	ErrDangling      = errors.New("reference does not resolve")
	ErrInconsistent  = errors.New("parent and child links disagree")
	ErrNotEquivalent = errors.New("graphs are not equivalent")
)

type tupled interface {
	NumTuples() uint64
}

type shaped interface {
	checkShape() error
}

// Validate checks the structural invariants of the graph: every parent
// and role slot resolves, parent and child lists agree, no node is its own
// ancestor, slots hold nodes of an acceptable type and array data matches
// its shape. All violations are returned together.
func (g *Graph) Validate() error {
	var errs error
	for _, id := range g.IDs() {
		errs = multierr.Append(errs, g.validateNode(g.nodes[id]))
	}
	for _, id := range g.roots {
		if n, ok := g.nodes[id]; !ok || n.Parent().Valid {
			errs = multierr.Append(errs, fmt.Errorf("%w: root %d", ErrInconsistent, id))
		}
	}
	return errs
}

func (g *Graph) validateNode(n Node) error {
	var errs error
	b := n.base()

	if p := b.parent; p.Valid {
		parent, ok := g.nodes[p.ID]
		switch {
		case !ok:
			errs = multierr.Append(errs, fmt.Errorf("%w: parent %d of %s", ErrDangling, p.ID, b))
		case !parent.Type().Kind.IsGroup():
			errs = multierr.Append(errs, fmt.Errorf("%w: parent of %s is %s", ErrNotGroup, b, parent.base()))
		case !containsID(g.children[p.ID], b.id):
			errs = multierr.Append(errs, fmt.Errorf("%w: %s is not listed by its parent", ErrInconsistent, b))
		}
	}
	for _, c := range g.children[b.id] {
		child, ok := g.nodes[c]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: child %d of %s", ErrDangling, c, b))
		} else if !child.Parent().Is(b.id) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s lists %s", ErrInconsistent, b, child.base()))
		}
	}

	steps := 0
	for cur := b.parent; cur.Valid; steps++ {
		if cur.ID == b.id || steps > len(g.nodes) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrCycle, b))
			break
		}
		p, ok := g.nodes[cur.ID]
		if !ok {
			break
		}
		cur = p.Parent()
	}

	if geom, ok := n.(GeometryNode); ok {
		for _, r := range b.typ.Kind.Roles() {
			slot := geom.Slot(r)
			if !slot.Valid {
				continue
			}
			target, ok := g.nodes[slot.ID]
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s %q -> %d", ErrDangling, b, r, slot.ID))
				continue
			}
			if !r.Accepts(target.Type()) {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s %q holds %s", ErrWrongType, b, r, target.base()))
			}
		}
	}

	if s, ok := n.(shaped); ok {
		errs = multierr.Append(errs, s.checkShape())
	}
	if am, ok := n.(*AttributeMatrix); ok {
		for _, c := range g.children[b.id] {
			t, ok := g.nodes[c].(tupled)
			if ok && t.NumTuples() != am.NumTuples() {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s has %d tuples, %s expects %d",
					ErrShape, g.nodes[c].base(), t.NumTuples(), b, am.NumTuples()))
			}
		}
	}
	return errs
}

func containsID(ids []ID, id ID) bool {
	for _, c := range ids {
		if c == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the graph with the same ids.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:    make(map[ID]Node, len(g.nodes)),
		children: make(map[ID][]ID, len(g.children)),
		roots:    g.Roots(),
		nextID:   g.nextID,
		reserved: maps.Clone(g.reserved),
	}
	for id, n := range g.nodes {
		c.nodes[id] = n.clone()
	}
	for id, kids := range g.children {
		c.children[id] = slices.Clone(kids)
	}
	return c
}

// Equivalent reports, as an error describing the first difference,
// whether a and b hold the same tree of names, types and values with role
// slots pointing at corresponding nodes. Ids are not compared.
func Equivalent(a, b *Graph) error {
	pa, pb := a.positions(), b.positions()
	return equivalent(a, b, a.roots, b.roots, pa, pb, "")
}

// positions maps each id to its index path from the roots.
func (g *Graph) positions() map[ID]string {
	out := make(map[ID]string, len(g.nodes))
	var visit func(ids []ID, prefix string)
	visit = func(ids []ID, prefix string) {
		for i, id := range ids {
			p := prefix + "/" + strconv.Itoa(i)
			out[id] = p
			visit(g.children[id], p)
		}
	}
	visit(g.roots, "")
	return out
}

func equivalent(a, b *Graph, la, lb []ID, pa, pb map[ID]string, where string) error {
	if len(la) != len(lb) {
		return fmt.Errorf("%w: %q has %d children, other has %d", ErrNotEquivalent, where, len(la), len(lb))
	}
	for i := range la {
		na, nb := a.nodes[la[i]], b.nodes[lb[i]]
		path := where + "/" + na.Name()
		switch {
		case na.Name() != nb.Name():
			return fmt.Errorf("%w: %q is named %q in other", ErrNotEquivalent, path, nb.Name())
		case na.Type() != nb.Type():
			return fmt.Errorf("%w: %q is %s, other is %s", ErrNotEquivalent, path, na.Type(), nb.Type())
		case !na.sameContent(nb):
			return fmt.Errorf("%w: %q content differs", ErrNotEquivalent, path)
		}
		if ga, ok := na.(GeometryNode); ok {
			gb := nb.(GeometryNode)
			for _, r := range na.Type().Kind.Roles() {
				sa, sb := ga.Slot(r), gb.Slot(r)
				if sa.Valid != sb.Valid {
					return fmt.Errorf("%w: %q slot %q is %v, other is %v", ErrNotEquivalent, path, r, sa, sb)
				}
				if sa.Valid && pa[sa.ID] != pb[sb.ID] {
					return fmt.Errorf("%w: %q slot %q points at different nodes", ErrNotEquivalent, path, r)
				}
			}
		}
		if err := equivalent(a, b, a.children[la[i]], b.children[lb[i]], pa, pb, path); err != nil {
			return err
		}
	}
	return nil
}
