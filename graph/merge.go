package graph

import "fmt"

// Merge copies every node of src into g below parent, giving each copy a
// fresh id. Role slots are remapped to the copies; a slot whose target is
// not in src is left absent. It returns the mapping from src ids to g ids.
func (g *Graph) Merge(src *Graph, parent OptionalID) (map[ID]ID, error) {
	if parent.Valid {
		p, ok := g.nodes[parent.ID]
		if !ok {
			return nil, fmt.Errorf("%w: merge parent %d", ErrNotFound, parent.ID)
		}
		if !p.Type().Kind.IsGroup() {
			return nil, fmt.Errorf("%w: %s", ErrNotGroup, p.base())
		}
	}

	mapping := make(map[ID]ID, len(src.nodes))
	var copies []GeometryNode
	var visit func(ids []ID, parent OptionalID) error
	visit = func(ids []ID, parent OptionalID) error {
		for _, id := range ids {
			n := src.nodes[id].clone()
			b := n.base()
			b.id = g.nextID
			if err := g.insert(n, parent); err != nil {
				return err
			}
			mapping[id] = b.id
			if geom, ok := n.(GeometryNode); ok {
				copies = append(copies, geom)
			}
			if err := visit(src.children[id], Some(b.id)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(src.roots, parent); err != nil {
		return nil, err
	}

	for _, geom := range copies {
		slots := geom.geometry().slots
		for r, target := range slots {
			if to, ok := mapping[target]; ok {
				slots[r] = to
			} else {
				delete(slots, r)
			}
		}
	}
	return mapping, nil
}
