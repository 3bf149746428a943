package dataio

import (
	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// layer is one link of a group strategy's chain. Reading or writing a
// layer first runs its base, then reopens the node's group and handles the
// attributes the layer owns. read and write may be nil.
type layer struct {
	name       string
	base       *layer
	openCode   result.Code
	createCode result.Code

	read  func(r *reader, n graph.Node, grp *container.Group) error
	write func(w *writer, n graph.Node, grp *container.Group) error
}

func (l *layer) readNode(r *reader, n graph.Node, parent *container.Group, name string) error {
	if l.base != nil {
		if err := l.base.readNode(r, n, parent, name); err != nil {
			return err
		}
	}
	grp, err := parent.OpenGroup(name)
	if err != nil {
		return result.Wrap(l.openCode, err, "%s: opening %s", l.name, container.JoinPath(parent.Path(), name))
	}
	if l.read == nil {
		return nil
	}
	return l.read(r, n, grp)
}

func (l *layer) writeNode(w *writer, n graph.Node, parent *container.Group) error {
	if l.base != nil {
		if err := l.base.writeNode(w, n, parent); err != nil {
			return err
		}
	}
	grp, err := parent.CreateGroup(n.Name())
	if err != nil {
		return result.Wrap(l.createCode, err, "%s: creating %s", l.name, container.JoinPath(parent.Path(), n.Name()))
	}
	if l.write == nil {
		return nil
	}
	return l.write(w, n, grp)
}

// slotLayer is a geometry layer whose only attributes are role slots.
func slotLayer(name string, base *layer, roles []graph.Role, openCode, createCode, slotCode result.Code) *layer {
	return &layer{
		name:       name,
		base:       base,
		openCode:   openCode,
		createCode: createCode,
		read: func(r *reader, n graph.Node, grp *container.Group) error {
			return r.readSlots(n.(graph.GeometryNode), grp, roles, slotCode)
		},
		write: func(w *writer, n graph.Node, grp *container.Group) error {
			return writeSlots(n.(graph.GeometryNode), grp, roles, slotCode)
		},
	}
}
