package dataio

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

type writer struct {
	ctx   context.Context
	g     *graph.Graph
	opts  *options
	log   logr.Logger
	table map[graph.Type]strategy
}

// Write stores g under grp. Writing into a group that already holds a
// graph replaces it: objects are reopened and overwritten, and objects
// the graph no longer has are removed.
func Write(ctx context.Context, g *graph.Graph, grp *container.Group, opts ...Option) error {
	if grp == nil || !grp.File().Writable() {
		return result.New(CodeWriteTarget, "no writable group to store the data structure in")
	}
	o := newOptions(opts)
	w := &writer{
		ctx:   ctx,
		g:     g,
		opts:  o,
		log:   o.logger.WithName("dataio"),
		table: strategies(),
	}
	if err := w.writeChildren(grp, g.Roots()); err != nil {
		return err
	}
	if err := container.SetAttrValue(grp, AttrNextObjectID, uint64(g.NextID())); err != nil {
		return result.Wrap(CodeWriteTarget, err, "writing %s of %s", AttrNextObjectID, grp.Path())
	}
	w.log.V(1).Info("wrote graph", "group", grp.Path(), "nodes", g.Len())
	return nil
}

func (w *writer) poll() error {
	return result.Canceled(w.ctx)
}

// writeChildren writes the nodes ids as members of grp, then removes the
// members an earlier write left that no longer belong to the graph.
func (w *writer) writeChildren(grp *container.Group, ids []graph.ID) error {
	claimed := make(map[string]graph.ID, len(ids))
	claim := func(name string, id graph.ID) error {
		if other, ok := claimed[name]; ok {
			return result.New(CodeNameCollision, "nodes %d and %d both store as %s", other, id, container.JoinPath(grp.Path(), name))
		}
		claimed[name] = id
		return nil
	}

	for _, id := range ids {
		if err := w.poll(); err != nil {
			return err
		}
		n, ok := w.g.Get(id)
		if !ok {
			return result.New(CodeNoWriter, "node %d is listed under %s but does not exist", id, grp.Path())
		}
		if err := claim(n.Name(), id); err != nil {
			return err
		}
		if nl, ok := n.(interface{ NumNeighborsName() string }); ok {
			if err := claim(nl.NumNeighborsName(), id); err != nil {
				return err
			}
		}
		s, ok := w.table[n.Type()]
		if !ok {
			return result.New(CodeNoWriter, "no writer for %s %q", n.Type(), n.Name())
		}
		if err := s.write(w, n, grp); err != nil {
			return err
		}
		w.log.V(1).Info("wrote node", "path", container.JoinPath(grp.Path(), n.Name()), "id", id, "type", n.Type())
	}
	return w.prune(grp, claimed)
}

func (w *writer) prune(grp *container.Group, claimed map[string]graph.ID) error {
	names, err := grp.Members()
	if err != nil {
		return result.Wrap(CodeGroupCreate, err, "listing %s", grp.Path())
	}
	for _, name := range names {
		if _, ok := claimed[name]; ok {
			continue
		}
		obj, err := grp.Open(name)
		if err != nil {
			return result.Wrap(CodeGroupCreate, err, "opening %s", container.JoinPath(grp.Path(), name))
		}
		if !obj.HasAttr(AttrObjectType) {
			continue
		}
		if err := grp.Remove(name); err != nil {
			return result.Wrap(CodeGroupCreate, err, "removing stale %s", obj.Path())
		}
		w.log.V(1).Info("removed stale object", "path", obj.Path())
	}
	return nil
}
