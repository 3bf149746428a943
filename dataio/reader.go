package dataio

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// loadState is the progress of one node through a load.
type loadState uint8

const (
	stateUnseen loadState = iota
	stateShellConstructed
	stateAttributesResolved
	stateLinksResolved
)

func (s loadState) String() string {
	switch s {
	case stateShellConstructed:
		return "shell constructed"
	case stateAttributesResolved:
		return "attributes resolved"
	case stateLinksResolved:
		return "links resolved"
	default:
		return "unseen"
	}
}

// pendingSlot is a role slot read as a raw id, resolved after the whole
// hierarchy has loaded.
type pendingSlot struct {
	owner  graph.ID
	role   graph.Role
	target graph.ID
}

type reader struct {
	ctx   context.Context
	g     *graph.Graph
	opts  *options
	log   logr.Logger
	table map[graph.Type]strategy

	state    map[graph.ID]loadState
	pending  []pendingSlot
	warnings result.Warnings
}

// Read loads the graph stored under grp. Role slots that do not resolve
// are left absent and reported in the returned warnings. On error the
// partial graph is discarded.
func Read(ctx context.Context, grp *container.Group, opts ...Option) (*graph.Graph, result.Warnings, error) {
	if grp == nil {
		return nil, nil, result.New(CodeNoDataStructure, "no group to read the data structure from")
	}
	o := newOptions(opts)
	r := &reader{
		ctx:   ctx,
		g:     graph.New(),
		opts:  o,
		log:   o.logger.WithName("dataio"),
		table: strategies(),
		state: make(map[graph.ID]loadState),
	}

	if err := r.readChildren(grp, graph.None); err != nil {
		return nil, r.warnings, err
	}
	if err := r.resolveLinks(); err != nil {
		return nil, r.warnings, err
	}

	next, err := container.AttrValue[uint64](grp, AttrNextObjectID)
	switch {
	case err == nil:
		r.g.SetNextID(graph.ID(next))
	case !errors.Is(err, container.ErrAttrNotFound):
		return nil, r.warnings, result.Wrap(CodeNoDataStructure, err, "reading %s of %s", AttrNextObjectID, grp.Path())
	}

	r.log.V(1).Info("loaded graph", "group", grp.Path(), "nodes", r.g.Len(), "warnings", len(r.warnings))
	return r.g, r.warnings, nil
}

func (r *reader) poll() error {
	return result.Canceled(r.ctx)
}

// constructed records that n exists in the graph.
func (r *reader) constructed(n graph.Node) {
	r.state[n.ID()] = stateShellConstructed
}

func (r *reader) readChildren(grp *container.Group, parentID graph.OptionalID) error {
	names, err := grp.Members()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := r.readObject(grp, name, parentID); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) readObject(parent *container.Group, name string, parentID graph.OptionalID) error {
	if err := r.poll(); err != nil {
		return err
	}
	path := container.JoinPath(parent.Path(), name)
	obj, err := parent.Open(name)
	if err != nil {
		return err
	}

	importable, err := container.AttrValue[uint8](obj, AttrImportable)
	switch {
	case errors.Is(err, container.ErrAttrNotFound) || err == nil && importable == 0:
		r.log.V(1).Info("skipping non-importable object", "path", path)
		return nil
	case err != nil:
		return result.Wrap(CodeMissingTag, err, "reading importable flag of %s", path)
	}

	rawID, err := container.AttrValue[uint64](obj, AttrObjectID)
	if err != nil {
		return result.Wrap(CodeMissingTag, err, "reading object id of %s", path)
	}
	tag, err := container.AttrString(obj, AttrObjectType)
	if err != nil {
		return result.Wrap(CodeMissingTag, err, "reading object type of %s", path)
	}
	version, err := container.AttrValue[uint32](obj, AttrFormatVersion)
	switch {
	case err == nil && version > FormatVersion:
		return result.New(CodeFormatVersion, "%s has format version %d, newest supported is %d", path, version, FormatVersion)
	case err != nil && !errors.Is(err, container.ErrAttrNotFound):
		return result.Wrap(CodeFormatVersion, err, "reading format version of %s", path)
	}

	id := graph.ID(rawID)
	if r.g.Contains(id) {
		r.warnings.Add(CodeDuplicateObject, "%s repeats id %d; keeping the first", path, id)
		return nil
	}
	typ, err := graph.ParseType(tag)
	if err != nil {
		return result.Wrap(CodeUnknownType, err, "%s", path)
	}
	s, ok := r.table[typ]
	if !ok {
		return result.New(CodeUnknownType, "no reader for %s at %s", typ, path)
	}
	if _, isGroup := obj.(*container.Group); isGroup != typ.Kind.IsGroup() {
		return result.New(CodeKindMismatch, "%s is tagged %s but is stored as a %s", path, typ, storedAs(obj))
	}
	if stored, err := container.AttrValue[uint64](obj, AttrParentID); err == nil && !parentID.Is(graph.ID(stored)) {
		r.warnings.Add(CodeParentMismatch, "%s records parent %d but is stored under %v", path, stored, parentID)
	}

	n, err := s.read(r, parent, name, id, parentID)
	if err != nil {
		return r.dropNode(path, id, n, err)
	}
	r.state[id] = stateAttributesResolved
	r.log.V(1).Info("read node", "path", path, "id", id, "type", typ)
	return nil
}

// dropNode handles a node that failed to load. Outside lenient mode the
// failure is returned as is. The node and every descendant already loaded
// under it are removed and their ids reserved.
func (r *reader) dropNode(path string, id graph.ID, n graph.Node, err error) error {
	if !r.opts.skipInvalid || result.IsCanceled(err) {
		return err
	}
	dropped := []graph.ID{id}
	if n != nil {
		dropped = r.subtree(id, nil)
		if rmErr := r.g.Remove(n.ID()); rmErr != nil {
			return rmErr
		}
	}
	for _, d := range dropped {
		delete(r.state, d)
		r.g.Reserve(d)
	}
	r.warnings.Add(result.GetCode(err), "dropped %s: %v", path, err)
	r.log.Info("dropped invalid node", "path", path, "id", id, "error", err)
	return nil
}

// subtree appends id and the ids of all its descendants to ids.
func (r *reader) subtree(id graph.ID, ids []graph.ID) []graph.ID {
	ids = append(ids, id)
	for _, c := range r.g.Children(id) {
		ids = r.subtree(c, ids)
	}
	return ids
}

func (r *reader) resolveLinks() error {
	for _, p := range r.pending {
		if err := r.poll(); err != nil {
			return err
		}
		n, ok := r.g.Get(p.owner)
		if !ok {
			continue
		}
		path, _ := r.g.PathOf(p.owner)
		target, ok := r.g.Get(p.target)
		switch {
		case !ok && r.g.IsReserved(p.target):
			r.warnings.Add(CodeUnresolvedLink, "%s %q refers to %d, which failed to load", path, p.role, p.target)
		case !ok:
			r.warnings.Add(CodeUnresolvedLink, "%s %q refers to %d, which does not exist", path, p.role, p.target)
		case !p.role.Accepts(target.Type()):
			r.warnings.Add(CodeUnresolvedLink, "%s %q refers to %d, a %s", path, p.role, p.target, target.Type())
		default:
			if err := n.(graph.GeometryNode).SetSlot(p.role, graph.Some(p.target)); err != nil {
				return result.Wrap(CodeUnresolvedLink, err, "%s", path)
			}
		}
	}
	for id, s := range r.state {
		if s == stateAttributesResolved {
			r.state[id] = stateLinksResolved
		}
	}
	return nil
}

func storedAs(obj container.Object) string {
	if _, ok := obj.(*container.Group); ok {
		return "group"
	}
	return "dataset"
}
