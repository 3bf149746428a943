package container

import (
	ohdr "github.com/robert-malhotra/go-nxgraph/internal/object"
)

// Group is a named container of datasets and sub-groups.
type Group struct {
	object
	links []*link
}

// link is one named member of a group. In a created file the target is
// always in memory; in an opened file it is loaded on first access.
type link struct {
	name    string
	addr    uint64
	group   *Group
	dataset *Dataset
}

func (l *link) target() Object {
	if l.group != nil {
		return l.group
	}
	if l.dataset != nil {
		return l.dataset
	}
	return nil
}

func newGroup(f *File, parentPath, name string) *Group {
	return &Group{object: newObject(f, parentPath, name)}
}

func groupFromHeader(f *File, parentPath, name string, h *ohdr.Header) (*Group, error) {
	g := newGroup(f, parentPath, name)
	g.addr = h.Address
	g.attrs = h.Attributes()
	for _, m := range h.Links() {
		// Children are laid out before their parent, so a link that points
		// at or past its own group can only come from a damaged file.
		if m.Address >= h.Address {
			return nil, newErr(ErrCorrupt, "link %q in %s points forward to %d", m.Name, g.path, m.Address)
		}
		if err := ValidateName(m.Name); err != nil {
			return nil, wrapErr(ErrCorrupt, err, "link in %s", g.path)
		}
		if g.find(m.Name) != nil {
			return nil, newErr(ErrCorrupt, "duplicate link %q in %s", m.Name, g.path)
		}
		g.links = append(g.links, &link{name: m.Name, addr: m.Address})
	}
	return g, nil
}

func (g *Group) find(name string) *link {
	for _, l := range g.links {
		if l.name == name {
			return l
		}
	}
	return nil
}

// Members returns the names of the group's members in link order.
func (g *Group) Members() ([]string, error) {
	if err := g.checkOpen(); err != nil {
		return nil, err
	}
	names := make([]string, len(g.links))
	for i, l := range g.links {
		names[i] = l.name
	}
	return names, nil
}

// NumMembers returns the number of members.
func (g *Group) NumMembers() int {
	return len(g.links)
}

// Has reports whether the group has a member with the given name.
func (g *Group) Has(name string) bool {
	return g.find(name) != nil
}

// Open opens the named member, which is either a *Group or a *Dataset.
func (g *Group) Open(name string) (Object, error) {
	if err := g.checkOpen(); err != nil {
		return nil, err
	}
	l := g.find(name)
	if l == nil {
		return nil, newErr(ErrNotFound, "%s", JoinPath(g.path, name))
	}
	if obj := l.target(); obj != nil {
		return obj, nil
	}
	obj, err := g.file.load(l.addr, g.path, name)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Group:
		l.group = o
	case *Dataset:
		l.dataset = o
	}
	return obj, nil
}

// IsGroup reports whether the named member is a group.
func (g *Group) IsGroup(name string) (bool, error) {
	obj, err := g.Open(name)
	if err != nil {
		return false, err
	}
	_, ok := obj.(*Group)
	return ok, nil
}

// OpenGroup opens the named sub-group.
func (g *Group) OpenGroup(name string) (*Group, error) {
	obj, err := g.Open(name)
	if err != nil {
		return nil, err
	}
	sub, ok := obj.(*Group)
	if !ok {
		return nil, newErr(ErrNotGroup, "%s", obj.Path())
	}
	return sub, nil
}

// OpenDataset opens the named dataset.
func (g *Group) OpenDataset(name string) (*Dataset, error) {
	obj, err := g.Open(name)
	if err != nil {
		return nil, err
	}
	ds, ok := obj.(*Dataset)
	if !ok {
		return nil, newErr(ErrNotDataset, "%s", obj.Path())
	}
	return ds, nil
}

// CreateGroup creates the named sub-group, or returns it if it already
// exists. Creating a group where a dataset of that name exists fails with
// ErrNotGroup.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if err := g.checkWritable(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if l := g.find(name); l != nil {
		if l.group == nil {
			return nil, newErr(ErrNotGroup, "creating group %s", JoinPath(g.path, name))
		}
		return l.group, nil
	}
	sub := newGroup(g.file, g.path, name)
	g.links = append(g.links, &link{name: name, group: sub})
	return sub, nil
}

// CreateDataset creates the named dataset, or returns it if it already
// exists. An existing dataset keeps its attributes; its data is replaced by
// the next write and its storage options by opts when any are given.
func (g *Group) CreateDataset(name string, opts ...DatasetOption) (*Dataset, error) {
	if err := g.checkWritable(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if l := g.find(name); l != nil {
		if l.dataset == nil {
			return nil, newErr(ErrNotDataset, "creating dataset %s", JoinPath(g.path, name))
		}
		if len(opts) > 0 {
			l.dataset.opts = g.file.datasetOptions(opts)
		}
		return l.dataset, nil
	}
	ds := newDataset(g.file, g.path, name, g.file.datasetOptions(opts))
	g.links = append(g.links, &link{name: name, dataset: ds})
	return ds, nil
}

// Remove unlinks the named member and everything below it.
func (g *Group) Remove(name string) error {
	if err := g.checkWritable(); err != nil {
		return err
	}
	for i, l := range g.links {
		if l.name == name {
			g.links = append(g.links[:i], g.links[i+1:]...)
			return nil
		}
	}
	return newErr(ErrNotFound, "removing %s", JoinPath(g.path, name))
}
