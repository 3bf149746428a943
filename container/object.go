package container

import (
	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// object holds what groups and datasets have in common.
type object struct {
	file *File
	name string
	path string

	// addr is the header address this object was read from, or
	// binary.UndefinedAddress for objects staged in memory.
	addr  uint64
	attrs []*message.Attribute
}

func newObject(f *File, parentPath, name string) object {
	p := "/"
	if name != "" {
		p = JoinPath(parentPath, name)
	}
	return object{file: f, name: name, path: p, addr: binary.UndefinedAddress}
}

// Name returns the object's link name; the root group's name is empty.
func (o *object) Name() string { return o.name }

// Path returns the object's absolute path.
func (o *object) Path() string { return o.path }

// File returns the file the object belongs to.
func (o *object) File() *File { return o.file }

func (o *object) base() *object { return o }

func (o *object) checkOpen() error {
	if o.file.closed {
		return newErr(ErrClosed, "%s", o.path)
	}
	return nil
}

func (o *object) checkWritable() error {
	if err := o.checkOpen(); err != nil {
		return err
	}
	if !o.file.writable {
		return newErr(ErrReadOnly, "modifying %s", o.path)
	}
	return nil
}

// Attrs returns the object's attributes in the order they were first set.
func (o *object) Attrs() []*Attribute {
	out := make([]*Attribute, len(o.attrs))
	for i, m := range o.attrs {
		out[i] = &Attribute{msg: m}
	}
	return out
}

// HasAttr reports whether the named attribute exists.
func (o *object) HasAttr(name string) bool {
	return o.findAttr(name) >= 0
}

// Attr returns the named attribute.
func (o *object) Attr(name string) (*Attribute, error) {
	if err := o.checkOpen(); err != nil {
		return nil, err
	}
	i := o.findAttr(name)
	if i < 0 {
		return nil, newErr(ErrAttrNotFound, "attribute %q on %s", name, o.path)
	}
	return &Attribute{msg: o.attrs[i]}, nil
}

// DeleteAttr removes the named attribute. Deleting a missing attribute is
// not an error.
func (o *object) DeleteAttr(name string) error {
	if err := o.checkWritable(); err != nil {
		return err
	}
	if i := o.findAttr(name); i >= 0 {
		o.attrs = append(o.attrs[:i], o.attrs[i+1:]...)
	}
	return nil
}

func (o *object) findAttr(name string) int {
	for i, m := range o.attrs {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// setAttr replaces an attribute of the same name in place, or appends.
func (o *object) setAttr(m *message.Attribute) error {
	if err := o.checkWritable(); err != nil {
		return err
	}
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	if i := o.findAttr(m.Name); i >= 0 {
		o.attrs[i] = m
		return nil
	}
	o.attrs = append(o.attrs, m)
	return nil
}

// Object is implemented by *Group and *Dataset.
type Object interface {
	Name() string
	Path() string
	Attrs() []*Attribute
	HasAttr(name string) bool
	Attr(name string) (*Attribute, error)
	DeleteAttr(name string) error
	base() *object
}
