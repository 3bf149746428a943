package container

import (
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// Datatype is the element type of a dataset or attribute.
type Datatype = dtype.Datatype

// Element is the set of Go types that can be stored as numeric elements.
type Element = dtype.Element

// Attribute is a read view of a named attribute.
type Attribute struct {
	msg *message.Attribute
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.msg.Name }

// Datatype returns the stored element type.
func (a *Attribute) Datatype() Datatype { return a.msg.Datatype }

// Shape returns the attribute dimensions; a scalar has none.
func (a *Attribute) Shape() []uint64 {
	return append([]uint64(nil), a.msg.Dims...)
}

// NumElements returns the number of stored elements.
func (a *Attribute) NumElements() uint64 {
	return message.NumElements(a.msg.Dims)
}

// AttrValue reads a single-element attribute of type T.
func AttrValue[T Element](o Object, name string) (T, error) {
	var zero T
	vals, err := AttrSlice[T](o, name)
	if err != nil {
		return zero, err
	}
	if len(vals) != 1 {
		return zero, newErr(ErrShape, "attribute %q on %s holds %d elements, want 1", name, o.Path(), len(vals))
	}
	return vals[0], nil
}

// AttrSlice reads all elements of a numeric attribute of type T.
func AttrSlice[T Element](o Object, name string) ([]T, error) {
	a, err := o.Attr(name)
	if err != nil {
		return nil, err
	}
	if a.msg.Datatype != dtype.Of[T]() {
		return nil, newErr(ErrTypeMismatch, "attribute %q on %s is %s, requested %s", name, o.Path(), a.msg.Datatype, dtype.Of[T]())
	}
	out := make([]T, a.NumElements())
	if err := dtype.Decode(a.msg.Datatype, a.msg.Data, out); err != nil {
		return nil, wrapErr(ErrCorrupt, err, "attribute %q on %s", name, o.Path())
	}
	return out, nil
}

// AttrStrings reads all elements of a string attribute.
func AttrStrings(o Object, name string) ([]string, error) {
	a, err := o.Attr(name)
	if err != nil {
		return nil, err
	}
	if !a.msg.Datatype.IsString() {
		return nil, newErr(ErrTypeMismatch, "attribute %q on %s is %s, requested string", name, o.Path(), a.msg.Datatype)
	}
	out, err := dtype.DecodeStrings(a.msg.Data, int(a.NumElements()))
	if err != nil {
		return nil, wrapErr(ErrCorrupt, err, "attribute %q on %s", name, o.Path())
	}
	return out, nil
}

// AttrString reads a single-element string attribute.
func AttrString(o Object, name string) (string, error) {
	vals, err := AttrStrings(o, name)
	if err != nil {
		return "", err
	}
	if len(vals) != 1 {
		return "", newErr(ErrShape, "attribute %q on %s holds %d strings, want 1", name, o.Path(), len(vals))
	}
	return vals[0], nil
}

// SetAttrValue stores a scalar attribute, replacing any attribute of the
// same name.
func SetAttrValue[T Element](o Object, name string, v T) error {
	raw, err := dtype.Encode([]T{v})
	if err != nil {
		return err
	}
	return o.base().setAttr(&message.Attribute{Name: name, Datatype: dtype.Of[T](), Data: raw})
}

// SetAttrSlice stores a one-dimensional attribute, replacing any attribute
// of the same name.
func SetAttrSlice[T Element](o Object, name string, v []T) error {
	raw, err := dtype.Encode(v)
	if err != nil {
		return err
	}
	return o.base().setAttr(&message.Attribute{
		Name:     name,
		Datatype: dtype.Of[T](),
		Dims:     []uint64{uint64(len(v))},
		Data:     raw,
	})
}

// SetAttrString stores a single string attribute.
func SetAttrString(o Object, name, v string) error {
	return o.base().setAttr(&message.Attribute{
		Name:     name,
		Datatype: dtype.String,
		Data:     dtype.EncodeStrings([]string{v}),
	})
}

// SetAttrStrings stores a one-dimensional string attribute.
func SetAttrStrings(o Object, name string, v []string) error {
	return o.base().setAttr(&message.Attribute{
		Name:     name,
		Datatype: dtype.String,
		Dims:     []uint64{uint64(len(v))},
		Data:     dtype.EncodeStrings(v),
	})
}
