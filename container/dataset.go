package container

import (
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/filter"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
	ohdr "github.com/robert-malhotra/go-nxgraph/internal/object"
)

// Dataset is a typed, multi-dimensional array of elements.
type Dataset struct {
	object

	dtype dtype.Datatype
	dims  []uint64

	// Read side.
	layout  *message.Layout
	filters *message.FilterPipeline

	// Write side.
	opts    *datasetOptions
	raw     []byte
	written bool
}

func newDataset(f *File, parentPath, name string, opts *datasetOptions) *Dataset {
	return &Dataset{object: newObject(f, parentPath, name), opts: opts}
}

func datasetFromHeader(f *File, parentPath, name string, h *ohdr.Header) (*Dataset, error) {
	ds := newDataset(f, parentPath, name, nil)
	ds.addr = h.Address
	ds.attrs = h.Attributes()

	dt, space, layout := h.Datatype(), h.Dataspace(), h.Layout()
	if dt == nil || space == nil || layout == nil {
		return nil, newErr(ErrCorrupt, "dataset %s is missing its datatype, dataspace or layout", ds.path)
	}
	if layout.StoredSize > h.Address || layout.Address > h.Address-layout.StoredSize {
		return nil, newErr(ErrCorrupt, "dataset %s data at %d overlaps its header at %d", ds.path, layout.Address, h.Address)
	}
	if err := checkExtent(ds.path, dt.Datatype, space.Dims, layout, h.FilterPipeline()); err != nil {
		return nil, err
	}
	ds.dtype = dt.Datatype
	ds.dims = space.Dims
	ds.layout = layout
	ds.filters = h.FilterPipeline()
	return ds, nil
}

// checkExtent rejects a header whose dimensions disagree with the number
// of bytes its layout records.
func checkExtent(path string, dt dtype.Datatype, dims []uint64, layout *message.Layout, fp *message.FilterPipeline) error {
	if fp == nil && layout.RawSize != layout.StoredSize {
		return newErr(ErrCorrupt, "dataset %s stores %d bytes unfiltered but records %d", path, layout.StoredSize, layout.RawSize)
	}
	n, ok := message.CountElements(dims)
	if !ok {
		return newErr(ErrCorrupt, "dataset %s dimensions %v overflow", path, dims)
	}
	if dt.IsString() {
		if n > layout.RawSize/4 {
			return newErr(ErrCorrupt, "dataset %s claims %d strings in %d bytes", path, n, layout.RawSize)
		}
		return nil
	}
	if size, ok := message.DataSize(dims, dt.Size); !ok || size != layout.RawSize {
		return newErr(ErrCorrupt, "dataset %s dimensions %v of %s disagree with %d stored bytes", path, dims, dt, layout.RawSize)
	}
	return nil
}

// Datatype returns the element type. It is the zero Datatype for a
// created dataset that has not been written.
func (d *Dataset) Datatype() Datatype { return d.dtype }

// Shape returns the dataset dimensions.
func (d *Dataset) Shape() []uint64 {
	return append([]uint64(nil), d.dims...)
}

// NumElements returns the total number of elements.
func (d *Dataset) NumElements() uint64 {
	return message.NumElements(d.dims)
}

// IsString reports whether the dataset holds strings.
func (d *Dataset) IsString() bool {
	return d.dtype.IsString()
}

// Filters returns the IDs of the filters applied to the stored data.
func (d *Dataset) Filters() []uint16 {
	fp := d.filters
	if d.opts != nil {
		fp = d.opts.pipeline(d.dtype)
	}
	if fp == nil {
		return nil
	}
	ids := make([]uint16, len(fp.Filters))
	for i, f := range fp.Filters {
		ids[i] = f.ID
	}
	return ids
}

// StoredSize returns the number of bytes the data occupies on disk, or
// zero for a dataset that has not been flushed.
func (d *Dataset) StoredSize() uint64 {
	if d.layout == nil {
		return 0
	}
	return d.layout.StoredSize
}

// readRaw returns the decoded bytes of the dataset.
func (d *Dataset) readRaw() ([]byte, error) {
	if err := d.checkOpen(); err != nil {
		return nil, err
	}
	if d.layout == nil {
		if !d.written {
			return nil, newErr(ErrNoData, "reading %s", d.path)
		}
		return d.raw, nil
	}

	stored, err := d.file.r.At(int64(d.layout.Address)).ReadBytes(int(d.layout.StoredSize))
	if err != nil {
		return nil, wrapErr(ErrIO, err, "reading %s", d.path)
	}
	p, err := filter.NewPipeline(d.filters)
	if err != nil {
		return nil, wrapErr(ErrCorrupt, err, "dataset %s", d.path)
	}
	raw, err := p.Decode(stored)
	if err != nil {
		return nil, wrapErr(ErrCorrupt, err, "decoding %s", d.path)
	}
	if uint64(len(raw)) != d.layout.RawSize {
		return nil, newErr(ErrCorrupt, "dataset %s decoded to %d bytes, layout says %d", d.path, len(raw), d.layout.RawSize)
	}
	return raw, nil
}

// ReadSpan reads the whole dataset into buf, which must hold exactly
// NumElements elements of the stored datatype. A datatype that differs from
// T fails with ErrTypeMismatch and a buffer of the wrong length with
// ErrShape; neither reads any data.
func ReadSpan[T Element](d *Dataset, buf []T) error {
	want := dtype.Of[T]()
	if d.dtype != want {
		return newErr(ErrTypeMismatch, "dataset %s is %s, requested %s", d.path, d.dtype, want)
	}
	if uint64(len(buf)) != d.NumElements() {
		return newErr(ErrShape, "dataset %s holds %d elements, buffer has %d", d.path, d.NumElements(), len(buf))
	}
	raw, err := d.readRaw()
	if err != nil {
		return err
	}
	if err := dtype.Decode(d.dtype, raw, buf); err != nil {
		return wrapErr(ErrCorrupt, err, "dataset %s", d.path)
	}
	return nil
}

// ReadAll allocates a slice of the right length and reads the dataset.
// The slice is sized from the decoded bytes, not from the header alone.
func ReadAll[T Element](d *Dataset) ([]T, error) {
	want := dtype.Of[T]()
	if d.dtype != want {
		return nil, newErr(ErrTypeMismatch, "dataset %s is %s, requested %s", d.path, d.dtype, want)
	}
	raw, err := d.readRaw()
	if err != nil {
		return nil, err
	}
	n := d.NumElements()
	if size, ok := message.DataSize(d.dims, want.Size); !ok || size != uint64(len(raw)) {
		return nil, newErr(ErrShape, "dataset %s holds %d bytes, dimensions %v disagree", d.path, len(raw), d.dims)
	}
	buf := make([]T, n)
	if err := dtype.Decode(d.dtype, raw, buf); err != nil {
		return nil, wrapErr(ErrCorrupt, err, "dataset %s", d.path)
	}
	return buf, nil
}

// ReadStrings reads a string dataset.
func ReadStrings(d *Dataset) ([]string, error) {
	if !d.dtype.IsString() {
		return nil, newErr(ErrTypeMismatch, "dataset %s is %s, requested string", d.path, d.dtype)
	}
	raw, err := d.readRaw()
	if err != nil {
		return nil, err
	}
	out, err := dtype.DecodeStrings(raw, int(d.NumElements()))
	if err != nil {
		return nil, wrapErr(ErrCorrupt, err, "dataset %s", d.path)
	}
	return out, nil
}
