package container

import (
	"github.com/robert-malhotra/go-nxgraph/internal/dtype"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
)

// WriteSpan replaces the dataset's contents with data shaped by dims.
// A nil dims stores data as a one-dimensional array. The product of dims
// must equal len(data).
func WriteSpan[T Element](d *Dataset, dims []uint64, data []T) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	if dims == nil {
		dims = []uint64{uint64(len(data))}
	}
	if n, ok := message.CountElements(dims); !ok || n != uint64(len(data)) {
		return newErr(ErrShape, "writing %s: dims %v do not hold %d elements", d.path, dims, len(data))
	}
	if len(dims) > message.MaxRank {
		return newErr(ErrShape, "writing %s: rank %d exceeds %d", d.path, len(dims), message.MaxRank)
	}
	raw, err := dtype.Encode(data)
	if err != nil {
		return wrapErr(ErrIO, err, "writing %s", d.path)
	}
	d.stage(dtype.Of[T](), dims, raw)
	return nil
}

// WriteStrings replaces the dataset's contents with a one-dimensional
// array of strings.
func WriteStrings(d *Dataset, values []string) error {
	if err := d.checkWritable(); err != nil {
		return err
	}
	d.stage(dtype.String, []uint64{uint64(len(values))}, dtype.EncodeStrings(values))
	return nil
}

func (d *Dataset) stage(dt dtype.Datatype, dims []uint64, raw []byte) {
	d.dtype = dt
	d.dims = append([]uint64(nil), dims...)
	d.raw = raw
	d.written = true
}
