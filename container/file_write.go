package container

import (
	"os"

	"github.com/robert-malhotra/go-nxgraph/internal/alloc"
	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	"github.com/robert-malhotra/go-nxgraph/internal/filter"
	"github.com/robert-malhotra/go-nxgraph/internal/message"
	ohdr "github.com/robert-malhotra/go-nxgraph/internal/object"
	"github.com/robert-malhotra/go-nxgraph/internal/superblock"
)

// headerAlignment is the address alignment of object headers.
const headerAlignment = 8

// Create creates a new container file for writing, truncating any
// existing file. Nothing but the superblock is written until Flush or
// Close.
func Create(path string, opts ...FileOption) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	osf, err := os.Create(path)
	if err != nil {
		return nil, wrapErr(ErrIO, err, "creating %s", path)
	}

	f := &File{
		f:        osf,
		path:     path,
		writable: true,
		sb:       superblock.New(),
		r:        binary.NewReader(osf),
		opts:     o,
	}
	f.root = newGroup(f, "", "")
	if err := f.sb.Write(osf); err != nil {
		osf.Close()
		return nil, wrapErr(ErrIO, err, "creating %s", path)
	}
	o.logger.V(1).Info("created container", "path", path, "fileID", f.sb.FileID)
	return f, nil
}

// Flush lays the whole tree out on disk: every object after its children,
// the root group last, then the superblock pointing at the root.
func (f *File) Flush() error {
	if err := f.checkFile(); err != nil {
		return err
	}
	if !f.writable {
		return newErr(ErrReadOnly, "flushing %s", f.path)
	}

	al := alloc.New(superblock.Size)
	w := binary.NewWriter(f.f)

	rootAddr, err := f.writeGroup(w, al, f.root)
	if err != nil {
		return err
	}
	if err := al.Validate(); err != nil {
		return wrapErr(ErrCorrupt, err, "laying out %s", f.path)
	}

	f.sb.RootAddress = rootAddr
	f.sb.EOFAddress = al.EOFAddr()
	if err := f.sb.Write(f.f); err != nil {
		return wrapErr(ErrIO, err, "flushing %s", f.path)
	}
	if err := f.f.Truncate(int64(f.sb.EOFAddress)); err != nil {
		return wrapErr(ErrIO, err, "flushing %s", f.path)
	}
	if err := f.f.Sync(); err != nil {
		return wrapErr(ErrIO, err, "flushing %s", f.path)
	}

	stats := al.Stats()
	f.opts.logger.V(1).Info("flushed container", "path", f.path,
		"objects", stats.TotalAllocations, "bytes", f.sb.EOFAddress, "largest", stats.LargestAlloc)
	return nil
}

func (f *File) writeGroup(w *binary.Writer, al *alloc.Allocator, g *Group) (uint64, error) {
	msgs := make([]message.Message, 0, len(g.links)+len(g.attrs))
	for _, l := range g.links {
		var (
			addr uint64
			err  error
		)
		if l.group != nil {
			addr, err = f.writeGroup(w, al, l.group)
		} else {
			addr, err = f.writeDataset(w, al, l.dataset)
		}
		if err != nil {
			return 0, err
		}
		msgs = append(msgs, &message.Link{Name: l.name, Address: addr})
	}
	for _, a := range g.attrs {
		msgs = append(msgs, a)
	}
	return f.writeHeader(w, al, ohdr.KindGroup, msgs, g.path)
}

func (f *File) writeDataset(w *binary.Writer, al *alloc.Allocator, ds *Dataset) (uint64, error) {
	if !ds.written {
		return 0, newErr(ErrNoData, "flushing %s", ds.path)
	}

	stored := ds.raw
	fp := ds.opts.pipeline(ds.dtype)
	if fp != nil {
		p, err := filter.NewPipeline(fp)
		if err != nil {
			return 0, wrapErr(ErrIO, err, "filters for %s", ds.path)
		}
		if stored, err = p.Encode(ds.raw); err != nil {
			return 0, wrapErr(ErrIO, err, "encoding %s", ds.path)
		}
	}

	dataAddr := al.Alloc(uint64(len(stored)), ds.path+" data")
	if err := w.At(int64(dataAddr)).WriteBytes(stored); err != nil {
		return 0, wrapErr(ErrIO, err, "writing %s", ds.path)
	}

	msgs := []message.Message{
		&message.Datatype{Datatype: ds.dtype},
		&message.Dataspace{Dims: ds.dims},
		&message.Layout{Address: dataAddr, StoredSize: uint64(len(stored)), RawSize: uint64(len(ds.raw))},
	}
	if fp != nil {
		msgs = append(msgs, fp)
	}
	for _, a := range ds.attrs {
		msgs = append(msgs, a)
	}
	return f.writeHeader(w, al, ohdr.KindDataset, msgs, ds.path)
}

func (f *File) writeHeader(w *binary.Writer, al *alloc.Allocator, kind ohdr.Kind, msgs []message.Message, path string) (uint64, error) {
	buf, err := ohdr.Encode(kind, msgs)
	if err != nil {
		return 0, wrapErr(ErrIO, err, "encoding header for %s", path)
	}
	addr := al.AllocAligned(uint64(len(buf)), headerAlignment, path)
	if err := w.At(int64(addr)).WriteBytes(buf); err != nil {
		return 0, wrapErr(ErrIO, err, "writing header for %s", path)
	}
	return addr, nil
}
