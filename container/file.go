package container

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/robert-malhotra/go-nxgraph/internal/binary"
	ohdr "github.com/robert-malhotra/go-nxgraph/internal/object"
	"github.com/robert-malhotra/go-nxgraph/internal/superblock"
)

// File is an open container file.
//
// A File is not safe for concurrent use; callers serialize all access to
// one handle.
type File struct {
	f        *os.File
	path     string
	writable bool
	closed   bool

	sb   *superblock.Superblock
	r    *binary.Reader
	root *Group
	opts *fileOptions

	// loaded caches objects read from an opened file by header address.
	loaded map[uint64]Object
}

// Open opens an existing container file for reading.
func Open(path string, opts ...FileOption) (*File, error) {
	o := defaultFileOptions()
	for _, opt := range opts {
		opt(o)
	}

	osf, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(ErrIO, err, "opening %s", path)
	}

	f, err := openFile(osf, path, o)
	if err != nil {
		osf.Close()
		return nil, err
	}
	o.logger.V(1).Info("opened container", "path", path, "fileID", f.sb.FileID, "eof", f.sb.EOFAddress)
	return f, nil
}

func openFile(osf *os.File, path string, o *fileOptions) (*File, error) {
	sb, err := superblock.Read(osf)
	if err != nil {
		if errors.Is(err, superblock.ErrNotContainer) {
			return nil, wrapErr(ErrNotContainer, err, "%s", path)
		}
		return nil, wrapErr(ErrCorrupt, err, "%s", path)
	}
	info, err := osf.Stat()
	if err != nil {
		return nil, wrapErr(ErrIO, err, "%s", path)
	}
	if uint64(info.Size()) < sb.EOFAddress {
		return nil, newErr(ErrCorrupt, "%s is truncated: %d bytes, superblock expects %d", path, info.Size(), sb.EOFAddress)
	}

	f := &File{
		f:      osf,
		path:   path,
		sb:     sb,
		r:      binary.NewReader(osf),
		opts:   o,
		loaded: make(map[uint64]Object),
	}
	root, err := f.load(sb.RootAddress, "", "")
	if err != nil {
		return nil, err
	}
	g, ok := root.(*Group)
	if !ok {
		return nil, newErr(ErrCorrupt, "%s: root object is not a group", path)
	}
	f.root = g
	return f, nil
}

// load reads the object header at addr. Objects reachable through more
// than one link are returned from the cache.
func (f *File) load(addr uint64, parentPath, name string) (Object, error) {
	if obj, ok := f.loaded[addr]; ok {
		return obj, nil
	}
	if addr < superblock.Size || addr >= f.sb.EOFAddress {
		return nil, newErr(ErrCorrupt, "object %s at %d is outside the file", JoinPath(parentPath, name), addr)
	}
	h, err := ohdr.Read(f.r, addr)
	if err != nil {
		return nil, wrapErr(ErrCorrupt, err, "reading %s", JoinPath(parentPath, name))
	}

	var obj Object
	switch h.Kind {
	case ohdr.KindGroup:
		obj, err = groupFromHeader(f, parentPath, name, h)
	case ohdr.KindDataset:
		obj, err = datasetFromHeader(f, parentPath, name, h)
	}
	if err != nil {
		return nil, err
	}
	f.loaded[addr] = obj
	return obj, nil
}

// Root returns the root group.
func (f *File) Root() *Group {
	return f.root
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// UUID returns the identifier assigned when the file was created.
func (f *File) UUID() uuid.UUID {
	return f.sb.FileID
}

// Writable reports whether the file was created for writing.
func (f *File) Writable() bool {
	return f.writable
}

// OpenGroup opens the group at an absolute path.
func (f *File) OpenGroup(path string) (*Group, error) {
	g := f.root
	for _, part := range SplitPath(path) {
		var err error
		if g, err = g.OpenGroup(part); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// OpenDataset opens the dataset at an absolute path.
func (f *File) OpenDataset(path string) (*Dataset, error) {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return nil, newErr(ErrNotDataset, "%s", CleanPath(path))
	}
	g, err := f.OpenGroup(strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return nil, err
	}
	return g.OpenDataset(parts[len(parts)-1])
}

// Close flushes a writable file and releases the handle. Closing twice is
// a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	var err error
	if f.writable {
		err = f.Flush()
	}
	f.closed = true
	if cerr := f.f.Close(); cerr != nil {
		err = multierr.Append(err, wrapErr(ErrIO, cerr, "closing %s", f.path))
	}
	return err
}

func (f *File) checkFile() error {
	if f.closed {
		return newErr(ErrClosed, "%s", f.path)
	}
	return nil
}

func (f *File) datasetOptions(opts []DatasetOption) *datasetOptions {
	o := defaultDatasetOptions()
	for _, opt := range f.opts.datasetDefaults {
		opt(o)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (f *File) String() string {
	mode := "r"
	if f.writable {
		mode = "w"
	}
	return fmt.Sprintf("container(%s, %s)", f.path, mode)
}
