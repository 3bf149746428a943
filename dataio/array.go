package dataio

import (
	"errors"
	"math/bits"

	"go.uber.org/multierr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// createDataset creates or reopens the dataset for n under parent.
func (w *writer) createDataset(parent *container.Group, name string, code result.Code) (*container.Dataset, error) {
	ds, err := parent.CreateDataset(name, w.opts.datasetOpts...)
	if err != nil {
		return nil, result.Wrap(code, err, "creating %s", container.JoinPath(parent.Path(), name))
	}
	return ds, nil
}

type dataArrayStrategy[T graph.Element] struct{}

func (dataArrayStrategy[T]) read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error) {
	ds, err := parent.OpenDataset(name)
	if err != nil {
		return nil, result.Wrap(CodeArrayOpen, err, "opening array %s", container.JoinPath(parent.Path(), name))
	}
	tuples, err := container.AttrSlice[uint64](ds, AttrTupleShape)
	if err != nil {
		return nil, result.Wrap(CodeArrayShape, err, "reading tuple shape of %s", ds.Path())
	}
	comps, err := container.AttrSlice[uint64](ds, AttrComponentShape)
	if err != nil {
		return nil, result.Wrap(CodeArrayShape, err, "reading component shape of %s", ds.Path())
	}
	if want, ok := product(tuples, comps); !ok || want != ds.NumElements() {
		return nil, result.New(CodeArrayShape, "array %s holds %d elements, shape %v x %v does not match",
			ds.Path(), ds.NumElements(), tuples, comps)
	}
	if err := r.poll(); err != nil {
		return nil, err
	}
	data, err := container.ReadAll[T](ds)
	if errors.Is(err, container.ErrTypeMismatch) {
		return nil, result.Wrap(CodeArrayType, err, "array %s does not match its %s tag", ds.Path(), graph.DataTypeOf[T]())
	}
	if err != nil {
		return nil, result.Wrap(CodeArrayData, err, "reading array %s", ds.Path())
	}
	n, err := graph.ImportDataArray(r.g, name, id, tuples, comps, data, parentID)
	if err != nil {
		return nil, result.Wrap(CodeArrayImport, err, "importing array %s", ds.Path())
	}
	r.constructed(n)
	return n, nil
}

func (dataArrayStrategy[T]) write(w *writer, n graph.Node, parent *container.Group) error {
	a := n.(*graph.DataArray[T])
	ds, err := w.createDataset(parent, a.Name(), CodeArrayOpen)
	if err != nil {
		return err
	}
	if err := w.poll(); err != nil {
		return err
	}
	dims := append(append([]uint64(nil), a.TupleShape...), a.ComponentShape...)
	if err := container.WriteSpan(ds, dims, a.Data); err != nil {
		return result.Wrap(CodeArrayData, err, "writing array %s", ds.Path())
	}
	if err := container.SetAttrSlice(ds, AttrTupleShape, a.TupleShape); err != nil {
		return result.Wrap(CodeArrayShape, err, "writing tuple shape of %s", ds.Path())
	}
	if err := container.SetAttrSlice(ds, AttrComponentShape, a.ComponentShape); err != nil {
		return result.Wrap(CodeArrayShape, err, "writing component shape of %s", ds.Path())
	}
	return w.writeObjectAttrs(ds, a, CodeArrayShape)
}

type scalarStrategy[T graph.Element] struct{}

func (scalarStrategy[T]) read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error) {
	ds, err := parent.OpenDataset(name)
	if err != nil {
		return nil, result.Wrap(CodeScalarRead, err, "failed to read scalar %s", container.JoinPath(parent.Path(), name))
	}
	if err := r.poll(); err != nil {
		return nil, err
	}
	var buf [1]T
	if err := container.ReadSpan(ds, buf[:]); err != nil {
		return nil, result.Wrap(CodeScalarRead, err, "failed to read scalar %s", ds.Path())
	}
	n, err := graph.ImportScalarData(r.g, name, id, buf[0], parentID)
	if err != nil {
		return nil, result.Wrap(CodeScalarImport, err, "failed to import scalar %s", ds.Path())
	}
	r.constructed(n)
	return n, nil
}

func (scalarStrategy[T]) write(w *writer, n graph.Node, parent *container.Group) error {
	s := n.(*graph.ScalarData[T])
	ds, err := w.createDataset(parent, s.Name(), CodeScalarWrite)
	if err != nil {
		return err
	}
	if err := container.WriteSpan(ds, []uint64{1}, []T{s.Value}); err != nil {
		return result.Wrap(CodeScalarWrite, err, "failed to write scalar %s", ds.Path())
	}
	return w.writeObjectAttrs(ds, s, CodeScalarWrite)
}

type stringArrayStrategy struct{}

func (stringArrayStrategy) read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error) {
	ds, err := parent.OpenDataset(name)
	if err != nil {
		return nil, result.Wrap(CodeStringRead, err, "opening string array %s", container.JoinPath(parent.Path(), name))
	}
	if err := r.poll(); err != nil {
		return nil, err
	}
	values, err := container.ReadStrings(ds)
	if err != nil {
		return nil, result.Wrap(CodeStringRead, err, "reading string array %s", ds.Path())
	}
	n, err := graph.ImportStringArray(r.g, name, id, values, parentID)
	if err != nil {
		return nil, result.Wrap(CodeStringRead, err, "importing string array %s", ds.Path())
	}
	r.constructed(n)
	return n, nil
}

func (stringArrayStrategy) write(w *writer, n graph.Node, parent *container.Group) error {
	s := n.(*graph.StringArray)
	ds, err := w.createDataset(parent, s.Name(), CodeStringWrite)
	if err != nil {
		return err
	}
	if err := w.poll(); err != nil {
		return err
	}
	if err := container.WriteStrings(ds, s.Values); err != nil {
		return result.Wrap(CodeStringWrite, err, "writing string array %s", ds.Path())
	}
	return w.writeObjectAttrs(ds, s, CodeStringWrite)
}

// neighborListStrategy stores the lists flattened, with the list lengths
// in a non-importable int32 sibling dataset named by the list.
type neighborListStrategy[T graph.Element] struct{}

func (neighborListStrategy[T]) read(r *reader, parent *container.Group, name string, id graph.ID, parentID graph.OptionalID) (graph.Node, error) {
	ds, err := parent.OpenDataset(name)
	if err != nil {
		return nil, result.Wrap(CodeNeighborRead, err, "opening neighbor list %s", container.JoinPath(parent.Path(), name))
	}
	countsName, err := container.AttrString(ds, AttrLinkedNumNeighbors)
	if err != nil {
		return nil, result.Wrap(CodeNeighborCounts, err, "neighbor list %s has no linked counts", ds.Path())
	}
	countsDS, err := parent.OpenDataset(countsName)
	if err != nil {
		return nil, result.Wrap(CodeNeighborCounts, err, "opening counts of %s", ds.Path())
	}
	if err := r.poll(); err != nil {
		return nil, err
	}
	counts, err := container.ReadAll[int32](countsDS)
	if err != nil {
		return nil, result.Wrap(CodeNeighborCounts, err, "reading counts of %s", ds.Path())
	}
	flat, err := container.ReadAll[T](ds)
	if err != nil {
		return nil, result.Wrap(CodeNeighborRead, err, "reading neighbor list %s", ds.Path())
	}

	lists := make([][]T, len(counts))
	offset := 0
	for i, c := range counts {
		if c < 0 || offset+int(c) > len(flat) {
			return nil, result.New(CodeNeighborCounts, "neighbor list %s: counts exceed %d stored elements", ds.Path(), len(flat))
		}
		lists[i] = flat[offset : offset+int(c) : offset+int(c)]
		offset += int(c)
	}
	if offset != len(flat) {
		return nil, result.New(CodeNeighborCounts, "neighbor list %s: counts cover %d of %d elements", ds.Path(), offset, len(flat))
	}

	n, err := graph.ImportNeighborList(r.g, name, id, lists, parentID)
	if err != nil {
		return nil, result.Wrap(CodeNeighborRead, err, "importing neighbor list %s", ds.Path())
	}
	r.constructed(n)
	return n, nil
}

func (neighborListStrategy[T]) write(w *writer, n graph.Node, parent *container.Group) error {
	l := n.(*graph.NeighborList[T])

	counts := make([]int32, len(l.Lists))
	var flat []T
	for i, list := range l.Lists {
		counts[i] = int32(len(list))
		flat = append(flat, list...)
	}
	if flat == nil {
		flat = []T{}
	}

	countsDS, err := w.createDataset(parent, l.NumNeighborsName(), CodeNeighborWrite)
	if err != nil {
		return err
	}
	if err := w.poll(); err != nil {
		return err
	}
	err = multierr.Combine(
		container.WriteSpan(countsDS, nil, counts),
		container.SetAttrString(countsDS, AttrObjectType, graph.GenericType(graph.KindDataArray, graph.Int32).String()),
		container.SetAttrValue(countsDS, AttrFormatVersion, FormatVersion),
		container.SetAttrValue(countsDS, AttrImportable, uint8(0)),
	)
	if err != nil {
		return result.Wrap(CodeNeighborWrite, err, "writing counts of %s", l.Name())
	}

	ds, err := w.createDataset(parent, l.Name(), CodeNeighborWrite)
	if err != nil {
		return err
	}
	if err := container.WriteSpan(ds, nil, flat); err != nil {
		return result.Wrap(CodeNeighborWrite, err, "writing neighbor list %s", ds.Path())
	}
	if err := container.SetAttrString(ds, AttrLinkedNumNeighbors, l.NumNeighborsName()); err != nil {
		return result.Wrap(CodeNeighborWrite, err, "linking counts of %s", ds.Path())
	}
	return w.writeObjectAttrs(ds, l, CodeNeighborWrite)
}

// product multiplies every dimension of shapes. ok is false on overflow.
func product(shapes ...[]uint64) (n uint64, ok bool) {
	n = 1
	for _, shape := range shapes {
		for _, d := range shape {
			hi, lo := bits.Mul64(n, d)
			if hi != 0 {
				return 0, false
			}
			n = lo
		}
	}
	return n, true
}
