package dataio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

func addArray[T graph.Element](t *testing.T, g *graph.Graph, name string, parent graph.ID, tuples, comps []uint64, data []T) *graph.DataArray[T] {
	t.Helper()
	a, err := graph.ImportDataArray(g, name, g.NextID(), tuples, comps, data, graph.Some(parent))
	assert.NoError(t, err)
	return a
}

// allVariants builds a graph holding every node variant.
func allVariants(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	root, err := graph.NewDataGroup(g, "Data", graph.None)
	assert.NoError(t, err)
	top := root.ID()

	img, err := graph.NewImageGeom(g, "Image", graph.Some(top))
	assert.NoError(t, err)
	img.Dimensions = [3]uint64{4, 3, 1}
	img.Origin = [3]float32{0, 1.5, -2}
	img.Spacing = [3]float32{0.25, 0.25, 1}
	cells, err := graph.NewAttributeMatrix(g, "Cell Data", []uint64{1, 3, 4}, graph.Some(img.ID()))
	assert.NoError(t, err)
	addArray(t, g, "Phases", cells.ID(), []uint64{1, 3, 4}, nil, []int32{1, 1, 2, 2, 3, 3, 1, 1, 2, 2, 3, 3})
	addArray(t, g, "Euler", cells.ID(), []uint64{1, 3, 4}, []uint64{3}, make([]float32, 36))
	assert.NoError(t, img.SetSlot(graph.RoleCellData, graph.Some(cells.ID())))

	rg, err := graph.NewRectGridGeom(g, "Grid", graph.Some(top))
	assert.NoError(t, err)
	rg.Dimensions = [3]uint64{2, 1, 1}
	xb := addArray(t, g, "X", rg.ID(), []uint64{3}, nil, []float64{0, 0.5, 1})
	yb := addArray(t, g, "Y", rg.ID(), []uint64{2}, nil, []float64{0, 1})
	zb := addArray(t, g, "Z", rg.ID(), []uint64{2}, nil, []float64{0, 2})
	assert.NoError(t, rg.SetSlot(graph.RoleXBounds, graph.Some(xb.ID())))
	assert.NoError(t, rg.SetSlot(graph.RoleYBounds, graph.Some(yb.ID())))
	assert.NoError(t, rg.SetSlot(graph.RoleZBounds, graph.Some(zb.ID())))

	for _, k := range []graph.Kind{
		graph.KindVertexGeom, graph.KindEdgeGeom, graph.KindTriangleGeom,
		graph.KindQuadGeom, graph.KindTetrahedralGeom, graph.KindHexahedralGeom,
	} {
		geom, err := graph.NewGeometry(g, k, k.String(), graph.Some(top))
		assert.NoError(t, err)
		verts := addArray(t, g, "Vertices", geom.ID(), []uint64{2}, []uint64{3}, []float32{0, 0, 0, 1, 1, 1})
		assert.NoError(t, geom.SetSlot(graph.RoleSharedVertexList, graph.Some(verts.ID())))
		if k.Dimension() >= 1 {
			edges := addArray(t, g, "Edges", geom.ID(), []uint64{1}, []uint64{2}, []uint64{0, 1})
			assert.NoError(t, geom.SetSlot(graph.RoleSharedEdgeList, graph.Some(edges.ID())))
			nbrs, err := graph.NewNeighborList(g, "Neighbors", [][]int32{{0}, {}}, graph.Some(geom.ID()))
			assert.NoError(t, err)
			assert.NoError(t, geom.SetSlot(graph.RoleElementNeighbors, graph.Some(nbrs.ID())))
		}
	}

	misc, err := graph.NewDataGroup(g, "Misc", graph.Some(top))
	assert.NoError(t, err)
	m := misc.ID()
	addArray(t, g, "i8", m, []uint64{2}, nil, []int8{-1, 1})
	addArray(t, g, "i16", m, []uint64{2}, nil, []int16{-300, 300})
	addArray(t, g, "i64", m, []uint64{2}, nil, []int64{-1 << 40, 1 << 40})
	addArray(t, g, "u8", m, []uint64{2}, nil, []uint8{0, 255})
	addArray(t, g, "u16", m, []uint64{2}, nil, []uint16{0, 65535})
	addArray(t, g, "u32", m, []uint64{2}, nil, []uint32{7, 1 << 31})
	addArray(t, g, "bool", m, []uint64{2, 2}, nil, []bool{true, false, false, true})
	_, err = graph.NewScalarData(g, "Count", int32(42), graph.Some(m))
	assert.NoError(t, err)
	_, err = graph.NewScalarData(g, "Threshold", 0.75, graph.Some(m))
	assert.NoError(t, err)
	_, err = graph.NewScalarData(g, "Enabled", true, graph.Some(m))
	assert.NoError(t, err)
	_, err = graph.NewStringArray(g, "Names", []string{"alpha", "", "gamma"}, graph.Some(m))
	assert.NoError(t, err)
	_, err = graph.NewNeighborList(g, "Shared", [][]float64{{1.5, 2.5}, {}, {3}}, graph.Some(m))
	assert.NoError(t, err)

	assert.NoError(t, g.Validate())
	return g
}

func saveGraph(t *testing.T, g *graph.Graph, opts ...Option) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.nxg")
	f, err := container.Create(path)
	assert.NoError(t, err)
	grp, err := f.Root().CreateGroup("DataStructure")
	assert.NoError(t, err)
	assert.NoError(t, Write(context.Background(), g, grp, opts...))
	assert.NoError(t, f.Close())
	return path
}

func loadGraph(t *testing.T, path string, opts ...Option) (*graph.Graph, result.Warnings, error) {
	t.Helper()
	f, err := container.Open(path)
	assert.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	grp, err := f.OpenGroup("/DataStructure")
	assert.NoError(t, err)
	return Read(context.Background(), grp, opts...)
}

// stage writes g into a fresh in-memory container and returns the group,
// so tests can tamper with it before reading.
func stage(t *testing.T, g *graph.Graph, opts ...Option) *container.Group {
	t.Helper()
	f, err := container.Create(filepath.Join(t.TempDir(), "staged.nxg"))
	assert.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	grp, err := f.Root().CreateGroup("DataStructure")
	assert.NoError(t, err)
	assert.NoError(t, Write(context.Background(), g, grp, opts...))
	return grp
}

// edgesGraph builds Data(1) > Edges(2) > Vertices(3), Edge Data(4) > Labels(6)
// and Edge List(5).
func edgesGraph(t *testing.T) (*graph.Graph, *graph.Geometry) {
	t.Helper()
	g := graph.New()
	root, err := graph.NewDataGroup(g, "Data", graph.None)
	assert.NoError(t, err)
	geom, err := graph.NewGeometry(g, graph.KindEdgeGeom, "Edges", graph.Some(root.ID()))
	assert.NoError(t, err)
	verts := addArray(t, g, "Vertices", geom.ID(), []uint64{3}, []uint64{3}, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0})
	edgeData, err := graph.NewAttributeMatrix(g, "Edge Data", []uint64{2}, graph.Some(geom.ID()))
	assert.NoError(t, err)
	edges := addArray(t, g, "Edge List", geom.ID(), []uint64{2}, []uint64{2}, []uint64{0, 1, 1, 2})
	assert.Equal(t, graph.ID(5), edges.ID())
	addArray(t, g, "Labels", edgeData.ID(), []uint64{2}, nil, []int32{7, 9})

	assert.NoError(t, geom.SetSlot(graph.RoleSharedVertexList, graph.Some(verts.ID())))
	assert.NoError(t, geom.SetSlot(graph.RoleSharedEdgeList, graph.Some(edges.ID())))
	assert.NoError(t, geom.SetSlot(graph.RoleEdgeData, graph.Some(edgeData.ID())))
	assert.NoError(t, g.Validate())
	return g, geom
}

func TestRoundTripAllVariants(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"lz4", []Option{WithDatasetOptions(container.WithoutFilters(), container.WithLZ4(), container.WithChecksum())}},
		{"plain", []Option{WithDatasetOptions(container.WithoutFilters())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := allVariants(t)
			g.SetNextID(500)

			loaded, warnings, err := loadGraph(t, saveGraph(t, g, tt.opts...))
			assert.NoError(t, err)
			assert.Equal(t, 0, len(warnings))
			assert.NoError(t, graph.Equivalent(g, loaded))
			assert.NoError(t, loaded.Validate())
			assert.Equal(t, g.IDs(), loaded.IDs())
			assert.Equal(t, graph.ID(500), loaded.NextID())
		})
	}
}

func TestEdgesScenario(t *testing.T) {
	g, geom := edgesGraph(t)

	loaded, warnings, err := loadGraph(t, saveGraph(t, g))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))

	edges, err := graph.Lookup[*graph.Geometry](loaded, geom.ID())
	assert.NoError(t, err)
	assert.Equal(t, graph.Some(5), edges.Slot(graph.RoleSharedEdgeList))
	assert.False(t, edges.Slot(graph.RoleElementCentroids).Valid)

	list, err := graph.Lookup[*graph.DataArray[uint64]](loaded, 5)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, list.Tuple(1))
}

func TestScalarCount(t *testing.T) {
	g := graph.New()
	count, err := graph.NewScalarData(g, "Count", int32(42), graph.None)
	assert.NoError(t, err)

	loaded, _, err := loadGraph(t, saveGraph(t, g))
	assert.NoError(t, err)
	got, err := graph.Lookup[*graph.ScalarData[int32]](loaded, count.ID())
	assert.NoError(t, err)
	assert.Equal(t, int32(42), got.Value)
	assert.Equal(t, graph.GenericType(graph.KindScalarData, graph.Int32), got.Type())

	grp := stage(t, g)
	ds, err := grp.OpenDataset("Count")
	assert.NoError(t, err)
	assert.NoError(t, container.WriteSpan(ds, []uint64{0}, []int32{}))
	_, _, err = Read(context.Background(), grp)
	assert.Error(t, err)
	assert.Equal(t, CodeScalarRead, result.GetCode(err))
}

func TestDanglingReferenceWarns(t *testing.T) {
	g, geom := edgesGraph(t)

	loaded, warnings, err := loadGraph(t, saveGraph(t, g, WithNonImportable(5)))
	assert.NoError(t, err)
	assert.True(t, warnings.HasCode(CodeUnresolvedLink))
	assert.Equal(t, g.Len()-1, loaded.Len())
	assert.False(t, loaded.Contains(5))

	edges, err := graph.Lookup[*graph.Geometry](loaded, geom.ID())
	assert.NoError(t, err)
	assert.False(t, edges.Slot(graph.RoleSharedEdgeList).Valid)
	assert.True(t, edges.Slot(graph.RoleSharedVertexList).Valid)
	assert.NoError(t, loaded.Validate())
}

func TestTypeTagMismatch(t *testing.T) {
	g, _ := edgesGraph(t)
	grp := stage(t, g)
	data, err := grp.OpenGroup("Data")
	assert.NoError(t, err)
	edges, err := data.OpenGroup("Edges")
	assert.NoError(t, err)
	list, err := edges.OpenDataset("Edge List")
	assert.NoError(t, err)
	assert.NoError(t, container.SetAttrString(list, AttrObjectType, "DataArray<int8>"))

	_, _, err = Read(context.Background(), grp)
	assert.Error(t, err)
	assert.Equal(t, CodeArrayType, result.GetCode(err))

	t.Run("lenient", func(t *testing.T) {
		loaded, warnings, err := Read(context.Background(), grp, WithSkipInvalid())
		assert.NoError(t, err)
		assert.True(t, warnings.HasCode(CodeArrayType))
		assert.True(t, warnings.HasCode(CodeUnresolvedLink))
		assert.False(t, loaded.Contains(5))
		assert.True(t, loaded.IsReserved(5))

		_, err = graph.NewDataGroup(loaded, "Next", graph.None)
		assert.NoError(t, err)
		n, ok := loaded.ChildByName(graph.None, "Next")
		assert.True(t, ok)
		assert.NotEqual(t, graph.ID(5), n.ID())
	})
}

func TestTagErrors(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		code result.Code
	}{
		{"unknown", "Blob<int32>", CodeUnknownType},
		{"group tag on dataset", "DataGroup", CodeKindMismatch},
		{"array tag on group", "DataArray<int32>", CodeKindMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			grpNode, err := graph.NewDataGroup(g, "Group", graph.None)
			assert.NoError(t, err)
			_, err = graph.NewDataArray[int32](g, "Array", []uint64{2}, nil, graph.None)
			assert.NoError(t, err)

			grp := stage(t, g)
			target := "Array"
			if tt.tag == "DataArray<int32>" {
				target = grpNode.Name()
			}
			obj, err := grp.Open(target)
			assert.NoError(t, err)
			assert.NoError(t, container.SetAttrString(obj, AttrObjectType, tt.tag))

			_, _, err = Read(context.Background(), grp)
			assert.Equal(t, tt.code, result.GetCode(err))
		})
	}
}

func TestMissingAndFutureTags(t *testing.T) {
	g := graph.New()
	_, err := graph.NewDataGroup(g, "Group", graph.None)
	assert.NoError(t, err)

	grp := stage(t, g)
	obj, err := grp.Open("Group")
	assert.NoError(t, err)
	assert.NoError(t, container.SetAttrValue(obj, AttrFormatVersion, FormatVersion+1))
	_, _, err = Read(context.Background(), grp)
	assert.Equal(t, CodeFormatVersion, result.GetCode(err))

	assert.NoError(t, obj.DeleteAttr(AttrFormatVersion))
	loaded, _, err := Read(context.Background(), grp)
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())

	assert.NoError(t, obj.DeleteAttr(AttrObjectID))
	_, _, err = Read(context.Background(), grp)
	assert.Equal(t, CodeMissingTag, result.GetCode(err))
}

func TestRewriteIsIdempotent(t *testing.T) {
	g, geom := edgesGraph(t)
	grp := stage(t, g)
	assert.NoError(t, Write(context.Background(), g, grp))

	loaded, warnings, err := Read(context.Background(), grp)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	assert.NoError(t, graph.Equivalent(g, loaded))
	assert.Equal(t, 1, grp.NumMembers())

	// Unset a slot and drop a node, then rewrite over the old layout.
	assert.NoError(t, geom.SetSlot(graph.RoleEdgeData, graph.None))
	labels, err := g.FindByPath("Data/Edges/Edge Data/Labels")
	assert.NoError(t, err)
	assert.NoError(t, g.Remove(labels.ID()))
	assert.NoError(t, Write(context.Background(), g, grp))

	loaded, warnings, err = Read(context.Background(), grp)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	assert.NoError(t, graph.Equivalent(g, loaded))
	assert.False(t, loaded.Contains(labels.ID()))
}

func TestNameCollision(t *testing.T) {
	t.Run("siblings", func(t *testing.T) {
		g := graph.New()
		_, err := graph.NewDataGroup(g, "Twin", graph.None)
		assert.NoError(t, err)
		_, err = graph.NewDataGroup(g, "Twin", graph.None)
		assert.NoError(t, err)

		f, err := container.Create(filepath.Join(t.TempDir(), "c.nxg"))
		assert.NoError(t, err)
		defer f.Close()
		err = Write(context.Background(), g, f.Root())
		assert.Equal(t, CodeNameCollision, result.GetCode(err))
	})
	t.Run("neighbor counts", func(t *testing.T) {
		g := graph.New()
		_, err := graph.NewNeighborList(g, "N", [][]int32{{1}}, graph.None)
		assert.NoError(t, err)
		_, err = graph.NewDataArray[int32](g, "N_NumNeighbors", []uint64{1}, nil, graph.None)
		assert.NoError(t, err)

		f, err := container.Create(filepath.Join(t.TempDir(), "c.nxg"))
		assert.NoError(t, err)
		defer f.Close()
		err = Write(context.Background(), g, f.Root())
		assert.Equal(t, CodeNameCollision, result.GetCode(err))
	})
}

func TestWriteTarget(t *testing.T) {
	g := graph.New()
	assert.Equal(t, CodeWriteTarget, result.GetCode(Write(context.Background(), g, nil)))

	path := saveGraph(t, g)
	f, err := container.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	assert.Equal(t, CodeWriteTarget, result.GetCode(Write(context.Background(), g, f.Root())))

	_, _, err = Read(context.Background(), nil)
	assert.Equal(t, CodeNoDataStructure, result.GetCode(err))
}

func TestCancellation(t *testing.T) {
	g := allVariants(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := container.Create(filepath.Join(t.TempDir(), "canceled.nxg"))
	assert.NoError(t, err)
	defer f.Close()
	err = Write(ctx, g, f.Root())
	assert.True(t, result.IsCanceled(err))

	grp := stage(t, g)
	_, _, err = Read(ctx, grp)
	assert.True(t, result.IsCanceled(err))
	_, _, err = Read(ctx, grp, WithSkipInvalid())
	assert.True(t, result.IsCanceled(err))
}

func TestParentMismatchWarns(t *testing.T) {
	g, geom := edgesGraph(t)
	grp := stage(t, g)
	data, err := grp.OpenGroup("Data")
	assert.NoError(t, err)
	edges, err := data.OpenGroup("Edges")
	assert.NoError(t, err)
	assert.NoError(t, container.SetAttrValue(edges, AttrParentID, uint64(99)))

	loaded, warnings, err := Read(context.Background(), grp)
	assert.NoError(t, err)
	assert.True(t, warnings.HasCode(CodeParentMismatch))
	assert.Equal(t, graph.Some(1), loaded.Parent(geom.ID()))
}

func TestEveryTypeSupported(t *testing.T) {
	for _, typ := range graph.Types() {
		assert.True(t, Supported(typ), typ.String())
	}
	assert.False(t, Supported(graph.Type{}))
}

func TestShapeOverflowIsFatal(t *testing.T) {
	g := graph.New()
	_, err := graph.NewDataArray[int32](g, "A", []uint64{1}, nil, graph.None)
	assert.NoError(t, err)
	grp := stage(t, g)
	ds, err := grp.OpenDataset("A")
	assert.NoError(t, err)
	// 3 * 0xAAAAAAAAAAAAAAAB wraps to the one stored element.
	assert.NoError(t, container.SetAttrSlice(ds, AttrTupleShape, []uint64{3, 0xAAAAAAAAAAAAAAAB}))

	_, _, err = Read(context.Background(), grp)
	assert.Error(t, err)
	assert.Equal(t, CodeArrayShape, result.GetCode(err))
}

func TestMistypedImportableIsFatal(t *testing.T) {
	g, _ := edgesGraph(t)
	grp := stage(t, g)
	data, err := grp.OpenGroup("Data")
	assert.NoError(t, err)
	assert.NoError(t, data.DeleteAttr(AttrImportable))
	assert.NoError(t, container.SetAttrValue(data, AttrImportable, int32(1)))

	_, _, err = Read(context.Background(), grp)
	assert.Error(t, err)
	assert.Equal(t, CodeMissingTag, result.GetCode(err))

	// A missing flag still means the object is skipped.
	assert.NoError(t, data.DeleteAttr(AttrImportable))
	loaded, _, err := Read(context.Background(), grp)
	assert.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

// imageGraph builds Data(1) > Image(2) > Cell Data(3) > Phases(4), Coords(5)
// and Data(1) > Points(6), whose vertex list is Coords.
func imageGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	root, err := graph.NewDataGroup(g, "Data", graph.None)
	assert.NoError(t, err)
	img, err := graph.NewImageGeom(g, "Image", graph.Some(root.ID()))
	assert.NoError(t, err)
	img.Dimensions = [3]uint64{2, 1, 1}
	img.Spacing = [3]float32{1, 1, 1}
	cells, err := graph.NewAttributeMatrix(g, "Cell Data", []uint64{1, 1, 2}, graph.Some(img.ID()))
	assert.NoError(t, err)
	addArray(t, g, "Phases", cells.ID(), []uint64{1, 1, 2}, nil, []int32{1, 2})
	coords := addArray(t, g, "Coords", cells.ID(), []uint64{1, 1, 2}, []uint64{3}, []float32{0, 0, 0, 1, 0, 0})
	assert.NoError(t, img.SetSlot(graph.RoleCellData, graph.Some(cells.ID())))
	points, err := graph.NewGeometry(g, graph.KindVertexGeom, "Points", graph.Some(root.ID()))
	assert.NoError(t, err)
	assert.NoError(t, points.SetSlot(graph.RoleSharedVertexList, graph.Some(coords.ID())))
	assert.Equal(t, graph.ID(6), points.ID())
	assert.NoError(t, g.Validate())
	return g
}

func TestDroppedGroupReservesSubtree(t *testing.T) {
	grp := stage(t, imageGraph(t))
	data, err := grp.OpenGroup("Data")
	assert.NoError(t, err)
	img, err := data.OpenGroup("Image")
	assert.NoError(t, err)
	assert.NoError(t, img.DeleteAttr(AttrImageDimensions))

	o := newOptions([]Option{WithSkipInvalid()})
	r := &reader{
		ctx:   context.Background(),
		g:     graph.New(),
		opts:  o,
		log:   o.logger,
		table: strategies(),
		state: make(map[graph.ID]loadState),
	}
	assert.NoError(t, r.readChildren(grp, graph.None))
	assert.NoError(t, r.resolveLinks())

	assert.True(t, r.warnings.HasCode(CodeImageDims))
	for _, id := range []graph.ID{2, 3, 4, 5} {
		assert.False(t, r.g.Contains(id), "id %d", id)
		assert.True(t, r.g.IsReserved(id), "id %d", id)
		_, ok := r.state[id]
		assert.False(t, ok, "id %d", id)
	}
	for id := range r.state {
		assert.True(t, r.g.Contains(id), "id %d", id)
	}

	assert.True(t, r.warnings.HasCode(CodeUnresolvedLink))
	assert.Contains(t, r.warnings.String(), "refers to 5, which failed to load")
	points, err := graph.Lookup[*graph.Geometry](r.g, 6)
	assert.NoError(t, err)
	assert.False(t, points.Slot(graph.RoleSharedVertexList).Valid)
	assert.NoError(t, r.g.Validate())
}
