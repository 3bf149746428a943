package graph

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// edgesGraph builds a small edge geometry with its vertex and edge lists.
func edgesGraph(t *testing.T) (*Graph, *Geometry) {
	t.Helper()
	g := New()
	root, err := NewDataGroup(g, "Root", None)
	assert.NoError(t, err)
	geom, err := NewGeometry(g, KindEdgeGeom, "Edges", Some(root.ID()))
	assert.NoError(t, err)
	verts, err := NewDataArray[float32](g, "Vertices", []uint64{3}, []uint64{3}, Some(geom.ID()))
	assert.NoError(t, err)
	edges, err := NewDataArray[uint64](g, "Edge List", []uint64{2}, []uint64{2}, Some(geom.ID()))
	assert.NoError(t, err)
	copy(edges.Data, []uint64{0, 1, 1, 2})
	edgeData, err := NewAttributeMatrix(g, "Edge Data", []uint64{2}, Some(geom.ID()))
	assert.NoError(t, err)
	_, err = NewDataArray[int32](g, "Labels", []uint64{2}, nil, Some(edgeData.ID()))
	assert.NoError(t, err)

	assert.NoError(t, geom.SetSlot(RoleSharedVertexList, Some(verts.ID())))
	assert.NoError(t, geom.SetSlot(RoleSharedEdgeList, Some(edges.ID())))
	assert.NoError(t, geom.SetSlot(RoleEdgeData, Some(edgeData.ID())))
	return g, geom
}

func TestInsertAndLookup(t *testing.T) {
	g, geom := edgesGraph(t)
	assert.NoError(t, g.Validate())
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, ID(7), g.NextID())

	got, err := Lookup[*Geometry](g, geom.ID())
	assert.NoError(t, err)
	assert.Equal(t, geom, got)

	_, err = Lookup[*DataGroup](g, geom.ID())
	assert.True(t, errors.Is(err, ErrWrongType))
	_, err = Lookup[*DataGroup](g, 99)
	assert.True(t, errors.Is(err, ErrNotFound))

	arr, err := Lookup[*DataArray[uint64]](g, geom.Slot(RoleSharedEdgeList).ID)
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, arr.Tuple(1))
}

func TestInsertErrors(t *testing.T) {
	g := New()
	s, err := NewScalarData[int32](g, "Count", 42, None)
	assert.NoError(t, err)

	_, err = NewDataGroup(g, "child", Some(s.ID()))
	assert.True(t, errors.Is(err, ErrNotGroup))
	_, err = NewDataGroup(g, "child", Some(77))
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = ImportDataGroup(g, "dup", s.ID(), None)
	assert.True(t, errors.Is(err, ErrExists))
	_, err = NewDataGroup(g, "a/b", None)
	assert.True(t, errors.Is(err, ErrInvalidName))
	_, err = NewDataGroup(g, "", None)
	assert.True(t, errors.Is(err, ErrInvalidName))
	_, err = NewGeometry(g, KindImageGeom, "img", None)
	assert.True(t, errors.Is(err, ErrWrongType))
	_, err = ImportDataArray[int8](g, "bad", 50, []uint64{2}, nil, []int8{1}, None)
	assert.True(t, errors.Is(err, ErrShape))
	// 3 * 0xAAAAAAAAAAAAAAAB wraps to 1 in uint64 arithmetic.
	_, err = ImportDataArray[int8](g, "wrapped", 51, []uint64{3, 0xAAAAAAAAAAAAAAAB}, nil, []int8{1}, None)
	assert.True(t, errors.Is(err, ErrShape))
	_, err = NewDataArray[int8](g, "huge", []uint64{1 << 62, 4}, nil, None)
	assert.True(t, errors.Is(err, ErrShape))

	geom, err := NewGeometry(g, KindVertexGeom, "v", None)
	assert.NoError(t, err)
	assert.True(t, errors.Is(geom.SetSlot(RoleSharedEdgeList, Some(1)), ErrInvalidRole))
}

func TestImportAdvancesNextID(t *testing.T) {
	g := New()
	_, err := ImportDataGroup(g, "a", 10, None)
	assert.NoError(t, err)
	assert.Equal(t, ID(11), g.NextID())

	g.SetNextID(3)
	assert.Equal(t, ID(11), g.NextID())
	g.SetNextID(20)
	assert.Equal(t, ID(20), g.NextID())

	id := g.ReserveID()
	assert.Equal(t, ID(20), id)
	assert.True(t, g.IsReserved(20))
	_, err = ImportDataGroup(g, "b", 20, None)
	assert.True(t, errors.Is(err, ErrExists))
	assert.Equal(t, ID(21), g.NextID())
}

func TestPaths(t *testing.T) {
	g, geom := edgesGraph(t)

	p, err := g.PathOf(geom.ID())
	assert.NoError(t, err)
	assert.Equal(t, "Root/Edges", p)

	n, err := g.FindByPath("/Root/Edges/Edge Data/Labels")
	assert.NoError(t, err)
	assert.Equal(t, "Labels", n.Name())

	_, err = g.FindByPath("Root/Missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = g.FindByPath("")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.NoError(t, g.Rename(geom.ID(), "Renamed"))
	_, err = g.FindByPath("Root/Renamed/Vertices")
	assert.NoError(t, err)
	assert.True(t, errors.Is(g.Rename(geom.ID(), "x/y"), ErrInvalidName))

	child, ok := g.ChildByName(geom.Parent(), "Renamed")
	assert.True(t, ok)
	assert.Equal(t, geom.ID(), child.ID())
}

func TestWalkOrder(t *testing.T) {
	g, _ := edgesGraph(t)
	var got []string
	err := g.Walk(func(n Node, depth int) error {
		got = append(got, n.Name())
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Root", "Edges", "Vertices", "Edge List", "Edge Data", "Labels"}, got)

	stop := errors.New("stop")
	count := 0
	err = g.Walk(func(n Node, depth int) error {
		count++
		if depth == 1 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, count)
}

func TestRemoveCascadesSlots(t *testing.T) {
	g, geom := edgesGraph(t)
	edgeList := geom.Slot(RoleSharedEdgeList).ID
	edgeData := geom.Slot(RoleEdgeData).ID

	assert.NoError(t, g.Remove(edgeList))
	assert.False(t, g.Contains(edgeList))
	assert.False(t, geom.Slot(RoleSharedEdgeList).Valid)
	assert.True(t, geom.Slot(RoleSharedVertexList).Valid)

	assert.NoError(t, g.Remove(edgeData))
	assert.False(t, geom.Slot(RoleEdgeData).Valid)
	assert.Equal(t, 3, g.Len())
	assert.NoError(t, g.Validate())

	assert.True(t, errors.Is(g.Remove(edgeList), ErrNotFound))
}

func TestMove(t *testing.T) {
	g, geom := edgesGraph(t)
	root := geom.Parent()

	assert.True(t, errors.Is(g.Move(root.ID, Some(geom.ID())), ErrCycle))
	assert.NoError(t, g.Move(geom.ID(), None))
	assert.Equal(t, 2, len(g.Roots()))
	assert.Equal(t, 0, len(g.Children(root.ID)))
	assert.NoError(t, g.Validate())
}

func TestValidateReportsViolations(t *testing.T) {
	g, geom := edgesGraph(t)

	assert.NoError(t, geom.SetSlot(RoleElementCentroids, Some(99)))
	arr, _ := g.FindByPath("Root/Edges/Edge Data/Labels")
	arr.(*DataArray[int32]).Data = []int32{1}
	assert.NoError(t, geom.SetSlot(RoleElementSizes, Some(geom.Slot(RoleEdgeData).ID)))

	err := g.Validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDangling))
	assert.True(t, errors.Is(err, ErrShape))
	assert.True(t, errors.Is(err, ErrWrongType))
	assert.False(t, errors.Is(err, ErrCycle))
}

func TestValidateAttributeMatrixTuples(t *testing.T) {
	g := New()
	am, err := NewAttributeMatrix(g, "Cell Data", []uint64{2, 3}, None)
	assert.NoError(t, err)
	_, err = NewDataArray[float64](g, "ok", []uint64{6}, []uint64{3}, Some(am.ID()))
	assert.NoError(t, err)
	assert.NoError(t, g.Validate())

	_, err = NewStringArray(g, "names", []string{"a"}, Some(am.ID()))
	assert.NoError(t, err)
	assert.True(t, errors.Is(g.Validate(), ErrShape))
}

func TestCloneIsDeep(t *testing.T) {
	g, geom := edgesGraph(t)
	c := g.Clone()
	assert.NoError(t, Equivalent(g, c))

	cg, err := Lookup[*Geometry](c, geom.ID())
	assert.NoError(t, err)
	assert.NoError(t, cg.SetSlot(RoleSharedEdgeList, None))
	assert.True(t, geom.Slot(RoleSharedEdgeList).Valid)

	arr, err := Lookup[*DataArray[uint64]](c, geom.Slot(RoleSharedEdgeList).ID)
	assert.NoError(t, err)
	arr.Data[0] = 9
	orig, _ := Lookup[*DataArray[uint64]](g, geom.Slot(RoleSharedEdgeList).ID)
	assert.Equal(t, uint64(0), orig.Data[0])

	assert.NoError(t, c.Remove(arr.ID()))
	assert.True(t, g.Contains(arr.ID()))
}

func TestEquivalentIgnoresIDs(t *testing.T) {
	a, _ := edgesGraph(t)

	b := New()
	b.SetNextID(100)
	root, _ := NewDataGroup(b, "Root", None)
	geom, _ := NewGeometry(b, KindEdgeGeom, "Edges", Some(root.ID()))
	verts, _ := NewDataArray[float32](b, "Vertices", []uint64{3}, []uint64{3}, Some(geom.ID()))
	edges, _ := NewDataArray[uint64](b, "Edge List", []uint64{2}, []uint64{2}, Some(geom.ID()))
	copy(edges.Data, []uint64{0, 1, 1, 2})
	edgeData, _ := NewAttributeMatrix(b, "Edge Data", []uint64{2}, Some(geom.ID()))
	NewDataArray[int32](b, "Labels", []uint64{2}, nil, Some(edgeData.ID()))
	geom.SetSlot(RoleSharedVertexList, Some(verts.ID()))
	geom.SetSlot(RoleSharedEdgeList, Some(edges.ID()))
	geom.SetSlot(RoleEdgeData, Some(edgeData.ID()))

	assert.NoError(t, Equivalent(a, b))

	geom.SetSlot(RoleSharedEdgeList, Some(verts.ID()))
	assert.True(t, errors.Is(Equivalent(a, b), ErrNotEquivalent))
	geom.SetSlot(RoleSharedEdgeList, Some(edges.ID()))

	edges.Data[3] = 7
	assert.True(t, errors.Is(Equivalent(a, b), ErrNotEquivalent))
}

func TestGeometryTypes(t *testing.T) {
	g := New()
	img, err := NewImageGeom(g, "Image", None)
	assert.NoError(t, err)
	img.Dimensions = [3]uint64{4, 3, 2}
	assert.Equal(t, uint64(24), img.NumCells())
	assert.Equal(t, [3]float32{1, 1, 1}, img.Spacing)
	assert.NoError(t, img.SetSlot(RoleCellData, Some(5)))
	assert.True(t, errors.Is(img.SetSlot(RoleXBounds, Some(5)), ErrInvalidRole))

	rg, err := NewRectGridGeom(g, "Grid", None)
	assert.NoError(t, err)
	assert.NoError(t, rg.SetSlot(RoleZBounds, Some(1)))

	var geoms []GeometryNode
	for _, id := range g.IDs() {
		n, _ := g.Get(id)
		if gn, ok := n.(GeometryNode); ok {
			geoms = append(geoms, gn)
		}
	}
	assert.Equal(t, 2, len(geoms))

	nl, err := NewNeighborList(g, "Neighbors", [][]int32{{1, 2}, {}, {3}}, None)
	assert.NoError(t, err)
	assert.Equal(t, "Neighbors_NumNeighbors", nl.NumNeighborsName())
	assert.Equal(t, uint64(3), nl.NumTuples())
}

func TestMerge(t *testing.T) {
	src, _ := edgesGraph(t)

	g := New()
	imported, err := NewDataGroup(g, "Imported", None)
	assert.NoError(t, err)
	other, err := NewDataArray[int8](g, "Other", []uint64{1}, nil, None)
	assert.NoError(t, err)

	mapping, err := g.Merge(src, Some(imported.ID()))
	assert.NoError(t, err)
	assert.Equal(t, src.Len(), len(mapping))
	assert.Equal(t, src.Len()+2, g.Len())
	assert.NoError(t, g.Validate())

	geom, err := g.FindByPath("Imported/Root/Edges")
	assert.NoError(t, err)
	edges, err := g.FindByPath("Imported/Root/Edges/Edge List")
	assert.NoError(t, err)
	assert.Equal(t, Some(edges.ID()), geom.(GeometryNode).Slot(RoleSharedEdgeList))
	assert.Equal(t, mapping[4], edges.ID())

	// Source ids overlap the destination's; the source is left untouched.
	assert.NoError(t, src.Validate())
	assert.Equal(t, 6, src.Len())

	_, err = g.Merge(src, Some(other.ID()))
	assert.True(t, errors.Is(err, ErrNotGroup))
	_, err = g.Merge(src, Some(99))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDescribe(t *testing.T) {
	g, geom := edgesGraph(t)
	assert.Equal(t, "", Describe(geom))

	list, err := g.FindByPath("Root/Edges/Edge List")
	assert.NoError(t, err)
	assert.Equal(t, "tuples [2] components [2]", Describe(list))
	am, err := g.FindByPath("Root/Edges/Edge Data")
	assert.NoError(t, err)
	assert.Equal(t, "tuples [2]", Describe(am))

	s, err := NewScalarData(g, "Count", int32(42), None)
	assert.NoError(t, err)
	assert.Equal(t, "value 42", Describe(s))
	nl, err := NewNeighborList(g, "N", [][]int32{{1, 2}, {}}, None)
	assert.NoError(t, err)
	assert.Equal(t, "2 lists, 2 neighbors", Describe(nl))
}
