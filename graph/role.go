package graph

// Role names a reference slot on a geometry. The string value is the
// attribute name the slot is stored under.
type Role string

const (
	RoleElementSizes Role = "Element Sizes ID"

	RoleCellData Role = "Cell Data ID"
	RoleXBounds  Role = "X Bounds ID"
	RoleYBounds  Role = "Y Bounds ID"
	RoleZBounds  Role = "Z Bounds ID"

	RoleSharedVertexList Role = "Shared Vertex List ID"
	RoleVertexData       Role = "Vertex Data ID"

	RoleSharedEdgeList        Role = "Shared Edge List ID"
	RoleEdgeData              Role = "Edge Data ID"
	RoleElementContainingVert Role = "Element Containing Vert ID"
	RoleElementNeighbors      Role = "Element Neighbors ID"
	RoleElementCentroids      Role = "Element Centroids ID"

	RoleSharedFaceList   Role = "Shared Face List ID"
	RoleFaceData         Role = "Face Data ID"
	RoleUnsharedEdgeList Role = "Unshared Edge List ID"

	RoleSharedPolyhedronList Role = "Polyhedron List ID"
	RolePolyhedronData       Role = "Polyhedron Data ID"
	RoleUnsharedFaceList     Role = "Unshared Face List ID"
)

// Roles introduced by each geometry layer, in the order they are stored.
var (
	GeometryRoles = []Role{RoleElementSizes}
	GridRoles     = []Role{RoleCellData}
	RectGridRoles = []Role{RoleXBounds, RoleYBounds, RoleZBounds}
	Node0DRoles   = []Role{RoleSharedVertexList, RoleVertexData}
	Node1DRoles   = []Role{RoleSharedEdgeList, RoleEdgeData, RoleElementContainingVert, RoleElementNeighbors, RoleElementCentroids}
	Node2DRoles   = []Role{RoleSharedFaceList, RoleFaceData, RoleUnsharedEdgeList}
	Node3DRoles   = []Role{RoleSharedPolyhedronList, RolePolyhedronData, RoleUnsharedFaceList}
)

// Roles returns the slots a geometry of kind k has, base layers first.
// It returns nil for non-geometry kinds.
func (k Kind) Roles() []Role {
	if !k.IsGeometry() {
		return nil
	}
	roles := append([]Role(nil), GeometryRoles...)
	if k.IsGrid() {
		roles = append(roles, GridRoles...)
		if k == KindRectGridGeom {
			roles = append(roles, RectGridRoles...)
		}
		return roles
	}
	layers := [][]Role{Node0DRoles, Node1DRoles, Node2DRoles, Node3DRoles}
	for _, layer := range layers[:k.Dimension()+1] {
		roles = append(roles, layer...)
	}
	return roles
}

// HasRole reports whether geometries of kind k have slot r.
func (k Kind) HasRole(r Role) bool {
	for _, have := range k.Roles() {
		if have == r {
			return true
		}
	}
	return false
}

// Accepts reports whether a node of type t may fill slot r.
func (r Role) Accepts(t Type) bool {
	switch r {
	case RoleCellData, RoleVertexData, RoleEdgeData, RoleFaceData, RolePolyhedronData:
		return t.Kind == KindAttributeMatrix
	case RoleElementContainingVert, RoleElementNeighbors:
		return t.Kind == KindDataArray || t.Kind == KindNeighborList
	default:
		return t.Kind == KindDataArray
	}
}
