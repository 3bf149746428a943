package dataio

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/robert-malhotra/go-nxgraph/container"
	"github.com/robert-malhotra/go-nxgraph/graph"
	"github.com/robert-malhotra/go-nxgraph/result"
)

// FormatVersion is the per-node layout version written by this package.
const FormatVersion uint32 = 1

// Attribute names.
const (
	AttrObjectType    = "ObjectType"
	AttrObjectID      = "ObjectId"
	AttrParentID      = "ParentId"
	AttrFormatVersion = "FormatVersion"
	AttrImportable    = "Importable"
	AttrNextObjectID  = "NextObjectId"

	AttrTupleShape     = "TupleShape"
	AttrComponentShape = "ComponentShape"
	AttrTupleDims      = "TupleDims"

	AttrImageDimensions    = "_DIMENSIONS"
	AttrImageOrigin        = "_ORIGIN"
	AttrImageSpacing       = "_SPACING"
	AttrRectGridDimensions = "Dimensions"

	AttrLinkedNumNeighbors = "Linked NumNeighbors Dataset"
)

// writeObjectAttrs stores the attributes every node carries.
func (w *writer) writeObjectAttrs(obj container.Object, n graph.Node, code result.Code) error {
	importable := uint8(1)
	if _, skip := w.opts.nonImportable[n.ID()]; skip {
		importable = 0
	}
	err := multierr.Combine(
		container.SetAttrString(obj, AttrObjectType, n.Type().String()),
		container.SetAttrValue(obj, AttrObjectID, uint64(n.ID())),
		container.SetAttrValue(obj, AttrFormatVersion, FormatVersion),
		container.SetAttrValue(obj, AttrImportable, importable),
	)
	if p := n.Parent(); p.Valid {
		err = multierr.Append(err, container.SetAttrValue(obj, AttrParentID, uint64(p.ID)))
	} else {
		err = multierr.Append(err, obj.DeleteAttr(AttrParentID))
	}
	if err != nil {
		return result.Wrap(code, err, "writing attributes of %s", obj.Path())
	}
	return nil
}

// readSlots records the role slot ids stored on grp. A missing attribute
// means the slot is not set.
func (r *reader) readSlots(geom graph.GeometryNode, grp *container.Group, roles []graph.Role, code result.Code) error {
	for _, role := range roles {
		v, err := container.AttrValue[uint64](grp, string(role))
		if errors.Is(err, container.ErrAttrNotFound) {
			continue
		}
		if err != nil {
			return result.Wrap(code, err, "reading %q of %s", role, grp.Path())
		}
		r.pending = append(r.pending, pendingSlot{owner: geom.ID(), role: role, target: graph.ID(v)})
	}
	return nil
}

// writeSlots stores the set role slots and clears the rest, so rewriting a
// node whose slot was unset does not leave the old id behind.
func writeSlots(geom graph.GeometryNode, grp *container.Group, roles []graph.Role, code result.Code) error {
	for _, role := range roles {
		var err error
		if id, ok := geom.Slot(role).Get(); ok {
			err = container.SetAttrValue(grp, string(role), uint64(id))
		} else {
			err = grp.DeleteAttr(string(role))
		}
		if err != nil {
			return result.Wrap(code, err, "writing %q of %s", role, grp.Path())
		}
	}
	return nil
}
