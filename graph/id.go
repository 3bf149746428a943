package graph

import "strconv"

// ID identifies a node for the lifetime of a Graph and across a save and
// load round trip.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// OptionalID is an id that may be absent. Absence is distinct from id 0.
type OptionalID struct {
	ID    ID
	Valid bool
}

// None is the absent id.
var None OptionalID

// Some returns a present OptionalID.
func Some(id ID) OptionalID {
	return OptionalID{ID: id, Valid: true}
}

// Get returns the id and whether it is present.
func (o OptionalID) Get() (ID, bool) {
	return o.ID, o.Valid
}

// Is reports whether o is present and equal to id.
func (o OptionalID) Is(id ID) bool {
	return o.Valid && o.ID == id
}

func (o OptionalID) String() string {
	if !o.Valid {
		return "none"
	}
	return o.ID.String()
}
