// Package container reads and writes nested binary container files: a
// hierarchy of groups holding datasets and sub-groups, each carrying named
// attributes.
//
// A file created with [Create] stages its whole tree in memory and lays it
// out on [File.Flush] or [File.Close]. A file opened with [Open] is read
// lazily: a group's header is parsed when the group is opened, and dataset
// bytes are read only by [ReadSpan] or [ReadStrings].
//
//	f, err := container.Create("out.nxg")
//	g, err := f.Root().CreateGroup("DataStructure")
//	ds, err := g.CreateDataset("Count")
//	err = container.WriteSpan(ds, nil, []int32{42})
//	err = container.SetAttrString(ds, "ObjectType", "ScalarData<int32>")
//	err = f.Close()
//
// Every failure carries a [result.Code] from the -100 family.
package container

import "github.com/robert-malhotra/go-nxgraph/result"

// Error codes owned by this package.
const (
	CodeNotContainer result.Code = -100
	CodeNotFound     result.Code = -101
	CodeNotGroup     result.Code = -102
	CodeNotDataset   result.Code = -103
	CodeClosed       result.Code = -104
	CodeReadOnly     result.Code = -105
	CodeShape        result.Code = -106
	CodeTypeMismatch result.Code = -107
	CodeCorrupt      result.Code = -108
	CodeExists       result.Code = -109
	CodeInvalidName  result.Code = -110
	CodeIO           result.Code = -111
	CodeNoData       result.Code = -112
)

// Common errors. Each matches, via errors.Is, any error raised with the
// same code.
var (
	ErrNotContainer = &result.Error{Code: CodeNotContainer, Message: "not a container file"}
	ErrNotFound     = &result.Error{Code: CodeNotFound, Message: "object not found"}
	ErrNotGroup     = &result.Error{Code: CodeNotGroup, Message: "object is not a group"}
	ErrNotDataset   = &result.Error{Code: CodeNotDataset, Message: "object is not a dataset"}
	ErrClosed       = &result.Error{Code: CodeClosed, Message: "file is closed"}
	ErrReadOnly     = &result.Error{Code: CodeReadOnly, Message: "file is read-only"}
	ErrShape        = &result.Error{Code: CodeShape, Message: "dimension mismatch"}
	ErrTypeMismatch = &result.Error{Code: CodeTypeMismatch, Message: "datatype mismatch"}
	ErrCorrupt      = &result.Error{Code: CodeCorrupt, Message: "corrupt container structure"}
	ErrExists       = &result.Error{Code: CodeExists, Message: "object already exists"}
	ErrInvalidName  = &result.Error{Code: CodeInvalidName, Message: "invalid name"}
	ErrIO           = &result.Error{Code: CodeIO, Message: "i/o failure"}
	ErrNoData       = &result.Error{Code: CodeNoData, Message: "dataset was never written"}
	ErrAttrNotFound = &result.Error{Code: CodeNotFound, Message: "attribute not found"}
)

func newErr(sentinel *result.Error, format string, args ...any) error {
	return result.New(sentinel.Code, format+": "+sentinel.Message, args...)
}

func wrapErr(sentinel *result.Error, cause error, format string, args ...any) error {
	return result.Wrap(sentinel.Code, cause, format+": "+sentinel.Message, args...)
}
