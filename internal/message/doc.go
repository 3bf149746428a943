// Package message handles the typed messages stored in object headers.
//
// Header messages carry all of an object's metadata: child links for
// groups, the datatype, dataspace, storage layout and filter pipeline for
// datasets, and named attributes for both. Every message knows how to
// serialize itself into a [binary.Buffer] and how large it will be, so an
// object header can be sized before it is allocated.
package message
