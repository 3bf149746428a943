// Package object handles container object headers.
//
// Every group and dataset is described by one object header:
//
//	signature  "OHDR"
//	version    uint8 (1)
//	kind       uint8 (group or dataset)
//	count      uint16 number of messages
//	size       uint32 total bytes of the message block
//	messages   type uint8, flags uint8, size uint32, payload
//	checksum   uint64 xxhash64 of everything above
//
// Headers are built in memory by [Encode] so the checksum can be computed
// before the block reaches the file.
package object
