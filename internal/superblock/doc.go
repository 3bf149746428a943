// Package superblock handles the container file superblock.
//
// The superblock sits at offset 0 and is the entry point of every file:
//
//	signature    8 bytes  0x89 N X G \r \n 0x1a \n
//	version      uint8
//	flags        uint8
//	reserved     2 bytes
//	file id      16 bytes (UUID)
//	root address uint64
//	eof address  uint64
//	checksum     uint64 xxhash64 of the preceding bytes
package superblock
