// Package filter implements the dataset filter pipeline.
//
// Filters transform a dataset's raw bytes on the way to disk and back.
// Encoding applies filters in pipeline order; decoding applies them in
// reverse.
//
// # Supported Filters
//
//   - Deflate (ID 1): zlib compression via [Deflate], backed by
//     klauspost/compress.
//   - Shuffle (ID 2): byte shuffling via [Shuffle]. Groups byte k of every
//     element together, which helps the compressors that follow.
//   - Checksum (ID 3): appends an xxhash64 of the data and verifies it on
//     read via [Checksum].
//   - LZ4 (ID 32004): lz4 block compression via [LZ4], backed by
//     pierrec/lz4.
//
// Unknown filters fail pipeline construction unless marked optional, in
// which case they are skipped.
//
//	p, err := filter.NewPipeline(fpMsg)
//	stored, err := p.Encode(raw)
//	raw, err = p.Decode(stored)
package filter
