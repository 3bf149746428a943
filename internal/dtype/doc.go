// Package dtype describes the element datatypes a container can store and
// converts between Go slices and their on-disk byte representation.
//
// # Supported Types
//
// Numeric datasets and attributes map onto the fixed-size Go types
// collected in [Element]:
//
//	int8, int16, int32, int64       -> ClassSigned
//	uint8, uint16, uint32, uint64   -> ClassUnsigned
//	float32, float64                -> ClassFloat
//	bool                            -> ClassBool
//
// Strings use [ClassString] and are stored as a sequence of
// uint32-length-prefixed UTF-8 values.
//
// # Usage
//
//	raw, err := dtype.Encode([]int32{1, 2, 3})
//	out := make([]int32, 3)
//	err = dtype.Decode(dtype.Int32, raw, out)
package dtype
