// Package packing serializes and deserializes sequences of fixed-width
// unsigned 32-bit integers to and from a byte string.
package packing

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxInt is the largest representable weight, 2^32 - 1.
const MaxInt = 1<<32 - 1

// BytesPerInt is the serialized width of one weight.
const BytesPerInt = 4

// ErrBadLength is returned when a byte buffer's length is not a multiple of
// BytesPerInt.
var ErrBadLength = errors.New("packing: byte length is not a multiple of 4")

// Pack little-endian encodes a sequence of weights, concatenated.
func Pack(weights []uint32) []byte {
	out := make([]byte, len(weights)*BytesPerInt)
	for i, w := range weights {
		binary.LittleEndian.PutUint32(out[i*BytesPerInt:], w)
	}
	return out
}

// Unpack is the inverse of Pack.
func Unpack(data []byte) ([]uint32, error) {
	if len(data)%BytesPerInt != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBadLength, len(data))
	}

	out := make([]uint32, len(data)/BytesPerInt)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*BytesPerInt:])
	}
	return out, nil
}
