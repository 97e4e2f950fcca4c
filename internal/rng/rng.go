// Package rng wraps the process-wide cryptographic random source consumed
// throughout the codec: weight sampling, normalization/priming seeds, IV
// generation, and uniform selection among padding prefix lengths.
package rng

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Uint32 returns a uniformly random value in [0, 2^32).
func Uint32() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("rng: failed to read random bytes: %w", err)
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

// Intn returns a uniformly random integer in [0, n). n must be > 0.
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("rng: Intn requires n > 0, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("rng: failed to draw random int: %w", err)
	}
	return int(v.Int64()), nil
}

// Bytes fills and returns a slice of n cryptographically random bytes.
func Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("rng: failed to read random bytes: %w", err)
	}
	return buf, nil
}
