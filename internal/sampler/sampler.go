// Package sampler implements the weighted sampler: the exact-inverse pair
// that maps a weight to a choice and a choice to a weight over a weighted
// alphabet.
package sampler

import (
	"errors"
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/rng"
)

// ErrLengthMismatch is returned when the alphabet and weight table lengths differ.
var ErrLengthMismatch = errors.New("sampler: choices and weights have different lengths")

// ErrOutOfRange is returned when a weight falls outside [0, sum(weights)).
var ErrOutOfRange = errors.New("sampler: weight out of range")

// ChooseChoice returns the unique alphabet entry whose cumulative weight
// interval contains k. It is the exact inverse of ChooseWeight.
func ChooseChoice(k uint32, choices []rune, weights []uint32) (rune, error) {
	if len(choices) != len(weights) {
		return 0, fmt.Errorf("%w: weights has length %d, choices has length %d", ErrLengthMismatch, len(weights), len(choices))
	}

	var total uint64
	for i, w := range weights {
		total += uint64(w)
		if uint64(k) < total {
			return choices[i], nil
		}
	}

	return 0, fmt.Errorf("%w: weight %d is not less than total %d", ErrOutOfRange, k, total)
}

// ChooseWeight returns a uniformly random weight from the half-open interval
// corresponding to choice's first occurrence in choices. The second return
// value is false (the "no weight" sentinel) if that interval is empty.
func ChooseWeight(choice rune, choices []rune, weights []uint32) (uint32, bool, error) {
	if len(choices) != len(weights) {
		return 0, false, fmt.Errorf("%w: weights has length %d, choices has length %d", ErrLengthMismatch, len(weights), len(choices))
	}

	var start, end uint64
	found := false
	for i, c := range choices {
		start = end
		end = start + uint64(weights[i])
		if c == choice {
			found = true
			break
		}
	}

	if !found {
		return 0, false, fmt.Errorf("%w: choice %q not present in alphabet", ErrOutOfRange, choice)
	}

	if start == end {
		return 0, false, nil
	}

	span := end - start
	offset, err := rng.Intn(int(span))
	if err != nil {
		return 0, false, fmt.Errorf("sampler: failed to draw random weight: %w", err)
	}

	return uint32(start + uint64(offset)), true, nil
}
