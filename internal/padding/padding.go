// Package padding implements the token-aware padding scheme: it extends an
// encoded payload with a model-sampled prefix so the total length aligns to
// a block-cipher block boundary, while keeping every appended character
// on-distribution for the model.
package padding

import (
	"errors"
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/modelscan"
	"github.com/stevekrenzel/modeled-encryption/internal/rng"
)

// ErrBlockSizeInvalid is returned when blockSize is not a positive multiple of 4.
var ErrBlockSizeInvalid = errors.New("padding: block size must be positive and a multiple of 4")

// ErrPaddingExhausted is returned when MaxPaddingTrials is exceeded without
// finding a token long enough to reach the next block boundary. This is
// non-deterministic and rare; retrying, or raising MaxPaddingTrials or
// PaddingNoveltyGrowthRate, is the recommended recovery.
var ErrPaddingExhausted = errors.New("padding: exhausted padding trials without producing a sufficiently long token")

// Pad extends values with a model-sampled token prefix so that
// len(values-after-padding)*4 is a multiple of blockSize, counting
// model.NormalizingLength()+model.PrimingLength() as already-consumed length
// ahead of values (those weights precede values in the packed payload; the
// initial window is never packed). If values is empty or does not end in the
// model's boundary character, a boundary is appended first.
//
// initial is the character window (of length >= model.SequenceLength())
// preceding values, used to seed token generation.
func Pad(model lm.Model, initial []rune, values []rune, blockSize int) ([]rune, error) {
	if blockSize <= 0 || blockSize%4 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBlockSizeInvalid, blockSize)
	}

	out := make([]rune, len(values))
	copy(out, values)
	if len(out) == 0 || out[len(out)-1] != model.Boundary() {
		out = append(out, model.Boundary())
	}

	length := model.NormalizingLength() + model.PrimingLength() + len(out)
	blockCapacity := blockSize / 4
	firstLength := blockCapacity - (length % blockCapacity)

	joined := make([]rune, 0, len(initial)+len(out))
	joined = append(joined, initial...)
	joined = append(joined, out...)

	novelty := model.Novelty()
	growth := model.PaddingNoveltyGrowthRate()
	for i := 0; i < model.MaxPaddingTrials(); i++ {
		trialNovelty := novelty
		for j := 0; j < i; j++ {
			trialNovelty *= growth
		}

		token, err := generateToken(model, joined, trialNovelty)
		if err != nil {
			return nil, err
		}

		if len(token) >= firstLength {
			var offsets []int
			for j := firstLength; j <= len(token); j += blockCapacity {
				offsets = append(offsets, j)
			}

			idx, err := rng.Intn(len(offsets))
			if err != nil {
				return nil, fmt.Errorf("padding: failed to choose padding length: %w", err)
			}

			return append(out, token[:offsets[idx]]...), nil
		}
	}

	return nil, ErrPaddingExhausted
}

// Unpad removes the trailing padding token (including any trailing boundary
// characters) that Pad appended, restoring values up to and including its
// original terminating boundary. If values contains no boundary character at
// all, it is returned unchanged.
func Unpad(model lm.Model, values []rune) []rune {
	trimmed := trimTail(model.Boundary(), values)
	return dropTailUntil(model.Boundary(), trimmed)
}

func generateToken(model lm.Model, start []rune, novelty float64) ([]rune, error) {
	stream, err := modelscan.NewTokenStream(model, start, novelty)
	if err != nil {
		return nil, err
	}

	var token []rune
	for {
		c, err := stream.Next()
		if err != nil {
			return nil, err
		}
		token = append(token, c)
		if c == model.Boundary() {
			return token, nil
		}
	}
}

func trimTail(x rune, xs []rune) []rune {
	cutoff := len(xs)
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] != x {
			break
		}
		cutoff = i
	}
	out := make([]rune, cutoff)
	copy(out, xs[:cutoff])
	return out
}

func dropTailUntil(x rune, xs []rune) []rune {
	last := -1
	for i := len(xs) - 1; i >= 0; i-- {
		if xs[i] == x {
			last = i
			break
		}
	}
	if last == -1 {
		out := make([]rune, len(xs))
		copy(out, xs)
		return out
	}
	out := make([]rune, last+1)
	copy(out, xs[:last+1])
	return out
}
