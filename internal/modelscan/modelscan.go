// Package modelscan drives a character-level language model one step at a
// time, producing per-step integer weight tables, and builds the Tabulate
// and Recite codec primitives on top of that drive loop.
package modelscan

import (
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/packing"
	"github.com/stevekrenzel/modeled-encryption/internal/rng"
	"github.com/stevekrenzel/modeled-encryption/internal/sampler"
	"github.com/stevekrenzel/modeled-encryption/internal/weighting"
)

// Step is applied at each position of the scan: given the next input value
// and the current step's weight table, it returns the character that should
// be pushed into the sliding window next, and the value to accumulate into
// the scan's output.
type Step[X any, Y any] func(x X, weights []uint32) (next rune, yield Y, err error)

// Scan drives model forward one character per element of xs, maintaining a
// sliding window of the last SequenceLength() characters starting from
// init's tail. It returns one yielded value per element of xs, in order.
//
// init must have length >= model.SequenceLength().
func Scan[X any, Y any](model lm.Model, init []rune, xs []X, novelty float64, step Step[X, Y]) ([]Y, error) {
	window, err := initialWindow(model, init)
	if err != nil {
		return nil, err
	}

	out := make([]Y, len(xs))
	for i, x := range xs {
		weights, err := weightsAt(model, window, novelty)
		if err != nil {
			return nil, fmt.Errorf("modelscan: predict failed at step %d: %w", i, err)
		}

		next, y, err := step(x, weights)
		if err != nil {
			return nil, fmt.Errorf("modelscan: step failed at index %d: %w", i, err)
		}
		out[i] = y

		window = advance(model, window, next)
	}

	return out, nil
}

// Tabulate converts a character sequence into the random integer weight
// stream that, fed back into Recite with the same model/init/novelty, yields
// exactly that sequence (spec §4.5, P4).
func Tabulate(model lm.Model, init []rune, chars []rune, novelty float64) ([]uint32, error) {
	return Scan(model, init, chars, novelty, func(c rune, weights []uint32) (rune, uint32, error) {
		weight, ok, err := sampler.ChooseWeight(c, model.Alphabet(), weights)
		if err != nil {
			return 0, 0, err
		}
		if !ok {
			return 0, 0, fmt.Errorf("modelscan: character %q has zero weight at this step", c)
		}
		return c, weight, nil
	})
}

// Recite converts an integer weight stream into the character sequence the
// model's predictions resolve each weight to (spec §4.5).
func Recite(model lm.Model, init []rune, weights []uint32, novelty float64) ([]rune, error) {
	return Scan(model, init, weights, novelty, func(k uint32, w []uint32) (rune, rune, error) {
		c, err := sampler.ChooseChoice(k, model.Alphabet(), w)
		if err != nil {
			return 0, 0, err
		}
		return c, c, nil
	})
}

// TokenStream pulls characters from the model one at a time using freshly
// drawn cryptographically random weights, for unbounded generation (used by
// padding to sample tokens of unknown length). Unlike Scan it is not
// restricted to a predetermined finite xs.
type TokenStream struct {
	model   lm.Model
	window  []rune
	novelty float64
}

// NewTokenStream starts a token stream from start, using novelty for every
// subsequent prediction.
func NewTokenStream(model lm.Model, start []rune, novelty float64) (*TokenStream, error) {
	window, err := initialWindow(model, start)
	if err != nil {
		return nil, err
	}
	return &TokenStream{model: model, window: window, novelty: novelty}, nil
}

// Next draws one random weight via the sampler's cryptographic RNG,
// resolves it against the model's current prediction, advances the sliding
// window, and returns the resulting character.
func (t *TokenStream) Next() (rune, error) {
	weights, err := weightsAt(t.model, t.window, t.novelty)
	if err != nil {
		return 0, fmt.Errorf("modelscan: predict failed: %w", err)
	}

	k, err := rng.Uint32()
	if err != nil {
		return 0, fmt.Errorf("modelscan: failed to draw random weight: %w", err)
	}

	c, err := sampler.ChooseChoice(k, t.model.Alphabet(), weights)
	if err != nil {
		return 0, err
	}

	t.window = advance(t.model, t.window, c)
	return c, nil
}

func weightsAt(model lm.Model, window []rune, novelty float64) ([]uint32, error) {
	probs, err := model.Predict(window)
	if err != nil {
		return nil, err
	}
	normalized := weighting.Normalize(probs, novelty)
	return weighting.Scale(normalized, packing.MaxInt+1, 1), nil
}

func initialWindow(model lm.Model, init []rune) ([]rune, error) {
	n := model.SequenceLength()
	if n == 0 {
		return []rune{}, nil
	}
	if len(init) < n {
		return nil, fmt.Errorf("modelscan: initial window has length %d, need at least %d", len(init), n)
	}
	window := make([]rune, n)
	copy(window, init[len(init)-n:])
	return window, nil
}

func advance(model lm.Model, window []rune, next rune) []rune {
	n := model.SequenceLength()
	if n == 0 {
		return window
	}
	out := make([]rune, n)
	copy(out, window[1:])
	out[n-1] = next
	return out
}
