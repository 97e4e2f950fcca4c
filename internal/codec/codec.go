// Package codec implements the top-level encode/decode pair that sits
// between plaintext and the block cipher: boundary-terminated plaintext maps
// to a packed byte string of weights (normalization prefix, priming prefix,
// plaintext weights, and padding), and back.
package codec

import (
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/modelscan"
	"github.com/stevekrenzel/modeled-encryption/internal/packing"
	"github.com/stevekrenzel/modeled-encryption/internal/padding"
	"github.com/stevekrenzel/modeled-encryption/internal/rng"
)

// Encode turns plaintext into the packed weight-stream bytes that, fed to
// Decode against the same model, recover plaintext (boundary-terminated).
// blockSize = 1 performs no padding beyond the mandatory boundary append;
// any other value must be a positive multiple of 4 and the resulting
// payload is extended so its packed length aligns to it.
func Encode(model lm.Model, plaintext string, blockSize int) ([]byte, error) {
	novelty := model.Novelty()
	init := bootstrapWindow(model)

	normWeights, err := randomWeights(model.NormalizingLength())
	if err != nil {
		return nil, fmt.Errorf("codec: failed to draw normalizing weights: %w", err)
	}
	normChars, err := modelscan.Recite(model, init, normWeights, novelty)
	if err != nil {
		return nil, fmt.Errorf("codec: failed to recite normalizing prefix: %w", err)
	}

	afterNorm := concat(init, normChars)

	primeWeights, err := randomWeights(model.PrimingLength())
	if err != nil {
		return nil, fmt.Errorf("codec: failed to draw priming weights: %w", err)
	}
	primeChars, err := modelscan.Recite(model, afterNorm, primeWeights, novelty)
	if err != nil {
		return nil, fmt.Errorf("codec: failed to recite priming prefix: %w", err)
	}

	window := concat(afterNorm, primeChars)

	values := []rune(plaintext)
	var padded []rune
	if blockSize == 1 {
		padded = boundaryTerminate(model, values)
	} else {
		padded, err = padding.Pad(model, window, values, blockSize)
		if err != nil {
			return nil, fmt.Errorf("codec: padding failed: %w", err)
		}
	}

	payloadWeights, err := modelscan.Tabulate(model, window, padded, novelty)
	if err != nil {
		return nil, fmt.Errorf("codec: failed to tabulate payload: %w", err)
	}

	all := make([]uint32, 0, len(normWeights)+len(primeWeights)+len(payloadWeights))
	all = append(all, normWeights...)
	all = append(all, primeWeights...)
	all = append(all, payloadWeights...)

	return packing.Pack(all), nil
}

// Decode is the inverse of Encode: it recovers the plaintext that was
// originally encoded, or (under a mismatched model/key) a plausible decoy
// character sequence drawn from the model's distribution.
func Decode(model lm.Model, data []byte) (string, error) {
	weights, err := packing.Unpack(data)
	if err != nil {
		return "", fmt.Errorf("codec: %w", err)
	}

	init := bootstrapWindow(model)
	chars, err := modelscan.Recite(model, init, weights, model.Novelty())
	if err != nil {
		return "", fmt.Errorf("codec: failed to recite payload: %w", err)
	}

	skip := model.NormalizingLength() + model.PrimingLength()
	if skip > len(chars) {
		skip = len(chars)
	}

	unpadded := padding.Unpad(model, chars[skip:])
	return string(unpadded), nil
}

// bootstrapWindow returns the deterministic, content-agnostic window used to
// seed every encode/decode call: sequence_length repetitions of the model's
// boundary character. See SPEC_FULL.md's Open Questions for why this is a
// fixed constant rather than per-message randomness.
func bootstrapWindow(model lm.Model) []rune {
	n := model.SequenceLength()
	window := make([]rune, n)
	for i := range window {
		window[i] = model.Boundary()
	}
	return window
}

func boundaryTerminate(model lm.Model, values []rune) []rune {
	if len(values) == 0 || values[len(values)-1] != model.Boundary() {
		out := make([]rune, len(values)+1)
		copy(out, values)
		out[len(values)] = model.Boundary()
		return out
	}
	out := make([]rune, len(values))
	copy(out, values)
	return out
}

func randomWeights(n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		w, err := rng.Uint32()
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func concat(a, b []rune) []rune {
	out := make([]rune, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
