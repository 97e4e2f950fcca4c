// Package lm defines the capability the codec core requires from a
// character-level language model, independent of how that model is trained
// or stored.
package lm

import "fmt"

// Model is the interface the core consumes from the external model
// collaborator (spec §4.9). The core never inspects model internals; it
// only calls Predict, and reads the fixed codec parameters.
type Model interface {
	// Alphabet returns the canonically (lexicographically) ordered set of
	// distinct characters the model is defined over. Weight indices are
	// always taken against this order.
	Alphabet() []rune

	// SequenceLength is the fixed number of characters the model consumes
	// per prediction.
	SequenceLength() int

	// Boundary is the distinguished alphabet member separating tokens.
	Boundary() rune

	// NormalizingLength is the number of characters sampled to drive the
	// model from a cold window into its natural distribution.
	NormalizingLength() int

	// PrimingLength is the number of characters sampled after
	// normalization to further settle the model before the payload begins.
	PrimingLength() int

	// Novelty is the default temperature used to scale predictions.
	Novelty() float64

	// MaxPaddingTrials bounds the number of token-sampling attempts the
	// padding algorithm will make before giving up.
	MaxPaddingTrials() int

	// PaddingNoveltyGrowthRate is the per-trial multiplier applied to
	// novelty while searching for a sufficiently long padding token.
	PaddingNoveltyGrowthRate() float64

	// Predict returns a raw (untempered) probability distribution over
	// Alphabet() for the character following window. Temperature scaling by
	// novelty is the Probability Normalizer's job (internal/weighting.
	// Normalize), applied by callers, not folded into the model itself.
	Predict(window []rune) ([]float64, error)
}

// ErrAlphabetMismatch is raised when a model's declared alphabet is not in
// canonical (sorted, duplicate-free) order, or has fewer than two symbols.
var ErrAlphabetMismatch = fmt.Errorf("lm: alphabet must be sorted, duplicate-free, and contain at least two symbols")

// ErrBoundaryMissing is raised when a declared boundary character is not a
// member of the model's alphabet.
var ErrBoundaryMissing = fmt.Errorf("lm: boundary character is not present in alphabet")

// ValidateShape checks the structural invariants every Model implementation
// must satisfy: a canonically ordered alphabet of at least two symbols
// containing the boundary character, and a non-negative sequence length.
func ValidateShape(alphabet []rune, boundary rune, sequenceLength int) error {
	if len(alphabet) < 2 {
		return ErrAlphabetMismatch
	}
	for i := 1; i < len(alphabet); i++ {
		if alphabet[i-1] >= alphabet[i] {
			return ErrAlphabetMismatch
		}
	}
	if sequenceLength < 0 {
		return fmt.Errorf("lm: sequence_length must be >= 0, got %d", sequenceLength)
	}

	found := false
	for _, c := range alphabet {
		if c == boundary {
			found = true
			break
		}
	}
	if !found {
		return ErrBoundaryMissing
	}

	return nil
}
