// Package lmmock provides a deterministic-shape, uniform-distribution mock
// of the lm.Model capability for use in tests, grounded on the reference
// implementation's own MockKerasModel/mock_model fixtures.
package lmmock

import (
	"sort"

	"github.com/stevekrenzel/modeled-encryption/internal/lm"
)

// UniformModel always predicts an equal probability for every alphabet
// character, regardless of window content or novelty. It never errors.
type UniformModel struct {
	alphabet                 []rune
	sequenceLength            int
	boundary                  rune
	normalizingLength         int
	primingLength             int
	novelty                   float64
	maxPaddingTrials          int
	paddingNoveltyGrowthRate  float64
}

// Option configures a UniformModel.
type Option func(*UniformModel)

// WithSequenceLength overrides the default sequence length of 0.
func WithSequenceLength(n int) Option {
	return func(m *UniformModel) { m.sequenceLength = n }
}

// WithNormalizingLength overrides the default normalizing length of 0.
func WithNormalizingLength(n int) Option {
	return func(m *UniformModel) { m.normalizingLength = n }
}

// WithPrimingLength overrides the default priming length of 0.
func WithPrimingLength(n int) Option {
	return func(m *UniformModel) { m.primingLength = n }
}

// WithNovelty overrides the default novelty of 0.5.
func WithNovelty(n float64) Option {
	return func(m *UniformModel) { m.novelty = n }
}

// WithMaxPaddingTrials overrides the default of 1000.
func WithMaxPaddingTrials(n int) Option {
	return func(m *UniformModel) { m.maxPaddingTrials = n }
}

// WithPaddingNoveltyGrowthRate overrides the default of 1.01.
func WithPaddingNoveltyGrowthRate(r float64) Option {
	return func(m *UniformModel) { m.paddingNoveltyGrowthRate = r }
}

// New builds a UniformModel over alphabet (sorted internally into canonical
// order) with the given boundary character, matching the reference test
// fixture's default alphabet "012" / boundary '0' / sequence_length 0 shape
// unless overridden by opts.
func New(alphabet string, boundary rune, opts ...Option) *UniformModel {
	runes := []rune(alphabet)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	m := &UniformModel{
		alphabet:                 runes,
		sequenceLength:           0,
		boundary:                 boundary,
		normalizingLength:        0,
		primingLength:            0,
		novelty:                  0.5,
		maxPaddingTrials:         1000,
		paddingNoveltyGrowthRate: 1.01,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *UniformModel) Alphabet() []rune                   { return m.alphabet }
func (m *UniformModel) SequenceLength() int                { return m.sequenceLength }
func (m *UniformModel) Boundary() rune                      { return m.boundary }
func (m *UniformModel) NormalizingLength() int              { return m.normalizingLength }
func (m *UniformModel) PrimingLength() int                  { return m.primingLength }
func (m *UniformModel) Novelty() float64                    { return m.novelty }
func (m *UniformModel) MaxPaddingTrials() int                { return m.maxPaddingTrials }
func (m *UniformModel) PaddingNoveltyGrowthRate() float64   { return m.paddingNoveltyGrowthRate }

// Predict always returns a uniform distribution over the alphabet,
// regardless of window.
func (m *UniformModel) Predict(window []rune) ([]float64, error) {
	p := make([]float64, len(m.alphabet))
	share := 1.0 / float64(len(m.alphabet))
	for i := range p {
		p[i] = share
	}
	return p, nil
}

var _ lm.Model = (*UniformModel)(nil)
