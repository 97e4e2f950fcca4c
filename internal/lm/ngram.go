package lm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NgramModel is an order-N frequency-table Markov model over a fixed
// alphabet, trained by counting observed (window, next-character)
// transitions. The reference implementation trains an LSTM on one-hot
// encoded windows (original src/model.py); the Go ecosystem pack carries no
// ML framework to stand in for that, so NgramModel instead learns the same
// "predict the next character given the last N" capability from direct
// transition counts, with Laplace (add-one) smoothing so every alphabet
// member always has non-zero probability regardless of training coverage.
type NgramModel struct {
	alphabet                 []rune
	index                    map[rune]int
	sequenceLength            int
	boundary                  rune
	normalizingLength         int
	primingLength             int
	novelty                   float64
	maxPaddingTrials          int
	paddingNoveltyGrowthRate  float64

	counts map[string][]uint64
}

// NgramConfig carries the construction-time parameters for a NgramModel,
// mirroring the fixed codec parameters a trained model must declare
// (spec §4.9, original_source/src/config.py's ModelConfig/EncodingConfig).
type NgramConfig struct {
	Alphabet                 string
	SequenceLength            int
	Boundary                  rune
	NormalizingLength         int
	PrimingLength             int
	Novelty                   float64
	MaxPaddingTrials          int
	PaddingNoveltyGrowthRate  float64
}

// NewNgramModel constructs an untrained model over cfg's alphabet. The
// alphabet is sorted into canonical order before use, as lm.Model requires.
func NewNgramModel(cfg NgramConfig) (*NgramModel, error) {
	runes := []rune(cfg.Alphabet)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	if err := ValidateShape(runes, cfg.Boundary, cfg.SequenceLength); err != nil {
		return nil, err
	}

	index := make(map[rune]int, len(runes))
	for i, c := range runes {
		index[c] = i
	}

	return &NgramModel{
		alphabet:                 runes,
		index:                    index,
		sequenceLength:           cfg.SequenceLength,
		boundary:                 cfg.Boundary,
		normalizingLength:        cfg.NormalizingLength,
		primingLength:            cfg.PrimingLength,
		novelty:                  cfg.Novelty,
		maxPaddingTrials:         cfg.MaxPaddingTrials,
		paddingNoveltyGrowthRate: cfg.PaddingNoveltyGrowthRate,
		counts:                   make(map[string][]uint64),
	}, nil
}

func (m *NgramModel) Alphabet() []rune                  { return m.alphabet }
func (m *NgramModel) SequenceLength() int               { return m.sequenceLength }
func (m *NgramModel) Boundary() rune                     { return m.boundary }
func (m *NgramModel) NormalizingLength() int             { return m.normalizingLength }
func (m *NgramModel) PrimingLength() int                 { return m.primingLength }
func (m *NgramModel) Novelty() float64                   { return m.novelty }
func (m *NgramModel) MaxPaddingTrials() int               { return m.maxPaddingTrials }
func (m *NgramModel) PaddingNoveltyGrowthRate() float64  { return m.paddingNoveltyGrowthRate }

// Train accumulates transition counts from data: every window of
// SequenceLength() consecutive characters (the boundary character pads the
// start, matching the reference's treatment of sequence starts) is mapped to
// the character that followed it.
func (m *NgramModel) Train(data string) error {
	chars := []rune(data)
	n := m.sequenceLength

	window := make([]rune, n)
	for i := range window {
		window[i] = m.boundary
	}

	for _, c := range chars {
		if _, ok := m.index[c]; !ok {
			return fmt.Errorf("lm: training data contains character %q not in alphabet", c)
		}

		key := string(window)
		row, ok := m.counts[key]
		if !ok {
			row = make([]uint64, len(m.alphabet))
			m.counts[key] = row
		}
		row[m.index[c]]++

		if n > 0 {
			next := make([]rune, n)
			copy(next, window[1:])
			next[n-1] = c
			window = next
		}
	}

	return nil
}

// Predict returns the Laplace-smoothed relative frequency of each alphabet
// character following window. Windows never observed during training fall
// back to a uniform count row, which Laplace smoothing already reduces to:
// every entry is 1, so every character is equally likely. Temperature
// scaling is applied by the caller (internal/weighting.Normalize), not here.
func (m *NgramModel) Predict(window []rune) ([]float64, error) {
	n := m.sequenceLength
	var tail []rune
	if n == 0 {
		tail = []rune{}
	} else if len(window) < n {
		return nil, fmt.Errorf("lm: window has length %d, need at least %d", len(window), n)
	} else {
		tail = window[len(window)-n:]
	}

	row, ok := m.counts[string(tail)]
	total := uint64(len(m.alphabet)) // Laplace add-one smoothing baseline.
	if !ok {
		row = make([]uint64, len(m.alphabet))
	} else {
		for _, c := range row {
			total += c
		}
	}

	p := make([]float64, len(m.alphabet))
	for i, c := range row {
		p[i] = float64(c+1) / float64(total)
	}

	return p, nil
}

// ngramWeightsFile is the on-disk JSON representation of a trained
// NgramModel's transition table, resolved via internal/config's
// weights_file path (spec §6).
type ngramWeightsFile struct {
	Alphabet                 string              `json:"alphabet"`
	SequenceLength           int                 `json:"sequence_length"`
	Boundary                 string              `json:"boundary"`
	NormalizingLength        int                 `json:"normalizing_length"`
	PrimingLength            int                 `json:"priming_length"`
	Novelty                  float64             `json:"novelty"`
	MaxPaddingTrials         int                 `json:"max_padding_trials"`
	PaddingNoveltyGrowthRate float64             `json:"padding_novelty_growth_rate"`
	Counts                   map[string][]uint64 `json:"counts"`
}

// MarshalWeights serializes the model's trained transition table.
func (m *NgramModel) MarshalWeights() ([]byte, error) {
	out := ngramWeightsFile{
		Alphabet:                 string(m.alphabet),
		SequenceLength:           m.sequenceLength,
		Boundary:                 string(m.boundary),
		NormalizingLength:        m.normalizingLength,
		PrimingLength:            m.primingLength,
		Novelty:                  m.novelty,
		MaxPaddingTrials:         m.maxPaddingTrials,
		PaddingNoveltyGrowthRate: m.paddingNoveltyGrowthRate,
		Counts:                   m.counts,
	}
	return json.Marshal(out)
}

// UnmarshalNgramModel reconstructs a trained NgramModel from the bytes
// produced by MarshalWeights.
func UnmarshalNgramModel(data []byte) (*NgramModel, error) {
	var in ngramWeightsFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("lm: failed to parse weights file: %w", err)
	}

	boundary := []rune(in.Boundary)
	if len(boundary) != 1 {
		return nil, fmt.Errorf("lm: weights file boundary must be exactly one character, got %q", in.Boundary)
	}

	model, err := NewNgramModel(NgramConfig{
		Alphabet:                 in.Alphabet,
		SequenceLength:           in.SequenceLength,
		Boundary:                 boundary[0],
		NormalizingLength:        in.NormalizingLength,
		PrimingLength:            in.PrimingLength,
		Novelty:                  in.Novelty,
		MaxPaddingTrials:         in.MaxPaddingTrials,
		PaddingNoveltyGrowthRate: in.PaddingNoveltyGrowthRate,
	})
	if err != nil {
		return nil, err
	}

	if in.Counts != nil {
		model.counts = in.Counts
	}

	return model, nil
}

// String renders the model's alphabet for diagnostic output.
func (m *NgramModel) String() string {
	var b strings.Builder
	b.WriteString("NgramModel(alphabet=")
	b.WriteString(string(m.alphabet))
	b.WriteString(")")
	return b.String()
}

var _ Model = (*NgramModel)(nil)
