// Package config loads and validates the JSON configuration file that
// describes a model's shape and the encoding parameters derived from it,
// mirroring original_source/src/config.py's Config/load_config.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stevekrenzel/modeled-encryption/internal/lm"
)

// ModelConfig describes the composition of the language model.
type ModelConfig struct {
	Alphabet       string `json:"alphabet"`
	Nodes          int    `json:"nodes"`
	SequenceLength int    `json:"sequence_length"`
	Boundary       string `json:"boundary"`
	WeightsFile    string `json:"weights_file"`

	// WeightsPassphrase, if set, encrypts the weights file at rest under
	// a scrypt-stretched key (supplemented feature; absent from the
	// reference implementation, which stores weights unencrypted).
	WeightsPassphrase string `json:"weights_passphrase,omitempty"`
}

// EncodingConfig carries the parameters governing how characters are
// converted to and from weights.
type EncodingConfig struct {
	NormalizingLength        int     `json:"normalizing_length"`
	PrimingLength            int     `json:"priming_length"`
	MaxPaddingTrials          int     `json:"max_padding_trials"`
	PaddingNoveltyGrowthRate  float64 `json:"padding_novelty_growth_rate"`
	Novelty                   float64 `json:"novelty"`
}

// TrainingConfig carries the parameters governing a training run.
type TrainingConfig struct {
	ValidationSplit float64 `json:"validation_split"`
	BatchSize       int     `json:"batch_size"`
	Epochs          int     `json:"epochs"`
}

// TransformationsConfig optionally describes input normalization applied
// before text reaches the model: translation runs before substitutions.
type TransformationsConfig struct {
	// Translate is a two-element array [from, to] of equal-length strings;
	// each character of From is replaced by the corresponding character of To.
	Translate *[2]string `json:"translate,omitempty"`

	// Substitutions is an ordered list of [pattern, replacement] regex pairs.
	Substitutions [][2]string `json:"substitutions,omitempty"`
}

// Config is the fully parsed and validated configuration for a model.
type Config struct {
	Model           ModelConfig             `json:"model"`
	Encoding        EncodingConfig          `json:"encoding"`
	Training        TrainingConfig          `json:"training"`
	Transformations *TransformationsConfig  `json:"transformations,omitempty"`
}

// ValidationError is returned for any structurally or semantically invalid
// configuration.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Load reads and validates a JSON configuration file. The model's
// weights_file path, if relative, is resolved relative to the config file's
// own directory, matching load_config's normpath(join(dirname(...))) behavior.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if cfg.Model.WeightsFile != "" && !filepath.IsAbs(cfg.Model.WeightsFile) {
		dir := filepath.Dir(path)
		cfg.Model.WeightsFile = filepath.Clean(filepath.Join(dir, cfg.Model.WeightsFile))
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default encoding parameters applied when a config omits them, matching
// the reference implementation's EncodingConfig field defaults.
const (
	defaultNovelty                  = 0.4
	defaultMaxPaddingTrials         = 1000
	defaultPaddingNoveltyGrowthRate = 1.01
)

// applyDefaults fills in the encoding parameters a config is allowed to
// omit. It runs after unmarshaling and before Validate, so a config relying
// entirely on the documented defaults still loads successfully.
func (c *Config) applyDefaults() {
	if c.Encoding.Novelty == 0 {
		c.Encoding.Novelty = defaultNovelty
	}
	if c.Encoding.MaxPaddingTrials == 0 {
		c.Encoding.MaxPaddingTrials = defaultMaxPaddingTrials
	}
	if c.Encoding.PaddingNoveltyGrowthRate == 0 {
		c.Encoding.PaddingNoveltyGrowthRate = defaultPaddingNoveltyGrowthRate
	}
}

// Validate checks the structural invariants load_config enforces, plus the
// non-negativity/positivity constraints the Python implementation left to
// runtime failures deep inside numpy.
func (c *Config) Validate() error {
	if c.Model.Alphabet == "" {
		return invalid("model.alphabet is required")
	}
	if len([]rune(c.Model.Boundary)) != 1 {
		return invalid("model.boundary must be exactly one character")
	}
	if !strings.ContainsRune(c.Model.Alphabet, []rune(c.Model.Boundary)[0]) {
		return invalid("the boundary must be a character present in the alphabet")
	}
	if c.Model.SequenceLength < 0 {
		return invalid("model.sequence_length must be >= 0")
	}
	if hasDuplicateRunes(c.Model.Alphabet) {
		return invalid("model.alphabet must not contain duplicate characters")
	}

	if c.Encoding.NormalizingLength < 0 {
		return invalid("encoding.normalizing_length must be >= 0")
	}
	if c.Encoding.PrimingLength < 0 {
		return invalid("encoding.priming_length must be >= 0")
	}
	if c.Encoding.MaxPaddingTrials <= 0 {
		return invalid("encoding.max_padding_trials must be > 0")
	}
	if c.Encoding.PaddingNoveltyGrowthRate <= 0 {
		return invalid("encoding.padding_novelty_growth_rate must be > 0")
	}
	if c.Encoding.Novelty <= 0 {
		return invalid("encoding.novelty must be > 0")
	}

	if c.Transformations != nil && c.Transformations.Translate != nil {
		from, to := c.Transformations.Translate[0], c.Transformations.Translate[1]
		if len([]rune(from)) != len([]rune(to)) {
			return invalid("transformations.translate strings must have equal length")
		}
	}

	return nil
}

// SortedAlphabet returns the config's alphabet characters in canonical
// (sorted) order, as required by every lm.Model implementation.
func (c *Config) SortedAlphabet() []rune {
	runes := []rune(c.Model.Alphabet)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// BoundaryRune returns the single boundary character.
func (c *Config) BoundaryRune() rune {
	return []rune(c.Model.Boundary)[0]
}

// NgramConfig translates this configuration into the shape lm.NewNgramModel
// expects, for the train/sample CLI commands.
func (c *Config) NgramConfig() lm.NgramConfig {
	return lm.NgramConfig{
		Alphabet:                 c.Model.Alphabet,
		SequenceLength:           c.Model.SequenceLength,
		Boundary:                 c.BoundaryRune(),
		NormalizingLength:        c.Encoding.NormalizingLength,
		PrimingLength:            c.Encoding.PrimingLength,
		Novelty:                  c.Encoding.Novelty,
		MaxPaddingTrials:         c.Encoding.MaxPaddingTrials,
		PaddingNoveltyGrowthRate: c.Encoding.PaddingNoveltyGrowthRate,
	}
}

func hasDuplicateRunes(s string) bool {
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}
