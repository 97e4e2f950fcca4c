package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validJSON = `{
	"model": {
		"alphabet": "012",
		"nodes": 128,
		"sequence_length": 0,
		"boundary": "0",
		"weights_file": "weights.json"
	},
	"encoding": {
		"normalizing_length": 0,
		"priming_length": 0,
		"max_padding_trials": 1000,
		"padding_novelty_growth_rate": 1.01,
		"novelty": 0.4
	},
	"training": {
		"validation_split": 0.1,
		"batch_size": 32,
		"epochs": 1
	}
}`

func writeTempConfig(t *testing.T, contents string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempConfig(t, validJSON)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "012", cfg.Model.Alphabet)
	assert.Equal(t, byte('0'), cfg.Model.Boundary[0])
	assert.True(t, filepath.IsAbs(cfg.Model.WeightsFile))
	assert.Equal(t, filepath.Join(filepath.Dir(path), "weights.json"), cfg.Model.WeightsFile)
}

func TestLoadRejectsBoundaryNotInAlphabet(t *testing.T) {
	path := writeTempConfig(t, `{
		"model": {"alphabet": "12", "nodes": 1, "sequence_length": 0, "boundary": "0", "weights_file": "w"},
		"encoding": {"normalizing_length": 0, "priming_length": 0, "max_padding_trials": 1, "padding_novelty_growth_rate": 1.01, "novelty": 0.4},
		"training": {"validation_split": 0.1, "batch_size": 1, "epochs": 1}
	}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingAlphabet(t *testing.T) {
	path := writeTempConfig(t, `{"model": {"boundary": "0"}, "encoding": {"max_padding_trials": 1, "padding_novelty_growth_rate": 1.01, "novelty": 0.4}, "training": {}}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMismatchedTranslateLengths(t *testing.T) {
	path := writeTempConfig(t, `{
		"model": {"alphabet": "012", "nodes": 1, "sequence_length": 0, "boundary": "0", "weights_file": "w"},
		"encoding": {"normalizing_length": 0, "priming_length": 0, "max_padding_trials": 1, "padding_novelty_growth_rate": 1.01, "novelty": 0.4},
		"training": {"validation_split": 0.1, "batch_size": 1, "epochs": 1},
		"transformations": {"translate": ["ab", "x"]}
	}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAppliesEncodingDefaults(t *testing.T) {
	path := writeTempConfig(t, `{
		"model": {"alphabet": "012", "nodes": 1, "sequence_length": 0, "boundary": "0", "weights_file": "w"},
		"encoding": {"normalizing_length": 0, "priming_length": 0},
		"training": {}
	}`)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, defaultNovelty, cfg.Encoding.Novelty)
	assert.Equal(t, defaultMaxPaddingTrials, cfg.Encoding.MaxPaddingTrials)
	assert.Equal(t, defaultPaddingNoveltyGrowthRate, cfg.Encoding.PaddingNoveltyGrowthRate)
}

func TestSortedAlphabetAndNgramConfig(t *testing.T) {
	path := writeTempConfig(t, validJSON)
	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, []rune{'0', '1', '2'}, cfg.SortedAlphabet())

	nc := cfg.NgramConfig()
	assert.Equal(t, "012", nc.Alphabet)
	assert.Equal(t, 0.4, nc.Novelty)
}
