package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSumsToOne(t *testing.T) {
	p := []float64{0.1, 0.2, 0.3, 0.4}
	out := Normalize(p, 0.4)

	var sum float64
	for _, v := range out {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestNormalizeUniformIsUnchangedByTemperature(t *testing.T) {
	p := []float64{0.25, 0.25, 0.25, 0.25}
	out := Normalize(p, 0.7)
	for _, v := range out {
		assert.InDelta(t, 0.25, v, 1e-9)
	}
}

func TestNormalizeLowNoveltyConcentratesOnArgmax(t *testing.T) {
	p := []float64{0.1, 0.6, 0.3}
	out := Normalize(p, 0.01)
	assert.Greater(t, out[1], 0.99)
}

func TestScaleSumsExactlyToTotal(t *testing.T) {
	p := []float64{0.1, 0.2, 0.3, 0.4}
	out := Scale(p, 1<<32, 1)

	var sum uint64
	for _, w := range out {
		assert.GreaterOrEqual(t, w, uint32(1))
		sum += uint64(w)
	}
	assert.EqualValues(t, uint64(1<<32), sum)
}

func TestScaleEveryEntryAtLeastFloor(t *testing.T) {
	p := []float64{0.999, 0.0003, 0.0003, 0.0004}
	out := Scale(p, 100, 1)
	for _, w := range out {
		assert.GreaterOrEqual(t, w, uint32(1))
	}
}

func TestScaleSmallTotal(t *testing.T) {
	p := []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	out := Scale(p, 3, 1)

	var sum uint64
	for _, w := range out {
		sum += uint64(w)
	}
	assert.EqualValues(t, uint64(3), sum)
}
