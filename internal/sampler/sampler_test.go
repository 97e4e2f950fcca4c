package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseChoiceResolvesCumulativeInterval(t *testing.T) {
	choices := []rune{'a', 'b', 'c'}
	weights := []uint32{10, 20, 30}

	c, err := ChooseChoice(0, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'a', c)

	c, err = ChooseChoice(9, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'a', c)

	c, err = ChooseChoice(10, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'b', c)

	c, err = ChooseChoice(29, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'b', c)

	c, err = ChooseChoice(30, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'c', c)

	c, err = ChooseChoice(59, choices, weights)
	assert.NoError(t, err)
	assert.Equal(t, 'c', c)
}

func TestChooseChoiceOutOfRange(t *testing.T) {
	_, err := ChooseChoice(60, []rune{'a', 'b', 'c'}, []uint32{10, 20, 30})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestChooseChoiceLengthMismatch(t *testing.T) {
	_, err := ChooseChoice(0, []rune{'a', 'b'}, []uint32{10})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestChooseWeightWithinInterval(t *testing.T) {
	choices := []rune{'a', 'b', 'c'}
	weights := []uint32{10, 20, 30}

	w, ok, err := ChooseWeight('b', choices, weights)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, w, uint32(10))
	assert.Less(t, w, uint32(30))
}

func TestChooseWeightZeroWeightReturnsNoWeight(t *testing.T) {
	choices := []rune{'a', 'b', 'c'}
	weights := []uint32{10, 0, 30}

	_, ok, err := ChooseWeight('b', choices, weights)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestChooseWeightUnknownChoice(t *testing.T) {
	_, _, err := ChooseWeight('z', []rune{'a', 'b'}, []uint32{10, 20})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestChooseWeightChooseChoiceDuality(t *testing.T) {
	choices := []rune{'a', 'b', 'c', 'd'}
	weights := []uint32{5, 7, 0, 11}

	for _, c := range choices {
		w, ok, err := ChooseWeight(c, choices, weights)
		assert.NoError(t, err)
		if !ok {
			continue
		}
		resolved, err := ChooseChoice(w, choices, weights)
		assert.NoError(t, err)
		assert.Equal(t, c, resolved)
	}
}
