package padding

import (
	"testing"

	"github.com/stevekrenzel/modeled-encryption/internal/lmmock"
	"github.com/stretchr/testify/assert"
)

func TestPadRejectsBadBlockSize(t *testing.T) {
	model := lmmock.New("012", '0')
	_, err := Pad(model, nil, []rune{'1'}, 3)
	assert.ErrorIs(t, err, ErrBlockSizeInvalid)

	_, err = Pad(model, nil, []rune{'1'}, 0)
	assert.ErrorIs(t, err, ErrBlockSizeInvalid)
}

func TestPadAppendsBoundaryWhenMissing(t *testing.T) {
	model := lmmock.New("012", '0')
	out, err := Pad(model, nil, []rune{'1', '2'}, 4)
	assert.NoError(t, err)
	assert.Equal(t, rune('1'), out[0])
	assert.Contains(t, out, model.Boundary())
}

func TestPadResultLengthAlignsToBlock(t *testing.T) {
	model := lmmock.New("012", '0')
	blockSize := 16
	blockCapacity := blockSize / 4

	for _, values := range [][]rune{
		{'1'},
		{'1', '2', '0'},
		{'1', '2', '1', '2', '1', '2', '1'},
		{},
	} {
		out, err := Pad(model, nil, values, blockSize)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(out)%blockCapacity)
	}
}

func TestUnpadPadRoundTripRecoversBoundaryTerminatedValues(t *testing.T) {
	model := lmmock.New("012", '0')
	values := []rune{'1', '2', '0'}

	out, err := Pad(model, nil, values, 8)
	assert.NoError(t, err)

	unpadded := Unpad(model, out)
	assert.Equal(t, values, unpadded)
}

func TestUnpadWithNoBoundaryReturnsUnchanged(t *testing.T) {
	model := lmmock.New("012", '0')
	values := []rune{'1', '2', '1', '2'}
	assert.Equal(t, values, Unpad(model, values))
}

func TestUnpadStripsTrailingBoundaryRuns(t *testing.T) {
	model := lmmock.New("012", '0')
	values := []rune{'1', '2', '0', '0', '0'}
	assert.Equal(t, []rune{'1', '2'}, Unpad(model, values))
}
