package codec

import (
	"testing"

	"github.com/stevekrenzel/modeled-encryption/internal/lmmock"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	model := lmmock.New("012", '0')

	for _, plaintext := range []string{"", "1", "12", "121212", "2221"} {
		encoded, err := Encode(model, plaintext, 4)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(encoded)%4)

		decoded, err := Decode(model, encoded)
		assert.NoError(t, err)
		assert.Equal(t, plaintext+"0", decoded)
	}
}

func TestEncodeDecodeRoundTripWithSequenceLength(t *testing.T) {
	model := lmmock.New("012", '0', lmmock.WithSequenceLength(3))

	for _, plaintext := range []string{"", "1", "1221"} {
		encoded, err := Encode(model, plaintext, 4)
		assert.NoError(t, err)

		decoded, err := Decode(model, encoded)
		assert.NoError(t, err)
		assert.Equal(t, plaintext+"0", decoded)
	}
}

func TestEncodeDecodeRoundTripWithNormalizingAndPriming(t *testing.T) {
	model := lmmock.New("012", '0',
		lmmock.WithNormalizingLength(2),
		lmmock.WithPrimingLength(3),
	)

	encoded, err := Encode(model, "121", 4)
	assert.NoError(t, err)

	decoded, err := Decode(model, encoded)
	assert.NoError(t, err)
	assert.Equal(t, "1210", decoded)
}

func TestRepeatedEncodeOutputsAreWeightAligned(t *testing.T) {
	model := lmmock.New("012", '0')

	a, err := Encode(model, "1", 4)
	assert.NoError(t, err)
	b, err := Encode(model, "1", 4)
	assert.NoError(t, err)

	// Two encodings of the same plaintext need not be byte-identical: the
	// normalizing/priming prefixes and padding token are freshly randomized
	// every call, so not even their lengths need agree. What both must be is
	// a whole number of 4-byte weights.
	assert.Equal(t, len(a)%4, len(b)%4)
}

func TestEncodeBlockSizeOneSkipsPadding(t *testing.T) {
	model := lmmock.New("012", '0')

	encoded, err := Encode(model, "12", 1)
	assert.NoError(t, err)

	decoded, err := Decode(model, encoded)
	assert.NoError(t, err)
	assert.Equal(t, "12", decoded)
}
