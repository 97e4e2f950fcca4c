package wireenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func preserve(t *testing.T, s string, enc Encoding) {
	wrapped, err := Wrap([]byte(s), enc)
	assert.NoError(t, err)

	b, err := Unwrap(wrapped)
	assert.NoError(t, err)
	assert.Equal(t, s, string(b))
}

func TestPreservationBase64(t *testing.T) {
	preserve(t, "", Base64)
	preserve(t, "test", Base64)
	preserve(t, "a longer payload with \x00 bytes \xff in it", Base64)
}

func TestPreservationBase85(t *testing.T) {
	preserve(t, "", Base85)
	preserve(t, "test", Base85)
	preserve(t, "a longer payload with \x00 bytes \xff in it", Base85)
}

func TestTruncated(t *testing.T) {
	b, err := Unwrap("")
	assert.Nil(t, b)
	assert.Error(t, err)
}

func TestWrongVersion(t *testing.T) {
	b, err := Unwrap("menc999999:...")
	assert.Nil(t, b)
	assert.Error(t, err)
}

func TestUnrecognized(t *testing.T) {
	b, err := Unwrap("not menc data at all")
	assert.Nil(t, b)
	assert.Error(t, err)
}
