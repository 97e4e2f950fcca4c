package weightcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte(`{"counts":{}}`)

	ciphertext, err := Encrypt("passphrase", plaintext)
	assert.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := Decrypt("passphrase", ciphertext)
	assert.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestDecryptWithWrongPassphraseFails(t *testing.T) {
	ciphertext, err := Encrypt("passphrase", []byte("data"))
	assert.NoError(t, err)

	_, err = Decrypt("wrong", ciphertext)
	assert.Error(t, err)
}

func TestDecryptRejectsTruncatedInput(t *testing.T) {
	_, err := Decrypt("passphrase", []byte{1, 2, 3})
	assert.Error(t, err)
}
