package cipherglue

import (
	"testing"

	"github.com/stevekrenzel/modeled-encryption/internal/lmmock"
	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	model := lmmock.New("012", '0')

	ciphertext, err := Encrypt(model, "correct horse", "121201")
	assert.NoError(t, err)

	plaintext, err := Decrypt(model, "correct horse", ciphertext)
	assert.NoError(t, err)
	assert.Equal(t, "1212010", plaintext)
}

func TestDecryptWithWrongPassphraseDoesNotError(t *testing.T) {
	model := lmmock.New("012", '0')

	ciphertext, err := Encrypt(model, "correct horse", "121201")
	assert.NoError(t, err)

	decoy, err := Decrypt(model, "wrong passphrase", ciphertext)
	assert.NoError(t, err)
	// The decoy need not equal the original plaintext, and generally won't,
	// but it must still be a well-formed decode under the model's alphabet.
	for _, c := range decoy {
		assert.Contains(t, model.Alphabet(), c)
	}
}

func TestDecryptWithWrongPassphraseUsuallyDiffers(t *testing.T) {
	model := lmmock.New("012", '0')

	ciphertext, err := Encrypt(model, "correct horse", "1212012121201212")
	assert.NoError(t, err)

	decoy, err := Decrypt(model, "wrong passphrase", ciphertext)
	assert.NoError(t, err)
	assert.NotEqual(t, "1212012121201212", decoy)
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	model := lmmock.New("012", '0')
	_, err := Decrypt(model, "passphrase", []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	a := DeriveKey("passphrase")
	b := DeriveKey("passphrase")
	assert.Equal(t, a, b)

	c := DeriveKey("different")
	assert.NotEqual(t, a, c)
}
