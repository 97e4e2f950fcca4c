// Package cipherglue composes the codec with AES in CFB streaming mode.
//
// This implements NON-AUTHENTICATED encryption. That is deliberate: CFB
// mode means any byte string of any multiple-of-4 length decrypts to *some*
// byte string of the same length, and a wrong key yields uniformly
// random-looking weights that still decode to a plausible model-generated
// character sequence rather than an error. That is the construction's
// deniability property; it is not a flaw to be fixed by adding a MAC.
package cipherglue

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/codec"
	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/rng"
)

// DeriveKey hashes a passphrase down to a 32-byte AES-256 key.
func DeriveKey(passphrase string) [32]byte {
	return sha256.Sum256([]byte(passphrase))
}

// Encrypt encodes plaintext through model, then encrypts the result under
// AES-CFB with a fresh random IV of the cipher's block size. The wire format
// is IV ‖ ciphertext.
func Encrypt(model lm.Model, passphrase string, plaintext string) ([]byte, error) {
	encoded, err := codec.Encode(model, plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("cipherglue: encode failed: %w", err)
	}

	iv, err := rng.Bytes(aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("cipherglue: failed to generate iv: %w", err)
	}

	stream, err := newCFBEncrypter(passphrase, iv)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(encoded))
	stream.XORKeyStream(ciphertext, encoded)

	out := make([]byte, 0, len(iv)+len(ciphertext))
	out = append(out, iv...)
	out = append(out, ciphertext...)
	return out, nil
}

// Decrypt reverses Encrypt. Under a wrong passphrase this never returns an
// error on that account alone: it recovers a decoy plaintext.
func Decrypt(model lm.Model, passphrase string, ciphertext []byte) (string, error) {
	if len(ciphertext) < aes.BlockSize {
		return "", fmt.Errorf("cipherglue: ciphertext shorter than one block")
	}

	iv := ciphertext[:aes.BlockSize]
	body := ciphertext[aes.BlockSize:]

	stream, err := newCFBDecrypter(passphrase, iv)
	if err != nil {
		return "", err
	}

	plain := make([]byte, len(body))
	stream.XORKeyStream(plain, body)

	decoded, err := codec.Decode(model, plain)
	if err != nil {
		return "", fmt.Errorf("cipherglue: decode failed: %w", err)
	}

	return decoded, nil
}

func newCFBEncrypter(passphrase string, iv []byte) (cipher.Stream, error) {
	block, err := newBlock(passphrase)
	if err != nil {
		return nil, err
	}
	return cipher.NewCFBEncrypter(block, iv), nil
}

func newCFBDecrypter(passphrase string, iv []byte) (cipher.Stream, error) {
	block, err := newBlock(passphrase)
	if err != nil {
		return nil, err
	}
	return cipher.NewCFBDecrypter(block, iv), nil
}

func newBlock(passphrase string) (cipher.Block, error) {
	key := DeriveKey(passphrase)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("cipherglue: failed to construct cipher: %w", err)
	}
	return block, nil
}
