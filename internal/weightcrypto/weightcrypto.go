// Package weightcrypto optionally encrypts a trained model's weights file
// at rest, independent of (and unrelated to) the core codec's deliberately
// unauthenticated cipher glue: a weights file is ordinary data the operator
// wants to protect with a passphrase, not a message requiring a deniable
// wrong-key decoy, so this uses scrypt key stretching plus authenticated
// AES-GCM rather than cipherglue's AES-CFB.
package weightcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/stevekrenzel/modeled-encryption/internal/rng"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 16

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	keyLen  = 32
)

// Encrypt stretches passphrase with scrypt and seals plaintext with
// AES-256-GCM under a fresh random salt and nonce. The wire format is
// salt ‖ nonce ‖ ciphertext.
func Encrypt(passphrase string, plaintext []byte) ([]byte, error) {
	salt, err := rng.Bytes(saltSize)
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: failed to generate salt: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce, err := rng.Bytes(gcm.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, sealed...)
	return out, nil
}

// Decrypt reverses Encrypt. Unlike the core codec, this fails loudly (via
// GCM's authentication tag) on a wrong passphrase or corrupted input.
func Decrypt(passphrase string, data []byte) ([]byte, error) {
	if len(data) < saltSize {
		return nil, fmt.Errorf("weightcrypto: ciphertext shorter than salt")
	}
	salt := data[:saltSize]
	rest := data[saltSize:]

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("weightcrypto: ciphertext shorter than nonce")
	}
	nonce := rest[:gcm.NonceSize()]
	ciphertext := rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: decryption failed (wrong passphrase or corrupted file): %w", err)
	}
	return plaintext, nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: scrypt key derivation failed: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: failed to construct cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("weightcrypto: failed to construct GCM: %w", err)
	}

	return gcm, nil
}
