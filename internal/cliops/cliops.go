// Package cliops implements the stream-level encrypt/decrypt operations
// behind the menc command-line entrypoint's encrypt and decrypt commands: read a
// passphrase, run it and a model through cipherglue, and write the
// base-encoded (or recovered) result to an output stream, per spec.md §6's
// stdin/stdout CLI surface.
package cliops

import (
	"fmt"
	"io"

	"github.com/stevekrenzel/modeled-encryption/internal/cipherglue"
	"github.com/stevekrenzel/modeled-encryption/internal/lm"
	"github.com/stevekrenzel/modeled-encryption/internal/preader"
	"github.com/stevekrenzel/modeled-encryption/internal/wireenc"
)

// Encrypt reads plaintext from r, encrypts it under model and a passphrase
// obtained from pr, armors the result per enc, and writes the armored text
// to w.
func Encrypt(model lm.Model, r io.Reader, w io.Writer, pr preader.PassphraseReader, enc wireenc.Encoding) error {
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cliops: failed to read plaintext: %w", err)
	}

	passphrase, err := pr.ReadPassphrase()
	if err != nil {
		return err
	}

	ciphertext, err := cipherglue.Encrypt(model, passphrase, string(plaintext))
	if err != nil {
		return fmt.Errorf("cliops: encryption failed: %w", err)
	}

	armored, err := wireenc.Wrap(ciphertext, enc)
	if err != nil {
		return fmt.Errorf("cliops: armoring failed: %w", err)
	}

	if _, err := io.WriteString(w, armored); err != nil {
		return fmt.Errorf("cliops: failed to write output: %w", err)
	}

	return nil
}

// Decrypt reverses Encrypt: it reads armored ciphertext from r, decrypts it
// under model and a passphrase obtained from pr, and writes the recovered
// plaintext to w. A wrong passphrase produces a plausible decoy rather than
// an error.
func Decrypt(model lm.Model, r io.Reader, w io.Writer, pr preader.PassphraseReader) error {
	armored, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cliops: failed to read ciphertext: %w", err)
	}

	passphrase, err := pr.ReadPassphrase()
	if err != nil {
		return err
	}

	ciphertext, err := wireenc.Unwrap(string(armored))
	if err != nil {
		return fmt.Errorf("cliops: failed to unarmor: %w", err)
	}

	plaintext, err := cipherglue.Decrypt(model, passphrase, ciphertext)
	if err != nil {
		return fmt.Errorf("cliops: decryption failed: %w", err)
	}

	if _, err := io.WriteString(w, plaintext); err != nil {
		return fmt.Errorf("cliops: failed to write output: %w", err)
	}

	return nil
}
