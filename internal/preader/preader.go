// Package preader reads passphrases, from a terminal when one is attached
// and from stdin otherwise.
package preader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// PassphraseReader reads a single passphrase.
type PassphraseReader interface {
	ReadPassphrase() (string, error)
}

// StdinPassphraseReader prompts on a terminal, falling back to a raw read
// of stdin when none is attached (e.g. under CI, or when the caller pipes
// the passphrase in).
type StdinPassphraseReader struct{}

func (r *StdinPassphraseReader) ReadPassphrase() (string, error) {
	if terminal.IsTerminal(0) {
		if _, err := fmt.Fprint(os.Stderr, "Passphrase: "); err != nil {
			return "", err
		}
		phrase, err := terminal.ReadPassword(0)
		if err != nil {
			return "", fmt.Errorf("failure reading passphrase: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return string(phrase), nil
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", fmt.Errorf("failure reading passphrase from stdin: %w", err)
	}
	return string(data), nil
}

// CachingPassphraseReader wraps an upstream reader with "at most once"
// semantics, deferring the first read until it's actually needed.
type CachingPassphraseReader struct {
	Upstream         PassphraseReader
	cachedPassphrase string
	cached           bool
}

func (r *CachingPassphraseReader) ReadPassphrase() (string, error) {
	if !r.cached {
		cached, err := r.Upstream.ReadPassphrase()
		if err != nil {
			return "", err
		}
		r.cachedPassphrase = cached
		r.cached = true
	}
	return r.cachedPassphrase, nil
}

// readerPassphraseReader reads one newline-delimited line from an arbitrary
// io.Reader, for tests.
type readerPassphraseReader struct {
	source *bufio.Scanner
}

// NewReader wraps r, returning its first line as the passphrase (or "" if r
// is exhausted before producing one).
func NewReader(r io.Reader) PassphraseReader {
	return &readerPassphraseReader{source: bufio.NewScanner(r)}
}

func (r *readerPassphraseReader) ReadPassphrase() (string, error) {
	if r.source.Scan() {
		return r.source.Text(), nil
	}
	if err := r.source.Err(); err != nil {
		return "", err
	}
	return "", nil
}

type constantPassphraseReader struct {
	passphrase string
}

// NewConstant returns a PassphraseReader that always returns passphrase,
// for use in tests.
func NewConstant(passphrase string) PassphraseReader {
	return &constantPassphraseReader{passphrase: passphrase}
}

func (r *constantPassphraseReader) ReadPassphrase() (string, error) {
	return r.passphrase, nil
}

// ErrPassphraseMismatch is returned by ConfirmingPassphraseReader when the
// two prompts disagree.
var ErrPassphraseMismatch = errors.New("preader: passphrase confirmation did not match")

// ConfirmingPassphraseReader prompts twice via Upstream and requires the two
// reads to agree, for the encrypt command's confirm-before-committing flow.
// Each ReadPassphrase call re-prompts; callers that want this confirmed once
// per process should wrap the result in a CachingPassphraseReader.
type ConfirmingPassphraseReader struct {
	Upstream PassphraseReader
	Confirm  PassphraseReader
}

// NewConfirming builds a ConfirmingPassphraseReader whose first and second
// prompt both come from newPrompt(), invoked twice.
func NewConfirming(newPrompt func() PassphraseReader) *ConfirmingPassphraseReader {
	return &ConfirmingPassphraseReader{Upstream: newPrompt(), Confirm: newPrompt()}
}

func (r *ConfirmingPassphraseReader) ReadPassphrase() (string, error) {
	first, err := r.Upstream.ReadPassphrase()
	if err != nil {
		return "", err
	}

	second, err := r.Confirm.ReadPassphrase()
	if err != nil {
		return "", err
	}

	if first != second {
		return "", ErrPassphraseMismatch
	}

	return first, nil
}
