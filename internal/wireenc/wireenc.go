// Package wireenc provides versioned text armoring for arbitrary byte
// sequences, in either a base64 or a base85 variant.
//
// The armored form is free of whitespace (including newlines). The base64
// variant is also safe to embed in URLs or pass unescaped in a POSIX shell,
// aside from its length; the base85 variant uses the ascii85 alphabet, which
// includes quote, backslash and other shell and URL metacharacters.
package wireenc

import (
	"encoding/ascii85"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Encoding selects the text encoding an armored payload uses.
type Encoding int

const (
	Base64 Encoding = iota
	Base85
)

const (
	magicPrefix  = "menc"
	v1Base64Magic = "menc1b64:"
	v1Base85Magic = "menc1b85:"
)

// Wrap armors body under the given encoding.
func Wrap(body []byte, enc Encoding) (string, error) {
	switch enc {
	case Base64:
		return v1Base64Magic + base64.RawURLEncoding.EncodeToString(body), nil
	case Base85:
		buf := make([]byte, ascii85.MaxEncodedLen(len(body)))
		n := ascii85.Encode(buf, body)
		return v1Base85Magic + string(buf[:n]), nil
	default:
		return "", fmt.Errorf("wireenc: unknown encoding %d", enc)
	}
}

// Unwrap reverses Wrap, auto-detecting the encoding from the armored
// prefix.
//
// Error conditions include:
//
//   - The input is provably truncated.
//   - Decoding failure under the indicated encoding.
//   - Input indicates a future version of the format that is not supported.
//   - Input does not appear to be the result of Wrap.
func Unwrap(armored string) ([]byte, error) {
	if len(armored) < len(magicPrefix) {
		return nil, errors.New("wireenc: input size smaller than magic marker; likely truncated")
	}

	switch {
	case strings.HasPrefix(armored, v1Base64Magic):
		body := strings.TrimPrefix(armored, v1Base64Magic)
		decoded, err := base64.RawURLEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("wireenc: base64 decoding failed: %w", err)
		}
		return decoded, nil

	case strings.HasPrefix(armored, v1Base85Magic):
		body := strings.TrimPrefix(armored, v1Base85Magic)
		// A 'z' character expands to four bytes, so len(body) is not enough.
		decoded := make([]byte, 4*len(body))
		ndst, _, err := ascii85.Decode(decoded, []byte(body), true)
		if err != nil {
			return nil, fmt.Errorf("wireenc: base85 decoding failed: %w", err)
		}
		return decoded[:ndst], nil

	case strings.HasPrefix(armored, magicPrefix):
		return nil, errors.New("wireenc: input claims to be menc data, but not a version we support")

	default:
		return nil, errors.New("wireenc: input unrecognized as menc data")
	}
}
