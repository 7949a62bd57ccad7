// Package token turns a (name, recipient) pair into a URL-safe string and back.
//
// Tokens are obfuscated, not signed: anyone holding one can decode it, and a
// hand-edited token that still decodes to two non-empty parts is accepted.
// Names containing Delimiter do not round-trip; no escaping is attempted.
package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

// Delimiter separates the giver from the recipient inside a token.
const Delimiter = "|"

var ErrInvalid = errors.New("invalid or corrupted token")

type Pair struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
}

var (
	toURLSafe   = strings.NewReplacer("+", "-", "/", "_")
	fromURLSafe = strings.NewReplacer("-", "+", "_", "/")
)

func Encode(name, assignedTo string) string {
	raw := base64.StdEncoding.EncodeToString([]byte(name + Delimiter + assignedTo))
	return strings.TrimRight(toURLSafe.Replace(raw), "=")
}

// Decode never panics; every malformed input yields ErrInvalid.
func Decode(tok string) (Pair, error) {
	if tok == "" {
		return Pair{}, ErrInvalid
	}

	b64 := fromURLSafe.Replace(tok)
	if rem := len(b64) % 4; rem != 0 {
		b64 += strings.Repeat("=", 4-rem)
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || !utf8.Valid(data) {
		return Pair{}, ErrInvalid
	}

	parts := strings.Split(string(data), Delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, ErrInvalid
	}
	return Pair{Name: parts[0], AssignedTo: parts[1]}, nil
}
