// Package codec implements the reversible obfuscation applied to bearer
// tokens before they reach persistent storage.
//
// This is obfuscation, not cryptography: the shared key ships with the
// client, so the encoding only deters casual inspection of the stored
// record. Nothing here may be relied on for confidentiality against a
// motivated attacker. The codec sits behind a small interface so a real
// secret store can replace it without touching callers.
package codec

import (
	"encoding/base64"
	"errors"
)

var (
	ErrEmptyKey  = errors.New("codec: obfuscation key must not be empty")
	ErrMalformed = errors.New("codec: malformed obfuscated value")
)

// Codec obfuscates strings with a repeating-key XOR stream and encodes the
// result as unpadded base64url, which is safe for any string-valued storage
// medium.
type Codec struct {
	key []byte
}

func New(key string) (*Codec, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Codec{key: []byte(key)}, nil
}

// Encode is deterministic and injective for a fixed key: distinct plaintexts
// XOR to distinct byte streams and base64 is itself injective.
func (c *Codec) Encode(plain string) string {
	return base64.RawURLEncoding.EncodeToString(c.xor([]byte(plain)))
}

// Decode is the exact inverse of Encode. Malformed input yields
// ErrMalformed rather than garbage; callers treat the record as absent.
func (c *Codec) Decode(obfuscated string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(obfuscated)
	if err != nil {
		return "", ErrMalformed
	}
	return string(c.xor(raw)), nil
}

func (c *Codec) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}
