package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
)

// TagSize is the length in bytes of an authentication tag.
const TagSize = sha256.Size

// ErrEmptyKey is a configuration error: a signer needs a non-empty secret.
var ErrEmptyKey = errors.New("token: signing key is empty")

// Signer computes HMAC-SHA256 tags with a process-wide secret.
type Signer struct{ key []byte }

func NewSigner(key []byte) (*Signer, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Signer{key: k}, nil
}

// Sign returns the tag for payload.
func (s *Signer) Sign(payload []byte) []byte {
	m := hmac.New(sha256.New, s.key)
	m.Write(payload)
	return m.Sum(nil)
}

// Verify reports whether tag authenticates payload. The comparison runs in
// constant time with respect to the tag contents.
func (s *Signer) Verify(payload, tag []byte) bool {
	return hmac.Equal(s.Sign(payload), tag)
}
