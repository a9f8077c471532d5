// Package token mints and reads opaque, self-describing tokens of the form
//
//	base64url(payload) "." base64url(HMAC-SHA256(secret, payload))
//
// where payload is the compact JSON encoding of the caller's value. The
// package authenticates tokens but does not interpret them: expiry and any
// other policy belong to the caller.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedToken   = errors.New("token: malformed")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrCorruptPayload   = errors.New("token: corrupt payload")
)

// IsIntegrityError reports whether err means the token itself could not be
// trusted, as opposed to a policy decision made after reading it.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrCorruptPayload) ||
		errors.Is(err, ErrDecode)
}

// Service combines the codec and a Signer. It is safe for concurrent use.
type Service struct {
	signer *Signer
}

func NewService(signer *Signer) *Service {
	return &Service{signer: signer}
}

// Mint serializes v and returns the signed token. Struct fields are emitted
// in declaration order and map keys sorted, so equal values mint equal
// tokens.
func (s *Service) Mint(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("token: marshal payload: %w", err)
	}
	return Encode(raw) + "." + Encode(s.signer.Sign(raw)), nil
}

// Read verifies tok and unmarshals its payload into v.
func (s *Service) Read(tok string, v any) error {
	encoded, sig, ok := strings.Cut(tok, ".")
	if !ok {
		return ErrMalformedToken
	}
	raw, err := Decode(encoded)
	if err != nil {
		return err
	}
	tag, err := Decode(sig)
	if err != nil {
		return err
	}
	if !s.signer.Verify(raw, tag) {
		return ErrInvalidSignature
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return nil
}
