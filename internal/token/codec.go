package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is returned when a segment is not valid unpadded base64url.
var ErrDecode = errors.New("token: invalid encoding")

// Strict mode rejects non-zero trailing bits, so every encoded segment has
// exactly one valid spelling.
var codec = base64.RawURLEncoding.Strict()

// Encode returns the URL-safe base64 form of b without padding.
func Encode(b []byte) string {
	return codec.EncodeToString(b)
}

// Decode reverses Encode. The input carries no padding; the pad length is
// implied by the input length and any '=' is rejected.
func Decode(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n=") {
		return nil, ErrDecode
	}
	b, err := codec.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}
