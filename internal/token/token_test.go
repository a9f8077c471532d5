package token

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	CorrectIndex int      `json:"correct_index"`
	Rationale    string   `json:"rationale"`
	Concepts     []string `json:"concepts"`
	ExpiresAt    int64    `json:"expires_at"`
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	signer, err := NewSigner([]byte("test-secret"))
	require.NoError(t, err)
	return NewService(signer)
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xff, 0xfe},
		[]byte("hello, world"),
		bytes.Repeat([]byte{0xfb, 0xff}, 33),
	}
	for _, in := range inputs {
		enc := Encode(in)
		assert.NotContains(t, enc, "=")
		assert.NotContains(t, enc, "+")
		assert.NotContains(t, enc, "/")

		out, err := Decode(enc)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(in, out), "round trip of %x", in)
	}
}

func TestCodec_RejectsPadding(t *testing.T) {
	out, err := Decode("aGk")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(out))

	for _, s := range []string{"aGk=", "aGk==", "aGk====", "aGVsbG8="} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrDecode, "input %q", s)
	}
}

func TestCodec_RejectsInvalidAlphabet(t *testing.T) {
	for _, s := range []string{"a+b/", "ab$c", "ab\ncd", "a=bc"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrDecode, "input %q", s)
	}
}

func TestNewSigner_EmptyKey(t *testing.T) {
	_, err := NewSigner(nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
	_, err = NewSigner([]byte{})
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestSigner_Deterministic(t *testing.T) {
	s, err := NewSigner([]byte("k"))
	require.NoError(t, err)
	a := s.Sign([]byte("payload"))
	b := s.Sign([]byte("payload"))
	assert.Len(t, a, TagSize)
	assert.Equal(t, a, b)
	assert.True(t, s.Verify([]byte("payload"), a))
	assert.False(t, s.Verify([]byte("payloae"), a))
	assert.False(t, s.Verify([]byte("payload"), a[:TagSize-1]))
}

func TestService_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	in := testPayload{
		CorrectIndex: 2,
		Rationale:    "x = (30-2)/4 = 7",
		Concepts:     []string{"linear equation", "isolation"},
		ExpiresAt:    1_700_000_000,
	}
	tok, err := svc.Mint(in)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(tok, "."))

	var out testPayload
	require.NoError(t, svc.Read(tok, &out))
	assert.Equal(t, in, out)
}

func TestService_RoundTripMap(t *testing.T) {
	svc := newTestService(t)
	in := map[string]any{"b": "two", "a": float64(1), "c": []any{"x"}}
	tok, err := svc.Mint(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, svc.Read(tok, &out))
	assert.Equal(t, in, out)
}

func TestService_CanonicalEncoding(t *testing.T) {
	svc := newTestService(t)
	p := testPayload{CorrectIndex: 1, Rationale: "r", Concepts: []string{"c"}, ExpiresAt: 5}
	a, err := svc.Mint(p)
	require.NoError(t, err)
	b, err := svc.Mint(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	encoded, _, _ := strings.Cut(a, ".")
	raw, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"correct_index":1,"rationale":"r","concepts":["c"],"expires_at":5}`, string(raw))
}

func TestService_TamperDetection(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Mint(testPayload{CorrectIndex: 3, Rationale: "because", ExpiresAt: 42})
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		for bit := 0; bit < 8; bit++ {
			b := []byte(tok)
			b[i] ^= 1 << bit
			var out testPayload
			err := svc.Read(string(b), &out)
			require.Error(t, err, "flip byte %d bit %d accepted", i, bit)
			assert.True(t, IsIntegrityError(err), "flip byte %d bit %d: %v", i, bit, err)
		}
	}

	body, sig, _ := strings.Cut(tok, ".")
	for _, pad := range []string{"=", "==", "===="} {
		for _, forged := range []string{body + pad + "." + sig, tok + pad} {
			var out testPayload
			err := svc.Read(forged, &out)
			require.Error(t, err, "padded token %q accepted", forged)
			assert.True(t, IsIntegrityError(err), "padded token %q: %v", forged, err)
		}
	}
}

func TestService_WrongKey(t *testing.T) {
	tok, err := newTestService(t).Mint(testPayload{CorrectIndex: 1})
	require.NoError(t, err)

	other, err := NewSigner([]byte("another-secret"))
	require.NoError(t, err)
	var out testPayload
	assert.ErrorIs(t, NewService(other).Read(tok, &out), ErrInvalidSignature)
}

func TestService_Malformed(t *testing.T) {
	svc := newTestService(t)
	var out testPayload
	assert.ErrorIs(t, svc.Read("", &out), ErrMalformedToken)
	assert.ErrorIs(t, svc.Read("no-separator-here", &out), ErrMalformedToken)
}

func TestService_CorruptPayload(t *testing.T) {
	svc := newTestService(t)
	signer, err := NewSigner([]byte("test-secret"))
	require.NoError(t, err)

	raw := []byte(`{"correct_index":`)
	tok := Encode(raw) + "." + Encode(signer.Sign(raw))
	var out testPayload
	assert.ErrorIs(t, svc.Read(tok, &out), ErrCorruptPayload)

	raw, _ = json.Marshal(map[string]any{"correct_index": "two"})
	tok = Encode(raw) + "." + Encode(signer.Sign(raw))
	assert.ErrorIs(t, svc.Read(tok, &out), ErrCorruptPayload)
}
