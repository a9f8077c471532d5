package exam

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/reasoned/internal/question"
	"github.com/mind-engage/reasoned/internal/token"
)

func mint(t *testing.T, tokens *token.Service, v any) string {
	t.Helper()
	tok, err := tokens.Mint(v)
	require.NoError(t, err)
	return tok
}

func samplePayload(expires int64) Payload {
	return Payload{
		CorrectIndex: 2,
		Rationale:    "Line one\n\nLine two",
		Concepts:     []string{"ratio"},
		Category:     "PM",
		Subject:      question.PM,
		ExpiresAt:    expires,
	}
}

func TestCheckSetScores(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	tok := mint(t, tokens, samplePayload(now.Unix()+60))

	res, err := svc.CheckSet(context.Background(), []Answer{
		{Token: tok, ChosenIndex: 2},
		{Token: tok, ChosenIndex: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Results, 2)

	assert.True(t, res.Results[0].Correct)
	assert.False(t, res.Results[1].Correct)
	assert.Equal(t, 2, res.Results[1].CorrectIndex)
	assert.Equal(t, 0, res.Results[1].ChosenIndex)
	assert.Equal(t, []string{"ratio"}, res.Results[1].Concepts)
	assert.Equal(t, question.PM, res.Results[1].Subject)
}

func TestCheckSetGeneratedSet(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	set, err := svc.GenerateSet(context.Background(), "ana", GenerateRequest{Seed: ptr(int64(1))})
	require.NoError(t, err)

	answers := make([]Answer, len(set.Questions))
	for i, q := range set.Questions {
		var p Payload
		require.NoError(t, tokens.Read(q.Token, &p))
		answers[i] = Answer{Token: q.Token, ChosenIndex: p.CorrectIndex}
	}
	res, err := svc.CheckSet(context.Background(), answers)
	require.NoError(t, err)
	assert.Equal(t, len(answers), res.Score)
}

func TestCheckSetBatchAbortsOnExpired(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	fresh := mint(t, tokens, samplePayload(now.Unix()+60))
	stale := mint(t, tokens, samplePayload(now.Unix()-1))

	res, err := svc.CheckSet(context.Background(), []Answer{
		{Token: fresh, ChosenIndex: 2},
		{Token: stale, ChosenIndex: 2},
		{Token: fresh, ChosenIndex: 2},
	})
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, res.Results)
	assert.Zero(t, res.Score)
}

func TestExpiryIsOrchestratorLevel(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	stale := mint(t, tokens, samplePayload(now.Unix()-1))

	var p Payload
	require.NoError(t, tokens.Read(stale, &p))

	_, err := svc.CheckSet(context.Background(), []Answer{{Token: stale, ChosenIndex: 1}})
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.False(t, token.IsIntegrityError(err))

	edge := mint(t, tokens, samplePayload(now.Unix()))
	_, err = svc.CheckSet(context.Background(), []Answer{{Token: edge, ChosenIndex: 1}})
	assert.NoError(t, err)
}

func TestCheckSetRejectsTampering(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	tok := mint(t, tokens, samplePayload(now.Unix()+60))

	forged := samplePayload(now.Unix() + 60)
	forged.CorrectIndex = 0
	body, _, _ := strings.Cut(mint(t, tokens, forged), ".")
	_, sig, _ := strings.Cut(tok, ".")

	for _, bad := range []string{"", "no-dot", body + "." + sig, tok + "x"} {
		_, err := svc.CheckSet(context.Background(), []Answer{{Token: bad, ChosenIndex: 0}})
		assert.True(t, token.IsIntegrityError(err), "%q: %v", bad, err)
	}
	assert.EqualValues(t, 4, svc.RejectedTokens())
}

func TestCheckSetValidation(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)
	tok := mint(t, tokens, samplePayload(now.Unix()+60))

	_, err := svc.CheckSet(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	for _, idx := range []int{-1, 4} {
		_, err = svc.CheckSet(context.Background(), []Answer{{Token: tok, ChosenIndex: idx}})
		assert.ErrorIs(t, err, ErrValidation)
	}

	many := make([]Answer, 31)
	for i := range many {
		many[i] = Answer{Token: tok}
	}
	_, err = svc.CheckSet(context.Background(), many)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPayloadRequiresKeyAndExpiry(t *testing.T) {
	now := epoch
	svc, _, tokens := newTestService(t, &now)

	for _, raw := range []map[string]any{
		{"rationale": "r", "expires_at": now.Unix() + 60},
		{"correct_index": 1, "rationale": "r"},
		{"correct_index": 9, "expires_at": now.Unix() + 60},
	} {
		tok := mint(t, tokens, raw)
		_, err := svc.CheckSet(context.Background(), []Answer{{Token: tok, ChosenIndex: 0}})
		assert.ErrorIs(t, err, token.ErrCorruptPayload, "%v", raw)
	}
}

func TestPayloadEncodingIsStable(t *testing.T) {
	now := epoch
	_, _, tokens := newTestService(t, &now)
	a := mint(t, tokens, samplePayload(100))
	b := mint(t, tokens, samplePayload(100))
	assert.Equal(t, a, b)

	body, _, _ := strings.Cut(a, ".")
	raw, err := token.Decode(body)
	require.NoError(t, err)
	assert.Equal(t,
		`{"correct_index":2,"rationale":"Line one\n\nLine two","concepts":["ratio"],"category":"PM","subject":"PM","expires_at":100}`,
		string(raw))
}
