package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/reasoned/internal/account"
	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
	"github.com/mind-engage/reasoned/internal/db"
	"github.com/mind-engage/reasoned/internal/exam"
	"github.com/mind-engage/reasoned/internal/material"
	"github.com/mind-engage/reasoned/internal/question"
	"github.com/mind-engage/reasoned/internal/quota"
	"github.com/mind-engage/reasoned/internal/token"
)

type testServer struct {
	t        *testing.T
	h        http.Handler
	accounts *account.Store
	now      time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	sqlDB, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "api.db"), db.Pool{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	signer, err := token.NewSigner([]byte("question-secret"))
	require.NoError(t, err)

	ts := &testServer{t: t, now: time.Now()}
	ts.accounts = account.NewStore(sqlDB, bcrypt.MinCost)
	materials := material.NewStore(sqlDB)
	require.NoError(t, materials.Replace(ctx, material.Builtin))

	exams := exam.NewService(question.NewDefaultRegistry(), token.NewService(signer), ts.accounts,
		exam.WithClock(func() time.Time { return ts.now }),
		exam.WithFreeLimit(3),
	)
	ts.h = NewRouter(Deps{
		Exams:       exams,
		Accounts:    ts.accounts,
		Materials:   materials,
		Auth:        auth.NewAuthService("session-secret", time.Hour),
		CORSOrigins: []string{"http://localhost:3000"},
		Ready:       sqlDB.PingContext,
	})
	return ts
}

func (ts *testServer) do(method, path, bearer string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) register(name string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/register", "", map[string]string{"username": name, "password": "secret1"})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var out sessionResponse
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	ts.register("Ana")

	rec := ts.do(http.MethodPost, "/api/register", "", map[string]string{"username": "ana", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = ts.do(http.MethodPost, "/api/register", "", map[string]string{"username": "x", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ANA", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = ts.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ANA", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decodeBody[sessionResponse](t, rec)
	assert.Equal(t, "ana", sess.User)

	rec = ts.do(http.MethodGet, "/api/me", sess.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "ana", me["user"])
	assert.EqualValues(t, 0, me["attempts_used"])
	assert.EqualValues(t, 3, me["free_limit"])

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/me", "junk", nil).Code)
}

func TestGenerateCheckExplainFlow(t *testing.T) {
	ts := newTestServer(t)
	bearer := ts.register("ana")

	rec := ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{Subject: "tps_pk", N: 10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	set := decodeBody[exam.SetResponse](t, rec)
	require.Len(t, set.Questions, 10)
	assert.NotContains(t, rec.Body.String(), "correct_index")

	answers := make([]exam.Answer, len(set.Questions))
	for i, q := range set.Questions {
		answers[i] = exam.Answer{Token: q.Token, ChosenIndex: 0}
	}
	rec = ts.do(http.MethodPost, "/api/check_set", bearer, map[string]any{"answers": answers})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[exam.CheckResult](t, rec)
	assert.Equal(t, 10, res.Total)
	require.Len(t, res.Results, 10)
	correct := 0
	for _, it := range res.Results {
		if it.CorrectIndex == 0 {
			correct++
		}
	}
	assert.Equal(t, correct, res.Score)

	rec = ts.do(http.MethodPost, "/api/explain", bearer, exam.ExplainRequest{Token: set.Questions[0].Token, Question: "correct answer?"})
	require.Equal(t, http.StatusOK, rec.Code)
	letter := string("ABCD"[res.Results[0].CorrectIndex])
	assert.Equal(t, fmt.Sprintf("Correct answer: option %s.", letter), decodeBody[exam.ExplainResponse](t, rec).Answer)
}

func TestQuotaAndErrors(t *testing.T) {
	ts := newTestServer(t)
	bearer := ts.register("ana")

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{N: 3}).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{Subject: "ASTROLOGY"}).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{Subject: "FISIKA"}).Code)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{}).Code)
	}
	rec := ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = ts.do(http.MethodPost, "/api/check_set", bearer, map[string]any{"answers": []exam.Answer{{Token: "abc.def"}}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid token", strings.TrimSpace(rec.Body.String()))

	rec = ts.do(http.MethodPost, "/api/check_set", bearer, map[string]any{"answers": []exam.Answer{{Token: "abc.def", ChosenIndex: 7}}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpiredTokenIsGone(t *testing.T) {
	ts := newTestServer(t)
	bearer := ts.register("ana")

	set := decodeBody[exam.SetResponse](t, ts.do(http.MethodPost, "/api/generate_set", bearer, exam.GenerateRequest{}))
	ts.now = ts.now.Add(31 * time.Minute)

	rec := ts.do(http.MethodPost, "/api/check_set", bearer, map[string]any{"answers": []exam.Answer{{Token: set.Questions[0].Token}}})
	assert.Equal(t, http.StatusGone, rec.Code)
	rec = ts.do(http.MethodPost, "/api/explain", bearer, exam.ExplainRequest{Token: set.Questions[0].Token})
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestMaterialsAndTutor(t *testing.T) {
	ts := newTestServer(t)
	bearer := ts.register("ana")

	rec := ts.do(http.MethodGet, "/api/materials?subject=kimia", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]material.Summary](t, rec)
	require.Len(t, list, 2)

	rec = ts.do(http.MethodGet, fmt.Sprintf("/api/material/%d", list[0].ID), bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Stoichiometry", decodeBody[material.Material](t, rec).Chapter)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/material/424242", bearer, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/material/abc", bearer, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/materials", bearer, nil).Code)

	rec = ts.do(http.MethodPost, "/api/tutor_chat", bearer, map[string]any{"chapter_id": list[0].ID, "question": "rumus?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody[map[string]string](t, rec)["answer"], "n = m/Mr")
}

func TestAdminEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()
	student := ts.register("ana")
	admin := ts.register("root")
	_, err := ts.accounts.SetRole(ctx, "root", account.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/admin/users/ana/plan", student, map[string]bool{"is_paid": true}).Code)

	rec := ts.do(http.MethodPost, "/api/admin/users/ana/plan", admin, map[string]bool{"is_paid": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[account.User](t, rec).IsPaid)

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, "/api/admin/users/ghost/plan", admin, map[string]bool{"is_paid": true}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/admin/users/ana/plan", admin, map[string]any{}).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/api/admin/users/root/role", admin, map[string]string{"role": "student"}).Code)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, ts.do(http.MethodPost, "/api/generate_set", student, exam.GenerateRequest{}).Code)
	}
	u, err := ts.accounts.Get(ctx, "ana")
	require.NoError(t, err)
	assert.Zero(t, u.AttemptsUsed)

	require.NoError(t, ts.accounts.IncrementAttempts(ctx, "ana", 3))
	rec = ts.do(http.MethodPost, "/api/admin/users/ana/reset_attempts", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeBody[account.User](t, rec).AttemptsUsed)
}

func TestHealthAndMeta(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/readyz", "", nil).Code)

	rec := ts.do(http.MethodGet, "/api/meta", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	meta := decodeBody[question.Taxonomy](t, rec)
	assert.Contains(t, meta.UTBK, question.TPSPK)
	assert.Equal(t, []question.Subject{question.Ekonomi, question.Geografi, question.Sejarah, question.Sosiologi}, meta.TKA["SOSHUM"])
}

func TestStatusMappingIsDistinct(t *testing.T) {
	errs := map[string]error{
		"validation":   &exam.ValidationError{Field: "n", Msg: "x"},
		"quota":        quota.ErrQuotaExceeded,
		"unknown":      question.ErrUnknownSubject,
		"not_allowed":  exam.ErrSubjectNotAllowed,
		"malformed":    token.ErrMalformedToken,
		"expired":      exam.ErrTokenExpired,
		"category":     exam.ErrUnknownCategory,
		"unauthorized": account.ErrUserNotFound,
	}
	seen := map[int]string{}
	for name, err := range errs {
		status, _ := statusFor(fmt.Errorf("wrapped: %w", err))
		prev, dup := seen[status]
		assert.False(t, dup, "%s and %s share %d", name, prev, status)
		seen[status] = name
	}

	for _, err := range []error{token.ErrMalformedToken, token.ErrInvalidSignature, token.ErrCorruptPayload, token.ErrDecode} {
		status, msg := statusFor(err)
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "invalid token", msg)
	}

	status, _ := statusFor(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
