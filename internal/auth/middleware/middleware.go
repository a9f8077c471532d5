package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mind-engage/reasoned/internal/account"
	"github.com/mind-engage/reasoned/internal/quota"
	"github.com/mind-engage/reasoned/internal/rbac"
)

const issuer = "reasoned"

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

type AuthService struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AuthService{hmac: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims mirror the account at issue time. Handlers rely on the stored
// account, not on these values.
type Claims struct {
	Role   string `json:"role"`
	IsPaid bool   `json:"is_paid"`
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(u account.User) (string, error) {
	now := a.now()
	claims := &Claims{
		Role:   u.Role,
		IsPaid: u.IsPaid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || c.Subject == "" {
		return nil, errors.New("auth: invalid claims")
	}
	return c, nil
}

// JWTMiddleware verifies the bearer session and stores its subject.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			claims, err := a.Parse(strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), account.NormalizeUsername(claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerLookup resolves a session subject to current account state.
type CallerLookup interface {
	Caller(ctx context.Context, username string) (quota.Caller, error)
}

// AttachCaller loads the caller from storage on every request and stores it
// together with its role. Must run after JWTMiddleware.
func AttachCaller(users CallerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sub := SubjectFromContext(ctx)
			if sub == "" {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			c, err := users.Caller(ctx, sub)
			switch {
			case errors.Is(err, account.ErrUserNotFound):
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			case err != nil:
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}
			ctx = rbac.WithRole(WithCaller(ctx, c), c.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
