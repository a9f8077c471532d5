// Package account stores users, their password hashes and their attempt
// counters.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/mind-engage/reasoned/internal/db"
	"github.com/mind-engage/reasoned/internal/quota"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already used")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid account input")
)

const (
	RoleStudent = "student"
	RoleAdmin   = quota.RoleAdmin

	minUsername = 3
	maxUsername = 30
	minPassword = 6
	maxPassword = 72 // bcrypt input limit in bytes
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"user"`
	Role         string `json:"role"`
	IsPaid       bool   `json:"is_paid"`
	AttemptsUsed int    `json:"attempts_used"`
	CreatedAt    int64  `json:"created_at"`
}

// Caller converts u to the quota view.
func (u User) Caller() quota.Caller {
	return quota.Caller{Username: u.Username, Role: u.Role, IsPaid: u.IsPaid, AttemptsUsed: u.AttemptsUsed}
}

type Store struct {
	db   *sql.DB
	cost int
	now  func() time.Time
}

// NewStore uses bcrypt.DefaultCost when cost is zero.
func NewStore(sqlDB *sql.DB, cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{db: sqlDB, cost: cost, now: time.Now}
}

// NormalizeUsername trims and lower-cases.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validate(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsername || n > maxUsername {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsername, maxUsername)
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return fmt.Errorf("%w: username must not contain spaces", ErrInvalidInput)
	}
	if len(password) < minPassword || len(password) > maxPassword {
		return fmt.Errorf("%w: password must be %d-%d bytes", ErrInvalidInput, minPassword, maxPassword)
	}
	return nil
}

// Register creates a student account.
func (s *Store) Register(ctx context.Context, username, password string) (User, error) {
	username = NormalizeUsername(username)
	if err := validate(username, password); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().Unix()
	err = db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, username).Scan(new(int))
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (username, password_hash, role, is_paid, attempts_used, created_at) VALUES ($1,$2,$3,$4,0,$5)`,
			username, string(hash), RoleStudent, false, now)
		return err
	})
	if err != nil {
		return User{}, fmt.Errorf("register %s: %w", username, err)
	}
	return s.Get(ctx, username)
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = NormalizeUsername(username)
	var hash string
	u, err := s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, role, is_paid, attempts_used, created_at, password_hash FROM users WHERE username=$1`, username), &hash)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) Get(ctx context.Context, username string) (User, error) {
	return s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, username, role, is_paid, attempts_used, created_at FROM users WHERE username=$1`,
		NormalizeUsername(username)))
}

// Caller loads the quota view of username.
func (s *Store) Caller(ctx context.Context, username string) (quota.Caller, error) {
	u, err := s.Get(ctx, username)
	if err != nil {
		return quota.Caller{}, err
	}
	return u.Caller(), nil
}

// IncrementAttempts adds one attempt only while the counter is below limit.
func (s *Store) IncrementAttempts(ctx context.Context, username string, limit int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET attempts_used = attempts_used + 1 WHERE username=$1 AND attempts_used < $2`,
		NormalizeUsername(username), limit)
	if err != nil {
		return fmt.Errorf("increment attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment attempts: %w", err)
	}
	if n == 1 {
		return nil
	}
	if _, err := s.Get(ctx, username); err != nil {
		return err
	}
	return quota.ErrQuotaExceeded
}

func (s *Store) SetPlan(ctx context.Context, username string, isPaid bool) (User, error) {
	return s.update(ctx, username, `UPDATE users SET is_paid=$1 WHERE username=$2`, isPaid)
}

func (s *Store) ResetAttempts(ctx context.Context, username string) (User, error) {
	return s.update(ctx, username, `UPDATE users SET attempts_used=$1 WHERE username=$2`, 0)
}

// SetRole changes the role of username to student or admin.
func (s *Store) SetRole(ctx context.Context, username, role string) (User, error) {
	if role != RoleStudent && role != RoleAdmin {
		return User{}, fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}
	return s.update(ctx, username, `UPDATE users SET role=$1 WHERE username=$2`, role)
}

func (s *Store) update(ctx context.Context, username, query string, val any) (User, error) {
	username = NormalizeUsername(username)
	res, err := s.db.ExecContext(ctx, query, val, username)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return User{}, err
	} else if n == 0 {
		return User{}, ErrUserNotFound
	}
	return s.Get(ctx, username)
}

func (s *Store) scan(row *sql.Row, extra ...any) (User, error) {
	var u User
	dest := append([]any{&u.ID, &u.Username, &u.Role, &u.IsPaid, &u.AttemptsUsed, &u.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
