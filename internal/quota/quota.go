// Package quota enforces the free-tier attempt ceiling.
package quota

import (
	"context"
	"errors"
	"fmt"
)

// ErrQuotaExceeded means a non-exempt caller has used every free attempt.
var ErrQuotaExceeded = errors.New("free attempt limit reached")

// RoleAdmin callers are never metered.
const RoleAdmin = "admin"

// DefaultFreeLimit is the number of free sets per account.
const DefaultFreeLimit = 3

// Caller is the slice of account state the policy needs.
type Caller struct {
	Username     string
	Role         string
	IsPaid       bool
	AttemptsUsed int
}

// Exempt reports whether c bypasses both the check and the increment.
func (c Caller) Exempt() bool {
	return c.Role == RoleAdmin || c.IsPaid
}

// Counter is the durable per-caller attempt counter. IncrementAttempts must
// increment only while the stored value is below limit and return
// ErrQuotaExceeded otherwise, so the compare and the write are one step.
type Counter interface {
	IncrementAttempts(ctx context.Context, username string, limit int) error
}

type Policy struct {
	FreeLimit int
}

// Check fails with ErrQuotaExceeded when c has no free attempts left.
func (p Policy) Check(c Caller) error {
	if c.Exempt() {
		return nil
	}
	if c.AttemptsUsed >= p.FreeLimit {
		return fmt.Errorf("%w: %d of %d used", ErrQuotaExceeded, c.AttemptsUsed, p.FreeLimit)
	}
	return nil
}

// Consume records one attempt for c. Exempt callers are left untouched.
func (p Policy) Consume(ctx context.Context, store Counter, c Caller) error {
	if c.Exempt() {
		return nil
	}
	if err := store.IncrementAttempts(ctx, c.Username, p.FreeLimit); err != nil {
		return fmt.Errorf("consume attempt: %w", err)
	}
	return nil
}

// Remaining is the number of free attempts left, or -1 for exempt callers.
func (p Policy) Remaining(c Caller) int {
	if c.Exempt() {
		return -1
	}
	return max(p.FreeLimit-c.AttemptsUsed, 0)
}
