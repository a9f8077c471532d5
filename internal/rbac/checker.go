package rbac

import (
	"context"
	"slices"
	"strings"
)

// Checker answers whether a role holds a permission. Grants are either an
// exact permission, a "prefix:*" wildcard or "*".
type Checker struct {
	grants map[string][]string
}

func NewChecker(grants map[string][]string) *Checker {
	if grants == nil {
		grants = RolePermissions
	}
	return &Checker{grants: grants}
}

func (c *Checker) Has(role, perm string) bool {
	return slices.ContainsFunc(c.grants[role], func(g string) bool { return matches(g, perm) })
}

func matches(grant, perm string) bool {
	if grant == "*" || grant == perm {
		return true
	}
	prefix, ok := strings.CutSuffix(grant, "*")
	return ok && strings.HasPrefix(perm, prefix)
}

type roleKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	s, _ := ctx.Value(roleKey{}).(string)
	return s
}
