package auth

import (
	"context"

	"github.com/mind-engage/reasoned/internal/quota"
)

type ctxKey string

const (
	ctxKeySub    ctxKey = "sub"
	ctxKeyCaller ctxKey = "caller"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithCaller(ctx context.Context, c quota.Caller) context.Context {
	return context.WithValue(ctx, ctxKeyCaller, c)
}

func CallerFromContext(ctx context.Context) (quota.Caller, bool) {
	c, ok := ctx.Value(ctxKeyCaller).(quota.Caller)
	return c, ok
}
