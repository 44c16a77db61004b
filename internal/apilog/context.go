package apilog

import (
	"context"
	"strings"
)

type ctxKey int

const (
	testKey ctxKey = iota
	callerKey
)

// notAvailable is written when a request carries no test or caller identity.
const notAvailable = "N/A"

// WithTest tags ctx with the name of the test issuing requests.
func WithTest(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, testKey, strings.TrimSpace(name))
}

// TestName returns the test name stored by WithTest, or "".
func TestName(ctx context.Context) string {
	return stringValue(ctx, testKey)
}

// WithCaller tags ctx with the operation that issues the next request.
func WithCaller(ctx context.Context, fn string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey, strings.TrimSpace(fn))
}

// Caller returns the operation name stored by WithCaller, or "".
func Caller(ctx context.Context) string {
	return stringValue(ctx, callerKey)
}

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
