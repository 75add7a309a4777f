package middleware

import (
	"context"

	"todo-guard/backend/app/policy"
)

type ctxKey int

const (
	identityKey ctxKey = iota + 1
	requestIDKey
)

func WithIdentity(ctx context.Context, id *policy.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the caller put there by RequireAuth, or nil.
func GetIdentity(ctx context.Context) *policy.Identity {
	if v := ctx.Value(identityKey); v != nil {
		if id, ok := v.(*policy.Identity); ok {
			return id
		}
	}
	return nil
}

func RequestID(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}
