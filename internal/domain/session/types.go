package session

import (
	"context"
	"time"
)

// IdentityClaim is the claim compared against resource owners.
const IdentityClaim = "email"

// Claims is the caller-supplied payload embedded in a credential.
type Claims map[string]any

// Session is the authorization context derived from a verified credential.
type Session struct {
	ID        string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    Claims
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the verified session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by the access guard.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
