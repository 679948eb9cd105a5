package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/astro-web3/volunteer-management/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	DefaultTTL      = 365 * 24 * time.Hour
	MinSecretLength = 32
)

//nolint:gochecknoglobals // read-only lookup table
var reservedClaims = []string{"exp", "iat", "nbf", "jti"}

type Service interface {
	// Issue signs claims into a credential valid for the configured TTL.
	Issue(ctx context.Context, claims Claims) (string, *Session, error)
	// Verify checks signature, expiry and revocation; any failure wraps ErrInvalidToken.
	Verify(ctx context.Context, token string) (*Session, error)
	// Revoke invalidates token server-side when a revocation store is configured.
	// It never fails: an unknown or already invalid token is a no-op.
	Revoke(ctx context.Context, token string)
}

// RevocationStore remembers logged-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Option func(*service)

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

func WithRevocationStore(store RevocationStore) Option {
	return func(s *service) {
		s.revocations = store
	}
}

type service struct {
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
	revocations RevocationStore
}

func NewService(secret string, ttl time.Duration, opts ...Option) (Service, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes", ErrConfig, MinSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Issue(_ context.Context, claims Claims) (string, *Session, error) {
	if len(claims) == 0 {
		return "", nil, ErrEmptyClaims
	}
	for _, name := range reservedClaims {
		if _, ok := claims[name]; ok {
			return "", nil, fmt.Errorf("%w: %q", ErrReservedClaim, name)
		}
	}

	now := time.Unix(s.now().Unix(), 0)
	expiresAt := now.Add(s.ttl)

	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	mapClaims := make(jwt.MapClaims, len(claims)+len(reservedClaims))
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["iat"] = now.Unix()
	mapClaims["exp"] = expiresAt.Unix()
	mapClaims["jti"] = id.String()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	email, _ := claims[IdentityClaim].(string)

	return token, &Session{
		ID:        id.String(),
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		Claims:    copyClaims(claims),
	}, nil
}

func (s *service) Verify(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.Parse(
		token,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sess, err := sessionFromClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if s.revocations != nil && sess.ID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, sess.ID)
		if err != nil {
			logger.WarnContext(ctx, "failed to check token revocation, accepting verified token",
				slog.String("token_id", sess.ID),
				slog.String("error", err.Error()),
			)
		} else if revoked {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenRevoked)
		}
	}

	return sess, nil
}

func (s *service) Revoke(ctx context.Context, token string) {
	if s.revocations == nil || token == "" {
		return
	}

	sess, err := s.Verify(ctx, token)
	if err != nil {
		logger.DebugContext(ctx, "revoke skipped for invalid token", slog.String("error", err.Error()))
		return
	}
	if sess.ID == "" {
		return
	}

	if err := s.revocations.Revoke(ctx, sess.ID, sess.ExpiresAt); err != nil {
		logger.WarnContext(ctx, "failed to store token revocation",
			slog.String("token_id", sess.ID),
			slog.String("error", err.Error()),
		)
	}
}

func sessionFromClaims(mapClaims jwt.MapClaims) (*Session, error) {
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}

	sess := &Session{
		ExpiresAt: exp.Time,
		Claims:    make(Claims, len(mapClaims)),
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		sess.IssuedAt = iat.Time
	}
	sess.ID, _ = mapClaims["jti"].(string)
	sess.Email, _ = mapClaims[IdentityClaim].(string)

	for k, v := range mapClaims {
		if isReserved(k) {
			continue
		}
		sess.Claims[k] = v
	}
	return sess, nil
}

func isReserved(name string) bool {
	for _, r := range reservedClaims {
		if r == name {
			return true
		}
	}
	return false
}

func copyClaims(claims Claims) Claims {
	out := make(Claims, len(claims))
	for k, v := range claims {
		out[k] = v
	}
	return out
}
