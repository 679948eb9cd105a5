package session

import "errors"

var (
	// ErrInvalidToken covers every verification failure: malformed, bad signature, expired, revoked.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")

	ErrEmptyClaims   = errors.New("claims are empty")
	ErrReservedClaim = errors.New("claims contain a reserved name")

	// ErrConfig is returned when the signing secret is unusable.
	ErrConfig = errors.New("invalid token service config")
)
