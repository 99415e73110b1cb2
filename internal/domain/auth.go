package domain

import "time"

// TokenIssuer issues identity tokens. Kept for tooling and tests; in
// production tokens come from the external identity provider.
type TokenIssuer interface {
	Issue(id Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
