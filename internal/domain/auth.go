package domain

// Identity is the authenticated caller resolved from a bearer token. User
// records live outside this system; the id is opaque.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// TokenVerifier verifies a token and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
