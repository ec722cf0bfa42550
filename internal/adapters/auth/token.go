package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"eventsystem/internal/domain"
)

// Claims are the JWT claims issued by the identity provider. The subject is
// the opaque user id; Roles carries role names such as "admin".
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenVerifier validates HS256 bearer tokens issued with a shared secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier returns a TokenVerifier for the given signing secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the caller's identity.
func (v *TokenVerifier) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return domain.Identity{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("token has no subject")
	}
	id := domain.Identity{UserID: claims.Subject}
	for _, role := range claims.Roles {
		if role == "admin" {
			id.IsAdmin = true
		}
	}
	return id, nil
}
