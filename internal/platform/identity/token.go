// Package identity reads claims from access tokens issued by the external
// identity provider.
//
// Tokens are never verified here: the Lingo API is the authority that
// accepts or rejects them. The web service only peeks at the expiry so it
// can sign a browser out before the API starts rejecting every call.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of token claims the web service reads.
type Claims struct {
	Subject   string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// HasExpiry reports whether the token declared an exp claim.
func (c Claims) HasExpiry() bool {
	return !c.ExpiresAt.IsZero()
}

// ErrOpaqueToken is returned for tokens that are not JWTs.
var ErrOpaqueToken = errors.New("token is not a jwt")

type tokenClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}

// Inspect decodes token claims without verifying the signature.
func Inspect(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" || strings.Count(token, ".") != 2 {
		return Claims{}, ErrOpaqueToken
	}
	var parsed tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &parsed); err != nil {
		return Claims{}, errors.Join(ErrOpaqueToken, err)
	}
	claims := Claims{
		Subject: strings.TrimSpace(parsed.Subject),
		Name:    firstNonBlank(parsed.Name, parsed.PreferredUsername),
		Email:   strings.TrimSpace(parsed.Email),
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return claims, nil
}

// Expired reports whether token is a JWT whose exp is at or before now.
// Opaque tokens and JWTs without exp are treated as live.
func Expired(token string, now time.Time) bool {
	claims, err := Inspect(token)
	if err != nil || !claims.HasExpiry() {
		return false
	}
	return !now.Before(claims.ExpiresAt)
}

// DisplayName returns the best human-readable name carried by token, or an
// empty string when none is present.
func DisplayName(token string) string {
	claims, err := Inspect(token)
	if err != nil {
		return ""
	}
	return firstNonBlank(claims.Name, claims.Email, claims.Subject)
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}
