package auth

import (
	"time"

	"github.com/cristalhq/jwt/v5"
)

// tokenExpired reports whether token is a JWT whose exp claim is behind
// now. The signature is not checked; the backend does that. Opaque tokens
// never expire client-side.
func tokenExpired(token string, now time.Time) bool {
	parsed, err := jwt.ParseNoVerify([]byte(token))
	if err != nil {
		return false
	}
	var claims jwt.RegisteredClaims
	if err := parsed.DecodeClaims(&claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.IsValidExpiresAt(now)
}
