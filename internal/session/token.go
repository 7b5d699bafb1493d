package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenParser never validates signatures: the backend owns verification,
// the client only peeks at the expiry claim.
var tokenParser = jwt.NewParser()

// TokenExpiry returns the exp claim of a JWT bearer token. The zero time
// is returned for opaque tokens and tokens without an expiry, which are
// treated as non-expiring on the client side.
func TokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := tokenParser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// TokenExpired reports whether the token carries an exp claim in the past.
// A token the client already knows is dead would only bounce with a 401,
// so it is dropped at load time instead.
func TokenExpired(token string, now time.Time) bool {
	exp := TokenExpiry(token)
	return !exp.IsZero() && exp.Before(now)
}
