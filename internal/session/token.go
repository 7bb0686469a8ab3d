package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the access token carries an exp claim in the
// past. The signature is not verified; this is a diagnostic for logging, not
// an authorization decision — the backend remains the authority. Tokens that
// are not JWTs or carry no exp claim are treated as not expired.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
