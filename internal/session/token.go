package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the access token carries an exp claim
// in the past. The client holds no verification keys, so the token is
// parsed unverified; the server remains the authority and will reject
// a forged token anyway. A token without an exp claim, or one that is
// not a JWT at all, is treated as still usable.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
