package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Token is a bearer credential together with the expiry carried in its
// signed claim set. Expiry is authoritative: a token past its exp is
// dead even if no server has said so yet.
type Token struct {
	Value     string `json:"token"`
	ExpiresAt int64  `json:"exp"` // epoch seconds
}

// Expired reports whether the token is unusable at the given time.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.Unix()
}

// ExpiredWithin reports whether the token expires within skew of the
// given time. A zero skew is a plain expiry check.
func (t Token) ExpiredWithin(now time.Time, skew time.Duration) bool {
	return t.Expired(now.Add(skew))
}

// Parse extracts the subject and expiry claims from a raw JWT without
// verifying its signature. The client holds no verification key; it
// only needs the claims the server minted for it, and the server
// re-verifies every token it receives anyway.
func Parse(rawToken string) (Token, string, error) {
	parsedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return Token{}, "", errors.Wrap(err, "[token.Parse] ParseUnverified")
	}

	claims, ok := parsedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return Token{}, "", errors.New("[token.Parse] error extracting claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return Token{}, "", errors.New("[token.Parse] token missing exp claim")
	}
	sub, _ := claims["sub"].(string)

	return Token{Value: rawToken, ExpiresAt: int64(exp)}, sub, nil
}
