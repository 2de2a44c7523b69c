// Package auth issues and verifies the signed session tokens that back
// every authenticated request. Tokens are stateless HS256 JWTs: the
// server keeps no session table, so verification needs only the signing
// secret. The trade-off is that a token cannot be revoked before its
// expiry; logout simply discards the client's copy.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures are reported as one of these sentinel errors so
// the gate can surface the specific rejection reason.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Issue builds and signs an HS256 session token for a user. The token
// carries the subject (sub), issued-at (iat) and expiration (exp)
// claims; ttlDays controls how long the session stays valid. The
// signing secret is process-wide configuration loaded once at startup.
func Issue(secret string, userID uint64, ttlDays int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(ttlDays) * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify checks the signature and expiry of a raw token string and
// returns the embedded subject user ID. It distinguishes three failure
// modes: ErrTokenMissing when raw is empty, ErrTokenExpired when the
// claims validated but the token is past its exp, and ErrTokenInvalid
// for everything else (bad signature, wrong algorithm, malformed or
// missing claims).
func Verify(secret, raw string) (uint64, error) {
	if raw == "" {
		return 0, ErrTokenMissing
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !tok.Valid {
		return 0, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	// Numeric JSON claims decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrTokenInvalid
	}
	return uint64(sub), nil
}
