package utils // package utils provides helper functions for password hashing and session tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any unusable session token: bad
// signature, malformed string, unexpected algorithm or natural expiry.
// Callers get one generic rejection; the reason is not distinguished so a
// client cannot probe which check failed.
var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims are the identity claims carried by a session token. The
// display name is a copy taken at issuance and may go stale relative to
// later profile edits; tokens are not re-issued on edit.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
}

// UserID decodes the subject claim back into an account id.
func (c SessionClaims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// SessionToken is a signed JWT plus its expiry. Tokens are pure bearer
// credentials: nothing is stored server-side and there is no revocation, so
// a token stays valid until Exp even after a password change.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// NewSessionToken builds and signs an HS256 JWT asserting the account's
// identity for ttl from now. Claims: sub (account id), name, iat, exp.
func NewSessionToken(secret string, userID uint64, name string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name: name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies signature and expiry and returns the decoded
// claims. Verification is a pure function of the token string, the secret
// and the current time.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
	var claims SessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC, including "none".
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}
