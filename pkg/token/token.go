// Package token issues and verifies the HS256 bearer tokens used for
// authentication. Issuance and verification are pure, stateless computations;
// both sides are configured once at startup from the immutable application
// config and share the same symmetric secret, issuer, and audience.
package token

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "identity-service/pkg/errors"
)

// TTL is the lifetime of an issued token.
const TTL = time.Hour

// Claims are the identity claims embedded in a token. The "nombre" key for
// the display name is part of the wire contract consumed by the client-side
// decoder.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"nombre"`
}

// UserID returns the numeric subject of the claims.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Issuer builds signed, time-bounded tokens.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
}

// NewIssuer creates an Issuer. The secret must already have been validated as
// non-empty at startup.
func NewIssuer(secret []byte, issuer, audience string) *Issuer {
	return &Issuer{secret: secret, issuer: issuer, audience: audience}
}

// Issue returns a signed token whose subject is the user id, expiring TTL
// from now.
func (i *Issuer) Issue(userID int64, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: email,
		Name:  name,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verifier validates incoming tokens.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier creates a Verifier bound to the same secret, issuer, and
// audience as the Issuer.
func NewVerifier(secret []byte, issuer, audience string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer, audience: audience}
}

// Verify parses and validates tokenString: signature (HS256 only), issuer,
// audience, and expiry. Every failure collapses to the same generic
// AuthenticationError.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, apperrors.NewAuthenticationError()
	}

	return claims, nil
}
