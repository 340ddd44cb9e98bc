package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer mints and validates the service's bearer tokens: compact HS256 JWTs
// whose subject claim is the account ID as a string. Validation is a pure
// function of the token and the signing key; no server-side session state.
type Issuer struct {
	Key []byte
	TTL time.Duration
}

// Issue signs a token for subject with the configured TTL.
func (s Issuer) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.TTL)
}

func (s Issuer) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Key)
}

// Validate verifies signature and expiry and returns the subject claim.
// Every failure mode (structure, algorithm, signature, absent or passed
// expiry, empty subject) collapses to ErrInvalidToken; a token that fails one check is
// never partially trusted because another passed.
func (s Issuer) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Key, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
