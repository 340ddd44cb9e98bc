package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	issuer := Issuer{Key: []byte("super-secret"), TTL: time.Hour}

	tok, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := issuer.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subject)
}

func TestValidate_Expired(t *testing.T) {
	issuer := Issuer{Key: []byte("secret"), TTL: time.Hour}

	tok, err := issuer.IssueWithTTL("u1", -1*time.Second)
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongKey(t *testing.T) {
	right := Issuer{Key: []byte("right-secret"), TTL: time.Hour}
	wrong := Issuer{Key: []byte("wrong-secret"), TTL: time.Hour}

	tok, err := right.Issue("u2")
	require.NoError(t, err)

	_, err = wrong.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Malformed(t *testing.T) {
	issuer := Issuer{Key: []byte("k"), TTL: time.Hour}

	_, err := issuer.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNonHMAC(t *testing.T) {
	issuer := Issuer{Key: []byte("k"), TTL: time.Hour}

	// alg=none with a well-formed claim set must not validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u3",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_MissingExpiry(t *testing.T) {
	issuer := Issuer{Key: []byte("k"), TTL: time.Hour}

	// Signed with the right key but carrying no exp claim: a token is valid
	// only if signature AND expiry both check out, so this must be rejected.
	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "u9",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	tok, err := eternal.SignedString(issuer.Key)
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_EmptySubject(t *testing.T) {
	issuer := Issuer{Key: []byte("k"), TTL: time.Hour}

	tok, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
