package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/xcard-server/internal/model"
)

func TestJWT_CardToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tok, err := j.GenerateCardToken(model.UserCard{Username: "alice", UserNumber: 7})
	require.NoError(t, err)

	claims, err := j.ParseCardToken(tok)
	require.NoError(t, err)
	assert.Equal(t, model.CardClaims{Username: "alice", UserNumber: 7}, claims)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", time.Hour).GenerateCardToken(model.UserCard{Username: "alice", UserNumber: 1})
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).ParseCardToken(tok)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	j.now = func() time.Time { return issued }

	tok, err := j.GenerateCardToken(model.UserCard{Username: "alice", UserNumber: 1})
	require.NoError(t, err)

	j.now = time.Now
	_, err = j.ParseCardToken(tok)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserNumber: 1,
		TokenType:  "access",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.ParseCardToken(tok)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserNumber: 1,
		TokenType:  typeCard,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseCardToken(tok)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_MissingExpiry(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		UserNumber:       1,
		TokenType:        typeCard,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.ParseCardToken(tok)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret", time.Hour).ParseCardToken("not-a-token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
