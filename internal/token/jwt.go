package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/xcard-server/internal/model"
)

const typeCard = "card"

// Claims represents card token claims. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
	UserNumber int64  `json:"user_number"`
	TokenType  string `json:"typ"`
}

// JWT implements CardTokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a card token manager signing with secretKey. Tokens expire after ttl.
func NewJWT(secretKey string, ttl time.Duration) *JWT {
	return &JWT{secretKey: secretKey, ttl: ttl, now: time.Now}
}

var _ model.CardTokenManager = (*JWT)(nil)

// GenerateCardToken issues a token proving ownership of the card's number.
func (j *JWT) GenerateCardToken(card model.UserCard) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   card.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		UserNumber: card.UserNumber,
		TokenType:  typeCard,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign card token: %w", err)
	}

	return tokenString, nil
}

func (j *JWT) ParseCardToken(tokenString string) (model.CardClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return model.CardClaims{}, errors.Join(model.ErrInvalidToken, fmt.Errorf("failed to parse card token: %w", err))
	}
	if !token.Valid {
		return model.CardClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != typeCard {
		return model.CardClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}
	if claims.Subject == "" || claims.UserNumber <= 0 {
		return model.CardClaims{}, fmt.Errorf("%w: missing card subject", model.ErrInvalidToken)
	}

	return model.CardClaims{
		Username:   claims.Subject,
		UserNumber: claims.UserNumber,
	}, nil
}
