package model

// CardTokenManager issues and validates tokens binding a username to its card number.
type CardTokenManager interface {
	GenerateCardToken(card UserCard) (string, error)
	ParseCardToken(token string) (CardClaims, error)
}

// CardClaims is the payload carried by a card token.
type CardClaims struct {
	Username   string
	UserNumber int64
}
