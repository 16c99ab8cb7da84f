package session

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry matches the fixed 1 day lifetime of issued bearer tokens
const TokenExpiry = 24 * time.Hour

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Signer mints and validates the bearer tokens bound to the server secret.
// Tokens are stateless - single session semantics come from the usecase
// comparing the presented token against the one stored on the user record.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) Signer {
	return Signer{
		secret: []byte(secret),
	}
}

func (s Signer) TokenForUserID(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "Failed to sign session token")
	}

	return signedToken, nil
}

func (s Signer) UserIDForToken(signedToken string) (string, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(signedToken, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("Unexpected signing method %s", token.Method.Alg())
		}
		return s.secret, nil
	})

	if err != nil {
		return "", errors.Wrap(err, "Failed to parse session token")
	}

	if !token.Valid {
		return "", errors.New("Session token is not valid")
	}

	if claims.UserID == "" {
		return "", errors.New("Session token carries no user ID")
	}

	return claims.UserID, nil
}
