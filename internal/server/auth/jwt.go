// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: {"user": {"id": ...}} plus the registered
// exp/iat claims.
type Claims struct {
	User ClaimsUser `json:"user"`
	jwt.RegisteredClaims
}

type ClaimsUser struct {
	ID string `json:"id"`
}

// GenerateToken signs an HS256 token for userID valid from issuedAt for
// validityDuration.
func GenerateToken(userID string, secretKey []byte, issuedAt time.Time, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: ClaimsUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates tokenString against secretKey at time now and
// returns the embedded user id.
//
// Errors:
//   - common.ErrTokenMissing for an empty string
//   - common.ErrTokenExpired when exp has passed
//   - common.ErrTokenSignatureInvalid when the signature does not match
//   - common.ErrInvalidToken (wrapped) for anything malformed
func GetUserIDFromToken(tokenString string, secretKey []byte, now time.Time) (string, error) {
	if tokenString == "" {
		return "", common.ErrTokenMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", common.ErrTokenSignatureInvalid
	default:
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.User.ID == "" {
		return "", fmt.Errorf("%w: no user id", common.ErrInvalidToken)
	}

	return claims.User.ID, nil
}

// TokenIssuer binds the signing secret and token lifetime so callers only
// deal with user ids. The secret is fixed for the life of the process;
// changing it invalidates every outstanding token.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secretKey []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secretKey, validity: validity, now: time.Now}
}

func (i *TokenIssuer) Issue(userID string) (string, error) {
	return GenerateToken(userID, i.secret, i.now(), i.validity)
}

func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	return GetUserIDFromToken(tokenString, i.secret, i.now())
}
