// Package auth issues and verifies session tokens and keeps the server-side
// session records that make them revocable.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the owning user. The registered
// ID (jti) names the server-side session record.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// SessionID returns the jti claim.
func (c *Claims) SessionID() string {
	return c.ID
}

// GenerateToken signs a new HS256 token for userID with a fresh session id.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// ParseToken verifies signature and expiry. Every failure is reported as
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
