// Package auth implements the session token contract (HS256 JWTs carrying
// the subject's username and role claim) and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"factforum/internal/common"
	"factforum/internal/server/models"
)

// Claims is the token payload: registered claims plus the role claim.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Identity is the verified result of a token: who the caller is and which
// role was asserted at login time.
type Identity struct {
	Username string
	Role     models.Role
}

// GenerateToken mints a signed bearer token for the given account identity.
// Tokens are stateless; suspending an account does not invalidate tokens
// already issued.
func GenerateToken(username string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Role: role.String(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses and validates a bearer token. It returns
// common.ErrTokenExpired for expired tokens and common.ErrInvalidToken for
// anything else that fails validation (malformed token, bad signature,
// unknown role claim).
func VerifyToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Identity{Username: claims.Subject, Role: role}, nil
}
