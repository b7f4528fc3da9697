package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// AccessTokenExpiry bounds how long an issued access token is honoured.
	AccessTokenExpiry = 2 * time.Hour
	// RefreshTokenExpiry bounds how long a stored refresh token may be redeemed.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

var ErrTokenExpired = errors.New("token expired")

// TokenClaims is the payload carried inside an access token.
type TokenClaims struct {
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// TokenMaker issues and verifies PASETO v2 access tokens with a symmetric key.
type TokenMaker struct {
	key []byte
}

// NewTokenMaker validates the key length required by PASETO v2 local mode.
func NewTokenMaker(key string) (*TokenMaker, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("symmetric key must be 32 bytes long, got %d", len(key))
	}
	return &TokenMaker{key: []byte(key)}, nil
}

// Generate encrypts a token carrying the subject id, email and role.
func (m *TokenMaker) Generate(userID int64, email, role string) (string, error) {
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Expiry: time.Now().Add(AccessTokenExpiry),
	}

	token, err := paseto.NewV2().Encrypt(m.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Verify decrypts the token and rejects it once expired.
func (m *TokenMaker) Verify(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}
