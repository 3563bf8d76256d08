package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "investing_backend"

// Generator issues API tokens.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a generator signing with secret; tokens expire after expiration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken returns an HS256 token for clientID.
func (g *Generator) GenerateToken(clientID string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("empty client id")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   clientID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
