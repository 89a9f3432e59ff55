package app

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"carscout/src/repository"
)

// TokenManager issues and verifies the signed session tokens carrying the
// authenticated identity.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed HS256 token for the identity.
func (t *TokenManager) Generate(ident repository.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   t.issuer,
		"sub":   ident.ID,
		"email": ident.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses the token and returns the identity it carries.
func (t *TokenManager) Verify(raw string) (repository.Identity, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return repository.Identity{}, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return repository.Identity{}, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return repository.Identity{}, fmt.Errorf("token has no subject")
	}
	email, _ := claims["email"].(string)
	return repository.Identity{ID: sub, Email: email}, nil
}
