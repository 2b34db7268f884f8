package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tripdesk/internal/models"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// TokenManager issues and verifies HS256 bearer tokens. The token carries
// the identity triple the services authorize on; role and company are
// re-read from the claims, not the database, for the token's lifetime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Issue(identity models.Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": string(identity.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	if identity.CompanyID != "" {
		claims["company_id"] = identity.CompanyID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	companyID, _ := claims["company_id"].(string)

	return models.Identity{
		ID:        sub,
		Role:      models.Role(role),
		CompanyID: companyID,
	}, nil
}
