// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
)

const (
	tokenIssuer      = "goal-agent"
	tokenTypeService = "service"
)

// ServiceClaimsJWT represents the custom claims for service JWT tokens.
type ServiceClaimsJWT struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret []byte
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
	}
}

// GenerateServiceToken signs an HS256 token for the given subject.
func (s *tokenService) GenerateServiceToken(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := ServiceClaimsJWT{
		TokenType: tokenTypeService,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}
	return signed, nil
}

// ValidateServiceToken validates a service token and returns its claims.
func (s *tokenService) ValidateServiceToken(ctx context.Context, tokenString string) (*adapter.ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaimsJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "token has expired", domainerror.ErrExpiredToken)
		}
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token", fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err))
	}

	claims, ok := token.Claims.(*ServiceClaimsJWT)
	if !ok || !token.Valid || claims.TokenType != tokenTypeService || claims.Subject == "" {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "invalid token claims", domainerror.ErrInvalidToken)
	}

	return &adapter.ServiceClaims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
