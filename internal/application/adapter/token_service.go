package adapter

import (
	"context"
	"time"
)

// ServiceClaims represents the claims contained in a service JWT.
type ServiceClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenService defines the interface for service JWT operations.
type TokenService interface {
	// GenerateServiceToken issues a token identifying the calling service.
	GenerateServiceToken(ctx context.Context, subject string, ttl time.Duration) (string, error)

	// ValidateServiceToken validates a service token and returns its claims.
	ValidateServiceToken(ctx context.Context, token string) (*ServiceClaims, error)
}
