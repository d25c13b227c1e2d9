package ports

import (
	"context"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

// ProvisionUserInput carries everything needed to create a portal account.
type ProvisionUserInput struct {
	CPF         string
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	Affiliation domain.Affiliation
	// CreatedBy references the provisioning account.
	CreatedBy string
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Login verifies credentials and returns a signed session token plus the
	// authenticated user. Every credential failure surfaces as
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, cpf, password string) (string, *domain.User, error)
	Provision(ctx context.Context, input ProvisionUserInput) (*domain.User, error)
	// ListUsers returns the accounts matching filter. Callers are expected
	// to narrow the filter to their own institution before calling.
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}

// SessionCodec issues and verifies signed session tokens.
type SessionCodec interface {
	Issue(claims *domain.SessionClaims) (string, error)
	Verify(token string) (*domain.SessionClaims, error)
}
