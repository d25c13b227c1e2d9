package ports

import (
	"context"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

// UserRepository defines persistence operations for portal accounts.
type UserRepository interface {
	// FindByCPF retrieves a user by its normalized 11-digit CPF.
	FindByCPF(ctx context.Context, cpf string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns users visible to the caller; a non-empty schoolID or
	// municipalityID narrows the result to that institution.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}

// UserFilter narrows List to an institution and/or role.
type UserFilter struct {
	Role           domain.Role
	SchoolID       string
	MunicipalityID string
}

// LoginThrottle limits failed login attempts per identifier.
type LoginThrottle interface {
	// TooMany reports whether the identifier has exhausted its attempts.
	TooMany(ctx context.Context, cpf string) (bool, error)
	// RecordFailure counts one failed attempt against the identifier.
	RecordFailure(ctx context.Context, cpf string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, cpf string) error
}
