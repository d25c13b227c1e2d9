package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// CredentialVerifier checks a CPF/password pair against the stored account.
// It reports the precise failure (format, not found, inactive, bad password)
// to its caller; the service boundary above collapses them into one error.
type CredentialVerifier struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewCredentialVerifier(repo ports.UserRepository, logger zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{repo: repo, logger: logger}
}

// Verify validates the CPF format before any lookup, then fetches the user
// and compares the password with bcrypt (constant-time per hash comparison).
func (v *CredentialVerifier) Verify(ctx context.Context, cpf, password string) (*domain.User, error) {
	normalized, err := domain.NormalizeCPF(cpf)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := v.repo.FindByCPF(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUserInactive
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
