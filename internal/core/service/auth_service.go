package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// AuthService implements login and account provisioning.
type AuthService struct {
	verifier *CredentialVerifier
	codec    ports.SessionCodec
	repo     ports.UserRepository
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires the credential verifier, token codec and optional
// login throttle. throttle may be nil (no rate limiting, used in tests).
func NewAuthService(repo ports.UserRepository, codec ports.SessionCodec, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		verifier: NewCredentialVerifier(repo, logger),
		codec:    codec,
		repo:     repo,
		throttle: throttle,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token. Every credential
// failure (malformed CPF, unknown user, inactive account, wrong password)
// comes back as domain.ErrInvalidCredentials so the response cannot be used
// to enumerate accounts; the log line carries the real reason.
func (s *AuthService) Login(ctx context.Context, cpf, password string) (string, *domain.User, error) {
	if s.throttle != nil {
		if blocked, err := s.throttle.TooMany(ctx, cpf); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle check failed")
		} else if blocked {
			s.logger.Warn().Str("cpf", maskCPF(cpf)).Msg("login blocked by throttle")
			// surfaces as the same generic 401 at the transport boundary
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.verifier.Verify(ctx, cpf, password)
	if err != nil {
		s.logger.Info().
			Err(err).
			Str("cpf", maskCPF(cpf)).
			Msg("login rejected")
		if s.throttle != nil {
			if terr := s.throttle.RecordFailure(ctx, cpf); terr != nil {
				s.logger.Warn().Err(terr).Msg("login throttle record failed")
			}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(buildClaims(user))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, cpf); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("login succeeded")

	return token, user, nil
}

// Provision creates a portal account on behalf of an administrator.
func (s *AuthService) Provision(ctx context.Context, input ports.ProvisionUserInput) (*domain.User, error) {
	cpf, err := domain.NormalizeCPF(input.CPF)
	if err != nil {
		return nil, err
	}
	if input.Name == "" || input.Password == "" || !input.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		CPF:          cpf,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
		Affiliation:  input.Affiliation,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Msg("user provisioning failed")
		}
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Str("created_by", input.CreatedBy).
		Msg("user provisioned")

	return created, nil
}

// ListUsers returns the accounts matching filter. A role filter outside the
// enumeration simply matches nothing.
func (s *AuthService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.repo.List(ctx, filter)
}

// buildClaims derives the session claims for a user: role permissions are
// recomputed here on every login, never read from storage.
func buildClaims(user *domain.User) *domain.SessionClaims {
	claims := &domain.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		CPF:              user.CPF,
		Name:             user.Name,
		Role:             user.Role,
		Permissions:      domain.PermissionsFor(user.Role),
	}
	if !user.Affiliation.Empty() {
		claims.MunicipalityID = user.Affiliation.MunicipalityID
		claims.MunicipalityName = user.Affiliation.MunicipalityName
		claims.SchoolID = user.Affiliation.SchoolID
		claims.SchoolName = user.Affiliation.SchoolName
	}
	return claims
}

// maskCPF keeps only the first three digits for log lines.
func maskCPF(cpf string) string {
	if len(cpf) <= 3 {
		return cpf
	}
	return cpf[:3] + "********"
}
