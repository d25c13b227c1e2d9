package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

const (
	testCPF      = "52998224725"
	otherCPF     = "11144477735"
	testPassword = "s3cret-senha"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	findCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByCPF(_ context.Context, cpf string) (*domain.User, error) {
	r.findCalls++
	if u, ok := r.users[cpf]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.CPF]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "user_" + copy.CPF
	}
	r.users[copy.CPF] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) List(_ context.Context, _ ports.UserFilter) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) add(t *testing.T, cpf string, role domain.Role, active bool, affiliation domain.Affiliation) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	r.users[cpf] = &domain.User{
		ID:           "user_" + cpf,
		CPF:          cpf,
		Name:         "Test User",
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
		Affiliation:  affiliation,
	}
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) TooMany(_ context.Context, _ string) (bool, error) { return t.blocked, nil }
func (t *stubThrottle) RecordFailure(_ context.Context, _ string) error {
	t.failures++
	return nil
}
func (t *stubThrottle) Reset(_ context.Context, _ string) error {
	t.resets++
	return nil
}

func newTestAuthService(repo *stubUserRepo, throttle ports.LoginThrottle) (*AuthService, *SessionCodec) {
	codec := NewSessionCodec("secret", time.Hour)
	return NewAuthService(repo, codec, throttle, zerolog.Nop()), codec
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, testCPF, domain.RoleTeacher, true, domain.Affiliation{
		SchoolID:   "school_1",
		SchoolName: "EM Paulo Freire",
	})
	svc, codec := newTestAuthService(repo, nil)

	token, user, err := svc.Login(context.Background(), testCPF, testPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.CPF != testCPF {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleTeacher {
		t.Fatalf("expected role %s, got %s", domain.RoleTeacher, claims.Role)
	}
	want := domain.PermissionsFor(domain.RoleTeacher)
	if len(claims.Permissions) != len(want) {
		t.Fatalf("permission set mismatch: got %v, want %v", claims.Permissions, want)
	}
	for i := range want {
		if claims.Permissions[i] != want[i] {
			t.Fatalf("permission %d = %s, want %s", i, claims.Permissions[i], want[i])
		}
	}
	if claims.SchoolID != "school_1" || claims.SchoolName != "EM Paulo Freire" {
		t.Fatalf("affiliation not in claims: %+v", claims)
	}
}

func TestAuthService_Login_NoAffiliationClaims(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, testCPF, domain.RoleSuperAdmin, true, domain.Affiliation{})
	svc, codec := newTestAuthService(repo, nil)

	token, _, err := svc.Login(context.Background(), testCPF, testPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.SchoolID != "" || claims.MunicipalityID != "" {
		t.Fatalf("platform role should carry no affiliation: %+v", claims)
	}
}

func TestAuthService_Login_MalformedCPFSkipsLookup(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	_, _, err := svc.Login(context.Background(), "not-a-cpf", testPassword)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Fatalf("repository consulted %d times before format check", repo.findCalls)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, testCPF, domain.RoleTeacher, true, domain.Affiliation{SchoolID: "school_1"})
	repo.add(t, otherCPF, domain.RoleGuardian, false, domain.Affiliation{})
	svc, _ := newTestAuthService(repo, nil)

	cases := []struct {
		name     string
		cpf      string
		password string
	}{
		{"unknown user", "168.995.350-09", testPassword},
		{"wrong password", testCPF, "wrong"},
		{"inactive user", otherCPF, testPassword},
		{"empty password", testCPF, ""},
	}

	for _, tc := range cases {
		token, user, err := svc.Login(context.Background(), tc.cpf, tc.password)
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", tc.name, err)
		}
		if token != "" || user != nil {
			t.Fatalf("%s: no token or user may be returned on failure", tc.name)
		}
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, testCPF, domain.RoleTeacher, true, domain.Affiliation{SchoolID: "school_1"})
	throttle := &stubThrottle{blocked: true}
	svc, _ := newTestAuthService(repo, throttle)

	if _, _, err := svc.Login(context.Background(), testCPF, testPassword); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts for throttled login, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Fatalf("throttled login must not hit the repository")
	}
}

func TestAuthService_Login_ThrottleBookkeeping(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(t, testCPF, domain.RoleTeacher, true, domain.Affiliation{SchoolID: "school_1"})
	throttle := &stubThrottle{}
	svc, _ := newTestAuthService(repo, throttle)

	_, _, _ = svc.Login(context.Background(), testCPF, "wrong")
	if throttle.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", throttle.failures)
	}

	if _, _, err := svc.Login(context.Background(), testCPF, testPassword); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", throttle.resets)
	}
}

func TestAuthService_Provision(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Provision(context.Background(), ports.ProvisionUserInput{
		CPF:       "529.982.247-25",
		Name:      "Maria Silva",
		Email:     "maria.silva@escola.gov.br",
		Password:  "senha-segura",
		Role:      domain.RoleTeacher,
		CreatedBy: "user_admin",
		Affiliation: domain.Affiliation{
			SchoolID:   "school_1",
			SchoolName: "EM Paulo Freire",
		},
	})
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if user.CPF != testCPF {
		t.Fatalf("CPF not normalized: %s", user.CPF)
	}
	if user.PasswordHash == "senha-segura" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("senha-segura")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.Active {
		t.Fatalf("provisioned user should start active")
	}
	if user.CreatedBy != "user_admin" {
		t.Fatalf("creator reference missing")
	}
}

func TestAuthService_Provision_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	if _, err := svc.Provision(context.Background(), ports.ProvisionUserInput{
		CPF: "123", Name: "x", Password: "pass", Role: domain.RoleTeacher,
	}); err != domain.ErrInvalidCPF {
		t.Fatalf("expected ErrInvalidCPF, got %v", err)
	}

	if _, err := svc.Provision(context.Background(), ports.ProvisionUserInput{
		CPF: testCPF, Name: "x", Password: "pass", Role: domain.Role("STUDENT"),
	}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Provision_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	input := ports.ProvisionUserInput{
		CPF: testCPF, Name: "Maria", Password: "senha-segura", Role: domain.RoleTeacher,
	}
	if _, err := svc.Provision(context.Background(), input); err != nil {
		t.Fatalf("first provision failed: %v", err)
	}
	if _, err := svc.Provision(context.Background(), input); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
