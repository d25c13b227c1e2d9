package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/redeescolar/school-portal/internal/api/middleware"
	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

type stubStudentService struct {
	createFn func(ctx context.Context, input ports.CreateStudentInput) (*domain.Student, error)
	getFn    func(ctx context.Context, id, schoolID string) (*domain.Student, error)
	listFn   func(ctx context.Context, input ports.ListStudentsInput) (*ports.ListStudentsResult, error)
}

func (s *stubStudentService) CreateStudent(ctx context.Context, input ports.CreateStudentInput) (*domain.Student, error) {
	return s.createFn(ctx, input)
}

func (s *stubStudentService) GetStudent(ctx context.Context, id, schoolID string) (*domain.Student, error) {
	return s.getFn(ctx, id, schoolID)
}

func (s *stubStudentService) ListStudents(ctx context.Context, input ports.ListStudentsInput) (*ports.ListStudentsResult, error) {
	return s.listFn(ctx, input)
}

func jwtSubject(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: sub}
}

func directorClaims() *domain.SessionClaims {
	return &domain.SessionClaims{
		Role:        domain.RoleDirector,
		Permissions: domain.PermissionsFor(domain.RoleDirector),
		SchoolID:    "school_1",
		SchoolName:  "EM Paulo Freire",
	}
}

func TestStudentHandler_Create_ForcesSchoolScope(t *testing.T) {
	stub := &stubStudentService{
		createFn: func(ctx context.Context, input ports.CreateStudentInput) (*domain.Student, error) {
			if input.SchoolID != "school_1" {
				t.Fatalf("scoped caller must enroll into its own school, got %s", input.SchoolID)
			}
			return &domain.Student{ID: "student_1", Name: input.Name, SchoolID: input.SchoolID}, nil
		},
	}
	handler := NewStudentHandler(stub)

	// the request claims another school; the caller's scope wins
	c, rec := newTestContext(t, http.MethodPost, "/api/v1/students",
		`{"name":"Ana","enrollment":"2026-001","school_id":"school_other","birth_date":"2015-03-10T00:00:00Z"}`)
	middleware.StoreClaims(c, directorClaims())

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStudentHandler_Create_MissingClaims(t *testing.T) {
	handler := NewStudentHandler(&stubStudentService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/students", `{"name":"Ana"}`)
	if err := handler.Create(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestStudentHandler_Create_ScopedRoleNeedsSchoolClaim(t *testing.T) {
	handler := NewStudentHandler(&stubStudentService{})

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/students", `{"name":"Ana"}`)
	middleware.StoreClaims(c, &domain.SessionClaims{Role: domain.RoleDirector})
	if err := handler.Create(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for scoped role without school claim, got %d", rec.Code)
	}
}

func TestStudentHandler_List_PassesScope(t *testing.T) {
	stub := &stubStudentService{
		listFn: func(ctx context.Context, input ports.ListStudentsInput) (*ports.ListStudentsResult, error) {
			if input.SchoolID != "school_1" {
				t.Fatalf("expected list scoped to school_1, got %q", input.SchoolID)
			}
			return &ports.ListStudentsResult{
				Items: []*domain.Student{{ID: "student_1", Name: "Ana", SchoolID: "school_1"}},
				Total: 1, Page: 1, Limit: 20, TotalPages: 1,
			}, nil
		},
	}
	handler := NewStudentHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/students", "")
	middleware.StoreClaims(c, directorClaims())
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(1) {
		t.Fatalf("unexpected total: %v", resp["total"])
	}
}

func TestStudentHandler_Get_NotFound(t *testing.T) {
	stub := &stubStudentService{
		getFn: func(ctx context.Context, id, schoolID string) (*domain.Student, error) {
			return nil, domain.ErrStudentNotFound
		},
	}
	handler := NewStudentHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/students/unknown", "")
	c.SetParamNames("id")
	c.SetParamValues("unknown")
	middleware.StoreClaims(c, directorClaims())

	if err := handler.Get(c); err != nil {
		c.Echo().HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAuthHandler_ProvisionUser(t *testing.T) {
	stub := &stubAuthService{
		provisionFn: func(ctx context.Context, input ports.ProvisionUserInput) (*domain.User, error) {
			if input.CreatedBy != "user_admin" {
				t.Fatalf("creator not forwarded: %q", input.CreatedBy)
			}
			if input.Role != domain.RoleSecretary {
				t.Fatalf("unexpected role: %s", input.Role)
			}
			return &domain.User{
				ID: "user_2", CPF: "52998224725", Name: input.Name,
				Role: input.Role, Active: true, Affiliation: input.Affiliation,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, 0)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/users",
		`{"cpf":"529.982.247-25","name":"Joana","password":"senha-segura","role":"SECRETARY","school_id":"school_1","school_name":"EM Paulo Freire"}`)
	middleware.StoreClaims(c, &domain.SessionClaims{
		RegisteredClaims: jwtSubject("user_admin"),
		Role:             domain.RoleSuperAdmin,
		Permissions:      domain.PermissionsFor(domain.RoleSuperAdmin),
	})

	if err := handler.ProvisionUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_ProvisionUser_UnknownRole(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, 0)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/users",
		`{"cpf":"529.982.247-25","name":"Joana","password":"senha-segura","role":"STUDENT"}`)
	middleware.StoreClaims(c, &domain.SessionClaims{
		RegisteredClaims: jwtSubject("user_admin"),
		Role:             domain.RoleSuperAdmin,
		Permissions:      domain.PermissionsFor(domain.RoleSuperAdmin),
	})

	_ = handler.ProvisionUser(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}
