package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/redeescolar/school-portal/internal/api/middleware"
	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

type stubGradeService struct {
	listAttendanceFn func(ctx context.Context, classID, schoolID string, date time.Time) ([]*domain.Attendance, error)
	listClassesFn    func(ctx context.Context, schoolID string) ([]*domain.Class, error)
}

func (s *stubGradeService) RecordGrade(ctx context.Context, input ports.RecordGradeInput) (*domain.Grade, error) {
	return nil, nil
}

func (s *stubGradeService) ListStudentGrades(ctx context.Context, studentID, schoolID string) ([]*domain.Grade, error) {
	return nil, nil
}

func (s *stubGradeService) RecordAttendance(ctx context.Context, input ports.RecordAttendanceInput) (*domain.Attendance, error) {
	return nil, nil
}

func (s *stubGradeService) ListClassAttendance(ctx context.Context, classID, schoolID string, date time.Time) ([]*domain.Attendance, error) {
	return s.listAttendanceFn(ctx, classID, schoolID, date)
}

func (s *stubGradeService) ListClasses(ctx context.Context, schoolID string) ([]*domain.Class, error) {
	return s.listClassesFn(ctx, schoolID)
}

func TestGradeHandler_ListClassAttendance_PassesScope(t *testing.T) {
	stub := &stubGradeService{
		listAttendanceFn: func(ctx context.Context, classID, schoolID string, date time.Time) ([]*domain.Attendance, error) {
			if schoolID != "school_1" {
				t.Fatalf("expected lookup scoped to school_1, got %q", schoolID)
			}
			if classID != "class_a" {
				t.Fatalf("unexpected class: %q", classID)
			}
			return nil, nil
		},
	}
	handler := NewGradeHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/classes/class_a/attendance?date=2026-03-10T00:00:00Z", "")
	c.SetParamNames("id")
	c.SetParamValues("class_a")
	middleware.StoreClaims(c, directorClaims())

	if err := handler.ListClassAttendance(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGradeHandler_ListClasses_ForcesSchoolScope(t *testing.T) {
	stub := &stubGradeService{
		listClassesFn: func(ctx context.Context, schoolID string) ([]*domain.Class, error) {
			if schoolID != "school_1" {
				t.Fatalf("scoped caller must list its own school, got %q", schoolID)
			}
			return []*domain.Class{{ID: "class_a", Name: "5A", Subject: "Mathematics", SchoolID: "school_1"}}, nil
		},
	}
	handler := NewGradeHandler(stub)

	// the query names another school; the caller's scope wins
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/classes?school_id=school_other", "")
	middleware.StoreClaims(c, directorClaims())

	if err := handler.ListClasses(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGradeHandler_ListClasses_UnscopedNeedsSchoolParam(t *testing.T) {
	handler := NewGradeHandler(&stubGradeService{})

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/classes", "")
	middleware.StoreClaims(c, &domain.SessionClaims{
		Role:        domain.RoleSuperAdmin,
		Permissions: domain.PermissionsFor(domain.RoleSuperAdmin),
	})

	if err := handler.ListClasses(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without school_id, got %d", rec.Code)
	}
}
