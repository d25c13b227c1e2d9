package ports

import (
	"context"
	"time"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) error
	// FindByID retrieves a student. When schoolID is non-empty the query is
	// additionally scoped to that school.
	FindByID(ctx context.Context, id, schoolID string) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]*domain.Student, int64, error)
}

// StudentFilter carries the query parameters for listing students.
type StudentFilter struct {
	SchoolID string // empty = no scoping (platform roles)
	ClassID  string
	Search   string // partial match on name or enrollment
	Page     int    // 1-based
	Limit    int    // capped by the service
}

// GradeRepository defines persistence operations for grades.
type GradeRepository interface {
	Create(ctx context.Context, g *domain.Grade) error
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Grade, error)
	ListByClass(ctx context.Context, classID string) ([]*domain.Grade, error)
}

// AttendanceRepository defines persistence operations for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, a *domain.Attendance) error
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Attendance, error)
	ListByClassAndDate(ctx context.Context, classID string, date time.Time) ([]*domain.Attendance, error)
}

// ClassRepository defines persistence operations for classes.
type ClassRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	ListBySchool(ctx context.Context, schoolID string) ([]*domain.Class, error)
}
