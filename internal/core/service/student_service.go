package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

const maxPageLimit = 100

// StudentService implements student enrollment and lookup.
type StudentService struct {
	repo   ports.StudentRepository
	logger zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, logger: logger}
}

// CreateStudent enrolls a new student in the caller's school.
func (s *StudentService) CreateStudent(ctx context.Context, input ports.CreateStudentInput) (*domain.Student, error) {
	if input.Name == "" || input.Enrollment == "" || input.SchoolID == "" {
		return nil, domain.ErrInvalidStudent
	}

	now := time.Now().UTC()
	student := &domain.Student{
		Name:       input.Name,
		Enrollment: input.Enrollment,
		SchoolID:   input.SchoolID,
		ClassID:    input.ClassID,
		GuardianID: input.GuardianID,
		BirthDate:  input.BirthDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		s.logger.Error().Err(err).Str("school_id", input.SchoolID).Msg("failed to create student")
		return nil, err
	}

	s.logger.Info().
		Str("student_id", student.ID).
		Str("school_id", student.SchoolID).
		Msg("student enrolled")

	return student, nil
}

// GetStudent retrieves a student, scoped to schoolID when non-empty.
func (s *StudentService) GetStudent(ctx context.Context, id, schoolID string) (*domain.Student, error) {
	return s.repo.FindByID(ctx, id, schoolID)
}

// ListStudents returns a page of students within the caller's scope.
func (s *StudentService) ListStudents(ctx context.Context, input ports.ListStudentsInput) (*ports.ListStudentsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.StudentFilter{
		SchoolID: input.SchoolID,
		ClassID:  input.ClassID,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListStudentsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
