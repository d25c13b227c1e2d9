package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// GradeService implements grade and attendance recording.
type GradeService struct {
	grades     ports.GradeRepository
	attendance ports.AttendanceRepository
	students   ports.StudentRepository
	classes    ports.ClassRepository
	logger     zerolog.Logger
}

func NewGradeService(grades ports.GradeRepository, attendance ports.AttendanceRepository, students ports.StudentRepository, classes ports.ClassRepository, logger zerolog.Logger) *GradeService {
	return &GradeService{grades: grades, attendance: attendance, students: students, classes: classes, logger: logger}
}

// RecordGrade stores one assessment score after checking the student is
// visible within the caller's school scope.
func (s *GradeService) RecordGrade(ctx context.Context, input ports.RecordGradeInput) (*domain.Grade, error) {
	if input.Value < 0 || input.Value > 10 {
		return nil, domain.ErrInvalidGrade
	}
	if _, err := s.students.FindByID(ctx, input.StudentID, input.SchoolID); err != nil {
		return nil, err
	}

	grade := &domain.Grade{
		StudentID: input.StudentID,
		ClassID:   input.ClassID,
		Value:     input.Value,
		Term:      input.Term,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		s.logger.Error().Err(err).Str("student_id", input.StudentID).Msg("failed to record grade")
		return nil, err
	}

	s.logger.Info().
		Str("student_id", grade.StudentID).
		Str("class_id", grade.ClassID).
		Float64("value", grade.Value).
		Msg("grade recorded")

	return grade, nil
}

// ListStudentGrades returns all grades for a student within scope.
func (s *GradeService) ListStudentGrades(ctx context.Context, studentID, schoolID string) ([]*domain.Grade, error) {
	if _, err := s.students.FindByID(ctx, studentID, schoolID); err != nil {
		return nil, err
	}
	return s.grades.ListByStudent(ctx, studentID)
}

// RecordAttendance stores one daily attendance record.
func (s *GradeService) RecordAttendance(ctx context.Context, input ports.RecordAttendanceInput) (*domain.Attendance, error) {
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidAttendance
	}
	if _, err := s.students.FindByID(ctx, input.StudentID, input.SchoolID); err != nil {
		return nil, err
	}

	record := &domain.Attendance{
		StudentID: input.StudentID,
		ClassID:   input.ClassID,
		Date:      input.Date,
		Status:    input.Status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		s.logger.Error().Err(err).Str("student_id", input.StudentID).Msg("failed to record attendance")
		return nil, err
	}

	return record, nil
}

// ListClassAttendance returns the attendance records for a class on a date.
// A class outside the caller's school scope reads as not found.
func (s *GradeService) ListClassAttendance(ctx context.Context, classID, schoolID string, date time.Time) ([]*domain.Attendance, error) {
	if _, err := s.classInScope(ctx, classID, schoolID); err != nil {
		return nil, err
	}
	return s.attendance.ListByClassAndDate(ctx, classID, date)
}

// ListClasses returns the classes of one school.
func (s *GradeService) ListClasses(ctx context.Context, schoolID string) ([]*domain.Class, error) {
	return s.classes.ListBySchool(ctx, schoolID)
}

// classInScope resolves a class and verifies it belongs to schoolID when a
// scope is set. Out-of-scope classes are indistinguishable from missing ones.
func (s *GradeService) classInScope(ctx context.Context, classID, schoolID string) (*domain.Class, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if schoolID != "" && class.SchoolID != schoolID {
		return nil, domain.ErrClassNotFound
	}
	return class, nil
}
