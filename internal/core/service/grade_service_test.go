package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

func newGradeServiceFixture() *GradeService {
	students := &stubStudentRepo{students: map[string]*domain.Student{
		"student_a": {ID: "student_a", Name: "Ana", SchoolID: "school_a", ClassID: "class_a"},
	}}
	classes := &stubClassRepo{classes: map[string]*domain.Class{
		"class_a": {ID: "class_a", Name: "5A", Subject: "Mathematics", SchoolID: "school_a"},
		"class_b": {ID: "class_b", Name: "3B", Subject: "History", SchoolID: "school_b"},
	}}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	attendance := &stubAttendanceRepo{records: []*domain.Attendance{
		{StudentID: "student_a", ClassID: "class_a", Date: day, Status: domain.AttendancePresent},
		{StudentID: "student_b", ClassID: "class_b", Date: day, Status: domain.AttendanceAbsent},
	}}
	return NewGradeService(&stubGradeRepo{}, attendance, students, classes, zerolog.Nop())
}

func TestGradeService_ListClassAttendance(t *testing.T) {
	svc := newGradeServiceFixture()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	records, err := svc.ListClassAttendance(context.Background(), "class_a", "school_a", day)
	if err != nil {
		t.Fatalf("ListClassAttendance returned error: %v", err)
	}
	if len(records) != 1 || records[0].StudentID != "student_a" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestGradeService_ListClassAttendanceCrossSchool(t *testing.T) {
	svc := newGradeServiceFixture()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// A school A caller must not read attendance for a school B class, and
	// the denial must be indistinguishable from a missing class.
	records, err := svc.ListClassAttendance(context.Background(), "class_b", "school_a", day)
	if err != domain.ErrClassNotFound {
		t.Fatalf("expected ErrClassNotFound for a class of another school, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("attendance leaked across schools: %+v", records)
	}

	// Municipal callers carry no school scope and read any class.
	records, err = svc.ListClassAttendance(context.Background(), "class_b", "", day)
	if err != nil {
		t.Fatalf("unscoped ListClassAttendance returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record for unscoped caller, got %d", len(records))
	}
}

func TestGradeService_ListClasses(t *testing.T) {
	svc := newGradeServiceFixture()

	classes, err := svc.ListClasses(context.Background(), "school_a")
	if err != nil {
		t.Fatalf("ListClasses returned error: %v", err)
	}
	if len(classes) != 1 || classes[0].ID != "class_a" {
		t.Fatalf("unexpected classes: %+v", classes)
	}
}

func TestGradeService_RecordGrade(t *testing.T) {
	svc := newGradeServiceFixture()

	if _, err := svc.RecordGrade(context.Background(), ports.RecordGradeInput{
		StudentID: "student_a", ClassID: "class_a", SchoolID: "school_a", Value: 11,
	}); err != domain.ErrInvalidGrade {
		t.Fatalf("expected ErrInvalidGrade for out-of-range value, got %v", err)
	}

	grade, err := svc.RecordGrade(context.Background(), ports.RecordGradeInput{
		StudentID: "student_a", ClassID: "class_a", SchoolID: "school_a", Value: 8.5, Term: "2026-1",
	})
	if err != nil {
		t.Fatalf("RecordGrade returned error: %v", err)
	}
	if grade.Value != 8.5 || grade.Term != "2026-1" {
		t.Fatalf("unexpected grade: %+v", grade)
	}
}

func TestGradeService_RecordAttendanceInvalidStatus(t *testing.T) {
	svc := newGradeServiceFixture()

	if _, err := svc.RecordAttendance(context.Background(), ports.RecordAttendanceInput{
		StudentID: "student_a", ClassID: "class_a", SchoolID: "school_a", Status: "NAPPING",
	}); err != domain.ErrInvalidAttendance {
		t.Fatalf("expected ErrInvalidAttendance, got %v", err)
	}
}
