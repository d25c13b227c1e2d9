package ports

import (
	"context"
	"time"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

// CreateStudentInput carries the data needed to enroll a student.
type CreateStudentInput struct {
	Name       string
	Enrollment string
	SchoolID   string
	ClassID    string
	GuardianID string
	BirthDate  time.Time
}

// ListStudentsInput carries the list parameters plus the caller's scope.
type ListStudentsInput struct {
	SchoolID string
	ClassID  string
	Search   string
	Page     int
	Limit    int
}

// ListStudentsResult is returned by ListStudents.
type ListStudentsResult struct {
	Items      []*domain.Student
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// StudentService defines use-case operations for students.
type StudentService interface {
	CreateStudent(ctx context.Context, input CreateStudentInput) (*domain.Student, error)
	GetStudent(ctx context.Context, id, schoolID string) (*domain.Student, error)
	ListStudents(ctx context.Context, input ListStudentsInput) (*ListStudentsResult, error)
}

// RecordGradeInput carries one assessment score.
type RecordGradeInput struct {
	StudentID string
	ClassID   string
	Value     float64
	Term      string
	// SchoolID is the caller's scope; empty for platform roles.
	SchoolID string
}

// RecordAttendanceInput carries one day's record for one student.
type RecordAttendanceInput struct {
	StudentID string
	ClassID   string
	Date      time.Time
	Status    domain.AttendanceStatus
	SchoolID  string
}

// GradeService defines use-case operations for grades and attendance.
type GradeService interface {
	RecordGrade(ctx context.Context, input RecordGradeInput) (*domain.Grade, error)
	ListStudentGrades(ctx context.Context, studentID, schoolID string) ([]*domain.Grade, error)
	RecordAttendance(ctx context.Context, input RecordAttendanceInput) (*domain.Attendance, error)
	// ListClassAttendance returns a class's records for one date. A
	// non-empty schoolID restricts the lookup to classes of that school.
	ListClassAttendance(ctx context.Context, classID, schoolID string, date time.Time) ([]*domain.Attendance, error)
	// ListClasses returns the classes of one school.
	ListClasses(ctx context.Context, schoolID string) ([]*domain.Class, error)
}

// ClassReport aggregates one class's results for a student.
type ClassReport struct {
	ClassID              string
	ClassName            string
	Subject              string
	Grades               []float64
	Average              float64
	AttendanceTotal      int
	AttendancePresent    int
	AttendancePercentage float64
}

// ReportCard is the full per-student report.
type ReportCard struct {
	StudentID   string
	StudentName string
	Classes     []ClassReport
}

// StudentSummary is one student's row in a class report.
type StudentSummary struct {
	StudentID            string
	StudentName          string
	Grades               []float64
	Average              float64
	AttendanceTotal      int
	AttendancePresent    int
	AttendancePercentage float64
}

// ClassSummary aggregates every enrolled student's results for one class.
type ClassSummary struct {
	ClassID   string
	ClassName string
	Subject   string
	Students  []StudentSummary
}

// ReportService defines the aggregation endpoints.
type ReportService interface {
	ReportCard(ctx context.Context, studentID, schoolID string) (*ReportCard, error)
	// ClassReport returns per-student averages and attendance for a whole
	// class. A non-empty schoolID restricts the lookup to that school.
	ClassReport(ctx context.Context, classID, schoolID string) (*ClassSummary, error)
}
