package domain

import (
	"errors"
	"time"
)

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrClassNotFound     = errors.New("class not found")
	ErrInvalidGrade      = errors.New("invalid grade value")
	ErrInvalidAttendance = errors.New("invalid attendance status")
	ErrInvalidStudent    = errors.New("invalid student data")
)

// Student is an enrolled pupil, always scoped to a school.
type Student struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Enrollment string    `json:"enrollment"`
	SchoolID   string    `json:"school_id"`
	ClassID    string    `json:"class_id,omitempty"`
	GuardianID string    `json:"guardian_id,omitempty"`
	BirthDate  time.Time `json:"birth_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Class groups students under one teacher for one subject.
type Class struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	SchoolID  string `json:"school_id"`
	TeacherID string `json:"teacher_id"`
	Year      int    `json:"year"`
}

// Grade is a single assessment score on a 0–10 scale.
type Grade struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Value     float64   `json:"value"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceStatus is the outcome recorded for one student on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// Valid reports whether s is a recognized attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// Attendance records one student's presence in one class on one date.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	ClassID   string           `json:"class_id"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
