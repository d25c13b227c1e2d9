package handler

import "time"

type createStudentRequest struct {
	Name       string    `json:"name"       validate:"required"`
	Enrollment string    `json:"enrollment" validate:"required"`
	SchoolID   string    `json:"school_id"`
	ClassID    string    `json:"class_id"`
	GuardianID string    `json:"guardian_id"`
	BirthDate  time.Time `json:"birth_date" validate:"required"`
}

type studentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Enrollment string    `json:"enrollment"`
	SchoolID   string    `json:"school_id"`
	ClassID    string    `json:"class_id,omitempty"`
	GuardianID string    `json:"guardian_id,omitempty"`
	BirthDate  time.Time `json:"birth_date"`
	CreatedAt  time.Time `json:"created_at"`
}

type listStudentsResponse struct {
	Items      []studentResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type recordGradeRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	ClassID   string  `json:"class_id"   validate:"required"`
	Value     float64 `json:"value"      validate:"gte=0,lte=10"`
	Term      string  `json:"term"       validate:"required"`
}

type gradeResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Value     float64   `json:"value"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

type recordAttendanceRequest struct {
	StudentID string    `json:"student_id" validate:"required"`
	ClassID   string    `json:"class_id"   validate:"required"`
	Date      time.Time `json:"date"       validate:"required"`
	Status    string    `json:"status"     validate:"required,oneof=PRESENT ABSENT LATE"`
}

type attendanceResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}

type classReportResponse struct {
	ClassID              string    `json:"class_id"`
	ClassName            string    `json:"class_name"`
	Subject              string    `json:"subject"`
	Grades               []float64 `json:"grades"`
	Average              float64   `json:"average"`
	AttendanceTotal      int       `json:"attendance_total"`
	AttendancePresent    int       `json:"attendance_present"`
	AttendancePercentage float64   `json:"attendance_percentage"`
}

type reportCardResponse struct {
	StudentID   string                `json:"student_id"`
	StudentName string                `json:"student_name"`
	Classes     []classReportResponse `json:"classes"`
}

type classResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	SchoolID  string `json:"school_id"`
	TeacherID string `json:"teacher_id,omitempty"`
	Year      int    `json:"year,omitempty"`
}

type studentSummaryResponse struct {
	StudentID            string    `json:"student_id"`
	StudentName          string    `json:"student_name"`
	Grades               []float64 `json:"grades"`
	Average              float64   `json:"average"`
	AttendanceTotal      int       `json:"attendance_total"`
	AttendancePresent    int       `json:"attendance_present"`
	AttendancePercentage float64   `json:"attendance_percentage"`
}

type classSummaryResponse struct {
	ClassID   string                   `json:"class_id"`
	ClassName string                   `json:"class_name"`
	Subject   string                   `json:"subject"`
	Students  []studentSummaryResponse `json:"students"`
}
