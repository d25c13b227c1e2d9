package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// ReportService aggregates grades and attendance into report cards.
type ReportService struct {
	students   ports.StudentRepository
	grades     ports.GradeRepository
	attendance ports.AttendanceRepository
	classes    ports.ClassRepository
	logger     zerolog.Logger
}

func NewReportService(students ports.StudentRepository, grades ports.GradeRepository, attendance ports.AttendanceRepository, classes ports.ClassRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{
		students:   students,
		grades:     grades,
		attendance: attendance,
		classes:    classes,
		logger:     logger,
	}
}

// ReportCard builds the per-class grade averages and attendance percentages
// for one student. schoolID scopes the lookup for school-level callers.
func (s *ReportService) ReportCard(ctx context.Context, studentID, schoolID string) (*ports.ReportCard, error) {
	student, err := s.students.FindByID(ctx, studentID, schoolID)
	if err != nil {
		return nil, err
	}

	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	byClass := make(map[string]*ports.ClassReport)

	classReport := func(classID string) *ports.ClassReport {
		if r, ok := byClass[classID]; ok {
			return r
		}
		r := &ports.ClassReport{ClassID: classID}
		if class, err := s.classes.FindByID(ctx, classID); err == nil {
			r.ClassName = class.Name
			r.Subject = class.Subject
		}
		byClass[classID] = r
		return r
	}

	for _, g := range grades {
		r := classReport(g.ClassID)
		r.Grades = append(r.Grades, g.Value)
	}
	for _, a := range attendance {
		r := classReport(a.ClassID)
		r.AttendanceTotal++
		if a.Status == domain.AttendancePresent {
			r.AttendancePresent++
		}
	}

	classes := make([]ports.ClassReport, 0, len(byClass))
	for _, r := range byClass {
		if n := len(r.Grades); n > 0 {
			sum := 0.0
			for _, v := range r.Grades {
				sum += v
			}
			r.Average = sum / float64(n)
		}
		if r.AttendanceTotal > 0 {
			r.AttendancePercentage = float64(r.AttendancePresent) / float64(r.AttendanceTotal) * 100
		}
		classes = append(classes, *r)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ClassID < classes[j].ClassID })

	return &ports.ReportCard{
		StudentID:   student.ID,
		StudentName: student.Name,
		Classes:     classes,
	}, nil
}

// ClassReport builds one row per enrolled student: grade average and
// attendance for the class. A class outside the caller's school scope
// reads as not found.
func (s *ReportService) ClassReport(ctx context.Context, classID, schoolID string) (*ports.ClassSummary, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if schoolID != "" && class.SchoolID != schoolID {
		return nil, domain.ErrClassNotFound
	}

	roster, _, err := s.students.List(ctx, ports.StudentFilter{
		SchoolID: class.SchoolID,
		ClassID:  classID,
		Page:     1,
	})
	if err != nil {
		return nil, err
	}

	grades, err := s.grades.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	gradesByStudent := make(map[string][]float64)
	for _, g := range grades {
		gradesByStudent[g.StudentID] = append(gradesByStudent[g.StudentID], g.Value)
	}

	rows := make([]ports.StudentSummary, 0, len(roster))
	for _, st := range roster {
		row := ports.StudentSummary{
			StudentID:   st.ID,
			StudentName: st.Name,
			Grades:      gradesByStudent[st.ID],
		}
		if n := len(row.Grades); n > 0 {
			sum := 0.0
			for _, v := range row.Grades {
				sum += v
			}
			row.Average = sum / float64(n)
		}

		records, err := s.attendance.ListByStudent(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range records {
			if a.ClassID != classID {
				continue
			}
			row.AttendanceTotal++
			if a.Status == domain.AttendancePresent {
				row.AttendancePresent++
			}
		}
		if row.AttendanceTotal > 0 {
			row.AttendancePercentage = float64(row.AttendancePresent) / float64(row.AttendanceTotal) * 100
		}

		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StudentName < rows[j].StudentName })

	return &ports.ClassSummary{
		ClassID:   class.ID,
		ClassName: class.Name,
		Subject:   class.Subject,
		Students:  rows,
	}, nil
}
