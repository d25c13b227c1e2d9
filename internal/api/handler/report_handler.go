package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/core/ports"
)

// ReportHandler handles HTTP requests for aggregated reports.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ReportCard handles GET /api/v1/reports/report-card.
//
// @Summary      Student report card
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        student_id  query     string  true  "Student ID"
// @Success      200         {object}  reportCardResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/v1/reports/report-card [get]
func (h *ReportHandler) ReportCard(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	studentID := c.QueryParam("student_id")
	if studentID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "student_id is required"})
	}

	card, err := h.service.ReportCard(c.Request().Context(), studentID, schoolScope(claims))
	if err != nil {
		return err
	}

	classes := make([]classReportResponse, len(card.Classes))
	for i, cl := range card.Classes {
		classes[i] = classReportResponse{
			ClassID:              cl.ClassID,
			ClassName:            cl.ClassName,
			Subject:              cl.Subject,
			Grades:               cl.Grades,
			Average:              cl.Average,
			AttendanceTotal:      cl.AttendanceTotal,
			AttendancePresent:    cl.AttendancePresent,
			AttendancePercentage: cl.AttendancePercentage,
		}
	}
	return c.JSON(http.StatusOK, reportCardResponse{
		StudentID:   card.StudentID,
		StudentName: card.StudentName,
		Classes:     classes,
	})
}

// ClassReport handles GET /api/v1/reports/class-report.
//
// @Summary      Class report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        class_id  query     string  true  "Class ID"
// @Success      200       {object}  classSummaryResponse
// @Failure      404       {object}  errorResponse
// @Router       /api/v1/reports/class-report [get]
func (h *ReportHandler) ClassReport(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	classID := c.QueryParam("class_id")
	if classID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "class_id is required"})
	}

	summary, err := h.service.ClassReport(c.Request().Context(), classID, schoolScope(claims))
	if err != nil {
		return err
	}

	students := make([]studentSummaryResponse, len(summary.Students))
	for i, row := range summary.Students {
		students[i] = studentSummaryResponse{
			StudentID:            row.StudentID,
			StudentName:          row.StudentName,
			Grades:               row.Grades,
			Average:              row.Average,
			AttendanceTotal:      row.AttendanceTotal,
			AttendancePresent:    row.AttendancePresent,
			AttendancePercentage: row.AttendancePercentage,
		}
	}
	return c.JSON(http.StatusOK, classSummaryResponse{
		ClassID:   summary.ClassID,
		ClassName: summary.ClassName,
		Subject:   summary.Subject,
		Students:  students,
	})
}
