package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// GradeHandler handles HTTP requests for grades and attendance.
type GradeHandler struct {
	service ports.GradeService
}

func NewGradeHandler(service ports.GradeService) *GradeHandler {
	return &GradeHandler{service: service}
}

// RecordGrade handles POST /api/v1/grades.
//
// @Summary      Record a grade
// @Tags         grades
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordGradeRequest  true  "Grade details"
// @Success      201   {object}  gradeResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/grades [post]
func (h *GradeHandler) RecordGrade(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordGradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	grade, err := h.service.RecordGrade(c.Request().Context(), ports.RecordGradeInput{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Value:     req.Value,
		Term:      req.Term,
		SchoolID:  schoolScope(claims),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toGradeResponse(grade))
}

// ListStudentGrades handles GET /api/v1/students/:id/grades.
//
// @Summary      List a student's grades
// @Tags         grades
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student ID"
// @Success      200  {array}   gradeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/students/{id}/grades [get]
func (h *GradeHandler) ListStudentGrades(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	grades, err := h.service.ListStudentGrades(c.Request().Context(), c.Param("id"), schoolScope(claims))
	if err != nil {
		return err
	}

	out := make([]gradeResponse, len(grades))
	for i, g := range grades {
		out[i] = toGradeResponse(g)
	}
	return c.JSON(http.StatusOK, out)
}

// RecordAttendance handles POST /api/v1/attendance.
//
// @Summary      Record attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordAttendanceRequest  true  "Attendance record"
// @Success      201   {object}  attendanceResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/attendance [post]
func (h *GradeHandler) RecordAttendance(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	record, err := h.service.RecordAttendance(c.Request().Context(), ports.RecordAttendanceInput{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      req.Date,
		Status:    domain.AttendanceStatus(req.Status),
		SchoolID:  schoolScope(claims),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, attendanceResponse{
		ID:        record.ID,
		StudentID: record.StudentID,
		ClassID:   record.ClassID,
		Date:      record.Date,
		Status:    string(record.Status),
	})
}

// ListClassAttendance handles GET /api/v1/classes/:id/attendance.
//
// @Summary      List a class's attendance for a date
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Class ID"
// @Param        date  query     string  true   "Date (RFC 3339)"
// @Success      200   {array}   attendanceResponse
// @Router       /api/v1/classes/{id}/attendance [get]
func (h *GradeHandler) ListClassAttendance(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	date, err := time.Parse(time.RFC3339, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "date must be RFC 3339"})
	}

	records, err := h.service.ListClassAttendance(c.Request().Context(), c.Param("id"), schoolScope(claims), date)
	if err != nil {
		return err
	}

	out := make([]attendanceResponse, len(records))
	for i, r := range records {
		out[i] = attendanceResponse{
			ID:        r.ID,
			StudentID: r.StudentID,
			ClassID:   r.ClassID,
			Date:      r.Date,
			Status:    string(r.Status),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// ListClasses handles GET /api/v1/classes. School-scoped callers see their
// own school's classes; platform and municipal roles name one explicitly.
//
// @Summary      List a school's classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        school_id  query     string  false  "School (platform roles only)"
// @Success      200        {array}   classResponse
// @Failure      400        {object}  errorResponse
// @Router       /api/v1/classes [get]
func (h *GradeHandler) ListClasses(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	schoolID := schoolScope(claims)
	if schoolID == "" {
		schoolID = c.QueryParam("school_id")
	}
	if schoolID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "school_id is required"})
	}

	classes, err := h.service.ListClasses(c.Request().Context(), schoolID)
	if err != nil {
		return err
	}

	out := make([]classResponse, len(classes))
	for i, cl := range classes {
		out[i] = classResponse{
			ID:        cl.ID,
			Name:      cl.Name,
			Subject:   cl.Subject,
			SchoolID:  cl.SchoolID,
			TeacherID: cl.TeacherID,
			Year:      cl.Year,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func toGradeResponse(g *domain.Grade) gradeResponse {
	return gradeResponse{
		ID:        g.ID,
		StudentID: g.StudentID,
		ClassID:   g.ClassID,
		Value:     g.Value,
		Term:      g.Term,
		CreatedAt: g.CreatedAt,
	}
}
