package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// StudentHandler handles HTTP requests for student enrollment and lookup.
type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Create handles POST /api/v1/students.
//
// @Summary      Enroll a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStudentRequest  true  "Student details"
// @Success      201   {object}  studentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	// School-scoped callers always enroll into their own school.
	schoolID := req.SchoolID
	if scope := schoolScope(claims); scope != "" {
		schoolID = scope
	}
	if schoolID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "school_id is required"})
	}

	student, err := h.service.CreateStudent(c.Request().Context(), ports.CreateStudentInput{
		Name:       req.Name,
		Enrollment: req.Enrollment,
		SchoolID:   schoolID,
		ClassID:    req.ClassID,
		GuardianID: req.GuardianID,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toStudentResponse(student))
}

// Get handles GET /api/v1/students/:id.
//
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student ID"
// @Success      200  {object}  studentResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	student, err := h.service.GetStudent(c.Request().Context(), c.Param("id"), schoolScope(claims))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStudentResponse(student))
}

// List handles GET /api/v1/students.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        class_id  query     string  false  "Filter by class"
// @Param        search    query     string  false  "Partial match on name or enrollment"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listStudentsResponse
// @Router       /api/v1/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListStudents(c.Request().Context(), ports.ListStudentsInput{
		SchoolID: schoolScope(claims),
		ClassID:  c.QueryParam("class_id"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]studentResponse, len(result.Items))
	for i, s := range result.Items {
		items[i] = toStudentResponse(s)
	}
	return c.JSON(http.StatusOK, listStudentsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func toStudentResponse(s *domain.Student) studentResponse {
	return studentResponse{
		ID:         s.ID,
		Name:       s.Name,
		Enrollment: s.Enrollment,
		SchoolID:   s.SchoolID,
		ClassID:    s.ClassID,
		GuardianID: s.GuardianID,
		BirthDate:  s.BirthDate,
		CreatedAt:  s.CreatedAt,
	}
}
