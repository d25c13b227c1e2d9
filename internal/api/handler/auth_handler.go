package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/api/metrics"
	"github.com/redeescolar/school-portal/internal/api/middleware"
	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

// AuthHandler handles HTTP requests for login and account provisioning.
type AuthHandler struct {
	authService ports.AuthService
	cookieTTL   time.Duration
}

func NewAuthHandler(authService ports.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL}
}

// Login authenticates by CPF and password and returns a session token plus
// the redacted profile. The token is also set as the session cookie so the
// portal gate picks it up on the next navigation.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.CPF, req.Password)
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		// one message for every credential failure
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cookieTTL / time.Second),
	})

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: profileOf(user)})
}

// Logout clears the session cookie. The server holds no session state, so
// discarding the token is all there is to it.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.NoContent(http.StatusNoContent)
}

// ProvisionUser creates a portal account. Requires the manage_users
// permission; the creator is recorded on the new account.
//
// @Summary      Provision a user account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionUserRequest  true  "Account details"
// @Success      201   {object}  provisionUserResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/v1/users [post]
func (h *AuthHandler) ProvisionUser(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req provisionUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown role"})
	}

	user, err := h.authService.Provision(c.Request().Context(), ports.ProvisionUserInput{
		CPF:      req.CPF,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
		Affiliation: domain.Affiliation{
			MunicipalityID:   req.MunicipalityID,
			MunicipalityName: req.MunicipalityName,
			SchoolID:         req.SchoolID,
			SchoolName:       req.SchoolName,
		},
		CreatedBy: claims.Subject,
	})
	if err != nil {
		return err
	}

	metrics.UsersProvisionedTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, provisionUserResponse{User: profileOf(user)})
}

// ListUsers returns the accounts visible to the caller. Institution-scoped
// callers only ever see their own school or municipality regardless of the
// query parameters they send.
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role             query     string  false  "Filter by role"
// @Param        school_id        query     string  false  "Filter by school (platform roles only)"
// @Param        municipality_id  query     string  false  "Filter by municipality (platform roles only)"
// @Success      200  {object}  listUsersResponse
// @Router       /api/v1/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	filter := ports.UserFilter{
		Role:           domain.Role(c.QueryParam("role")),
		SchoolID:       c.QueryParam("school_id"),
		MunicipalityID: c.QueryParam("municipality_id"),
	}
	switch claims.Role {
	case domain.RoleDirector, domain.RoleCoordinator, domain.RoleSecretary, domain.RoleTeacher:
		filter.SchoolID = claims.SchoolID
		filter.MunicipalityID = ""
	case domain.RoleMunicipalManager, domain.RoleMunicipalOperator:
		filter.MunicipalityID = claims.MunicipalityID
	}

	users, err := h.authService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	out := make([]userProfile, len(users))
	for i, u := range users {
		out[i] = profileOf(u)
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: out})
}

// profileOf renders the redacted public view of a user.
func profileOf(user *domain.User) userProfile {
	perms := domain.PermissionsFor(user.Role)
	strs := make([]string, len(perms))
	for i, p := range perms {
		strs[i] = string(p)
	}
	return userProfile{
		ID:               user.ID,
		CPF:              user.CPF,
		Name:             user.Name,
		Email:            user.Email,
		Role:             string(user.Role),
		Permissions:      strs,
		MunicipalityID:   user.Affiliation.MunicipalityID,
		MunicipalityName: user.Affiliation.MunicipalityName,
		SchoolID:         user.Affiliation.SchoolID,
		SchoolName:       user.Affiliation.SchoolName,
	}
}
