package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/api/middleware"
)

// PortalHandler serves the navigation endpoints behind the route
// authorization gate. The actual dashboards are rendered client-side; these
// endpoints confirm the area the session landed in and echo the profile the
// front end needs to bootstrap.
type PortalHandler struct{}

func NewPortalHandler() *PortalHandler {
	return &PortalHandler{}
}

type portalAreaResponse struct {
	Area string `json:"area"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Area responds for any path inside an allowed area prefix. The gate has
// already verified the session and path by the time this runs.
func (h *PortalHandler) Area(area string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := portalAreaResponse{Area: area}
		if claims := middleware.ClaimsFrom(c); claims != nil {
			resp.Name = claims.Name
			resp.Role = string(claims.Role)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// Login serves the public login page endpoint the gate redirects to. The
// "from" query parameter is passed through for the front end to return to.
func (h *PortalHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"page": "login",
		"from": c.QueryParam("from"),
	})
}
