package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/redeescolar/school-portal/internal/api/middleware"
	"github.com/redeescolar/school-portal/internal/core/domain"
)

// ctxClaims extracts the session claims injected by the Auth middleware and
// performs a fast-fail check before any service call: school-scoped roles
// must carry a school reference and municipal roles a municipality
// reference. A token without them is structurally valid but unusable.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	switch claims.Role {
	case domain.RoleDirector, domain.RoleCoordinator, domain.RoleSecretary, domain.RoleTeacher:
		if claims.SchoolID == "" {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing school identity")
		}
	case domain.RoleMunicipalManager, domain.RoleMunicipalOperator:
		if claims.MunicipalityID == "" {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing municipality identity")
		}
	}

	return claims, nil
}

// schoolScope returns the school filter for the caller: scoped roles see
// only their own school, platform and municipal roles see everything.
func schoolScope(claims *domain.SessionClaims) string {
	switch claims.Role {
	case domain.RoleDirector, domain.RoleCoordinator, domain.RoleSecretary, domain.RoleTeacher:
		return claims.SchoolID
	}
	return ""
}
