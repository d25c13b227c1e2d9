package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/redeescolar/school-portal/internal/api/metrics"
	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
	"github.com/redeescolar/school-portal/internal/core/service"
)

// SessionCookie is the cookie carrying the session token on portal pages.
const SessionCookie = "token"

// claimsKey is the echo context key the gate and API middleware store
// verified claims under.
const claimsKey = "session_claims"

// Gate is the route authorization gate for portal navigation. It runs before
// every page handler: public prefixes pass through, everything else needs a
// valid session whose role covers the requested path. Unauthenticated or
// stale sessions are redirected to /login with the original path preserved;
// authenticated users outside their area are sent to their own landing
// prefix. For a fixed (token, path) pair the decision never changes.
func Gate(codec ports.SessionCodec, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if domain.PublicPath(path) {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				metrics.GateDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return redirectToLogin(c, path)
			}

			claims, err := codec.Verify(token)
			if err != nil {
				// Expired and tampered tokens log apart but redirect alike.
				reason := "invalid"
				if errors.Is(err, service.ErrTokenExpired) {
					reason = "expired"
				}
				logger.Debug().Str("path", path).Str("reason", reason).Msg("gate rejected token")
				metrics.TokenFailuresTotal.WithLabelValues(reason).Inc()
				metrics.GateDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return redirectToLogin(c, path)
			}

			if !domain.PathAllowed(claims.Role, path) {
				target := domain.DefaultPrefix(claims.Role)
				if target == "" {
					metrics.GateDecisionsTotal.WithLabelValues("redirect_login").Inc()
					return redirectToLogin(c, path)
				}
				metrics.GateDecisionsTotal.WithLabelValues("redirect_default").Inc()
				return c.Redirect(http.StatusSeeOther, target)
			}

			StoreClaims(c, claims)
			metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

// extractToken reads the session cookie first, then the Authorization
// header, so browser navigation and API clients share one gate.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return bearerToken(c.Request().Header.Get("Authorization"))
}

func redirectToLogin(c echo.Context, from string) error {
	return c.Redirect(http.StatusSeeOther, "/login?from="+url.QueryEscape(from))
}

// ClaimsFrom returns the verified session claims stored by the gate or the
// API auth middleware, or nil when the request never passed either.
func ClaimsFrom(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(claimsKey).(*domain.SessionClaims)
	return claims
}

// StoreClaims places verified claims on the request context. Exposed for
// handler tests that bypass the middleware chain.
func StoreClaims(c echo.Context, claims *domain.SessionClaims) {
	c.Set(claimsKey, claims)
}
