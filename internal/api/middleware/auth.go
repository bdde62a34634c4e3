package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/session"
)

const loginPath = "/admin/login"

// publicAdminPaths are the sub-paths under /admin reachable without a
// session.
var publicAdminPaths = []string{
	"/admin/login",
	"/admin/logout",
	"/admin/assets",
}

// SessionGate protects everything under /admin behind the advisor
// session cookie. Unauthenticated requests are redirected to the login
// page. Tokens issued before roles were embedded carry no role claim;
// for those the advisor record is re-read to resolve the current role,
// and a deleted advisor invalidates the session.
func SessionGate(codec *session.Codec, advisors ports.AdvisorRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !strings.HasPrefix(path, "/admin") {
				return next(c)
			}
			for _, p := range publicAdminPaths {
				if path == p || strings.HasPrefix(path, p+"/") {
					return next(c)
				}
			}

			cookie, err := c.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, loginPath)
			}

			claims := codec.Verify(cookie.Value)
			if claims == nil {
				return c.Redirect(http.StatusFound, loginPath)
			}

			role := string(claims.Role)
			if !claims.HasRole() {
				advisor, err := advisors.FindByID(c.Request().Context(), claims.AdvisorID)
				if err != nil {
					return c.Redirect(http.StatusFound, loginPath)
				}
				role = string(advisor.Role)
			}

			c.Set("advisor_id", claims.AdvisorID)
			c.Set("email", claims.Email)
			c.Set("role", role)

			return next(c)
		}
	}
}
