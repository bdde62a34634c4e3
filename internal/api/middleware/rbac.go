package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const homePath = "/admin"

// RequireRoles restricts a route group to the given roles. Authenticated
// advisors outside the set are sent back to the admin home page rather
// than shown an error.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.Redirect(http.StatusSeeOther, homePath)
			}
			return next(c)
		}
	}
}
