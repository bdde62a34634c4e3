package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// ctxActor extracts the advisor identity injected by the session gate.
// Presence of both fields proves the gate ran; a route reached without
// them is a wiring mistake and is rejected outright.
func ctxActor(c echo.Context) (ports.Actor, error) {
	advisorID, _ := c.Get("advisor_id").(string)
	role, _ := c.Get("role").(string)
	if advisorID == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session claims")
	}
	return ports.Actor{AdvisorID: advisorID, Role: domain.AdvisorRole(role)}, nil
}
