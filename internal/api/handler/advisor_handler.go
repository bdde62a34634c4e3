package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// AdvisorHandler handles staff account management. Routes using it sit
// behind the session gate and the DEVELOPER/MANAGEMENT role check; the
// finer rules (who may touch whom) live in the service.
type AdvisorHandler struct {
	service ports.AdvisorService
}

func NewAdvisorHandler(service ports.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

type createAdvisorRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=DEVELOPER MANAGEMENT AGENT"`
}

type updateAdvisorRequest struct {
	Role     string `json:"role" validate:"omitempty,oneof=DEVELOPER MANAGEMENT AGENT"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

// List handles GET /admin/users.
func (h *AdvisorHandler) List(c echo.Context) error {
	advisors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"advisors": advisors})
}

// Create handles POST /admin/users.
func (h *AdvisorHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createAdvisorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	advisor, err := h.service.Create(c.Request().Context(), actor, ports.CreateAdvisorInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.AdvisorRole(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, advisor)
}

// Update handles PATCH /admin/users/:id.
func (h *AdvisorHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateAdvisorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.service.Update(c.Request().Context(), actor, ports.UpdateAdvisorInput{
		AdvisorID: c.Param("id"),
		Role:      domain.AdvisorRole(req.Role),
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
