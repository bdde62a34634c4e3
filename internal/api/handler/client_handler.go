package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// ClientHandler exposes the CRM contact operations.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type addNoteRequest struct {
	Channel string `json:"channel"`
	Note    string `json:"note" validate:"required"`
}

type addTaskRequest struct {
	Title   string     `json:"title" validate:"required"`
	Status  string     `json:"status"`
	DueDate *time.Time `json:"due_date"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type addLoyaltyRequest struct {
	Category         string `json:"category" validate:"omitempty,oneof=HOTEL AIRLINE CRUISE CAR_RENTAL RAIL_BUS"`
	ProgramName      string `json:"program_name" validate:"required"`
	MembershipNumber string `json:"membership_number"`
}

// List handles GET /admin/clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"clients": clients})
}

// Create handles POST /admin/clients.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), ports.CreateClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Profile handles GET /admin/clients/:id — the full detail view with
// relationships, loyalty programs, notes, and tasks.
func (h *ClientHandler) Profile(c echo.Context) error {
	profile, err := h.service.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// AddNote handles POST /admin/clients/:id/notes.
func (h *ClientHandler) AddNote(c echo.Context) error {
	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	note, err := h.service.AddNote(c.Request().Context(), c.Param("id"), req.Channel, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

// AddTask handles POST /admin/clients/:id/tasks.
func (h *ClientHandler) AddTask(c echo.Context) error {
	var req addTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.service.AddTask(c.Request().Context(), ports.AddTaskInput{
		ClientID: c.Param("id"),
		Title:    req.Title,
		Status:   req.Status,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTaskStatus handles PATCH /admin/tasks/:id.
func (h *ClientHandler) UpdateTaskStatus(c echo.Context) error {
	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.UpdateTaskStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddLoyalty handles POST /admin/clients/:id/loyalty.
func (h *ClientHandler) AddLoyalty(c echo.Context) error {
	var req addLoyaltyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	program, err := h.service.AddLoyalty(c.Request().Context(), ports.AddLoyaltyInput{
		ClientID:         c.Param("id"),
		Category:         domain.LoyaltyCategory(req.Category),
		ProgramName:      req.ProgramName,
		MembershipNumber: req.MembershipNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, program)
}

// RemoveLoyalty handles DELETE /admin/loyalty/:id.
func (h *ClientHandler) RemoveLoyalty(c echo.Context) error {
	if err := h.service.RemoveLoyalty(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
