package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/metrics"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/service"
)

// LeadHandler receives public contact-form submissions. This is the one
// unauthenticated write endpoint, so it reveals nothing about what
// happened server-side: a throttled duplicate gets the same answer as a
// fresh lead.
type LeadHandler struct {
	service ports.LeadService
}

func NewLeadHandler(service ports.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

type leadRequest struct {
	FirstName          string   `json:"firstName" validate:"required"`
	LastName           string   `json:"lastName" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone"`
	Destination        string   `json:"destination"`
	TravelDate         string   `json:"travelDate"`
	TravelersInfo      string   `json:"travelers"`
	ServiceTypes       []string `json:"serviceTypes"`
	Preferences        string   `json:"preferences"`
	AdditionalComments string   `json:"additionalComments"`
}

type leadResponse struct {
	Success bool `json:"success"`
}

// Submit handles POST /api/contact.
//
// @Summary      Submit a travel inquiry
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      leadRequest  true  "Contact form fields"
// @Success      200   {object}  leadResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/contact [post]
func (h *LeadHandler) Submit(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		metrics.LeadsReceivedTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LeadsReceivedTotal.WithLabelValues("invalid").Inc()
		return err
	}

	client, err := h.service.Submit(c.Request().Context(), ports.LeadInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Phone:              req.Phone,
		Destination:        req.Destination,
		TravelDate:         req.TravelDate,
		TravelersInfo:      req.TravelersInfo,
		ServiceTypes:       req.ServiceTypes,
		Preferences:        req.Preferences,
		AdditionalComments: req.AdditionalComments,
	})
	if err != nil {
		if errors.Is(err, service.ErrLeadIncomplete) {
			metrics.LeadsReceivedTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	if client == nil {
		metrics.LeadsReceivedTotal.WithLabelValues("duplicate").Inc()
	} else {
		metrics.LeadsReceivedTotal.WithLabelValues("created").Inc()
	}
	return c.JSON(http.StatusOK, leadResponse{Success: true})
}
