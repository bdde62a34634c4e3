package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/metrics"
)

// RelationshipHandler manages the symmetric relationship graph between
// clients.
type RelationshipHandler struct {
	service ports.RelationshipService
}

func NewRelationshipHandler(service ports.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

type addRelationshipRequest struct {
	RelatedClientID string `json:"related_client_id" validate:"required"`
	RelationType    string `json:"relation_type" validate:"required"`
}

// Add handles POST /admin/clients/:id/relationships. Both the forward
// edge and its mirror are written in the same call.
func (h *RelationshipHandler) Add(c echo.Context) error {
	var req addRelationshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.Add(c.Request().Context(), c.Param("id"), req.RelatedClientID, domain.RelationType(req.RelationType))
	if err != nil {
		return err
	}

	metrics.RelationshipMutationsTotal.WithLabelValues("add").Inc()
	return c.NoContent(http.StatusCreated)
}

// List handles GET /admin/clients/:id/relationships.
func (h *RelationshipHandler) List(c echo.Context) error {
	relationships, err := h.service.ListByClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"relationships": relationships})
}

// Remove handles DELETE /admin/relationships/:id. Removing an already
// removed edge is a success: the end state is the same.
func (h *RelationshipHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.RelationshipMutationsTotal.WithLabelValues("remove").Inc()
	return c.NoContent(http.StatusNoContent)
}
