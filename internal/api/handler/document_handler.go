package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// DocumentHandler manages encrypted travel documents. Document numbers
// arrive in plaintext, are encrypted before persistence, and only leave
// again through the decrypting list endpoint.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

type addDocumentRequest struct {
	Type             string     `json:"type" validate:"omitempty,oneof=PASSPORT VISA TSA_GLOBAL_ENTRY"`
	FullName         string     `json:"full_name"`
	Number           string     `json:"number" validate:"required"`
	CountryOfIssue   string     `json:"country_of_issue"`
	DateOfIssue      *time.Time `json:"date_of_issue"`
	DateOfExpiration *time.Time `json:"date_of_expiration"`
	Sex              string     `json:"sex"`
	PlaceOfBirth     string     `json:"place_of_birth"`
	Nationality      string     `json:"nationality"`
	Citizenship      string     `json:"citizenship"`
}

// Add handles POST /admin/clients/:id/documents.
func (h *DocumentHandler) Add(c echo.Context) error {
	var req addDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	doc, err := h.service.Add(c.Request().Context(), ports.AddDocumentInput{
		ClientID:         c.Param("id"),
		Type:             domain.DocumentType(req.Type),
		FullName:         req.FullName,
		Number:           req.Number,
		CountryOfIssue:   req.CountryOfIssue,
		DateOfIssue:      req.DateOfIssue,
		DateOfExpiration: req.DateOfExpiration,
		Sex:              req.Sex,
		PlaceOfBirth:     req.PlaceOfBirth,
		Nationality:      req.Nationality,
		Citizenship:      req.Citizenship,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doc)
}

// List handles GET /admin/clients/:id/documents. Numbers come back
// decrypted, or as a placeholder for records the current key cannot open.
func (h *DocumentHandler) List(c echo.Context) error {
	docs, err := h.service.ListByClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}

// Remove handles DELETE /admin/documents/:id.
func (h *DocumentHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
