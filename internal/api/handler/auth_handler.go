package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/internal/core/session"
	"github.com/rutamundi/backoffice/internal/metrics"
)

// AuthHandler handles advisor login and logout. On success the session
// token travels in an HttpOnly cookie, never in the response body.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Advisor *domain.Advisor `json:"advisor"`
}

// Login authenticates an advisor and sets the session cookie.
//
// @Summary      Advisor login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, advisor, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetCookie(h.sessionCookie(token, int(session.TTL.Seconds())))
	return c.JSON(http.StatusOK, loginResponse{Advisor: advisor})
}

// Logout clears the session cookie. Tokens are self-contained, so there
// is nothing to revoke server-side.
//
// @Summary      Advisor logout
// @Tags         auth
// @Success      204
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
