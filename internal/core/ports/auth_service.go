package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// AuthService authenticates advisors and mints session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Advisor, error)
}
