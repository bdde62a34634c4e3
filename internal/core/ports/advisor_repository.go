package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// AdvisorUpdate carries the mutable advisor fields; nil/empty members
// are left untouched.
type AdvisorUpdate struct {
	Role         domain.AdvisorRole
	PasswordHash string
}

// IsEmpty reports whether the update would change nothing.
func (u AdvisorUpdate) IsEmpty() bool {
	return u.Role == "" && u.PasswordHash == ""
}

// AdvisorRepository persists back-office staff accounts.
type AdvisorRepository interface {
	Create(ctx context.Context, advisor *domain.Advisor) (*domain.Advisor, error)
	FindByID(ctx context.Context, id string) (*domain.Advisor, error)
	FindByEmail(ctx context.Context, email string) (*domain.Advisor, error)
	Update(ctx context.Context, id string, update AdvisorUpdate) error
	List(ctx context.Context) ([]domain.Advisor, error)
}
