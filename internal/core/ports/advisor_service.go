package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// Actor identifies the authenticated advisor performing an operation,
// as resolved by the access gate.
type Actor struct {
	AdvisorID string
	Role      domain.AdvisorRole
}

// CreateAdvisorInput holds the fields for a new staff account.
type CreateAdvisorInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.AdvisorRole
}

// UpdateAdvisorInput holds a role and/or password change for an
// existing account. Empty fields are ignored.
type UpdateAdvisorInput struct {
	AdvisorID string
	Role      domain.AdvisorRole
	Password  string
}

// AdvisorService manages staff accounts under the role rules:
// DEVELOPER may manage anyone, MANAGEMENT only AGENT accounts, and no
// actor may change their own role.
type AdvisorService interface {
	Create(ctx context.Context, actor Actor, input CreateAdvisorInput) (*domain.Advisor, error)
	Update(ctx context.Context, actor Actor, input UpdateAdvisorInput) error
	List(ctx context.Context) ([]domain.Advisor, error)
}
