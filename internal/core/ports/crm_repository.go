package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// LoyaltyRepository persists loyalty program memberships. Delete is
// idempotent: removing an unknown id is not an error.
type LoyaltyRepository interface {
	Create(ctx context.Context, program *domain.LoyaltyProgram) (*domain.LoyaltyProgram, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.LoyaltyProgram, error)
	Delete(ctx context.Context, id string) error
}

// NoteRepository persists communication log entries.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Note, error)
}

// TaskRepository persists client follow-up tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Task, error)
}
