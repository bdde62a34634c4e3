package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// ClientRepository persists CRM contacts.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, limit int64) ([]domain.Client, error)
}
