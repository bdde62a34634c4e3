package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// DocumentRepository persists travel documents. Delete is idempotent.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.TravelDocument) (*domain.TravelDocument, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.TravelDocument, error)
	Delete(ctx context.Context, id string) error
}
