package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// RelationshipService keeps the client relationship graph symmetric:
// every add and remove touches the forward edge and its mirror together.
type RelationshipService interface {
	Add(ctx context.Context, clientID, relatedClientID string, relType domain.RelationType) error
	Remove(ctx context.Context, relationshipID string) error
	ListByClient(ctx context.Context, clientID string) ([]domain.Relationship, error)
}
