package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// RelationshipRepository persists symmetric relationship pairs.
//
// CreatePair and DeletePair MUST apply both rows inside one
// transactional boundary: a concurrent reader may observe the pair or
// nothing, never exactly one side. CreatePair treats a duplicate tuple
// as already-satisfied (the store enforces uniqueness on
// (client_id, related_client_id, relation_type)), and DeletePair
// matches each side by full tuple equality, never by row id adjacency.
type RelationshipRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Relationship, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Relationship, error)
	CreatePair(ctx context.Context, forward, reverse domain.Relationship) error
	DeletePair(ctx context.Context, forward, reverse domain.RelationshipTuple) error
}
