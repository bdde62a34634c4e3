package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// newClientSentinel is the placeholder value the relationship form uses
// for "create a new client first"; it is never a persistable target.
const newClientSentinel = "__new__"

// RelationshipService maintains the symmetric relationship graph. Every
// mutation writes or removes a forward edge and its mirror
// (inverse-typed) edge together; the repository provides the
// transactional boundary so observers never see half a pair.
type RelationshipService struct {
	repo    ports.RelationshipRepository
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewRelationshipService(repo ports.RelationshipRepository, clients ports.ClientRepository, log zerolog.Logger) *RelationshipService {
	return &RelationshipService{repo: repo, clients: clients, log: log}
}

// Add creates the (clientID → relatedClientID, relType) edge and its
// mirror. Re-adding an existing pair is a silent no-op, so two racing
// calls for the same pair converge on exactly one forward and one
// reverse row.
func (s *RelationshipService) Add(ctx context.Context, clientID, relatedClientID string, relType domain.RelationType) error {
	if relatedClientID == "" || relatedClientID == newClientSentinel || relatedClientID == clientID {
		return domain.ErrInvalidRelationshipTarget
	}
	if !relType.Valid() {
		return domain.ErrInvalidRelationshipTarget
	}
	if _, err := s.clients.FindByID(ctx, relatedClientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return domain.ErrInvalidRelationshipTarget
		}
		return fmt.Errorf("add relationship: %w", err)
	}

	now := time.Now().UTC()
	forward := domain.Relationship{
		ClientID:        clientID,
		RelatedClientID: relatedClientID,
		Type:            relType,
		CreatedAt:       now,
	}
	reverse := domain.Relationship{
		ClientID:        relatedClientID,
		RelatedClientID: clientID,
		Type:            relType.Inverse(),
		CreatedAt:       now,
	}

	if err := s.repo.CreatePair(ctx, forward, reverse); err != nil {
		return fmt.Errorf("add relationship: %w", err)
	}

	s.log.Info().
		Str("client_id", clientID).
		Str("related_client_id", relatedClientID).
		Str("type", string(relType)).
		Msg("relationship pair created")
	return nil
}

// Remove deletes the edge with the given id together with its mirror,
// matched by tuple equality on each side. An unknown id means the pair
// is already gone and is treated as success.
func (s *RelationshipService) Remove(ctx context.Context, relationshipID string) error {
	existing, err := s.repo.FindByID(ctx, relationshipID)
	if err != nil {
		if errors.Is(err, domain.ErrRelationshipNotFound) {
			return nil
		}
		return fmt.Errorf("remove relationship: %w", err)
	}

	if err := s.repo.DeletePair(ctx, existing.Tuple(), existing.Mirror()); err != nil {
		return fmt.Errorf("remove relationship: %w", err)
	}

	s.log.Info().
		Str("client_id", existing.ClientID).
		Str("related_client_id", existing.RelatedClientID).
		Str("type", string(existing.Type)).
		Msg("relationship pair removed")
	return nil
}

// ListByClient returns the edges whose forward side is clientID.
func (s *RelationshipService) ListByClient(ctx context.Context, clientID string) ([]domain.Relationship, error) {
	return s.repo.ListByClient(ctx, clientID)
}
