package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

const collectionRelationships = "client_relationships"

// RelationshipRepository persists symmetric relationship pairs. It
// holds the mongo.Client as well as the collection because paired
// writes and deletes run inside multi-document transactions.
type RelationshipRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewRelationshipRepository(client *mongo.Client, db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{client: client, col: db.Collection(collectionRelationships)}
}

type relationshipDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ClientID        string             `bson:"client_id"`
	RelatedClientID string             `bson:"related_client_id"`
	RelationType    string             `bson:"relation_type"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d relationshipDoc) toDomain() domain.Relationship {
	return domain.Relationship{
		ID:              d.ID.Hex(),
		ClientID:        d.ClientID,
		RelatedClientID: d.RelatedClientID,
		Type:            domain.RelationType(d.RelationType),
		CreatedAt:       d.CreatedAt,
	}
}

func tupleFilter(t domain.RelationshipTuple) bson.M {
	return bson.M{
		"client_id":         t.ClientID,
		"related_client_id": t.RelatedClientID,
		"relation_type":     string(t.Type),
	}
}

func (r *RelationshipRepository) FindByID(ctx context.Context, id string) (*domain.Relationship, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRelationshipNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc relationshipDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRelationshipNotFound
		}
		return nil, fmt.Errorf("find relationship: %w", err)
	}
	rel := doc.toDomain()
	return &rel, nil
}

func (r *RelationshipRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Relationship, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Relationship
	for cursor.Next(ctx) {
		var doc relationshipDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode relationship: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

// CreatePair inserts the forward and reverse edges inside one
// transaction. A duplicate-key error on either side means that edge
// already exists and is skipped, which makes racing adds for the same
// pair converge on exactly one forward and one reverse row.
func (r *RelationshipRepository) CreatePair(ctx context.Context, forward, reverse domain.Relationship) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("create relationship pair: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, rel := range []domain.Relationship{forward, reverse} {
			_, err := r.col.InsertOne(sc, relationshipDoc{
				ClientID:        rel.ClientID,
				RelatedClientID: rel.RelatedClientID,
				RelationType:    string(rel.Type),
				CreatedAt:       rel.CreatedAt,
			})
			if err != nil {
				if mongo.IsDuplicateKeyError(err) {
					continue
				}
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("create relationship pair: %w", err)
	}
	return nil
}

// DeletePair removes the forward and reverse edges, matched by full
// tuple equality, inside one transaction. Missing rows are fine — the
// delete is idempotent.
func (r *RelationshipRepository) DeletePair(ctx context.Context, forward, reverse domain.RelationshipTuple) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("delete relationship pair: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		_, err := r.col.DeleteMany(sc, bson.M{"$or": bson.A{tupleFilter(forward), tupleFilter(reverse)}})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("delete relationship pair: %w", err)
	}
	return nil
}

// EnsureIndexes creates the uniqueness constraint the pair idempotency
// relies on: at most one row per (client, related client, type) tuple.
func (r *RelationshipRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "client_id", Value: 1},
				{Key: "related_client_id", Value: 1},
				{Key: "relation_type", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
