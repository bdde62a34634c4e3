package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. Called
// once at startup; index creation is idempotent.
func EnsureIndexes(ctx context.Context, client *mongo.Client, db *mongo.Database) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"advisors", NewAdvisorRepository(db).EnsureIndexes},
		{"clients", NewClientRepository(db).EnsureIndexes},
		{"relationships", NewRelationshipRepository(client, db).EnsureIndexes},
		{"documents", NewDocumentRepository(db).EnsureIndexes},
	}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", s.name, err)
		}
	}
	return nil
}
