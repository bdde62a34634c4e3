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
	"github.com/rutamundi/backoffice/internal/core/ports"
)

const collectionAdvisors = "advisors"

type AdvisorRepository struct {
	col *mongo.Collection
}

func NewAdvisorRepository(db *mongo.Database) *AdvisorRepository {
	return &AdvisorRepository{col: db.Collection(collectionAdvisors)}
}

type advisorDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d advisorDoc) toDomain() *domain.Advisor {
	return &domain.Advisor{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.AdvisorRole(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create inserts a new advisor; duplicate emails map to ErrAdvisorExists.
func (r *AdvisorRepository) Create(ctx context.Context, advisor *domain.Advisor) (*domain.Advisor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, advisorDoc{
		Name:         advisor.Name,
		Email:        advisor.Email,
		PasswordHash: advisor.PasswordHash,
		Role:         string(advisor.Role),
		CreatedAt:    advisor.CreatedAt,
		UpdatedAt:    advisor.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAdvisorExists
		}
		return nil, fmt.Errorf("insert advisor: %w", err)
	}

	created := *advisor
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *AdvisorRepository) FindByID(ctx context.Context, id string) (*domain.Advisor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdvisorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc advisorDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdvisorNotFound
		}
		return nil, fmt.Errorf("find advisor: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdvisorRepository) FindByEmail(ctx context.Context, email string) (*domain.Advisor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc advisorDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdvisorNotFound
		}
		return nil, fmt.Errorf("find advisor by email: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies the non-empty fields of update to the advisor row.
func (r *AdvisorRepository) Update(ctx context.Context, id string, update ports.AdvisorUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdvisorNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Role != "" {
		set["role"] = string(update.Role)
	}
	if update.PasswordHash != "" {
		set["password_hash"] = update.PasswordHash
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update advisor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdvisorNotFound
	}
	return nil
}

func (r *AdvisorRepository) List(ctx context.Context) ([]domain.Advisor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list advisors: %w", err)
	}
	defer cursor.Close(ctx)

	var advisors []domain.Advisor
	for cursor.Next(ctx) {
		var doc advisorDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode advisor: %w", err)
		}
		advisors = append(advisors, *doc.toDomain())
	}
	return advisors, cursor.Err()
}

// EnsureIndexes creates the unique email index.
func (r *AdvisorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
