package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

const collectionTravelDocuments = "client_travel_documents"

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collectionTravelDocuments)}
}

type documentDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ClientID         string             `bson:"client_id"`
	Type             string             `bson:"type"`
	FullName         string             `bson:"full_name,omitempty"`
	EncryptedNumber  string             `bson:"encrypted_document_number"`
	NumberLast4      string             `bson:"number_last4"`
	CountryOfIssue   string             `bson:"country_of_issue,omitempty"`
	DateOfIssue      *time.Time         `bson:"date_of_issue,omitempty"`
	DateOfExpiration *time.Time         `bson:"date_of_expiration,omitempty"`
	Sex              string             `bson:"sex,omitempty"`
	PlaceOfBirth     string             `bson:"place_of_birth,omitempty"`
	Nationality      string             `bson:"nationality,omitempty"`
	Citizenship      string             `bson:"citizenship,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d documentDoc) toDomain() domain.TravelDocument {
	return domain.TravelDocument{
		ID:               d.ID.Hex(),
		ClientID:         d.ClientID,
		Type:             domain.DocumentType(d.Type),
		FullName:         d.FullName,
		EncryptedNumber:  d.EncryptedNumber,
		NumberLast4:      d.NumberLast4,
		CountryOfIssue:   d.CountryOfIssue,
		DateOfIssue:      d.DateOfIssue,
		DateOfExpiration: d.DateOfExpiration,
		Sex:              d.Sex,
		PlaceOfBirth:     d.PlaceOfBirth,
		Nationality:      d.Nationality,
		Citizenship:      d.Citizenship,
		CreatedAt:        d.CreatedAt,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.TravelDocument) (*domain.TravelDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, documentDoc{
		ClientID:         doc.ClientID,
		Type:             string(doc.Type),
		FullName:         doc.FullName,
		EncryptedNumber:  doc.EncryptedNumber,
		NumberLast4:      doc.NumberLast4,
		CountryOfIssue:   doc.CountryOfIssue,
		DateOfIssue:      doc.DateOfIssue,
		DateOfExpiration: doc.DateOfExpiration,
		Sex:              doc.Sex,
		PlaceOfBirth:     doc.PlaceOfBirth,
		Nationality:      doc.Nationality,
		Citizenship:      doc.Citizenship,
		CreatedAt:        doc.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert travel document: %w", err)
	}

	created := *doc
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DocumentRepository) ListByClient(ctx context.Context, clientID string) ([]domain.TravelDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list travel documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []domain.TravelDocument
	for cursor.Next(ctx) {
		var doc documentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode travel document: %w", err)
		}
		docs = append(docs, doc.toDomain())
	}
	return docs, cursor.Err()
}

// Delete removes a document by id; deleting an unknown id is a no-op.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete travel document: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-client lookup index.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
