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

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

type clientDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	FirstName           string             `bson:"first_name"`
	LastName            string             `bson:"last_name"`
	Email               string             `bson:"email"`
	Phone               string             `bson:"phone,omitempty"`
	Destination         string             `bson:"destination,omitempty"`
	TravelDate          *time.Time         `bson:"travel_date,omitempty"`
	TravelersInfo       string             `bson:"travelers_info,omitempty"`
	ServiceTypes        []string           `bson:"service_types,omitempty"`
	Preferences         string             `bson:"preferences,omitempty"`
	AdditionalComments  string             `bson:"additional_comments,omitempty"`
	Source              string             `bson:"source,omitempty"`
	DateOfBirth         *time.Time         `bson:"date_of_birth,omitempty"`
	Anniversary         *time.Time         `bson:"anniversary,omitempty"`
	HotelPreferences    []string           `bson:"hotel_preferences,omitempty"`
	VibePreferences     []string           `bson:"vibe_preferences,omitempty"`
	ActivityPreferences []string           `bson:"activity_preferences,omitempty"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

func fromDomainClient(c *domain.Client) clientDoc {
	return clientDoc{
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Email:               c.Email,
		Phone:               c.Phone,
		Destination:         c.Destination,
		TravelDate:          c.TravelDate,
		TravelersInfo:       c.TravelersInfo,
		ServiceTypes:        c.ServiceTypes,
		Preferences:         c.Preferences,
		AdditionalComments:  c.AdditionalComments,
		Source:              c.Source,
		DateOfBirth:         c.DateOfBirth,
		Anniversary:         c.Anniversary,
		HotelPreferences:    c.HotelPreferences,
		VibePreferences:     c.VibePreferences,
		ActivityPreferences: c.ActivityPreferences,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:                  d.ID.Hex(),
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Email:               d.Email,
		Phone:               d.Phone,
		Destination:         d.Destination,
		TravelDate:          d.TravelDate,
		TravelersInfo:       d.TravelersInfo,
		ServiceTypes:        d.ServiceTypes,
		Preferences:         d.Preferences,
		AdditionalComments:  d.AdditionalComments,
		Source:              d.Source,
		DateOfBirth:         d.DateOfBirth,
		Anniversary:         d.Anniversary,
		HotelPreferences:    d.HotelPreferences,
		VibePreferences:     d.VibePreferences,
		ActivityPreferences: d.ActivityPreferences,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainClient(client))
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *client
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc clientDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, limit int64) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []domain.Client
	for cursor.Next(ctx) {
		var doc clientDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, *doc.toDomain())
	}
	return clients, cursor.Err()
}

// EnsureIndexes creates the lookup indexes for the CRM list views.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
	return err
}
