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

const (
	collectionLoyalty = "client_loyalty_programs"
	collectionNotes   = "communication_logs"
	collectionTasks   = "tasks"
)

// LoyaltyRepository persists loyalty program memberships.
type LoyaltyRepository struct {
	col *mongo.Collection
}

func NewLoyaltyRepository(db *mongo.Database) *LoyaltyRepository {
	return &LoyaltyRepository{col: db.Collection(collectionLoyalty)}
}

type loyaltyDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ClientID         string             `bson:"client_id"`
	Category         string             `bson:"category"`
	ProgramName      string             `bson:"program_name"`
	MembershipNumber string             `bson:"membership_number,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (r *LoyaltyRepository) Create(ctx context.Context, program *domain.LoyaltyProgram) (*domain.LoyaltyProgram, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, loyaltyDoc{
		ClientID:         program.ClientID,
		Category:         string(program.Category),
		ProgramName:      program.ProgramName,
		MembershipNumber: program.MembershipNumber,
		CreatedAt:        program.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert loyalty program: %w", err)
	}

	created := *program
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *LoyaltyRepository) ListByClient(ctx context.Context, clientID string) ([]domain.LoyaltyProgram, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list loyalty programs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.LoyaltyProgram
	for cursor.Next(ctx) {
		var doc loyaltyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode loyalty program: %w", err)
		}
		out = append(out, domain.LoyaltyProgram{
			ID:               doc.ID.Hex(),
			ClientID:         doc.ClientID,
			Category:         domain.LoyaltyCategory(doc.Category),
			ProgramName:      doc.ProgramName,
			MembershipNumber: doc.MembershipNumber,
			CreatedAt:        doc.CreatedAt,
		})
	}
	return out, cursor.Err()
}

// Delete removes a membership by id; unknown ids are a no-op.
func (r *LoyaltyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete loyalty program: %w", err)
	}
	return nil
}

// NoteRepository persists communication log entries.
type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

type noteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  string             `bson:"client_id"`
	Channel   string             `bson:"channel"`
	Note      string             `bson:"note"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, noteDoc{
		ClientID:  note.ClientID,
		Channel:   note.Channel,
		Note:      note.Body,
		CreatedAt: note.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NoteRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Note
	for cursor.Next(ctx) {
		var doc noteDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		out = append(out, domain.Note{
			ID:        doc.ID.Hex(),
			ClientID:  doc.ClientID,
			Channel:   doc.Channel,
			Body:      doc.Note,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cursor.Err()
}

// TaskRepository persists client follow-up tasks.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ClientID  string             `bson:"client_id"`
	Title     string             `bson:"title"`
	Status    string             `bson:"status"`
	DueDate   *time.Time         `bson:"due_date,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, taskDoc{
		ClientID:  task.ClientID,
		Title:     task.Title,
		Status:    task.Status,
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}}); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Task
	for cursor.Next(ctx) {
		var doc taskDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		out = append(out, domain.Task{
			ID:        doc.ID.Hex(),
			ClientID:  doc.ClientID,
			Title:     doc.Title,
			Status:    doc.Status,
			DueDate:   doc.DueDate,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, cursor.Err()
}
