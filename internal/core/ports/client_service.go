package ports

import (
	"context"
	"time"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// CreateClientInput holds the fields for a manually created contact.
type CreateClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// AddTaskInput creates a follow-up item for a client.
type AddTaskInput struct {
	ClientID string
	Title    string
	Status   string
	DueDate  *time.Time
}

// AddLoyaltyInput registers a loyalty program membership.
type AddLoyaltyInput struct {
	ClientID         string
	Category         domain.LoyaltyCategory
	ProgramName      string
	MembershipNumber string
}

// ClientProfile aggregates a client with its CRM sub-resources for the
// detail view.
type ClientProfile struct {
	Client        *domain.Client          `json:"client"`
	Relationships []domain.Relationship   `json:"relationships"`
	Loyalty       []domain.LoyaltyProgram `json:"loyalty_programs"`
	Notes         []domain.Note           `json:"notes"`
	Tasks         []domain.Task           `json:"tasks"`
}

// ClientService exposes the CRM contact operations.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Profile(ctx context.Context, clientID string) (*ClientProfile, error)
	AddNote(ctx context.Context, clientID, channel, body string) (*domain.Note, error)
	AddTask(ctx context.Context, input AddTaskInput) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID, status string) error
	AddLoyalty(ctx context.Context, input AddLoyaltyInput) (*domain.LoyaltyProgram, error)
	RemoveLoyalty(ctx context.Context, loyaltyID string) error
}
