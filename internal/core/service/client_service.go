package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

const defaultListLimit = 100

// ClientService exposes CRM contact management for the admin area.
type ClientService struct {
	clients       ports.ClientRepository
	relationships ports.RelationshipRepository
	loyalty       ports.LoyaltyRepository
	notes         ports.NoteRepository
	tasks         ports.TaskRepository
	log           zerolog.Logger
}

func NewClientService(
	clients ports.ClientRepository,
	relationships ports.RelationshipRepository,
	loyalty ports.LoyaltyRepository,
	notes ports.NoteRepository,
	tasks ports.TaskRepository,
	log zerolog.Logger,
) *ClientService {
	return &ClientService{
		clients:       clients,
		relationships: relationships,
		loyalty:       loyalty,
		notes:         notes,
		tasks:         tasks,
		log:           log,
	}
}

// Create registers a manually entered contact.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	if input.FirstName == "" || input.Email == "" {
		return nil, fmt.Errorf("create client: first name and email are required")
	}

	now := time.Now().UTC()
	created, err := s.clients.Create(ctx, &domain.Client{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

// List returns the most recent contacts.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx, defaultListLimit)
}

// Profile loads a client and its CRM sub-resources for the detail view.
func (s *ClientService) Profile(ctx context.Context, clientID string) (*ports.ClientProfile, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	relationships, err := s.relationships.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client profile: %w", err)
	}
	loyalty, err := s.loyalty.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client profile: %w", err)
	}
	notes, err := s.notes.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client profile: %w", err)
	}
	tasks, err := s.tasks.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client profile: %w", err)
	}

	return &ports.ClientProfile{
		Client:        client,
		Relationships: relationships,
		Loyalty:       loyalty,
		Notes:         notes,
		Tasks:         tasks,
	}, nil
}

// AddNote appends a communication log entry.
func (s *ClientService) AddNote(ctx context.Context, clientID, channel, body string) (*domain.Note, error) {
	if body == "" {
		return nil, fmt.Errorf("add note: body is required")
	}
	if channel == "" {
		channel = "manual"
	}
	return s.notes.Create(ctx, &domain.Note{
		ClientID:  clientID,
		Channel:   channel,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	})
}

// AddTask creates a follow-up item.
func (s *ClientService) AddTask(ctx context.Context, input ports.AddTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("add task: title is required")
	}
	status := input.Status
	if status == "" {
		status = "pendiente"
	}
	return s.tasks.Create(ctx, &domain.Task{
		ClientID:  input.ClientID,
		Title:     input.Title,
		Status:    status,
		DueDate:   input.DueDate,
		CreatedAt: time.Now().UTC(),
	})
}

// UpdateTaskStatus moves a task to a new status.
func (s *ClientService) UpdateTaskStatus(ctx context.Context, taskID, status string) error {
	if status == "" {
		return fmt.Errorf("update task: status is required")
	}
	return s.tasks.UpdateStatus(ctx, taskID, status)
}

// AddLoyalty registers a loyalty program membership.
func (s *ClientService) AddLoyalty(ctx context.Context, input ports.AddLoyaltyInput) (*domain.LoyaltyProgram, error) {
	category := input.Category
	if category == "" {
		category = domain.LoyaltyHotel
	}
	if !category.Valid() {
		return nil, fmt.Errorf("add loyalty: unknown category %q", input.Category)
	}
	if input.ProgramName == "" {
		return nil, fmt.Errorf("add loyalty: program name is required")
	}
	return s.loyalty.Create(ctx, &domain.LoyaltyProgram{
		ClientID:         input.ClientID,
		Category:         category,
		ProgramName:      input.ProgramName,
		MembershipNumber: input.MembershipNumber,
		CreatedAt:        time.Now().UTC(),
	})
}

// RemoveLoyalty deletes a membership; unknown ids are a no-op.
func (s *ClientService) RemoveLoyalty(ctx context.Context, loyaltyID string) error {
	return s.loyalty.Delete(ctx, loyaltyID)
}
