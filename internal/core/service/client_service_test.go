package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

type stubLoyaltyRepo struct {
	programs []domain.LoyaltyProgram
}

func (r *stubLoyaltyRepo) Create(_ context.Context, program *domain.LoyaltyProgram) (*domain.LoyaltyProgram, error) {
	clone := *program
	clone.ID = fmt.Sprintf("loy_%d", len(r.programs)+1)
	r.programs = append(r.programs, clone)
	out := clone
	return &out, nil
}

func (r *stubLoyaltyRepo) ListByClient(_ context.Context, clientID string) ([]domain.LoyaltyProgram, error) {
	var out []domain.LoyaltyProgram
	for _, p := range r.programs {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubLoyaltyRepo) Delete(_ context.Context, id string) error {
	kept := r.programs[:0]
	for _, p := range r.programs {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	r.programs = kept
	return nil
}

type stubTaskRepo struct {
	tasks []domain.Task
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	clone := *task
	clone.ID = fmt.Sprintf("task_%d", len(r.tasks)+1)
	r.tasks = append(r.tasks, clone)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Status = status
		}
	}
	return nil
}

func (r *stubTaskRepo) ListByClient(_ context.Context, clientID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func newClientService(clients *stubClientRepo) (*ClientService, *stubLoyaltyRepo, *stubNoteRepo, *stubTaskRepo) {
	loyalty := &stubLoyaltyRepo{}
	notes := &stubNoteRepo{}
	tasks := &stubTaskRepo{}
	svc := NewClientService(clients, &stubRelationshipRepo{}, loyalty, notes, tasks, zerolog.Nop())
	return svc, loyalty, notes, tasks
}

func TestClientService_ProfileAggregatesSubResources(t *testing.T) {
	clients := newStubClientRepo("cli_a")
	svc, _, _, _ := newClientService(clients)
	ctx := context.Background()

	if _, err := svc.AddNote(ctx, "cli_a", "", "llamada de seguimiento"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if _, err := svc.AddTask(ctx, ports.AddTaskInput{ClientID: "cli_a", Title: "cotizar Kyoto"}); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := svc.AddLoyalty(ctx, ports.AddLoyaltyInput{ClientID: "cli_a", ProgramName: "Marriott Bonvoy"}); err != nil {
		t.Fatalf("add loyalty: %v", err)
	}

	profile, err := svc.Profile(ctx, "cli_a")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Client.ID != "cli_a" {
		t.Fatalf("wrong client: %+v", profile.Client)
	}
	if len(profile.Notes) != 1 || len(profile.Tasks) != 1 || len(profile.Loyalty) != 1 {
		t.Fatalf("expected one of each sub-resource, got notes=%d tasks=%d loyalty=%d",
			len(profile.Notes), len(profile.Tasks), len(profile.Loyalty))
	}
	if profile.Notes[0].Channel != "manual" {
		t.Fatalf("expected default channel manual, got %q", profile.Notes[0].Channel)
	}
	if profile.Tasks[0].Status != "pendiente" {
		t.Fatalf("expected default status pendiente, got %q", profile.Tasks[0].Status)
	}
	if profile.Loyalty[0].Category != domain.LoyaltyHotel {
		t.Fatalf("expected default category HOTEL, got %q", profile.Loyalty[0].Category)
	}
}

func TestClientService_ProfileUnknownClient(t *testing.T) {
	svc, _, _, _ := newClientService(newStubClientRepo())

	if _, err := svc.Profile(context.Background(), "cli_ghost"); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientService_AddLoyaltyRejectsUnknownCategory(t *testing.T) {
	svc, loyalty, _, _ := newClientService(newStubClientRepo("cli_a"))

	_, err := svc.AddLoyalty(context.Background(), ports.AddLoyaltyInput{
		ClientID:    "cli_a",
		Category:    "TIMESHARE",
		ProgramName: "Club X",
	})
	if err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if len(loyalty.programs) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(loyalty.programs))
	}
}

func TestClientService_UpdateTaskStatus(t *testing.T) {
	svc, _, _, tasks := newClientService(newStubClientRepo("cli_a"))
	ctx := context.Background()

	created, err := svc.AddTask(ctx, ports.AddTaskInput{ClientID: "cli_a", Title: "renovar pasaporte"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := svc.UpdateTaskStatus(ctx, created.ID, "completada"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if tasks.tasks[0].Status != "completada" {
		t.Fatalf("status not applied: %+v", tasks.tasks[0])
	}
	if err := svc.UpdateTaskStatus(ctx, created.ID, ""); err == nil {
		t.Fatalf("empty status must be rejected")
	}
}
