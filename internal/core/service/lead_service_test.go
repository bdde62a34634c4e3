package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

type stubNoteRepo struct {
	notes []domain.Note
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	clone := *note
	clone.ID = fmt.Sprintf("note_%d", len(r.notes)+1)
	r.notes = append(r.notes, clone)
	out := clone
	return &out, nil
}

func (r *stubNoteRepo) ListByClient(_ context.Context, clientID string) ([]domain.Note, error) {
	var out []domain.Note
	for _, note := range r.notes {
		if note.ClientID == clientID {
			out = append(out, note)
		}
	}
	return out, nil
}

type stubLeadDedup struct {
	seen map[string]bool
	err  error
}

func (d *stubLeadDedup) IsDuplicate(_ context.Context, email string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.seen[email], nil
}

func (d *stubLeadDedup) Mark(_ context.Context, email string) error {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[email] = true
	return nil
}

type stubLeadNotifier struct {
	enqueued []ports.LeadNotification
}

func (n *stubLeadNotifier) Enqueue(msg ports.LeadNotification) {
	n.enqueued = append(n.enqueued, msg)
}

func validLead() ports.LeadInput {
	return ports.LeadInput{
		FirstName:    "Valeria",
		LastName:     "Paz",
		Email:        "Valeria@Example.Test",
		Destination:  "Dubai",
		TravelDate:   "2026-11-20",
		ServiceTypes: []string{"tours", "hotel"},
	}
}

func TestLeadService_Submit_CreatesClientAndNote(t *testing.T) {
	clients := newStubClientRepo()
	notes := &stubNoteRepo{}
	notifier := &stubLeadNotifier{}
	svc := NewLeadService(clients, notes, &stubLeadDedup{}, notifier, zerolog.Nop())

	client, err := svc.Submit(context.Background(), validLead())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if client == nil {
		t.Fatalf("expected created client")
	}
	if client.Source != domain.SourceWebsite {
		t.Fatalf("expected website source, got %q", client.Source)
	}
	if client.Email != "valeria@example.test" {
		t.Fatalf("email must be normalised, got %q", client.Email)
	}
	if client.TravelDate == nil {
		t.Fatalf("travel date must parse")
	}
	if len(notes.notes) != 1 || notes.notes[0].Channel != domain.SourceWebsite {
		t.Fatalf("expected one website note, got %+v", notes.notes)
	}
	if len(notifier.enqueued) != 1 || notifier.enqueued[0].ClientID != client.ID {
		t.Fatalf("expected one notification for the new client")
	}
}

func TestLeadService_Submit_Incomplete(t *testing.T) {
	svc := NewLeadService(newStubClientRepo(), &stubNoteRepo{}, &stubLeadDedup{}, &stubLeadNotifier{}, zerolog.Nop())

	input := validLead()
	input.Email = ""
	if _, err := svc.Submit(context.Background(), input); !errors.Is(err, ErrLeadIncomplete) {
		t.Fatalf("expected ErrLeadIncomplete, got %v", err)
	}
}

func TestLeadService_Submit_DuplicateSkipped(t *testing.T) {
	clients := newStubClientRepo()
	notifier := &stubLeadNotifier{}
	svc := NewLeadService(clients, &stubNoteRepo{}, &stubLeadDedup{}, notifier, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), validLead()); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	client, err := svc.Submit(context.Background(), validLead())
	if err != nil {
		t.Fatalf("duplicate Submit must not error: %v", err)
	}
	if client != nil {
		t.Fatalf("duplicate must not create a client")
	}
	if len(clients.clients) != 1 {
		t.Fatalf("expected one client row, got %d", len(clients.clients))
	}
	if len(notifier.enqueued) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.enqueued))
	}
}

func TestLeadService_Submit_DedupOutageProcessesAnyway(t *testing.T) {
	clients := newStubClientRepo()
	dedup := &stubLeadDedup{err: errors.New("redis down")}
	svc := NewLeadService(clients, &stubNoteRepo{}, dedup, &stubLeadNotifier{}, zerolog.Nop())

	client, err := svc.Submit(context.Background(), validLead())
	if err != nil {
		t.Fatalf("Submit with dedup outage: %v", err)
	}
	if client == nil {
		t.Fatalf("lead must be processed when dedup store is down")
	}
}
