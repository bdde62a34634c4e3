package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
)

// ErrLeadIncomplete rejects a contact submission missing the required
// identity fields.
var ErrLeadIncomplete = fmt.Errorf("first name, last name and email are required")

// LeadService turns public contact-form submissions into CRM clients.
// A submission creates the client row plus a website communication note
// and hands a notification to the async pipeline; repeat submissions
// from the same email within the dedup window are dropped silently.
type LeadService struct {
	clients  ports.ClientRepository
	notes    ports.NoteRepository
	dedup    ports.LeadDedup
	notifier ports.LeadNotifier
	log      zerolog.Logger
}

func NewLeadService(
	clients ports.ClientRepository,
	notes ports.NoteRepository,
	dedup ports.LeadDedup,
	notifier ports.LeadNotifier,
	log zerolog.Logger,
) *LeadService {
	return &LeadService{clients: clients, notes: notes, dedup: dedup, notifier: notifier, log: log}
}

// Submit validates and persists one contact-form lead.
func (s *LeadService) Submit(ctx context.Context, input ports.LeadInput) (*domain.Client, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, ErrLeadIncomplete
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Throttle repeat submissions. A dedup store outage is logged and
	// the lead processed anyway — losing a lead is worse than a repeat.
	isDup, err := s.dedup.IsDuplicate(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("lead dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("email", email).Msg("duplicate lead skipped")
		return nil, nil
	}

	var travelDate *time.Time
	if input.TravelDate != "" {
		if parsed, err := time.Parse("2006-01-02", input.TravelDate); err == nil {
			travelDate = &parsed
		}
	}

	now := time.Now().UTC()
	client, err := s.clients.Create(ctx, &domain.Client{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              email,
		Phone:              input.Phone,
		Destination:        input.Destination,
		TravelDate:         travelDate,
		TravelersInfo:      input.TravelersInfo,
		ServiceTypes:       input.ServiceTypes,
		Preferences:        input.Preferences,
		AdditionalComments: input.AdditionalComments,
		Source:             domain.SourceWebsite,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return nil, fmt.Errorf("submit lead: %w", err)
	}

	noteBody := input.AdditionalComments
	if noteBody == "" {
		noteBody = "Solicitud recibida desde formulario web"
	}
	if _, err := s.notes.Create(ctx, &domain.Note{
		ClientID:  client.ID,
		Channel:   domain.SourceWebsite,
		Body:      noteBody,
		CreatedAt: now,
	}); err != nil {
		s.log.Warn().Err(err).Str("client_id", client.ID).Msg("lead note not recorded")
	}

	if markErr := s.dedup.Mark(ctx, email); markErr != nil {
		s.log.Warn().Err(markErr).Msg("failed to set lead dedup key")
	}

	s.notifier.Enqueue(ports.LeadNotification{
		ClientID:           client.ID,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              email,
		Phone:              input.Phone,
		Destination:        input.Destination,
		TravelDate:         input.TravelDate,
		TravelersInfo:      input.TravelersInfo,
		ServiceTypes:       input.ServiceTypes,
		Preferences:        input.Preferences,
		AdditionalComments: input.AdditionalComments,
	})

	return client, nil
}
