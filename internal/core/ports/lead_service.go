package ports

import (
	"context"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// LeadInput is the public contact form payload.
type LeadInput struct {
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Destination        string
	TravelDate         string
	TravelersInfo      string
	ServiceTypes       []string
	Preferences        string
	AdditionalComments string
}

// LeadNotification is the message handed to the notification pipeline
// once a lead has been persisted.
type LeadNotification struct {
	ClientID           string
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	Destination        string
	TravelDate         string
	TravelersInfo      string
	ServiceTypes       []string
	Preferences        string
	AdditionalComments string
}

// LeadDedup throttles repeat contact-form submissions (Redis-backed).
type LeadDedup interface {
	IsDuplicate(ctx context.Context, email string) (bool, error)
	Mark(ctx context.Context, email string) error
}

// LeadNotifier accepts notifications for asynchronous delivery. Enqueue
// must not block the request path beyond channel buffering.
type LeadNotifier interface {
	Enqueue(n LeadNotification)
}

// LeadSender performs the actual delivery of one notification.
type LeadSender interface {
	Send(ctx context.Context, n LeadNotification) error
}

// LeadService handles public contact-form submissions.
type LeadService interface {
	Submit(ctx context.Context, input LeadInput) (*domain.Client, error)
}
