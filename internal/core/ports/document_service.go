package ports

import (
	"context"
	"time"

	"github.com/rutamundi/backoffice/internal/core/domain"
)

// AddDocumentInput holds a travel document as submitted by an advisor.
// Number is plaintext here; it is encrypted before persistence and
// never stored or returned as-is.
type AddDocumentInput struct {
	ClientID         string
	Type             domain.DocumentType
	FullName         string
	Number           string
	CountryOfIssue   string
	DateOfIssue      *time.Time
	DateOfExpiration *time.Time
	Sex              string
	PlaceOfBirth     string
	Nationality      string
	Citizenship      string
}

// DocumentView is a travel document prepared for display: Number holds
// the decrypted value, or a fixed placeholder when the stored envelope
// cannot be decrypted (missing/rotated key, corrupt record). One bad
// record never hides the rest of the list.
type DocumentView struct {
	domain.TravelDocument
	Number string `json:"number"`
}

// DocumentService stores and reveals encrypted travel documents.
type DocumentService interface {
	Add(ctx context.Context, input AddDocumentInput) (*domain.TravelDocument, error)
	ListByClient(ctx context.Context, clientID string) ([]DocumentView, error)
	Remove(ctx context.Context, documentID string) error
}
