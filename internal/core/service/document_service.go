package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/metrics"
	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/pkg/piicrypt"
)

// DecryptPlaceholder is shown in place of a document number when the
// stored envelope cannot be opened (missing or rotated key, corrupt
// record). The rest of the list still renders.
const DecryptPlaceholder = "[PII key missing/invalid]"

// DocumentService stores travel documents with the number encrypted at
// rest. The encryption key is injected once at construction; it may be
// nil, in which case every operation fails with piicrypt.ErrInvalidKey
// rather than panicking mid-request.
type DocumentService struct {
	repo ports.DocumentRepository
	key  []byte
	log  zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, key []byte, log zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, key: key, log: log}
}

// Add encrypts the document number and persists the record. Only the
// envelope and the plaintext last-4 suffix are stored.
func (s *DocumentService) Add(ctx context.Context, input ports.AddDocumentInput) (*domain.TravelDocument, error) {
	if input.Number == "" {
		return nil, domain.ErrDocumentNumberRequired
	}
	docType := input.Type
	if docType == "" {
		docType = domain.DocumentPassport
	}
	if !docType.Valid() {
		return nil, fmt.Errorf("add document: unknown type %q", input.Type)
	}

	envelope, err := piicrypt.Encrypt(input.Number, s.key)
	if err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.TravelDocument{
		ClientID:         input.ClientID,
		Type:             docType,
		FullName:         input.FullName,
		EncryptedNumber:  envelope,
		NumberLast4:      piicrypt.Last4(input.Number),
		CountryOfIssue:   input.CountryOfIssue,
		DateOfIssue:      input.DateOfIssue,
		DateOfExpiration: input.DateOfExpiration,
		Sex:              input.Sex,
		PlaceOfBirth:     input.PlaceOfBirth,
		Nationality:      input.Nationality,
		Citizenship:      input.Citizenship,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}
	return created, nil
}

// ListByClient returns the client's documents with numbers decrypted
// per record. A record that fails decryption gets the placeholder and a
// warning log; the failure never aborts the listing.
func (s *DocumentService) ListByClient(ctx context.Context, clientID string) ([]ports.DocumentView, error) {
	docs, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	views := make([]ports.DocumentView, 0, len(docs))
	for _, doc := range docs {
		view := ports.DocumentView{TravelDocument: doc}
		plain, err := piicrypt.Decrypt(doc.EncryptedNumber, s.key)
		if err != nil {
			metrics.PIIDecryptFailuresTotal.Inc()
			s.log.Warn().Err(err).Str("document_id", doc.ID).Msg("document number undecryptable")
			view.Number = DecryptPlaceholder
		} else {
			view.Number = plain
		}
		views = append(views, view)
	}
	return views, nil
}

// Remove deletes a document; removing an unknown id is a no-op.
func (s *DocumentService) Remove(ctx context.Context, documentID string) error {
	return s.repo.Delete(ctx, documentID)
}
