package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rutamundi/backoffice/internal/core/domain"
	"github.com/rutamundi/backoffice/internal/core/ports"
	"github.com/rutamundi/backoffice/pkg/piicrypt"
)

type stubDocumentRepo struct {
	docs []domain.TravelDocument
}

func (r *stubDocumentRepo) Create(_ context.Context, doc *domain.TravelDocument) (*domain.TravelDocument, error) {
	clone := *doc
	clone.ID = fmt.Sprintf("doc_%d", len(r.docs)+1)
	r.docs = append(r.docs, clone)
	out := clone
	return &out, nil
}

func (r *stubDocumentRepo) ListByClient(_ context.Context, clientID string) ([]domain.TravelDocument, error) {
	var out []domain.TravelDocument
	for _, doc := range r.docs {
		if doc.ClientID == clientID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id string) error {
	kept := r.docs[:0]
	for _, doc := range r.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	r.docs = kept
	return nil
}

func docTestKey(b byte) []byte {
	key := make([]byte, piicrypt.KeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestDocumentService_AddStoresEnvelopeAndLast4(t *testing.T) {
	repo := &stubDocumentRepo{}
	svc := NewDocumentService(repo, docTestKey(0x42), zerolog.Nop())

	created, err := svc.Add(context.Background(), ports.AddDocumentInput{
		ClientID: "cli_1",
		Type:     domain.DocumentPassport,
		FullName: "Ana Pérez",
		Number:   "AB123456",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.NumberLast4 != "3456" {
		t.Fatalf("expected last4 3456, got %q", created.NumberLast4)
	}
	if created.EncryptedNumber == "AB123456" || created.EncryptedNumber == "" {
		t.Fatalf("number must be stored encrypted, got %q", created.EncryptedNumber)
	}

	plain, err := piicrypt.Decrypt(created.EncryptedNumber, docTestKey(0x42))
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if plain != "AB123456" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
}

func TestDocumentService_AddRequiresNumber(t *testing.T) {
	svc := NewDocumentService(&stubDocumentRepo{}, docTestKey(0x42), zerolog.Nop())

	if _, err := svc.Add(context.Background(), ports.AddDocumentInput{ClientID: "cli_1"}); !errors.Is(err, domain.ErrDocumentNumberRequired) {
		t.Fatalf("expected ErrDocumentNumberRequired, got %v", err)
	}
}

func TestDocumentService_AddWithoutKeyFails(t *testing.T) {
	svc := NewDocumentService(&stubDocumentRepo{}, nil, zerolog.Nop())

	_, err := svc.Add(context.Background(), ports.AddDocumentInput{ClientID: "cli_1", Number: "AB123456"})
	if !errors.Is(err, piicrypt.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestDocumentService_ListIsolatesBadRecords(t *testing.T) {
	repo := &stubDocumentRepo{}
	svc := NewDocumentService(repo, docTestKey(0x42), zerolog.Nop())

	if _, err := svc.Add(context.Background(), ports.AddDocumentInput{ClientID: "cli_1", Number: "AB123456"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Inject a record encrypted under a different key and a corrupt one.
	otherEnvelope, err := piicrypt.Encrypt("ZZ999999", docTestKey(0x99))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	repo.docs = append(repo.docs,
		domain.TravelDocument{ID: "doc_other", ClientID: "cli_1", Type: domain.DocumentVisa, EncryptedNumber: otherEnvelope, NumberLast4: "9999"},
		domain.TravelDocument{ID: "doc_bad", ClientID: "cli_1", Type: domain.DocumentVisa, EncryptedNumber: "garbage", NumberLast4: "0000"},
	)

	views, err := svc.ListByClient(context.Background(), "cli_1")
	if err != nil {
		t.Fatalf("ListByClient: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected all 3 records listed, got %d", len(views))
	}

	byID := make(map[string]ports.DocumentView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}
	if byID["doc_1"].Number != "AB123456" {
		t.Fatalf("good record must decrypt, got %q", byID["doc_1"].Number)
	}
	for _, id := range []string{"doc_other", "doc_bad"} {
		if byID[id].Number != DecryptPlaceholder {
			t.Fatalf("%s: expected placeholder, got %q", id, byID[id].Number)
		}
	}
}

func TestDocumentService_RemoveIsIdempotent(t *testing.T) {
	repo := &stubDocumentRepo{}
	svc := NewDocumentService(repo, docTestKey(0x42), zerolog.Nop())

	created, err := svc.Add(context.Background(), ports.AddDocumentInput{ClientID: "cli_1", Number: "AB123456"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(context.Background(), created.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(context.Background(), created.ID); err != nil {
		t.Fatalf("repeat Remove must be a no-op: %v", err)
	}
}
