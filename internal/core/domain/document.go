package domain

import (
	"errors"
	"time"
)

// DocumentType classifies a travel document.
type DocumentType string

const (
	DocumentPassport       DocumentType = "PASSPORT"
	DocumentVisa           DocumentType = "VISA"
	DocumentTSAGlobalEntry DocumentType = "TSA_GLOBAL_ENTRY"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentPassport, DocumentVisa, DocumentTSAGlobalEntry:
		return true
	}
	return false
}

var ErrDocumentNumberRequired = errors.New("document number is required")

// TravelDocument stores a client identity document. The document number
// is persisted only as an AES-GCM envelope; NumberLast4 is kept in
// plaintext so lists can show a partial identifier without decrypting.
type TravelDocument struct {
	ID               string       `json:"id" bson:"_id,omitempty"`
	ClientID         string       `json:"client_id" bson:"client_id"`
	Type             DocumentType `json:"type" bson:"type"`
	FullName         string       `json:"full_name,omitempty" bson:"full_name,omitempty"`
	EncryptedNumber  string       `json:"-" bson:"encrypted_document_number"`
	NumberLast4      string       `json:"number_last4" bson:"number_last4"`
	CountryOfIssue   string       `json:"country_of_issue,omitempty" bson:"country_of_issue,omitempty"`
	DateOfIssue      *time.Time   `json:"date_of_issue,omitempty" bson:"date_of_issue,omitempty"`
	DateOfExpiration *time.Time   `json:"date_of_expiration,omitempty" bson:"date_of_expiration,omitempty"`
	Sex              string       `json:"sex,omitempty" bson:"sex,omitempty"`
	PlaceOfBirth     string       `json:"place_of_birth,omitempty" bson:"place_of_birth,omitempty"`
	Nationality      string       `json:"nationality,omitempty" bson:"nationality,omitempty"`
	Citizenship      string       `json:"citizenship,omitempty" bson:"citizenship,omitempty"`
	CreatedAt        time.Time    `json:"created_at" bson:"created_at"`
}
