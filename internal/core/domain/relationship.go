package domain

import (
	"errors"
	"time"
)

// RelationType is the closed set of client-to-client relationship kinds.
type RelationType string

const (
	RelationSpouse          RelationType = "SPOUSE"
	RelationChild           RelationType = "CHILD"
	RelationParent          RelationType = "PARENT"
	RelationSibling         RelationType = "SIBLING"
	RelationFriend          RelationType = "FRIEND"
	RelationRelative        RelationType = "RELATIVE"
	RelationPartner         RelationType = "PARTNER"
	RelationDomesticPartner RelationType = "DOMESTIC_PARTNER"
	RelationCoworker        RelationType = "COWORKER"
	RelationOther           RelationType = "OTHER"
)

// Valid reports whether t is a known relationship type.
func (t RelationType) Valid() bool {
	switch t {
	case RelationSpouse, RelationChild, RelationParent, RelationSibling,
		RelationFriend, RelationRelative, RelationPartner,
		RelationDomesticPartner, RelationCoworker, RelationOther:
		return true
	}
	return false
}

// Inverse returns the type stored on the mirror edge. CHILD and PARENT
// invert each other; every other type is its own inverse, so Inverse is
// total over the enumeration and the synchronizer can never hit an
// unmapped type.
func (t RelationType) Inverse() RelationType {
	switch t {
	case RelationChild:
		return RelationParent
	case RelationParent:
		return RelationChild
	}
	return t
}

// ErrInvalidRelationshipTarget rejects a relationship whose target is
// missing, a placeholder, or the client itself.
var ErrInvalidRelationshipTarget = errors.New("invalid relationship target")

var ErrRelationshipNotFound = errors.New("relationship not found")

// Relationship is one directed edge of a symmetric pair. For every
// stored (A→B, T) there is a mirror (B→A, T.Inverse()); both rows are
// created and removed together.
type Relationship struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	ClientID        string       `json:"client_id" bson:"client_id"`
	RelatedClientID string       `json:"related_client_id" bson:"related_client_id"`
	Type            RelationType `json:"relation_type" bson:"relation_type"`
	CreatedAt       time.Time    `json:"created_at" bson:"created_at"`
}

// Tuple returns the identity of the edge used for mirror matching.
func (r Relationship) Tuple() RelationshipTuple {
	return RelationshipTuple{
		ClientID:        r.ClientID,
		RelatedClientID: r.RelatedClientID,
		Type:            r.Type,
	}
}

// Mirror returns the symmetric counterpart tuple of r.
func (r Relationship) Mirror() RelationshipTuple {
	return RelationshipTuple{
		ClientID:        r.RelatedClientID,
		RelatedClientID: r.ClientID,
		Type:            r.Type.Inverse(),
	}
}

// RelationshipTuple identifies an edge by its full
// (client, related client, type) value rather than by row id. Mirror
// rows are matched this way — never by assuming adjacent ids.
type RelationshipTuple struct {
	ClientID        string
	RelatedClientID string
	Type            RelationType
}
