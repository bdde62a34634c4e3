package domain

import (
	"errors"
	"time"
)

// AdvisorRole gates what an authenticated staff member may do in the
// back office.
type AdvisorRole string

const (
	RoleDeveloper  AdvisorRole = "DEVELOPER"
	RoleManagement AdvisorRole = "MANAGEMENT"
	RoleAgent      AdvisorRole = "AGENT"
)

// Valid reports whether r is one of the three known roles.
func (r AdvisorRole) Valid() bool {
	switch r {
	case RoleDeveloper, RoleManagement, RoleAgent:
		return true
	}
	return false
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdvisorNotFound    = errors.New("advisor not found")
	ErrAdvisorExists      = errors.New("advisor already exists")
	ErrForbidden          = errors.New("access forbidden")

	// ErrSelfRoleChange rejects an advisor demoting or promoting their
	// own account, regardless of how privileged the actor is.
	ErrSelfRoleChange = errors.New("cannot change own role")

	// ErrNoChanges means an update request carried nothing to apply.
	ErrNoChanges = errors.New("no changes to save")
)

// Advisor is a back-office staff account.
type Advisor struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Name         string      `json:"name" bson:"name"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password_hash"`
	Role         AdvisorRole `json:"role" bson:"role"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}
