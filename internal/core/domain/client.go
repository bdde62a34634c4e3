package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a CRM contact. Rows are created either manually by an
// advisor or automatically from the public contact form
// (Source == SourceWebsite).
type Client struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`

	// Lead intake fields from the contact form.
	Destination        string     `json:"destination,omitempty" bson:"destination,omitempty"`
	TravelDate         *time.Time `json:"travel_date,omitempty" bson:"travel_date,omitempty"`
	TravelersInfo      string     `json:"travelers_info,omitempty" bson:"travelers_info,omitempty"`
	ServiceTypes       []string   `json:"service_types,omitempty" bson:"service_types,omitempty"`
	Preferences        string     `json:"preferences,omitempty" bson:"preferences,omitempty"`
	AdditionalComments string     `json:"additional_comments,omitempty" bson:"additional_comments,omitempty"`
	Source             string     `json:"source,omitempty" bson:"source,omitempty"`

	// Profile fields maintained by advisors.
	DateOfBirth         *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	Anniversary         *time.Time `json:"anniversary,omitempty" bson:"anniversary,omitempty"`
	HotelPreferences    []string   `json:"hotel_preferences,omitempty" bson:"hotel_preferences,omitempty"`
	VibePreferences     []string   `json:"vibe_preferences,omitempty" bson:"vibe_preferences,omitempty"`
	ActivityPreferences []string   `json:"activity_preferences,omitempty" bson:"activity_preferences,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SourceWebsite marks clients created from the public contact form.
const SourceWebsite = "website"

// LoyaltyCategory classifies a client loyalty program membership.
type LoyaltyCategory string

const (
	LoyaltyHotel     LoyaltyCategory = "HOTEL"
	LoyaltyAirline   LoyaltyCategory = "AIRLINE"
	LoyaltyCruise    LoyaltyCategory = "CRUISE"
	LoyaltyCarRental LoyaltyCategory = "CAR_RENTAL"
	LoyaltyRailBus   LoyaltyCategory = "RAIL_BUS"
)

// Valid reports whether c is a known loyalty category.
func (c LoyaltyCategory) Valid() bool {
	switch c {
	case LoyaltyHotel, LoyaltyAirline, LoyaltyCruise, LoyaltyCarRental, LoyaltyRailBus:
		return true
	}
	return false
}

// LoyaltyProgram is a client's membership in a travel loyalty scheme.
type LoyaltyProgram struct {
	ID               string          `json:"id" bson:"_id,omitempty"`
	ClientID         string          `json:"client_id" bson:"client_id"`
	Category         LoyaltyCategory `json:"category" bson:"category"`
	ProgramName      string          `json:"program_name" bson:"program_name"`
	MembershipNumber string          `json:"membership_number,omitempty" bson:"membership_number,omitempty"`
	CreatedAt        time.Time       `json:"created_at" bson:"created_at"`
}

// Note is a communication log entry attached to a client.
type Note struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ClientID  string    `json:"client_id" bson:"client_id"`
	Channel   string    `json:"channel" bson:"channel"`
	Body      string    `json:"note" bson:"note"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Task is a follow-up item (a trip to plan, a call to make) for a client.
type Task struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	ClientID  string     `json:"client_id" bson:"client_id"`
	Title     string     `json:"title" bson:"title"`
	Status    string     `json:"status" bson:"status"`
	DueDate   *time.Time `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}
