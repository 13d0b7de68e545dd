package domain

import (
	"encoding/json"
	"time"
)

// TripType categorizes a trip. Use DefaultTripType when the client omits the
// field.
type TripType string

const (
	TripLeisure   TripType = "leisure"
	TripBusiness  TripType = "business"
	TripAdventure TripType = "adventure"
	TripFamily    TripType = "family"
	TripHoneymoon TripType = "honeymoon"
)

// DefaultTripType is applied when a trip is created without an explicit type.
const DefaultTripType = TripLeisure

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripLeisure, TripBusiness, TripAdventure, TripFamily, TripHoneymoon:
		return true
	}
	return false
}

// Trip is the top-level aggregate; travelers, photos, and notes belong to a
// trip and are append-only through the API. UserID is the owning user and is
// fixed at creation. StartDate and EndDate are calendar dates ("2006-01-02")
// kept as strings so they round-trip without timezone drift.
//
// Itinerary is written by the browser client only; the server carries it
// opaquely so persisted data is never dropped on rewrite.
type Trip struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Name        string            `json:"name"`
	Destination string            `json:"destination"`
	Type        TripType          `json:"type"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Description string            `json:"description"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
	Travelers   []Traveler        `json:"travelers"`
	Photos      []Photo           `json:"photos"`
	Notes       []Note            `json:"notes"`
	Itinerary   []json.RawMessage `json:"itinerary"`
}

// Traveler is a person attached to a trip. Travelers are appended, never
// edited or removed server-side.
type Traveler struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultTravelerRole is applied when a traveler is added without a role.
const DefaultTravelerRole = "guest"

// Photo is an image reference attached to a trip. Append-only.
type Photo struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Note is a free-form text entry attached to a trip. Append-only.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the trip. Repo snapshots rely on this so a
// restored snapshot is never aliased by slices handed out earlier.
func (t Trip) Clone() Trip {
	c := t
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	c.Travelers = append([]Traveler(nil), t.Travelers...)
	c.Photos = append([]Photo(nil), t.Photos...)
	c.Notes = append([]Note(nil), t.Notes...)
	c.Itinerary = append([]json.RawMessage(nil), t.Itinerary...)
	return c
}
