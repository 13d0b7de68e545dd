package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkoval/tripbook/backend/internal/domain"
)

// TripService implements ownership-scoped trip CRUD and the append-only
// sub-resources (travelers, photos, notes).
//
// Every trip-scoped operation checks existence before ownership, so a caller
// probing a foreign id learns "not found" only for ids that genuinely do not
// exist. The ordering is uniform across all endpoints.
//
// Mutations hold db.mu from the initial lookup through the flush; see DB.
type TripService struct {
	db *DB
}

// NewTripService constructs a TripService over the shared state.
func NewTripService(db *DB) *TripService {
	return &TripService{db: db}
}

// List returns all trips owned by userID in insertion order.
func (s *TripService) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return s.db.trips.FindByOwner(userID), nil
}

// Create validates and persists a new trip owned by userID.
// The caller fills the user-supplied fields on t; id, owner, timestamps, and
// the empty sub-resource collections are assigned here.
func (s *TripService) Create(ctx context.Context, userID string, t domain.Trip) (domain.Trip, error) {
	if t.Name == "" || t.Destination == "" || t.StartDate == "" || t.EndDate == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: name, destination, startDate, and endDate are required", domain.ErrValidation)
	}
	if t.Type == "" {
		t.Type = domain.DefaultTripType
	}
	if !t.Type.Valid() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: unknown trip type %q", domain.ErrValidation, t.Type)
	}

	t.ID = domain.NewID()
	t.UserID = userID
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = nil
	t.Travelers = []domain.Traveler{}
	t.Photos = []domain.Photo{}
	t.Notes = []domain.Note{}
	t.Itinerary = []json.RawMessage{}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	prev := s.db.trips.Snapshot()
	s.db.trips.Insert(t)
	if err := s.db.flush(); err != nil {
		s.db.trips.Restore(prev)
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return t, nil
}

// GetByID returns a single trip, enforcing ownership.
// Returns domain.ErrNotFound for an unknown id and domain.ErrForbidden when
// the trip exists but belongs to another user.
func (s *TripService) GetByID(ctx context.Context, userID, tripID string) (domain.Trip, error) {
	t, err := s.ownedTrip(userID, tripID, "GetByID")
	if err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}

// Update applies a partial update to an owned trip. Only fields present in
// the patch are overwritten; description may be set to the empty string like
// any other present field. updatedAt advances on success.
func (s *TripService) Update(ctx context.Context, userID, tripID string, patch domain.TripPatch) (domain.Trip, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, err := s.ownedTrip(userID, tripID, "Update")
	if err != nil {
		return domain.Trip{}, err
	}

	if err := validatePatch(patch); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Destination != nil {
		t.Destination = *patch.Destination
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.StartDate != nil {
		t.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		t.EndDate = *patch.EndDate
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	now := time.Now().UTC()
	t.UpdatedAt = &now

	return s.replaceAndFlush(t, "Update")
}

// Delete removes an owned trip, including its nested travelers, photos, and
// notes, and returns the removed record as confirmation.
func (s *TripService) Delete(ctx context.Context, userID, tripID string) (domain.Trip, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, err := s.ownedTrip(userID, tripID, "Delete"); err != nil {
		return domain.Trip{}, err
	}

	prev := s.db.trips.Snapshot()
	removed, err := s.db.trips.Remove(tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.db.flush(); err != nil {
		s.db.trips.Restore(prev)
		return domain.Trip{}, fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return removed, nil
}

// AddTraveler appends a traveler to an owned trip. Prior travelers, photos,
// and notes are never touched.
func (s *TripService) AddTraveler(ctx context.Context, userID, tripID string, tr domain.Traveler) (domain.Traveler, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, err := s.ownedTrip(userID, tripID, "AddTraveler")
	if err != nil {
		return domain.Traveler{}, err
	}
	if tr.Name == "" {
		return domain.Traveler{}, fmt.Errorf("service.TripService.AddTraveler: %w: name is required", domain.ErrValidation)
	}
	if tr.Role == "" {
		tr.Role = domain.DefaultTravelerRole
	}
	tr.ID = domain.NewID()
	tr.CreatedAt = time.Now().UTC()

	t.Travelers = append(t.Travelers, tr)
	t.UpdatedAt = &tr.CreatedAt

	if _, err := s.replaceAndFlush(t, "AddTraveler"); err != nil {
		return domain.Traveler{}, err
	}
	return tr, nil
}

// AddPhoto appends a photo to an owned trip.
func (s *TripService) AddPhoto(ctx context.Context, userID, tripID string, p domain.Photo) (domain.Photo, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, err := s.ownedTrip(userID, tripID, "AddPhoto")
	if err != nil {
		return domain.Photo{}, err
	}
	if p.URL == "" {
		return domain.Photo{}, fmt.Errorf("service.TripService.AddPhoto: %w: url is required", domain.ErrValidation)
	}
	p.ID = domain.NewID()
	p.UploadedAt = time.Now().UTC()

	t.Photos = append(t.Photos, p)
	t.UpdatedAt = &p.UploadedAt

	if _, err := s.replaceAndFlush(t, "AddPhoto"); err != nil {
		return domain.Photo{}, err
	}
	return p, nil
}

// AddNote appends a note to an owned trip.
func (s *TripService) AddNote(ctx context.Context, userID, tripID string, n domain.Note) (domain.Note, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, err := s.ownedTrip(userID, tripID, "AddNote")
	if err != nil {
		return domain.Note{}, err
	}
	if n.Title == "" || n.Content == "" {
		return domain.Note{}, fmt.Errorf("service.TripService.AddNote: %w: title and content are required", domain.ErrValidation)
	}
	n.ID = domain.NewID()
	n.CreatedAt = time.Now().UTC()

	t.Notes = append(t.Notes, n)
	t.UpdatedAt = &n.CreatedAt

	if _, err := s.replaceAndFlush(t, "AddNote"); err != nil {
		return domain.Note{}, err
	}
	return n, nil
}

// ownedTrip fetches a trip and enforces the existence-then-ownership order.
// Mutating callers hold db.mu so the copy cannot go stale before it is
// written back.
func (s *TripService) ownedTrip(userID, tripID, op string) (domain.Trip, error) {
	t, err := s.db.trips.FindByID(tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	if t.UserID != userID {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, domain.ErrForbidden)
	}
	return t, nil
}

// replaceAndFlush writes the modified trip back and flushes, restoring the
// previous state if the disk write fails. Callers hold db.mu.
func (s *TripService) replaceAndFlush(t domain.Trip, op string) (domain.Trip, error) {
	prev := s.db.trips.Snapshot()
	if err := s.db.trips.Replace(t); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	if err := s.db.flush(); err != nil {
		s.db.trips.Restore(prev)
		return domain.Trip{}, fmt.Errorf("service.TripService.%s: %w", op, err)
	}
	return t, nil
}

// validatePatch rejects patches that would clear a required field or set an
// unknown trip type. Description is exempt: it may be emptied.
func validatePatch(p domain.TripPatch) error {
	for name, v := range map[string]*string{
		"name":        p.Name,
		"destination": p.Destination,
		"startDate":   p.StartDate,
		"endDate":     p.EndDate,
	} {
		if v != nil && *v == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrValidation, name)
		}
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, *p.Type)
	}
	return nil
}
