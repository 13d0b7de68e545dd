package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkoval/tripbook/backend/internal/domain"
	"github.com/mkoval/tripbook/backend/internal/middleware"
)

type createTripRequest struct {
	Name        string          `json:"name"`
	Destination string          `json:"destination"`
	Type        domain.TripType `json:"type"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Description string          `json:"description"`
}

// updateTripRequest uses pointer fields so an absent key is distinguishable
// from an explicit empty value. Presence in the payload is the sole overwrite
// criterion.
type updateTripRequest struct {
	Name        *string          `json:"name"`
	Destination *string          `json:"destination"`
	Type        *domain.TripType `json:"type"`
	StartDate   *string          `json:"startDate"`
	EndDate     *string          `json:"endDate"`
	Description *string          `json:"description"`
}

type travelerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type photoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// userID returns the authenticated user's id placed in context by the auth
// middleware. Protected routes can rely on it being present.
func userID(r *http.Request) string {
	return middleware.ClaimsFromContext(r.Context()).UserID
}

// handleListTrips handles GET /api/trips. Only the caller's own trips are
// returned, in creation order.
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

// handleCreateTrip handles POST /api/trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := s.trips.Create(r.Context(), userID(r), domain.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"trip": trip})
}

// handleGetTrip handles GET /api/trips/{id}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trip": trip})
}

// handleUpdateTrip handles PUT /api/trips/{id}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req updateTripRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := s.trips.Update(r.Context(), userID(r), chi.URLParam(r, "id"), domain.TripPatch{
		Name:        req.Name,
		Destination: req.Destination,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trip": trip})
}

// handleDeleteTrip handles DELETE /api/trips/{id}. The removed trip is
// returned as confirmation.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.Delete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "trip deleted successfully",
		"trip":    trip,
	})
}

// handleAddTraveler handles POST /api/trips/{id}/travelers.
func (s *Server) handleAddTraveler(w http.ResponseWriter, r *http.Request) {
	var req travelerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	traveler, err := s.trips.AddTraveler(r.Context(), userID(r), chi.URLParam(r, "id"), domain.Traveler{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"traveler": traveler})
}

// handleAddPhoto handles POST /api/trips/{id}/photos.
func (s *Server) handleAddPhoto(w http.ResponseWriter, r *http.Request) {
	var req photoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := s.trips.AddPhoto(r.Context(), userID(r), chi.URLParam(r, "id"), domain.Photo{
		URL:     req.URL,
		Caption: req.Caption,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"photo": photo})
}

// handleAddNote handles POST /api/trips/{id}/notes.
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.trips.AddNote(r.Context(), userID(r), chi.URLParam(r, "id"), domain.Note{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(w, r, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"note": note})
}
