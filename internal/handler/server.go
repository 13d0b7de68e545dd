// Package handler implements the HTTP handlers for the Tripbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, health.go) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkoval/tripbook/backend/internal/domain"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer.
type AuthServicer interface {
	Register(ctx context.Context, u domain.User, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(ctx context.Context, userID string) (domain.User, error)
}

// TripServicer defines the trip operations the trip handlers depend on.
// Every method takes the authenticated user's id; ownership enforcement lives
// in the service, not here.
type TripServicer interface {
	List(ctx context.Context, userID string) ([]domain.Trip, error)
	Create(ctx context.Context, userID string, t domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID string) (domain.Trip, error)
	Update(ctx context.Context, userID, tripID string, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID string) (domain.Trip, error)
	AddTraveler(ctx context.Context, userID, tripID string, tr domain.Traveler) (domain.Traveler, error)
	AddPhoto(ctx context.Context, userID, tripID string, p domain.Photo) (domain.Photo, error)
	AddNote(ctx context.Context, userID, tripID string, n domain.Note) (domain.Note, error)
}

// Server holds the handler dependencies. Construct with NewServer and mount
// via Routes.
type Server struct {
	auth  AuthServicer
	trips TripServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, trips TripServicer) *Server {
	return &Server{auth: auth, trips: trips}
}

// Routes builds the full router. requireAuth is the bearer-token middleware
// guarding every protected route; tests may pass a permissive stand-in.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)

		api.Group(func(protected chi.Router) {
			protected.Use(requireAuth)
			protected.Get("/auth/profile", s.handleProfile)

			protected.Route("/trips", func(trips chi.Router) {
				trips.Get("/", s.handleListTrips)
				trips.Post("/", s.handleCreateTrip)
				trips.Get("/{id}", s.handleGetTrip)
				trips.Put("/{id}", s.handleUpdateTrip)
				trips.Delete("/{id}", s.handleDeleteTrip)
				trips.Post("/{id}/travelers", s.handleAddTraveler)
				trips.Post("/{id}/photos", s.handleAddPhoto)
				trips.Post("/{id}/notes", s.handleAddNote)
			})
		})
	})

	return r
}
