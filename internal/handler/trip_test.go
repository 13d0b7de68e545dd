package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoval/tripbook/backend/internal/domain"
	"github.com/mkoval/tripbook/backend/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	list        func(ctx context.Context, userID string) ([]domain.Trip, error)
	create      func(ctx context.Context, userID string, t domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, userID, tripID string) (domain.Trip, error)
	update      func(ctx context.Context, userID, tripID string, patch domain.TripPatch) (domain.Trip, error)
	delete      func(ctx context.Context, userID, tripID string) (domain.Trip, error)
	addTraveler func(ctx context.Context, userID, tripID string, tr domain.Traveler) (domain.Traveler, error)
	addPhoto    func(ctx context.Context, userID, tripID string, p domain.Photo) (domain.Photo, error)
	addNote     func(ctx context.Context, userID, tripID string, n domain.Note) (domain.Note, error)
}

func (m *mockTripServicer) List(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Create(ctx context.Context, userID string, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, tripID string) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripServicer) Update(ctx context.Context, userID, tripID string, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, userID, tripID, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, tripID string) (domain.Trip, error) {
	return m.delete(ctx, userID, tripID)
}
func (m *mockTripServicer) AddTraveler(ctx context.Context, userID, tripID string, tr domain.Traveler) (domain.Traveler, error) {
	return m.addTraveler(ctx, userID, tripID, tr)
}
func (m *mockTripServicer) AddPhoto(ctx context.Context, userID, tripID string, p domain.Photo) (domain.Photo, error) {
	return m.addPhoto(ctx, userID, tripID, p)
}
func (m *mockTripServicer) AddNote(ctx context.Context, userID, tripID string, n domain.Note) (domain.Note, error) {
	return m.addNote(ctx, userID, tripID, n)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          "t1",
		UserID:      "u1",
		Name:        "Tokyo",
		Destination: "Tokyo",
		Type:        domain.TripLeisure,
		StartDate:   "2025-04-01",
		EndDate:     "2025-04-10",
		CreatedAt:   time.Now().UTC(),
		Travelers:   []domain.Traveler{},
		Photos:      []domain.Photo{},
		Notes:       []domain.Note{},
		Itinerary:   []json.RawMessage{},
	}
}

// authed builds a request carrying a bearer token the stub verifier accepts.
func authed(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer some-token")
	return req
}

// ---- GET /api/trips ---------------------------------------------------------

func TestListTrips_200_OwnedOnly(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, userID string) ([]domain.Trip, error) {
			assert.Equal(t, "u1", userID, "handler must pass the token's user id")
			return []domain.Trip{tripFixture()}, nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodGet, "/api/trips", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResp(t, rec)
	trips := body["trips"].([]any)
	require.Len(t, trips, 1)
}

func TestListTrips_401_NoToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	newAPI(nil, &mockTripServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListTrips_403_BadToken(t *testing.T) {
	srv := handler.NewServer(nil, &mockTripServicer{})
	h := srv.Routes(newRejectingAuth())

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer expired-or-garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ---- POST /api/trips --------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, userID string, tr domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "Tokyo", tr.Name)
			return tripFixture(), nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips", map[string]any{
		"name": "Tokyo", "destination": "Tokyo",
		"startDate": "2025-04-01", "endDate": "2025-04-10",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResp(t, rec)
	trip := body["trip"].(map[string]any)
	assert.Equal(t, "t1", trip["id"])
}

func TestCreateTrip_400_MissingFields(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ string, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: name, destination, startDate, and endDate are required", domain.ErrValidation)
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips", map[string]any{"name": "Tokyo"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResp(t, rec)
	assert.Equal(t, "name, destination, startDate, and endDate are required", body["error"])
}

// ---- GET /api/trips/{id} ----------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, userID, tripID string) (domain.Trip, error) {
			assert.Equal(t, "t1", tripID)
			return tripFixture(), nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodGet, "/api/trips/t1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404_Unknown(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _, _ string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("lookup: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodGet, "/api/trips/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResp(t, rec)
	assert.Equal(t, "trip not found", body["error"])
}

// A foreign trip returns 403 with no trip contents in the body.
func TestGetTrip_403_NotOwner(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _, _ string) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("lookup: %w", domain.ErrForbidden)
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodGet, "/api/trips/t1", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Tokyo")
	body := decodeResp(t, rec)
	assert.Equal(t, "access denied", body["error"])
}

// ---- PUT /api/trips/{id} ----------------------------------------------------

// The handler must translate present/absent JSON keys into nil / non-nil
// patch fields, including an explicit empty-string description.
func TestUpdateTrip_200_PatchFieldPresence(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _, tripID string, patch domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, "t1", tripID)
			require.NotNil(t, patch.Destination)
			assert.Equal(t, "Rome", *patch.Destination)
			require.NotNil(t, patch.Description)
			assert.Equal(t, "", *patch.Description)
			assert.Nil(t, patch.Name, "absent key must stay nil")
			assert.Nil(t, patch.StartDate)
			return tripFixture(), nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPut, "/api/trips/t1", map[string]any{
		"destination": "Rome",
		"description": "",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- DELETE /api/trips/{id} -------------------------------------------------

func TestDeleteTrip_200_ReturnsRemovedTrip(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _, tripID string) (domain.Trip, error) {
			assert.Equal(t, "t1", tripID)
			return tripFixture(), nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodDelete, "/api/trips/t1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResp(t, rec)
	assert.Equal(t, "trip deleted successfully", body["message"])
	trip := body["trip"].(map[string]any)
	assert.Equal(t, "t1", trip["id"])
}

// ---- sub-resources ----------------------------------------------------------

func TestAddTraveler_201(t *testing.T) {
	svc := &mockTripServicer{
		addTraveler: func(_ context.Context, _, tripID string, tr domain.Traveler) (domain.Traveler, error) {
			assert.Equal(t, "t1", tripID)
			tr.ID = "tr1"
			tr.Role = domain.DefaultTravelerRole
			return tr, nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips/t1/travelers", map[string]any{
		"name": "Grace",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResp(t, rec)
	traveler := body["traveler"].(map[string]any)
	assert.Equal(t, "guest", traveler["role"])
}

func TestAddPhoto_400_MissingURL(t *testing.T) {
	svc := &mockTripServicer{
		addPhoto: func(_ context.Context, _, _ string, _ domain.Photo) (domain.Photo, error) {
			return domain.Photo{}, fmt.Errorf("%w: url is required", domain.ErrValidation)
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips/t1/photos", map[string]any{
		"caption": "sunset",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResp(t, rec)
	assert.Equal(t, "url is required", body["error"])
}

func TestAddNote_201(t *testing.T) {
	svc := &mockTripServicer{
		addNote: func(_ context.Context, _, _ string, n domain.Note) (domain.Note, error) {
			n.ID = "n1"
			return n, nil
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips/t1/notes", map[string]any{
		"title": "packing", "content": "bring socks",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResp(t, rec)
	note := body["note"].(map[string]any)
	assert.Equal(t, "n1", note["id"])
}

func TestAddNote_404_UnknownTrip(t *testing.T) {
	svc := &mockTripServicer{
		addNote: func(_ context.Context, _, _ string, _ domain.Note) (domain.Note, error) {
			return domain.Note{}, fmt.Errorf("lookup: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newAPI(nil, svc).ServeHTTP(rec, authed(t, http.MethodPost, "/api/trips/ghost/notes", map[string]any{
		"title": "a", "content": "b",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
