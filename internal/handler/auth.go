package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mkoval/tripbook/backend/internal/domain"
	"github.com/mkoval/tripbook/backend/internal/middleware"
)

// userResponse is the client-facing shape of a User. It deliberately has no
// password hash field, so a stored User can never leak its hash through a
// response body.
type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func userToResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// decodeBody decodes the request body into v, rejecting absent bodies and
// malformed JSON with a single generic message.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("request body is not valid JSON")
	}
	return nil
}

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := s.auth.Register(r.Context(), domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  userToResponse(user),
		"token": token,
	})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  userToResponse(user),
		"token": token,
	})
}

// handleProfile handles GET /api/auth/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	user, err := s.auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": userToResponse(user)})
}
