package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mkoval/tripbook/backend/internal/auth"
	"github.com/mkoval/tripbook/backend/internal/domain"
)

// TokenIssuer mints session tokens for an authenticated identity.
// *auth.JWTManager is the production implementation.
type TokenIssuer interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
}

// AuthService implements registration, login, and profile lookup.
type AuthService struct {
	db     *DB
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService over the shared state.
func NewAuthService(db *DB, tokens TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Register creates a new account and returns the stored user with a session
// token. The caller passes profile fields on u; id, hash, and createdAt are
// assigned here.
// Returns domain.ErrValidation on missing fields or a duplicate email.
func (s *AuthService) Register(ctx context.Context, u domain.User, password string) (domain.User, string, error) {
	if u.FirstName == "" || u.LastName == "" || u.Email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: firstName, lastName, email, and password are required", domain.ErrValidation)
	}

	// Hash before taking the lock: bcrypt is slow and needs none of the
	// shared state.
	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	u.ID = domain.NewID()
	u.PasswordHash = hash
	u.CreatedAt = time.Now().UTC()

	// The duplicate check and the insert must not be separable, or two
	// concurrent registrations with the same email would both pass the check.
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	// Linear scan; email uniqueness has no index at this scale.
	if _, err := s.db.users.FindByEmail(u.Email); err == nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w: user with this email already exists", domain.ErrValidation)
	}

	prev := s.db.users.Snapshot()
	s.db.users.Insert(u)
	if err := s.db.flush(); err != nil {
		s.db.users.Restore(prev)
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}

	token, _, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh session token.
// Unknown email and wrong password are reported identically as
// domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	if email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: email and password are required", domain.ErrValidation)
	}

	u, err := s.db.users.FindByEmail(email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: invalid credentials", domain.ErrUnauthorized)
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w: invalid credentials", domain.ErrUnauthorized)
	}

	token, _, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return u, token, nil
}

// Profile returns the user record for an authenticated identity.
// Returns domain.ErrNotFound if the id from the token no longer exists.
func (s *AuthService) Profile(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.db.users.FindByID(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Profile: %w", err)
	}
	return u, nil
}
