package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/internfinder/internfinder-client/internal/models"
	"github.com/internfinder/internfinder-client/pkg/errors"
	"github.com/internfinder/internfinder-client/pkg/jwt"
	"github.com/internfinder/internfinder-client/pkg/logger"
)

// Store holds the session token and the logged-in user for the lifetime of
// the process. The token is opaque to the client: it is attached to every
// request and discarded when the remote service answers 401. No local expiry
// bookkeeping is performed.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

func NewStore() *Store {
	return &Store{}
}

// Set installs a new session after login or registration.
func (s *Store) Set(token string, user *models.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	// Claims are inspected for logging only, never enforced.
	if claims, err := jwt.InspectToken(token); err == nil {
		logger.Debug("session established",
			zap.String("user_id", claims.UserID),
		)
	}
}

// Token returns the current session token, or ErrUnauthenticated when no
// session is active.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", errors.ErrUnauthenticated
	}
	return s.token, nil
}

// User returns the logged-in user, or nil when no session is active.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Check reports whether a session is active.
func (s *Store) Check() error {
	_, err := s.Token()
	return err
}

// Clear drops the session. Called on logout and whenever the remote service
// rejects the token.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}
