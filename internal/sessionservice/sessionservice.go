// Package sessionservice binds authenticated identities to server-side
// sessions referenced by a signed cookie token.
package sessionservice

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/auth"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/metrics"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/repository/constants"
	"github.com/haguru/blogd/pkg/helper"
)

const (
	ErrFailedToStoreSession = "failed to store session"
	ErrFailedToSignSession  = "failed to sign session token"
	ErrRetrievingSession    = "error retrieving session"
)

type SessionService struct {
	Sessions   interfaces.SessionRepository
	Users      interfaces.UserRepository
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
	privateKey *ecdsa.PrivateKey
	ttl        time.Duration
	now        func() time.Time
}

// NewSessionService creates a SessionService issuing sessions valid for ttl.
// metrics may be nil.
func NewSessionService(sessions interfaces.SessionRepository, users interfaces.UserRepository,
	privateKey *ecdsa.PrivateKey, ttl time.Duration, logger interfaces.Logger, m interfaces.Metrics,
) *SessionService {
	return &SessionService{
		Sessions:   sessions,
		Users:      users,
		Logger:     logger,
		Metrics:    m,
		privateKey: privateKey,
		ttl:        ttl,
		now:        constants.Now,
	}
}

// Establish stores a new session for identity and returns the signed token
// to hand to the client together with its expiry.
func (s *SessionService) Establish(ctx context.Context, identity models.Identity) (string, time.Time, error) {
	funcName := helper.GetFuncName()
	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.Sessions.AddSession(ctx, session); err != nil {
		s.Logger.Error(ErrFailedToStoreSession, "func", funcName, "user", identity.Username, "error", err)
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrFailedToStoreSession, err)
	}

	token, err := auth.CreateToken(session.ID, session.UserID, session.ExpiresAt, s.privateKey)
	if err != nil {
		s.Logger.Error(ErrFailedToSignSession, "func", funcName, "user", identity.Username, "error", err)
		return "", time.Time{}, fmt.Errorf("%s: %w", ErrFailedToSignSession, err)
	}

	if s.Metrics != nil {
		s.Metrics.IncGauge(metrics.SessionsActive)
	}
	s.Logger.Debug("Session established", "func", funcName, "user", identity.Username)
	return token, session.ExpiresAt, nil
}

// Identify resolves token to the identity of a live session. Any token that
// does not lead to an existing user yields apperrors.ErrNotAuthenticated;
// other errors come from the store.
func (s *SessionService) Identify(ctx context.Context, token string) (*models.Identity, error) {
	funcName := helper.GetFuncName()
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	claims, err := auth.VerifyToken(token, &s.privateKey.PublicKey)
	if err != nil {
		s.Logger.Debug("Rejected session token", "func", funcName, "error", err)
		return nil, apperrors.ErrNotAuthenticated
	}

	session, err := s.Sessions.GetSession(ctx, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRetrievingSession, err)
	}
	if session == nil || session.UserID != claims.UserID {
		return nil, apperrors.ErrNotAuthenticated
	}
	if session.Expired(s.now()) {
		if err := s.Sessions.DeleteSession(ctx, session.ID); err != nil {
			s.Logger.Warn("Failed to delete expired session", "func", funcName, "error", err)
		} else if s.Metrics != nil {
			s.Metrics.DecGauge(metrics.SessionsActive)
		}
		return nil, apperrors.ErrNotAuthenticated
	}

	user, err := s.Users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrRetrievingSession, err)
	}
	if user == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	identity := user.Identity()
	return &identity, nil
}

// Destroy deletes the session behind token. Tokens that no longer verify
// have nothing left to destroy.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	funcName := helper.GetFuncName()
	claims, err := auth.VerifyToken(token, &s.privateKey.PublicKey)
	if err != nil {
		s.Logger.Debug("Ignoring logout with invalid token", "func", funcName, "error", err)
		return nil
	}

	if err := s.Sessions.DeleteSession(ctx, claims.SessionID()); err != nil {
		s.Logger.Error("Failed to delete session", "func", funcName, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if s.Metrics != nil {
		s.Metrics.DecGauge(metrics.SessionsActive)
	}
	return nil
}
