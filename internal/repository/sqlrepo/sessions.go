package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/pkg/databases/sqldb"
)

// SessionRepository implements interfaces.SessionRepository on a SQL database.
type SessionRepository struct {
	dbClient *sqldb.Client
}

// NewSessionRepository creates a new SQL session repository.
func NewSessionRepository(dbClient *sqldb.Client) *SessionRepository {
	return &SessionRepository{dbClient: dbClient}
}

func (r *SessionRepository) AddSession(ctx context.Context, session models.Session) error {
	_, err := r.dbClient.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)",
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.dbClient.QueryRowContext(ctx,
		"SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?", id).
		Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return &s, nil
}

// DeleteSession removes id. Unknown ids are not an error.
func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	if _, err := r.dbClient.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
