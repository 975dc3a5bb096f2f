package interfaces

import (
	"context"

	"github.com/haguru/blogd/internal/models"
)

// SessionRepository persists server-side sessions. GetSession returns
// (nil, nil) for unknown ids.
type SessionRepository interface {
	AddSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
