// Package sqlrepo implements the repositories on postgres or sqlite through
// pkg/databases/sqldb.
package sqlrepo

import (
	"context"
	"fmt"

	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/pkg/databases/sqldb"
)

// Store bundles the SQL repositories sharing one client.
type Store struct {
	dbClient *sqldb.Client
	users    *UserRepository
	posts    *BlogRepository
	sessions *SessionRepository
}

// NewStore builds the repositories on a connected client.
func NewStore(dbClient *sqldb.Client) (*Store, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &Store{
		dbClient: dbClient,
		users:    NewUserRepository(dbClient),
		posts:    NewBlogRepository(dbClient),
		sessions: NewSessionRepository(dbClient),
	}, nil
}

func (s *Store) Users() interfaces.UserRepository       { return s.users }
func (s *Store) Posts() interfaces.BlogRepository       { return s.posts }
func (s *Store) Sessions() interfaces.SessionRepository { return s.sessions }

// EnsureSchema applies the embedded migrations.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.dbClient.Migrate(ctx)
}

// Close closes the database connection.
func (s *Store) Close(ctx context.Context) error {
	return s.dbClient.Disconnect(ctx)
}
