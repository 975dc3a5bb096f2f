package interfaces

import "context"

// Store groups the repositories of one backend with its schema management.
type Store interface {
	Users() UserRepository
	Posts() BlogRepository
	Sessions() SessionRepository
	EnsureSchema(ctx context.Context) error
	Close(ctx context.Context) error
}
