package interfaces

import (
	"context"
	"time"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/internal/query"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequestDTO) (string, error)
	Login(ctx context.Context, username, password string) (*models.Identity, error)
}

// SessionService binds identities to opaque session tokens.
type SessionService interface {
	Establish(ctx context.Context, identity models.Identity) (string, time.Time, error)
	Identify(ctx context.Context, token string) (*models.Identity, error)
	Destroy(ctx context.Context, token string) error
}

type BlogService interface {
	List(ctx context.Context, opts query.ListOptions) ([]models.Post, error)
	Create(ctx context.Context, identity models.Identity, req dto.CreatePostRequestDTO) (*models.Post, error)
	Stats(ctx context.Context, identity models.Identity) (*models.Stats, error)
}
