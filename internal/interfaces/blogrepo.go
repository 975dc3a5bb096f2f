package interfaces

import (
	"context"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/query"
)

// BlogRepository stores posts and answers listing and stats queries.
type BlogRepository interface {
	AddPost(ctx context.Context, post models.Post) (*models.Post, error)
	ListPosts(ctx context.Context, opts query.ListOptions) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountPostsByUser(ctx context.Context, userID string) (int64, error)
	RecentPostsByUser(ctx context.Context, userID string, limit int) ([]models.Post, error)
}
