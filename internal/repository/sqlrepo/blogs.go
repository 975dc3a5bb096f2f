package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/query"
	"github.com/haguru/blogd/internal/repository/constants"
	"github.com/haguru/blogd/pkg/databases/sqldb"
)

// BlogRepository implements interfaces.BlogRepository on a SQL database.
type BlogRepository struct {
	dbClient *sqldb.Client
}

// NewBlogRepository creates a new SQL blog repository.
func NewBlogRepository(dbClient *sqldb.Client) *BlogRepository {
	return &BlogRepository{dbClient: dbClient}
}

// AddPost stores post and returns it with id and timestamps filled in.
func (r *BlogRepository) AddPost(ctx context.Context, post models.Post) (*models.Post, error) {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.BeforeCreate(constants.Now())

	_, err := r.dbClient.ExecContext(ctx,
		"INSERT INTO blogs (id, title, content, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		post.ID, post.Title, post.Content, post.UserID, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add post: %w", err)
	}
	return &post, nil
}

// ListPosts returns the posts matching opts with their author's username.
func (r *BlogRepository) ListPosts(ctx context.Context, opts query.ListOptions) ([]models.Post, error) {
	stmt, args := query.BuildListQuery(opts)
	rows, err := r.dbClient.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return scanPosts(rows)
}

// CountPosts counts every post.
func (r *BlogRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM blogs")
}

// CountPostsByUser counts the posts owned by userID.
func (r *BlogRepository) CountPostsByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM blogs WHERE user_id = ?", userID)
}

// RecentPostsByUser returns up to limit posts of userID, newest first.
func (r *BlogRepository) RecentPostsByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	stmt, args := query.BuildRecentQuery(userID, limit)
	rows, err := r.dbClient.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent posts: %w", err)
	}
	return scanPosts(rows)
}

func (r *BlogRepository) count(ctx context.Context, stmt string, args ...any) (int64, error) {
	var n int64
	if err := r.dbClient.QueryRowContext(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// scanPosts reads rows shaped like query.BuildListQuery and closes them.
func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		var author models.Author
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &author.Username); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		p.Author = &author
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}
