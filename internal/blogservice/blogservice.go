package blogservice

import (
	"context"
	"fmt"

	structValidator "github.com/go-playground/validator/v10"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces"
	"github.com/haguru/blogd/internal/metrics"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/internal/query"
	"github.com/haguru/blogd/pkg/helper"
)

const (
	// RecentPostsLimit is how many of the user's posts the stats include.
	RecentPostsLimit = 5

	ErrListingPosts   = "failed to list posts"
	ErrCreatingPost   = "failed to create post"
	ErrComputingStats = "failed to compute stats"
)

type BlogService struct {
	Posts     interfaces.BlogRepository
	Logger    interfaces.Logger
	Metrics   interfaces.Metrics
	validator *structValidator.Validate
}

// NewBlogService creates a new BlogService instance. metrics may be nil.
func NewBlogService(posts interfaces.BlogRepository, logger interfaces.Logger, m interfaces.Metrics, validator *structValidator.Validate) *BlogService {
	return &BlogService{
		Posts:     posts,
		Logger:    logger,
		Metrics:   m,
		validator: validator,
	}
}

// List returns the posts matching opts. The result is never nil.
func (s *BlogService) List(ctx context.Context, opts query.ListOptions) ([]models.Post, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Listing posts", "func", funcName, "search", opts.Search, "sort", opts.SortField, "direction", opts.Direction)

	posts, err := s.Posts.ListPosts(ctx, opts)
	if err != nil {
		s.Logger.Error(ErrListingPosts, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingPosts, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

// Create stores a post owned by identity. Nothing is persisted when the title
// or content is missing.
func (s *BlogService) Create(ctx context.Context, identity models.Identity, req dto.CreatePostRequestDTO) (*models.Post, error) {
	funcName := helper.GetFuncName()
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError(apperrors.MsgFillAllFields)
	}

	post, err := s.Posts.AddPost(ctx, *models.NewPost(req.Title, req.Content, identity.UserID))
	if err != nil {
		s.Logger.Error(ErrCreatingPost, "func", funcName, "user", identity.Username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrCreatingPost, err)
	}

	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.PostsCreated)
	}
	s.Logger.Info("Post created", "func", funcName, "user", identity.Username, "ID", post.ID)
	return post, nil
}

// Stats returns the global post count, the user's count and the user's most
// recent posts, newest first.
func (s *BlogService) Stats(ctx context.Context, identity models.Identity) (*models.Stats, error) {
	funcName := helper.GetFuncName()

	total, err := s.Posts.CountPosts(ctx)
	if err != nil {
		s.Logger.Error(ErrComputingStats, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrComputingStats, err)
	}
	mine, err := s.Posts.CountPostsByUser(ctx, identity.UserID)
	if err != nil {
		s.Logger.Error(ErrComputingStats, "func", funcName, "user", identity.Username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrComputingStats, err)
	}
	recent, err := s.Posts.RecentPostsByUser(ctx, identity.UserID, RecentPostsLimit)
	if err != nil {
		s.Logger.Error(ErrComputingStats, "func", funcName, "user", identity.Username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrComputingStats, err)
	}
	if recent == nil {
		recent = []models.Post{}
	}

	return &models.Stats{
		TotalPosts:  total,
		UserPosts:   mine,
		RecentPosts: recent,
	}, nil
}
