package blogservice

import (
	"context"
	"errors"
	"testing"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/haguru/blogd/internal/apperrors"
	"github.com/haguru/blogd/internal/interfaces/mocks"
	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/internal/query"
)

var alice = models.Identity{UserID: "user-1", Username: "alice"}

func newService(t *testing.T) (*BlogService, *mocks.MockBlogRepository) {
	repo := mocks.NewMockBlogRepository(t)
	return NewBlogService(repo, mocks.NewNopLogger(), nil, structValidator.New()), repo
}

func TestBlogService_List(t *testing.T) {
	ctx := context.Background()
	opts := query.ParseListOptions("Test", "title,ASC")

	tests := []struct {
		name    string
		result  []models.Post
		err     error
		want    []models.Post
		wantErr bool
	}{
		{
			name:   "posts are passed through",
			result: []models.Post{{Title: "A Test Blog Post"}},
			want:   []models.Post{{Title: "A Test Blog Post"}},
		},
		{
			name:   "nil result becomes empty slice",
			result: nil,
			want:   []models.Post{},
		},
		{
			name:    "store failure",
			err:     errors.New("db down"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			repo.On("ListPosts", ctx, opts).Return(tt.result, tt.err)

			got, err := svc.List(ctx, opts)
			if tt.wantErr {
				assert.ErrorContains(t, err, ErrListingPosts)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBlogService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreatePostRequestDTO
	}{
		{name: "missing title", req: dto.CreatePostRequestDTO{Content: "body"}},
		{name: "missing content", req: dto.CreatePostRequestDTO{Title: "title"}},
		{name: "missing both", req: dto.CreatePostRequestDTO{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t)

			post, err := svc.Create(ctx, alice, tt.req)
			assert.Nil(t, post)
			verr, ok := apperrors.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, []string{apperrors.MsgFillAllFields}, verr.Messages)
		})
	}

	t.Run("owned by the caller", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("AddPost", ctx, mock.MatchedBy(func(p models.Post) bool {
			return p.Title == "Hello" && p.Content == "World" && p.UserID == "user-1"
		})).Return(&models.Post{ID: "post-1", Title: "Hello", Content: "World", UserID: "user-1"}, nil)

		post, err := svc.Create(ctx, alice, dto.CreatePostRequestDTO{Title: "Hello", Content: "World"})
		require.NoError(t, err)
		assert.Equal(t, "post-1", post.ID)
		assert.Equal(t, "user-1", post.UserID)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("AddPost", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.Create(ctx, alice, dto.CreatePostRequestDTO{Title: "Hello", Content: "World"})
		assert.ErrorContains(t, err, ErrCreatingPost)
	})
}

func TestBlogService_Stats(t *testing.T) {
	ctx := context.Background()
	recent := []models.Post{{Title: "newest"}, {Title: "older"}}

	t.Run("aggregates counts and recent posts", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("CountPosts", ctx).Return(int64(10), nil)
		repo.On("CountPostsByUser", ctx, "user-1").Return(int64(2), nil)
		repo.On("RecentPostsByUser", ctx, "user-1", RecentPostsLimit).Return(recent, nil)

		got, err := svc.Stats(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, &models.Stats{TotalPosts: 10, UserPosts: 2, RecentPosts: recent}, got)
	})

	t.Run("no posts yet", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("CountPosts", ctx).Return(int64(0), nil)
		repo.On("CountPostsByUser", ctx, "user-1").Return(int64(0), nil)
		repo.On("RecentPostsByUser", ctx, "user-1", RecentPostsLimit).Return(nil, nil)

		got, err := svc.Stats(ctx, alice)
		require.NoError(t, err)
		assert.NotNil(t, got.RecentPosts)
		assert.Empty(t, got.RecentPosts)
	})

	t.Run("count failure", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("CountPosts", ctx).Return(int64(0), errors.New("db down"))

		_, err := svc.Stats(ctx, alice)
		assert.ErrorContains(t, err, ErrComputingStats)
	})
}
