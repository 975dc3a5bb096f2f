package mocks

import (
	"context"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/query"
	"github.com/stretchr/testify/mock"
)

// MockBlogRepository is a mock type for the BlogRepository type
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) AddPost(ctx context.Context, post models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *MockBlogRepository) ListPosts(ctx context.Context, opts query.ListOptions) ([]models.Post, error) {
	args := m.Called(ctx, opts)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *MockBlogRepository) CountPosts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) CountPostsByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) RecentPostsByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	args := m.Called(ctx, userID, limit)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

// NewMockBlogRepository creates a new instance of MockBlogRepository and
// asserts its expectations when the test finishes.
func NewMockBlogRepository(t testingT) *MockBlogRepository {
	m := &MockBlogRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
