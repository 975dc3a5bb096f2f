package mocks

import (
	"context"
	"time"

	"github.com/haguru/blogd/internal/models"
	"github.com/haguru/blogd/internal/models/dto"
	"github.com/haguru/blogd/internal/query"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserService is a mock type for the UserService type
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequestDTO) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	args := m.Called(ctx, username, password)
	id, _ := args.Get(0).(*models.Identity)
	return id, args.Error(1)
}

func NewMockUserService(t testingT) *MockUserService {
	m := &MockUserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockSessionService is a mock type for the SessionService type
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Establish(ctx context.Context, identity models.Identity) (string, time.Time, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionService) Identify(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(*models.Identity)
	return id, args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func NewMockSessionService(t testingT) *MockSessionService {
	m := &MockSessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockBlogService is a mock type for the BlogService type
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) List(ctx context.Context, opts query.ListOptions) ([]models.Post, error) {
	args := m.Called(ctx, opts)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, identity models.Identity, req dto.CreatePostRequestDTO) (*models.Post, error) {
	args := m.Called(ctx, identity, req)
	p, _ := args.Get(0).(*models.Post)
	return p, args.Error(1)
}

func (m *MockBlogService) Stats(ctx context.Context, identity models.Identity) (*models.Stats, error) {
	args := m.Called(ctx, identity)
	s, _ := args.Get(0).(*models.Stats)
	return s, args.Error(1)
}

func NewMockBlogService(t testingT) *MockBlogService {
	m := &MockBlogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
