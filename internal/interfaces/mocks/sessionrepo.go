package mocks

import (
	"context"

	"github.com/haguru/blogd/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock type for the SessionRepository type
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) AddSession(ctx context.Context, session models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Session)
	return s, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// NewMockSessionRepository creates a new instance of MockSessionRepository and
// asserts its expectations when the test finishes.
func NewMockSessionRepository(t testingT) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
