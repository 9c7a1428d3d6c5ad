package service

import (
	"context"
	"time"

	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, lastLogin string) (*models.User, error) {
	return m.user(m.Called(ctx, id, lastLogin))
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) (*models.User, error) {
	return m.user(m.Called(ctx, id, hashedPassword))
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	return m.user(m.Called(ctx, id, email))
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id uint, firstName, lastName string) (*models.User, error) {
	return m.user(m.Called(ctx, id, firstName, lastName))
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, id uint, username string) (*models.User, error) {
	return m.user(m.Called(ctx, id, username))
}

func (m *MockUserRepository) UpdateAll(ctx context.Context, id uint, changes repository.UserChanges) (*models.User, error) {
	return m.user(m.Called(ctx, id, changes))
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProblemRepository mocks the ProblemRepository interface
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) FindByID(ctx context.Context, id uint) (*models.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

// MockTokenStore mocks the TokenStore interface
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
