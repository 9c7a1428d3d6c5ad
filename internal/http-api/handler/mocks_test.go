package handler

import (
	"context"
	"time"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return userResult(m.Called(ctx, username, password))
}

func (m *MockAuthService) IssueToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	return userResult(m.Called(ctx, tokenString))
}

func (m *MockAuthService) RevokeToken(ctx context.Context, tokenString string) error {
	return m.Called(ctx, tokenString).Error(0)
}

func (m *MockAuthService) SessionTTL() time.Duration {
	return time.Hour
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, actor *models.User, form dto.RegisterForm) (*models.User, error) {
	return userResult(m.Called(ctx, actor, form))
}

func (m *MockUserService) ChangePassword(ctx context.Context, user *models.User, form dto.ChangePasswordForm) error {
	return m.Called(ctx, user, form).Error(0)
}

func (m *MockUserService) ChangeUsername(ctx context.Context, user *models.User, username string) (*models.User, error) {
	return userResult(m.Called(ctx, user, username))
}

func (m *MockUserService) ChangeEmail(ctx context.Context, user *models.User, email string) (*models.User, error) {
	return userResult(m.Called(ctx, user, email))
}

func (m *MockUserService) ChangeName(ctx context.Context, user *models.User, firstName, lastName string) (*models.User, error) {
	return userResult(m.Called(ctx, user, firstName, lastName))
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *MockUserService) EditUser(ctx context.Context, id uint, form dto.EditUserForm) (*models.User, error) {
	return userResult(m.Called(ctx, id, form))
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockProblemService mocks the ProblemService interface
type MockProblemService struct {
	mock.Mock
}

func (m *MockProblemService) GetProblem(ctx context.Context, id uint) (*models.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Problem), args.Error(1)
}

// MockPinger mocks the database health probe
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
