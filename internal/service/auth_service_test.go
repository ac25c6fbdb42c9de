package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bigbrother/internal/auth"
	apperrors "bigbrother/internal/errors"
	"bigbrother/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) (AuthService, *auth.JWTService, *auth.PasswordHasher) {
	hasher := auth.NewPasswordHasher()
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, hasher, jwtService), jwtService, hasher
}

func TestAuthService_VerifyCredentials(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	hashed, err := hasher.Hash("password123")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful verification",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:             1,
					Username:       "alice",
					HashedPassword: hashed,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "user not found",
			username: "ghost",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "disabled user",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:             1,
					Username:       "alice",
					HashedPassword: hashed,
					Disabled:       true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "password124",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:             1,
					Username:       "alice",
					HashedPassword: hashed,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service, _, _ := newTestAuthService(mockRepo)
			user, err := service.VerifyCredentials(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	hashed, err := hasher.Hash("password123")
	assert.NoError(t, err)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:             1,
		Username:       "alice",
		HashedPassword: hashed,
	}, nil)

	service, jwtService, _ := newTestAuthService(mockRepo)

	token, err := service.Login(context.Background(), "alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, jwtService.Validate(token, "alice"))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service, _, _ := newTestAuthService(mockRepo)

	token, err := service.Login(context.Background(), "ghost", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_LoginStorageError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").
		Return(nil, errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	service, _, _ := newTestAuthService(mockRepo)

	token, err := service.Login(context.Background(), "alice", "password123")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)

	httpErr := apperrors.MapErrorToHTTP(err)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "Internal server error", httpErr.Message)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			user:     &model.User{Username: "alice", Email: "alice@example.com"},
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already exists",
			user:     &model.User{Username: "alice", Email: "new@example.com"},
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameExists,
		},
		{
			name:     "email already exists",
			user:     &model.User{Username: "bob", Email: "alice@example.com"},
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{Email: "alice@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailExists,
		},
		{
			name:     "lost insert race maps to conflict",
			user:     &model.User{Username: "alice", Email: "alice@example.com"},
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil).Once()
			},
			expectedError: apperrors.ErrUsernameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service, _, hasher := newTestAuthService(mockRepo)
			err := service.Register(context.Background(), tt.user, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tt.user.HashedPassword)
				assert.NotEqual(t, tt.password, tt.user.HashedPassword)
				assert.True(t, hasher.Verify(tt.password, tt.user.HashedPassword))
				assert.False(t, tt.user.Disabled)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterChecksUsernameFirst(t *testing.T) {
	mockRepo := new(MockUserRepository)
	// Both conflict; username must win.
	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)

	service, _, _ := newTestAuthService(mockRepo)
	err := service.Register(context.Background(), &model.User{Username: "alice", Email: "alice@example.com"}, "p")

	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
	mockRepo.AssertNotCalled(t, "FindByEmail")
}
