package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

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

const testInternalToken = "internal-secret"

// runGate sends one request through the gate and returns the principal the
// downstream handler observed.
func runGate(t *testing.T, repo *MockUserRepository, jwtService *JWTService, path, header string) *Principal {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *Principal
	h := Gate(jwtService, repo, testInternalToken)(func(c echo.Context) error {
		got = GetPrincipal(c)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	return got
}

func TestGate_InternalTokenOnCameraPath(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	principal := runGate(t, repo, jwtService, "/api/cameras", "Bearer "+testInternalToken)

	assert.NotNil(t, principal)
	assert.True(t, principal.Internal)
	assert.Equal(t, InternalServiceLabel, principal.Label())
	repo.AssertNotCalled(t, "FindByUsername")
}

func TestGate_InternalTokenIgnoredOutsideCameraPath(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	// The same header on a non-camera route falls through to the JWT
	// branch, which rejects it as malformed before any lookup.
	principal := runGate(t, repo, jwtService, "/api/users", "Bearer "+testInternalToken)

	assert.Nil(t, principal)
	repo.AssertNotCalled(t, "FindByUsername")
}

func TestGate_NoHeader(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", ""))
	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", "Basic dXNlcjpwYXNz"))
}

func TestGate_ValidToken(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := jwtService.Generate("alice")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:       1,
		Username: "alice",
		Email:    "alice@example.com",
	}, nil)

	principal := runGate(t, repo, jwtService, "/api/users/me", "Bearer "+token)

	assert.NotNil(t, principal)
	assert.False(t, principal.Internal)
	assert.Equal(t, "alice", principal.User.Username)
	repo.AssertExpectations(t)
}

func TestGate_UnknownSubject(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := jwtService.Generate("ghost")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", "Bearer "+token))
	repo.AssertExpectations(t)
}

func TestGate_DisabledUser(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := jwtService.Generate("alice")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:       1,
		Username: "alice",
		Disabled: true,
	}, nil)

	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", "Bearer "+token))
	repo.AssertExpectations(t)
}

func TestGate_ExpiredToken(t *testing.T) {
	repo := new(MockUserRepository)
	expired := NewJWTService("test-secret", -time.Minute)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := expired.Generate("alice")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:       1,
		Username: "alice",
	}, nil)

	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", "Bearer "+token))
	repo.AssertExpectations(t)
}

func TestGate_WrongSecret(t *testing.T) {
	repo := new(MockUserRepository)
	forged := NewJWTService("wrong-secret", time.Hour)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := forged.Generate("alice")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:       1,
		Username: "alice",
	}, nil)

	assert.Nil(t, runGate(t, repo, jwtService, "/api/users", "Bearer "+token))
	repo.AssertExpectations(t)
}

func TestGate_Idempotent(t *testing.T) {
	repo := new(MockUserRepository)
	jwtService := NewJWTService("test-secret", time.Hour)

	token, err := jwtService.Generate("alice")
	assert.NoError(t, err)

	repo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
		ID:       1,
		Username: "alice",
	}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	gate := Gate(jwtService, repo, testInternalToken)
	var first, second *Principal
	assert.NoError(t, gate(func(c echo.Context) error {
		first = GetPrincipal(c)
		return nil
	})(c))
	assert.NoError(t, gate(func(c echo.Context) error {
		second = GetPrincipal(c)
		return nil
	})(c))

	assert.NotNil(t, first)
	assert.NotNil(t, second)
	assert.Equal(t, first.User.Username, second.User.Username)
}

func TestRequirePrincipal(t *testing.T) {
	e := echo.New()

	// Without a principal: 401, handler not reached
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := RequirePrincipal()(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unauthorized")

	// With a principal: passes through
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	SetPrincipal(c, NewInternalPrincipal())

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
