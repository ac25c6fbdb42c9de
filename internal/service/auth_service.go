package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bigbrother/internal/auth"
	apperrors "bigbrother/internal/errors"
	"bigbrother/internal/model"
	"bigbrother/internal/repository"
)

// dummyHash is a bcrypt hash of an unguessable value, verified against on the
// user-not-found path so missing and present usernames take similar time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles credential verification, login, and registration.
type AuthService interface {
	VerifyCredentials(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	Register(ctx context.Context, user *model.User, password string) error
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	jwt    *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, jwt *auth.JWTService) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
	}
}

// VerifyCredentials authenticates a username/password pair. Unknown username,
// disabled account, and wrong password all return ErrInvalidCredentials so the
// branches cannot be told apart by a caller.
func (s *authService) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(password, dummyHash)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Disabled {
		s.hasher.Verify(password, dummyHash)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and returns a signed bearer token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.jwt.Generate(user.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Register persists a new enabled user with a hashed password. Username
// conflicts win over email conflicts when both apply.
func (s *authService) Register(ctx context.Context, user *model.User, password string) error {
	if _, err := s.users.FindByUsername(ctx, user.Username); err == nil {
		return apperrors.ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		return apperrors.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.HashedPassword = hashed
	user.Disabled = false

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent register can slip past the pre-checks; the unique
		// index is the final arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.users.FindByUsername(ctx, user.Username); lookupErr == nil {
				return apperrors.ErrUsernameExists
			}
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}
