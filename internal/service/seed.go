package service

import (
	"context"
	"log"

	"bigbrother/internal/auth"
	"bigbrother/internal/model"
	"bigbrother/internal/repository"
)

const (
	seedAdminUsername = "admin"
	seedAdminEmail    = "admin@bandanize.com"
	seedAdminName     = "Administrator"
)

// EnsureAdminUser creates the default admin account when the user table is
// empty. It runs once at startup, before the server starts accepting
// requests.
func EnsureAdminUser(ctx context.Context, users repository.UserRepository, hasher *auth.PasswordHasher, password string) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:       seedAdminUsername,
		Email:          seedAdminEmail,
		Name:           seedAdminName,
		HashedPassword: hashed,
		Disabled:       false,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Initial user created: %s", admin.Username)
	return nil
}
