package users

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/samber/mo"

	"chatbackend/core"
	"chatbackend/db"
	"chatbackend/models"
)

type UsersService struct {
	usersRepo *db.PostgresUsersRepository
}

func NewUsersService(repo *db.PostgresUsersRepository) *UsersService {
	return &UsersService{usersRepo: repo}
}

func (s *UsersService) GetOrCreateUser(
	ctx context.Context,
	authProvider, authProviderID, displayName string,
) (*models.User, error) {
	log.Printf("📋 Starting to get or create user for authProvider: %s, authProviderID: %s", authProvider, authProviderID)

	if authProvider == "" {
		return nil, fmt.Errorf("auth_provider cannot be empty")
	}
	if authProviderID == "" {
		return nil, fmt.Errorf("auth_provider_id cannot be empty")
	}

	user, err := s.usersRepo.GetOrCreateUser(ctx, authProvider, authProviderID, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved/created user with ID: %s", user.ID)
	return user, nil
}

func (s *UsersService) GetUserByID(ctx context.Context, id string) (mo.Option[*models.User], error) {
	log.Printf("📋 Starting to get user by ID: %s", id)

	if !core.IsValidULID(id) {
		return mo.None[*models.User](), fmt.Errorf("user ID must be a valid ULID")
	}

	user, err := s.usersRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return mo.None[*models.User](), nil
		}
		return mo.None[*models.User](), fmt.Errorf("failed to get user: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved user with ID: %s", user.ID)
	return mo.Some(user), nil
}
