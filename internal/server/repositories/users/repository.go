// Package users declares the user repository contract and its MongoDB and
// Postgres implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/tuktask/internal/server/models"
)

// Repository stores user accounts.
type Repository interface {
	// Create inserts user and fills in its ID and timestamps. It returns
	// common.ErrorAlreadyExists when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns common.ErrorNotFound for unknown or malformed ids.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
