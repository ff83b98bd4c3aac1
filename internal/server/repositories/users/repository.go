// Package users stores registered accounts of the development API server.
package users

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type Repository interface {
	// Create stores user and assigns its ID. Emails are unique, compared
	// case-insensitively; a duplicate yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
