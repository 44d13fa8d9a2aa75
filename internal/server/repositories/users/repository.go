// Package users is the credential store: persistence of user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/codereviewer/internal/server/models"
)

// Repository persists user records. Implementations must enforce email
// uniqueness themselves and report a duplicate as common.ErrConflict; lookups
// of absent records return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
