package users

import (
	"context"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateProgress writes stats, level and XP if user.Version still matches
	// the stored row, and bumps the version. A stale version yields
	// common.ErrVersionConflict.
	UpdateProgress(ctx context.Context, user *models.User) error
}
