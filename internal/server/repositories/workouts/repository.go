package workouts

import (
	"context"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, w *models.Workout) (*models.Workout, error)
	// ListByUser returns workouts oldest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Workout, error)
}
