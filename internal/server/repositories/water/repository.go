package water

import (
	"context"

	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

// Repository stores per-day water totals. Days are UTC YYYY-MM-DD strings.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.WaterEntry, error)
	FindDay(ctx context.Context, userID, day string) (models.WaterEntry, error)
	// Save writes the total for entry.Date, creating the row if needed.
	Save(ctx context.Context, userID string, entry models.WaterEntry) error
}
