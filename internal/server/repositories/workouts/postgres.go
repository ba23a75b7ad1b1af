package workouts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	query :=
		`INSERT INTO workouts (id, user_id, name, reps, weight, xp, performed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query, w.ID, w.UserID, w.Name, w.Reps, w.Weight, w.XP, w.PerformedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return w, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Workout, error) {
	query :=
		`SELECT id, user_id, name, reps, weight, xp, performed_at FROM workouts
		 WHERE user_id = $1
		 ORDER BY performed_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Workout, 0)
	for rows.Next() {
		w := &models.Workout{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Reps, &w.Weight, &w.XP, &w.PerformedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
