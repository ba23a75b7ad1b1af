package water

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.WaterEntry, error) {
	query :=
		`SELECT to_char(day, 'YYYY-MM-DD'), cups FROM water_intake
		 WHERE user_id = $1
		 ORDER BY day
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.WaterEntry, 0)
	for rows.Next() {
		var e models.WaterEntry
		if err := rows.Scan(&e.Date, &e.Cups); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func (r *PostgresRepository) FindDay(ctx context.Context, userID, day string) (models.WaterEntry, error) {
	query :=
		`SELECT to_char(day, 'YYYY-MM-DD'), cups FROM water_intake
		 WHERE user_id = $1 AND day = $2::date
		 `

	var e models.WaterEntry
	err := r.db.QueryRowContext(ctx, query, userID, day).Scan(&e.Date, &e.Cups)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.WaterEntry{}, common.ErrorNotFound
		}
		return models.WaterEntry{}, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) Save(ctx context.Context, userID string, entry models.WaterEntry) error {
	query :=
		`INSERT INTO water_intake (user_id, day, cups)
		 VALUES ($1, $2::date, $3)
		 ON CONFLICT (user_id, day) DO UPDATE SET cups = EXCLUDED.cups
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, entry.Date, entry.Cups); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
