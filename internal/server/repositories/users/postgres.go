package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
)

const selectUser = `SELECT id, email, password_hash, hero_name, strength, stamina, agility, level, xp, version, created_at
		 FROM users
		 `

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, password_hash, hero_name, strength, stamina, agility, level, xp, version)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.HeroName,
		user.Stats.Strength, user.Stats.Stamina, user.Stats.Agility,
		user.Level, user.XP, user.Version).Scan(&user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUser+`WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUser+`WHERE id = $1`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.HeroName,
		&user.Stats.Strength, &user.Stats.Stamina, &user.Stats.Agility,
		&user.Level, &user.XP, &user.Version, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdateProgress(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users
		 SET strength = $1, stamina = $2, agility = $3, level = $4, xp = $5, version = version + 1
		 WHERE id = $6 AND version = $7
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.Stats.Strength, user.Stats.Stamina, user.Stats.Agility,
		user.Level, user.XP, user.ID, user.Version)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrVersionConflict
	}

	user.Version++
	return nil
}
