package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/hydration"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/dmitrijs2005/fitquest/internal/server/progression"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

const (
	conflictRetries = 2
	conflictBackoff = 20 * time.Millisecond
)

var errXPOverflow = fmt.Errorf("%w: xp total would overflow", common.ErrorValidation)

// WorkoutInput is a workout as submitted by the user.
type WorkoutInput struct {
	Name   string
	Reps   int64
	Weight float64
	XP     int64
}

// WaterResult describes a successful LogWater call.
type WaterResult struct {
	Entry   models.WaterEntry
	Outcome progression.Outcome
}

// WorkoutResult describes a successful LogWorkout call.
type WorkoutResult struct {
	Workout *models.Workout
	Outcome progression.Outcome
}

// TodayWater is the day's total next to the daily goal.
type TodayWater struct {
	Cups int64
	Goal int64
}

// ActivityService records water and workouts and applies the resulting XP.
//
// Every write re-reads the user inside a transaction and saves it with a
// version check. On common.ErrVersionConflict the whole read-modify-write is
// retried a bounded number of times.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() (string, error)
	backoff     func() retry.Backoff
}

// NewActivityService constructs an ActivityService.
func NewActivityService(db *sql.DB, m repomanager.RepositoryManager) *ActivityService {
	return &ActivityService{
		db:          db,
		repomanager: m,
		now:         time.Now,
		newID:       newUUID,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(conflictRetries, retry.NewConstant(conflictBackoff))
		},
	}
}

// LogWater adds cups to today's entry and awards the hydration bonus.
func (s *ActivityService) LogWater(ctx context.Context, userID string, cups int64) (*WaterResult, error) {
	if cups < 0 || cups > hydration.MaxCupsPerLog {
		return nil, fmt.Errorf("%w: cups must be between 0 and %d", common.ErrorValidation, hydration.MaxCupsPerLog)
	}

	today := hydration.Day(s.now())

	var result *WaterResult
	err := s.mutateUser(ctx, userID, func(ctx context.Context, tx dbx.DBTX, user *models.User) error {
		var entries []models.WaterEntry
		existing, err := s.repomanager.Water(tx).FindDay(ctx, user.ID, today)
		switch {
		case err == nil:
			entries = append(entries, existing)
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		updated, bonus := hydration.Log(entries, today, cups)
		entry, _ := hydration.Find(updated, today)

		if progression.Overflows(user.XP, bonus) {
			return errXPOverflow
		}

		outcome := progression.Apply(progression.FromUser(user), bonus)
		outcome.ApplyTo(user)

		if err := s.repomanager.Users(tx).UpdateProgress(ctx, user); err != nil {
			return err
		}
		if err := s.repomanager.Water(tx).Save(ctx, user.ID, entry); err != nil {
			return err
		}

		result = &WaterResult{Entry: entry, Outcome: outcome}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TodayWater returns the cups logged today. A missing user yields
// common.ErrorNotFound.
func (s *ActivityService) TodayWater(ctx context.Context, userID string) (*TodayWater, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return nil, err
	}

	today := hydration.Day(s.now())

	var entries []models.WaterEntry
	entry, err := s.repomanager.Water(s.db).FindDay(ctx, userID, today)
	switch {
	case err == nil:
		entries = append(entries, entry)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error loading water: %w", err)
	}

	return &TodayWater{Cups: hydration.CupsOn(entries, today), Goal: hydration.DailyGoal}, nil
}

// LogWorkout appends a workout stamped with the current time and awards its XP.
func (s *ActivityService) LogWorkout(ctx context.Context, userID string, in WorkoutInput) (*WorkoutResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Reps < 0 || in.Weight < 0 || in.XP < 0 {
		return nil, fmt.Errorf("%w: invalid workout", common.ErrorValidation)
	}
	if in.XP > progression.MaxGain {
		return nil, fmt.Errorf("%w: xp must be at most %d", common.ErrorValidation, progression.MaxGain)
	}

	var result *WorkoutResult
	err := s.mutateUser(ctx, userID, func(ctx context.Context, tx dbx.DBTX, user *models.User) error {
		if progression.Overflows(user.XP, in.XP) {
			return errXPOverflow
		}

		id, err := s.newID()
		if err != nil {
			return err
		}

		w := &models.Workout{
			ID:          id,
			UserID:      user.ID,
			Name:        name,
			Reps:        in.Reps,
			Weight:      in.Weight,
			XP:          in.XP,
			PerformedAt: s.now().UTC(),
		}

		outcome := progression.Apply(progression.FromUser(user), in.XP)
		outcome.ApplyTo(user)

		if err := s.repomanager.Users(tx).UpdateProgress(ctx, user); err != nil {
			return err
		}
		if _, err := s.repomanager.Workouts(tx).Create(ctx, w); err != nil {
			return err
		}

		result = &WorkoutResult{Workout: w, Outcome: outcome}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// mutateUser runs fn on a freshly read user inside a transaction, retrying
// the whole attempt when the user's version moved underneath it.
func (s *ActivityService) mutateUser(ctx context.Context, userID string, fn func(ctx context.Context, tx dbx.DBTX, user *models.User) error) error {
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			user, err := s.repomanager.Users(tx).GetByID(ctx, userID)
			if err != nil {
				return err
			}
			return fn(ctx, tx, user)
		})
		if errors.Is(err, common.ErrVersionConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
}
