package services

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/dbx"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/users"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/water"
	"github.com/dmitrijs2005/fitquest/internal/server/repositories/workouts"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func sequentialIDs(prefix string) func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n), nil
	}
}

// --- users ---

type fakeUsersRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User

	createErr error
	getErr    error
	updateErr error

	// conflicts makes the next N UpdateProgress calls report a stale version.
	conflicts int
	updates   int
}

func newFakeUsersRepo(seed ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byID: map[string]*models.User{}}
	for _, u := range seed {
		cp := *u
		f.byID[u.ID] = &cp
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrEmailAlreadyExists
		}
	}
	u.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cp := *u
	f.byID[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdateProgress(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.conflicts > 0 {
		f.conflicts--
		return common.ErrVersionConflict
	}
	stored, ok := f.byID[u.ID]
	if !ok || stored.Version != u.Version {
		return common.ErrVersionConflict
	}
	u.Version++
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsersRepo) get(id string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *f.byID[id]
	return &cp
}

// --- water ---

type fakeWaterRepo struct {
	mu   sync.Mutex
	days map[string][]models.WaterEntry

	listErr error
	findErr error
	saveErr error
}

func newFakeWaterRepo() *fakeWaterRepo {
	return &fakeWaterRepo{days: map[string][]models.WaterEntry{}}
}

func (f *fakeWaterRepo) ListByUser(ctx context.Context, userID string) ([]models.WaterEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.WaterEntry{}, f.days[userID]...), nil
}

func (f *fakeWaterRepo) FindDay(ctx context.Context, userID, day string) (models.WaterEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return models.WaterEntry{}, f.findErr
	}
	for _, e := range f.days[userID] {
		if e.Date == day {
			return e, nil
		}
	}
	return models.WaterEntry{}, common.ErrorNotFound
}

func (f *fakeWaterRepo) Save(ctx context.Context, userID string, entry models.WaterEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	for i, e := range f.days[userID] {
		if e.Date == entry.Date {
			f.days[userID][i] = entry
			return nil
		}
	}
	f.days[userID] = append(f.days[userID], entry)
	return nil
}

// --- workouts ---

type fakeWorkoutsRepo struct {
	mu    sync.Mutex
	items []*models.Workout

	createErr error
	listErr   error
}

func (f *fakeWorkoutsRepo) Create(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.items = append(f.items, w)
	return w, nil
}

func (f *fakeWorkoutsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Workout, 0)
	for _, w := range f.items {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	w  *fakeWaterRepo
	wo *fakeWorkoutsRepo
}

func newFakeRepoManager(seed ...*models.User) *fakeRepoManager {
	return &fakeRepoManager{
		u:  newFakeUsersRepo(seed...),
		w:  newFakeWaterRepo(),
		wo: &fakeWorkoutsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Water(db dbx.DBTX) water.Repository           { return m.w }
func (m *fakeRepoManager) Workouts(db dbx.DBTX) workouts.Repository     { return m.wo }
