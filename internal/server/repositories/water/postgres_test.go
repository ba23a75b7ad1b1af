package water

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fitquest/internal/common"
	"github.com/dmitrijs2005/fitquest/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQ = `(?s)^SELECT\s+to_char\(day,\s*'YYYY-MM-DD'\),\s*cups\s+FROM\s+water_intake\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+day\s*$`
	findQ = `(?s)^SELECT\s+to_char\(day,\s*'YYYY-MM-DD'\),\s*cups\s+FROM\s+water_intake\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+day\s*=\s*\$2::date\s*$`
	saveQ = `(?s)^INSERT\s+INTO\s+water_intake\s*\(user_id,\s*day,\s*cups\)\s*VALUES\s*\(\$1,\s*\$2::date,\s*\$3\)\s*ON\s+CONFLICT\s*\(user_id,\s*day\)\s*DO\s+UPDATE\s+SET\s+cups\s*=\s*EXCLUDED\.cups\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"day", "cups"}).
		AddRow("2025-03-01", 4).
		AddRow("2025-03-02", 9)
	mock.ExpectQuery(listQ).WithArgs("u-1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, []models.WaterEntry{
		{Date: "2025-03-01", Cups: 4},
		{Date: "2025-03-02", Cups: 9},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WithArgs("u-1").WillReturnRows(sqlmock.NewRows([]string{"day", "cups"}))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(listQ).WillReturnError(errors.New("db down"))

		_, err := repo.ListByUser(context.Background(), "u-1")
		require.ErrorContains(t, err, "db error: db down")
	})

	t.Run("row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		rows := sqlmock.NewRows([]string{"day", "cups"}).
			AddRow("2025-03-01", 1).
			RowError(0, errors.New("broken row"))
		mock.ExpectQuery(listQ).WillReturnRows(rows)

		_, err := repo.ListByUser(context.Background(), "u-1")
		require.ErrorContains(t, err, "broken row")
	})
}

func TestFindDay(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(findQ).WithArgs("u-1", "2025-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"day", "cups"}).AddRow("2025-03-01", 3))
	mock.ExpectQuery(findQ).WithArgs("u-1", "2025-03-02").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(findQ).WithArgs("u-1", "2025-03-03").WillReturnError(errors.New("db down"))

	got, err := repo.FindDay(context.Background(), "u-1", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, models.WaterEntry{Date: "2025-03-01", Cups: 3}, got)

	_, err = repo.FindDay(context.Background(), "u-1", "2025-03-02")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindDay(context.Background(), "u-1", "2025-03-03")
	require.ErrorContains(t, err, "db error")
}

func TestSave(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(saveQ).WithArgs("u-1", "2025-03-01", int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(saveQ).WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Save(context.Background(), "u-1", models.WaterEntry{Date: "2025-03-01", Cups: 7}))
	require.ErrorContains(t, repo.Save(context.Background(), "u-1", models.WaterEntry{Date: "2025-03-01", Cups: 8}), "db error")
	require.NoError(t, mock.ExpectationsWereMet())
}
