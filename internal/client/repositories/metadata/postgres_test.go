package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func TestPostgres_Get_Found(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+value\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1$`).
		WithArgs("users_data").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))

	v, err := repo.Get(context.Background(), "users_data")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NotFound(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+metadata`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+value\s+FROM\s+metadata`).
		WithArgs("k").
		WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "k")
	require.ErrorContains(t, err, "failed to get metadata[k]: db down")
}

func TestPostgres_Set_Upserts(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+metadata\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE`).
		WithArgs("deleted_users", []byte(`[1]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "deleted_users", []byte(`[1]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteMany_RunsInTransaction(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1`).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+metadata\s+WHERE\s+key\s*=\s*\$1`).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteMany(context.Background(), "a", "b"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteMany_RollsBackOnError(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE\s+FROM\s+metadata`).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+metadata`).WithArgs("b").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.DeleteMany(context.Background(), "a", "b")
	require.ErrorContains(t, err, "failed to delete metadata[b]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListAndClear(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+key,\s*value\s+FROM\s+metadata`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("a", []byte("1")).
			AddRow("b", []byte("2")))
	mock.ExpectExec(`^DELETE\s+FROM\s+metadata$`).WillReturnResult(sqlmock.NewResult(0, 2))

	m, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, m)

	require.NoError(t, repo.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_List_ScanError(t *testing.T) {
	repo, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT\s+key,\s*value\s+FROM\s+metadata`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("a"))

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "failed to scan metadata row")
}
