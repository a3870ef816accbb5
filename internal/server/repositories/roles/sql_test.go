package roles

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ganatecnica/obradiary/internal/common"
	"github.com/ganatecnica/obradiary/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roleColumns = []string{"id", "name", "description", "color", "is_active", "created_at"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO roles`).
		WithArgs("r1", "Albañil", "Obra negra", "#3B82F6", true, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Role{
		ID: "r1", Name: "Albañil", Description: "Obra negra", Color: "#3B82F6", IsActive: true, CreatedAt: created,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NullDescription(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM roles WHERE id=\$1`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(roleColumns).AddRow("r1", "Plomero", nil, "#00FF00", true, created))

	r, err := repo.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "Plomero", r.Name)
	assert.Empty(t, r.Description)
	assert.Equal(t, "#00FF00", r.Color)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM roles`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "r1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListActive(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(roleColumns).
		AddRow("r1", "Albañil", "", "#111111", true, created).
		AddRow("r2", "Plomero", "", "#222222", true, created)
	mock.ExpectQuery(`SELECT .* FROM roles WHERE is_active=\$1 ORDER BY name`).WithArgs(true).WillReturnRows(rows)

	list, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Albañil", list[0].Name)
	assert.Equal(t, "Plomero", list[1].Name)
}

func TestListActive_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows(roleColumns).
		AddRow("r1", "Albañil", "", "#111111", true, time.Now()).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(`SELECT .* FROM roles`).WillReturnRows(rows)

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}
