package repo

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestBrandRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBrandRepository(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "code", "is_active"}).
		AddRow(id, now, now, "Acme", "ACM", true)

	mock.ExpectQuery(`SELECT .* FROM "brands" WHERE id = .*`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	brand, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
	assert.Equal(t, id, brand.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBrandRepositoryListWithSearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBrandRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "brands" WHERE name ILIKE .*`).
		WithArgs("%acme%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM "brands" WHERE name ILIKE .* ORDER BY name ASC LIMIT .*`).
		WithArgs("%acme%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "is_active"}).
			AddRow(id, now, now, "Acme", true))

	brands, total, err := repo.List(20, 0, "acme")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, brands, 1)
	assert.Equal(t, "Acme", brands[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBrandRepositoryGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBrandRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "brands" WHERE id = .*`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
