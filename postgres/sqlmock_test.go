package postgres_test

import (
	"context"
	"errors"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a gorm handle speaking the postgres dialect to sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, postgres.Config(logger.Silent))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db, mock
}

func TestMovieRepository_DatabaseErrors(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("list propagates count failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewMovieRepository(db)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "movies"`).WillReturnError(dbErr)

		_, _, err := repo.List(context.Background(), movie.Filter{}, movie.Page{Number: 1, Size: 20})

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exists propagates failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewMovieRepository(db)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "movies" WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnError(dbErr)

		err := repo.Exists(context.Background(), 1)

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete rolls back when a child delete fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewMovieRepository(db)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "movies" WHERE "movies"."id" = \$1 ORDER BY "movies"."id" LIMIT \$2 FOR UPDATE`).
			WithArgs(int64(7), 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectExec(`DELETE FROM movie_genres WHERE movie_id = \$1`).
			WithArgs(int64(7)).
			WillReturnError(dbErr)
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), 7)

		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_DatabaseErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewUserRepository(db)
	dbErr := errors.New("timeout")
	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY id`).WillReturnError(dbErr)

	_, err := repo.AllUsers(context.Background())

	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
