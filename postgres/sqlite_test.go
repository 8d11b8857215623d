package postgres_test

import (
	"moviecatalog/postgres"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a private in-memory database with the repository
// schema. It backs the repository tests that do not need a container.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), postgres.Config(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&postgres.UserModel{},
		&postgres.GenreModel{},
		&postgres.ActorModel{},
		&postgres.MovieModel{},
		&postgres.RatingModel{},
		&postgres.FavoriteModel{},
		&postgres.LoginAttemptModel{},
	)
	require.NoError(t, err)

	return db
}
