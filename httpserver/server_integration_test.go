package httpserver_test

import (
	"context"
	"testing"
	"time"

	"moviecatalog/auth"
	"moviecatalog/favorite"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/hasher"
	pkgjwt "moviecatalog/pkg/jwt"
	"moviecatalog/postgres"
	"moviecatalog/rating"
	"moviecatalog/user"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	movies := postgres.NewMovieRepository(db)
	users := postgres.NewUserRepository(db)
	bcryptHasher := hasher.NewBcrypt(bcrypt.MinCost)
	userService := user.NewUsecase(users, bcryptHasher)
	tokens := pkgjwt.NewJWTProvider(testJWTSecret, time.Hour, time.Hour)

	cfg := testConfig()
	cfg.RateLimit = 1000
	server := httpserver.Default(cfg)
	server.MovieService = movie.NewUsecase(movies)
	server.RatingService = rating.NewUsecase(postgres.NewRatingRepository(db), movies)
	server.FavoriteService = favorite.NewUsecase(postgres.NewFavoriteRepository(db), movies)
	server.UserService = userService
	server.AuthService = auth.NewUsecase(
		users,
		userService,
		postgres.NewLoginAttemptRepository(db),
		bcryptHasher,
		tokens,
		nil,
	)
	server.Tokens = tokens

	return server
}

// MustCreateTestDatabase creates a new testcontainer PostgreSQL database and returns a GORM DB connection
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_movies", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	assert.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	assert.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = postgres.Migrate(sqlDB, migrationPath, migrate.Up, 0)
	require.NoError(t, err, "failed to run database migrations")
}
