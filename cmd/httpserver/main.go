// @title Movie Catalog API
// @version 1.0
// @description Movies, genres, actors, ratings and favorites with JWT authentication.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"moviecatalog/auth"
	_ "moviecatalog/docs"
	"moviecatalog/dynamodb"
	"moviecatalog/favorite"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/hasher"
	pkgjwt "moviecatalog/pkg/jwt"
	"moviecatalog/pkg/oauth/google"
	"moviecatalog/pkg/sentry"
	"moviecatalog/postgres"
	"moviecatalog/rating"
	"moviecatalog/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		sentrygo.Flush(sentry.FlushTime)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return fmt.Errorf("cannot open postgres connection: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	attempts, err := newAttemptStore(ctx, cfg, postgres.NewLoginAttemptRepository(db))
	if err != nil {
		return err
	}

	movies := postgres.NewMovieRepository(db)
	users := postgres.NewUserRepository(db)
	bcryptHasher := hasher.NewBcrypt(cfg.Auth.BcryptCost)
	tokens := pkgjwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshTTL)
	userService := user.NewUsecase(users, bcryptHasher)

	server := httpserver.Default(cfg)
	server.MovieService = movie.NewUsecase(movies).WithPageSizes(cfg.Pagination.PageSize, cfg.Pagination.MaxPageSize)
	server.RatingService = rating.NewUsecase(postgres.NewRatingRepository(db), movies)
	server.FavoriteService = favorite.NewUsecase(postgres.NewFavoriteRepository(db), movies)
	server.UserService = userService
	server.AuthService = auth.NewUsecase(users, userService, attempts, bcryptHasher, tokens, googleProvider(cfg))
	server.Tokens = tokens

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started!", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newAttemptStore(ctx context.Context, cfg *config.Config, fallback auth.LoginAttemptRepository) (auth.LoginAttemptRepository, error) {
	if !strings.EqualFold(cfg.Auth.AttemptStore, config.AttemptStoreDynamoDB) {
		return fallback, nil
	}

	attempts, err := dynamodb.OpenLoginAttempts(ctx, dynamodb.Options{
		Region:             cfg.DynamoDB.Region,
		Endpoint:           cfg.DynamoDB.Endpoint,
		AccessKey:          cfg.DynamoDB.AccessKey,
		SecretKey:          cfg.DynamoDB.SecretKey,
		SessionToken:       cfg.DynamoDB.SessionToken,
		LoginAttemptsTable: cfg.DynamoDB.LoginAttemptsTable,
		MaxRetries:         cfg.DynamoDB.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open dynamodb login attempts: %w", err)
	}
	slog.Info("login attempts stored in dynamodb", "table", attempts.Table())
	return attempts, nil
}

// googleProvider returns a nil interface when Google sign-in is not configured.
func googleProvider(cfg *config.Config) auth.GoogleOAuthProvider {
	provider := google.NewProvider(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL)
	if provider == nil {
		return nil
	}
	return provider
}
