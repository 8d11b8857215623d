package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"moviecatalog/pkg/config"
	"moviecatalog/pkg/hasher"
	"moviecatalog/postgres"
	"moviecatalog/user"

	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	email := flag.String("email", "", "email of the administrator account")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password, defaults to $SUPERUSER_PASSWORD")
	flag.Parse()

	if *email == "" || *password == "" {
		logger.Error("email and password are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		logger.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	users := user.NewUsecase(postgres.NewUserRepository(db), hasher.NewBcrypt(cfg.Auth.BcryptCost))
	created, err := users.AddSuperuser(context.Background(), user.User{Email: *email, Password: *password})
	if err != nil {
		logger.Error("cannot create superuser", "error", err)
		os.Exit(1)
	}

	logger.Info("superuser created", "id", created.ID, "email", created.Email)
}
