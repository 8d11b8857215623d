package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AttemptStorePostgres = "postgres"
	AttemptStoreDynamoDB = "dynamodb"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
	RateLimit    int    `envconfig:"RATE_LIMIT" default:"20"`

	DB struct {
		Name      string `envconfig:"DB_NAME" default:"movies"`
		Host      string `envconfig:"DB_HOST" default:"localhost"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER" default:"postgres"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region             string `envconfig:"DDB_REGION"`
		Endpoint           string `envconfig:"DDB_ENDPOINT"`
		AccessKey          string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey          string `envconfig:"DDB_SECRET_KEY"`
		SessionToken       string `envconfig:"DDB_SESSION_TOKEN"`
		LoginAttemptsTable string `envconfig:"DDB_LOGIN_ATTEMPTS_TABLE"`
		MaxRetries         int    `envconfig:"DDB_MAX_RETRIES" default:"3"`
	}
	Auth struct {
		JWTSecret          string        `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL           time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"15m"`
		RefreshTTL         time.Duration `envconfig:"AUTH_REFRESH_TTL" default:"24h"`
		BcryptCost         int           `envconfig:"AUTH_BCRYPT_COST" default:"10"`
		AttemptStore       string        `envconfig:"AUTH_ATTEMPT_STORE" default:"postgres"`
		GoogleClientID     string        `envconfig:"AUTH_GOOGLE_CLIENT_ID"`
		GoogleClientSecret string        `envconfig:"AUTH_GOOGLE_CLIENT_SECRET"`
		GoogleRedirectURL  string        `envconfig:"AUTH_GOOGLE_REDIRECT_URL"`
	}
	Pagination struct {
		PageSize    int `envconfig:"PAGE_SIZE" default:"20"`
		MaxPageSize int `envconfig:"MAX_PAGE_SIZE" default:"100"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Auth.AttemptStore) {
	case AttemptStorePostgres, AttemptStoreDynamoDB:
	default:
		return fmt.Errorf("unknown AUTH_ATTEMPT_STORE %q", c.Auth.AttemptStore)
	}
	if c.AppEnv != "local" && c.AppEnv != "test" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required in %s", c.AppEnv)
	}
	if c.Pagination.PageSize <= 0 || c.Pagination.MaxPageSize < c.Pagination.PageSize {
		return fmt.Errorf("invalid page sizes %d/%d", c.Pagination.PageSize, c.Pagination.MaxPageSize)
	}
	return nil
}
