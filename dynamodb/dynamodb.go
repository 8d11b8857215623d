package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DefaultLoginAttemptsTable is used when Options.LoginAttemptsTable is empty.
const DefaultLoginAttemptsTable = "login_attempts"

// Options configures the client backing the login attempt store. Endpoint
// points at DynamoDB Local or LocalStack during development.
type Options struct {
	Region             string
	Endpoint           string
	AccessKey          string
	SecretKey          string
	SessionToken       string
	LoginAttemptsTable string
	MaxRetries         int
}

// OpenLoginAttempts builds a client from opts and returns the login attempt
// repository on the configured table.
func OpenLoginAttempts(ctx context.Context, opts Options) (*LoginAttemptRepository, error) {
	client, err := NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewLoginAttemptRepository(client, opts.loginAttemptsTable()), nil
}

func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("dynamodb: region is required")
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if opts.MaxRetries > 0 {
		loadOpts = append(loadOpts, awscfg.WithRetryMaxAttempts(opts.MaxRetries))
	}

	switch {
	case opts.AccessKey == "" && opts.SecretKey == "" && opts.SessionToken == "":
		// default credential chain
	case opts.AccessKey == "" || opts.SecretKey == "":
		return nil, errors.New("dynamodb: access key and secret key must be set together")
	default:
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (o Options) loginAttemptsTable() string {
	if table := strings.TrimSpace(o.LoginAttemptsTable); table != "" {
		return table
	}
	return DefaultLoginAttemptsTable
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}
