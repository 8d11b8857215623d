package dynamodb

import (
	"context"
	"fmt"
	"moviecatalog/auth"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// recordTTL is how long an attempt record outlives its last write. The
// table is expected to use expires_at as its TTL attribute.
const recordTTL = 24 * time.Hour

// ItemAPI is the subset of *dynamodb.Client used by the repositories.
type ItemAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// LoginAttemptRepository implements [auth.LoginAttemptRepository] on a
// DynamoDB table keyed by email.
type LoginAttemptRepository struct {
	client ItemAPI
	table  string
	now    func() time.Time
}

func NewLoginAttemptRepository(client ItemAPI, table string) *LoginAttemptRepository {
	return &LoginAttemptRepository{
		client: client,
		table:  table,
		now:    time.Now,
	}
}

// attemptRecord is the stored item. expires_at holds unix seconds for the
// table's TTL.
type attemptRecord struct {
	Email       string `dynamodbav:"email"`
	FailedCount int    `dynamodbav:"failed_count"`
	JailedUntil string `dynamodbav:"jailed_until,omitempty"`
	ExpiresAt   int64  `dynamodbav:"expires_at"`
}

// Table reports the DynamoDB table the repository reads and writes.
func (r *LoginAttemptRepository) Table() string {
	return r.table
}

func (r *LoginAttemptRepository) Get(ctx context.Context, email string) (auth.LoginAttempt, error) {
	if err := validateTable(r.table); err != nil {
		return auth.LoginAttempt{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            emailKey(email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return auth.LoginAttempt{}, fmt.Errorf("dynamodb: get login attempt: %w", err)
	}
	if len(out.Item) == 0 {
		return auth.LoginAttempt{}, nil
	}

	var record attemptRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return auth.LoginAttempt{}, fmt.Errorf("dynamodb: decode login attempt: %w", err)
	}

	// TTL deletion is lazy, so expired items may still be returned
	if record.ExpiresAt > 0 && r.now().Unix() >= record.ExpiresAt {
		return auth.LoginAttempt{}, nil
	}

	attempt := auth.LoginAttempt{FailedCount: record.FailedCount}
	if record.JailedUntil != "" {
		parsed, err := time.Parse(time.RFC3339Nano, record.JailedUntil)
		if err != nil {
			return auth.LoginAttempt{}, fmt.Errorf("dynamodb: parse jailed_until: %w", err)
		}
		attempt.JailedUntil = parsed.UTC()
	}

	return attempt, nil
}

func (r *LoginAttemptRepository) Save(ctx context.Context, email string, attempt auth.LoginAttempt) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	expiresAt := r.now().Add(recordTTL)
	if attempt.JailedUntil.After(expiresAt) {
		expiresAt = attempt.JailedUntil
	}

	record := attemptRecord{
		Email:       email,
		FailedCount: attempt.FailedCount,
		ExpiresAt:   expiresAt.Unix(),
	}
	if !attempt.JailedUntil.IsZero() {
		record.JailedUntil = attempt.JailedUntil.UTC().Format(time.RFC3339Nano)
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("dynamodb: encode login attempt: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: put login attempt: %w", err)
	}
	return nil
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, email string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       emailKey(email),
	})
	if err != nil {
		return fmt.Errorf("dynamodb: delete login attempt: %w", err)
	}
	return nil
}

func emailKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
}
