package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-login/internal/domain"
)

// OTPRepo manages one-time code records. PK: email, so there is at most one
// row per address; issuing a fresh code replaces the previous row. Expired
// rows are reclaimed by the table TTL on expires_at, never deleted inline.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPRepo(client *dynamodb.Client, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

func (r *OTPRepo) Put(ctx context.Context, rec *domain.OTPRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetActive returns the record for email if it is unused and unexpired.
// Absent, used and expired records are indistinguishable to the caller:
// all three return domain.ErrNotFound.
func (r *OTPRepo) GetActive(ctx context.Context, email string, now time.Time) (*domain.OTPRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	if !rec.Active(now) {
		return nil, fmt.Errorf("otp expired or used: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (r *OTPRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	return err
}

// IncrementAttempts counts a failed submission in a single conditional update
// and returns the new attempt count. The condition keeps the whole
// read-compare-increment sequence atomic on the store side: only an active
// record below the cap can be incremented, so concurrent submissions cannot
// race past it. A conditional failure means the record is no longer active or
// the cap was reached by a concurrent request; both surface as
// domain.ErrConflict so the caller treats the code as exhausted.
func (r *OTPRepo) IncrementAttempts(ctx context.Context, email string, max int, now time.Time) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email", email),
		UpdateExpression:    aws.String("ADD #a :one"),
		ConditionExpression: aws.String("#u = :f AND #e > :now AND #a < :max"),
		ExpressionAttributeNames: map[string]string{
			"#a": fieldAttempts,
			"#u": fieldIsUsed,
			"#e": fieldExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Unix(), 10)},
			":max": &types.AttributeValueMemberN{Value: strconv.Itoa(max)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return 0, fmt.Errorf("otp attempts exhausted: %w", domain.ErrConflict)
	}
	if err != nil {
		return 0, err
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return 0, err
	}
	return rec.Attempts, nil
}

// MarkUsed consumes the record. The condition guarantees single use: only an
// active record can transition to used, so a second success with the same
// code fails with domain.ErrNotFound.
func (r *OTPRepo) MarkUsed(ctx context.Context, email string, at time.Time) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email", email),
		UpdateExpression:    aws.String("SET #u = :t, #ua = :at"),
		ConditionExpression: aws.String("attribute_exists(email) AND #u = :f AND #e > :now"),
		ExpressionAttributeNames: map[string]string{
			"#u":  fieldIsUsed,
			"#ua": fieldUsedAt,
			"#e":  fieldExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t":   &types.AttributeValueMemberBOOL{Value: true},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
			":at":  &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339)},
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(at.Unix(), 10)},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("otp no longer active: %w", domain.ErrNotFound)
	}
	return err
}
