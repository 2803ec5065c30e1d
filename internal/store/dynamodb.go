package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/i474232898/weather-forecast-recorder/internal/weather"
)

// PutItemAPI is the subset of the DynamoDB client used by DynamoStore.
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoStore writes records as single DynamoDB items keyed by "id".
type DynamoStore struct {
	client    PutItemAPI
	tableName string
}

// NewDynamoStore creates a DynamoStore for tableName.
func NewDynamoStore(client PutItemAPI, tableName string) (*DynamoStore, error) {
	if client == nil {
		return nil, errors.New("dynamodb client is nil")
	}
	if tableName == "" {
		return nil, errors.New("dynamodb table name is empty")
	}
	return &DynamoStore{client: client, tableName: tableName}, nil
}

// TableName returns the configured table name.
func (s *DynamoStore) TableName() string {
	return s.tableName
}

// PutRecord issues one unconditional PutItem for rec.
func (s *DynamoStore) PutRecord(ctx context.Context, rec weather.StoredRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item into %s: %w", s.tableName, err)
	}
	return nil
}

var _ weather.RecordStore = (*DynamoStore)(nil)
