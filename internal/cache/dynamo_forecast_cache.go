package cache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
)

const forecastTableName = "surfcast-forecast-cache"

// DynamoDBClient is the slice of the DynamoDB API the cache uses.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// DynamoForecastCache is the durable tier of the forecast cache. Item expiry
// is delegated to the table's TTL attribute; freshness relative to
// maxCacheAge is the caller's read-time check.
type DynamoForecastCache struct {
	client DynamoDBClient
}

func NewDynamoForecastCache(client DynamoDBClient) *DynamoForecastCache {
	return &DynamoForecastCache{client: client}
}

// Get retrieves the cached forecast record for a location. A missing item
// returns nil without error.
func (c *DynamoForecastCache) Get(ctx context.Context, locationID string) (*models.ForecastRecord, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(forecastTableName),
		Key: map[string]types.AttributeValue{
			"locationId": &types.AttributeValueMemberS{Value: locationID},
		},
	}

	result, err := c.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting forecast from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var record models.ForecastRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshaling forecast record: %w", err)
	}

	return &record, nil
}

// Save writes the forecast record for a location, replacing any previous
// item whole. Single-item puts keep a write atomic relative to reads of the
// same location.
func (c *DynamoForecastCache) Save(ctx context.Context, record models.ForecastRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshaling forecast record: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(forecastTableName),
		Item:      item,
	}

	if _, err := c.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting forecast in DynamoDB: %w", err)
	}

	log.Debug().Str("location_id", record.LocationID).
		Int("points", len(record.Forecasts)).Msg("Saved forecast to cache")

	return nil
}

// DeleteAll hard-deletes every cached forecast. Used for logout/test reset;
// lazy expiry covers normal operation.
func (c *DynamoForecastCache) DeleteAll(ctx context.Context) error {
	scan := &dynamodb.ScanInput{
		TableName:            aws.String(forecastTableName),
		ProjectionExpression: aws.String("locationId"),
	}

	for {
		result, err := c.client.Scan(ctx, scan)
		if err != nil {
			return fmt.Errorf("scanning forecast cache: %w", err)
		}

		if len(result.Items) > 0 {
			writeRequests := make([]types.WriteRequest, 0, len(result.Items))
			for _, item := range result.Items {
				writeRequests = append(writeRequests, types.WriteRequest{
					DeleteRequest: &types.DeleteRequest{Key: item},
				})
			}

			// DynamoDB caps batch writes at 25 requests.
			for start := 0; start < len(writeRequests); start += 25 {
				end := start + 25
				if end > len(writeRequests) {
					end = len(writeRequests)
				}
				input := &dynamodb.BatchWriteItemInput{
					RequestItems: map[string][]types.WriteRequest{
						forecastTableName: writeRequests[start:end],
					},
				}
				if _, err := c.client.BatchWriteItem(ctx, input); err != nil {
					return fmt.Errorf("batch deleting forecast cache: %w", err)
				}
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		scan.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return nil
}
