package alert

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/models"
)

const (
	rulesTableName = "surfcast-alert-rules"
	spotsTableName = "surfcast-spots"
)

// Store is the persistence collaborator: it owns spots and alert rules. The
// engine reads rules and writes back trigger bookkeeping after a fire.
type Store interface {
	ListEnabledRules(ctx context.Context) ([]models.AlertRule, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	SaveRule(ctx context.Context, rule models.AlertRule) error
}

// dynamoAPI is the slice of the DynamoDB API the store uses.
type dynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore persists alert rules and spots in DynamoDB.
type DynamoStore struct {
	client dynamoAPI
}

func NewDynamoStore(client dynamoAPI) *DynamoStore {
	return &DynamoStore{client: client}
}

// ListEnabledRules scans the rules table for enabled rules.
func (s *DynamoStore) ListEnabledRules(ctx context.Context) ([]models.AlertRule, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(rulesTableName),
		FilterExpression: aws.String("enabled = :enabled"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":enabled": &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	var rules []models.AlertRule
	for {
		result, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scanning alert rules: %w", err)
		}

		var page []models.AlertRule
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshaling alert rules: %w", err)
		}
		rules = append(rules, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	log.Debug().Int("rule_count", len(rules)).Msg("Loaded enabled alert rules")
	return rules, nil
}

// GetLocation retrieves a spot from the spot registry.
func (s *DynamoStore) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(spotsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting spot %s: %w", id, err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("spot not found: %s", id)
	}

	var location models.Location
	if err := attributevalue.UnmarshalMap(result.Item, &location); err != nil {
		return nil, fmt.Errorf("unmarshaling spot %s: %w", id, err)
	}

	return &location, nil
}

// SaveRule writes a rule back, assigning an ID to new rules.
func (s *DynamoStore) SaveRule(ctx context.Context, rule models.AlertRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(rule)
	if err != nil {
		return fmt.Errorf("marshaling alert rule: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(rulesTableName),
		Item:      item,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting alert rule %s: %w", rule.ID, err)
	}

	return nil
}
