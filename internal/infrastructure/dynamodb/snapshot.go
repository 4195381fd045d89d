package dynamodb

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsv2dynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsv2types "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	awsv2xray "github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"github.com/aws/aws-xray-sdk-go/xray"

	"asset-console/internal/domain"
)

// SnapshotStore persists one item per store key. The snapshot body is kept
// as a JSON string attribute so the table stays schema-free across stores.
type SnapshotStore struct {
	db        *awsv2dynamodb.Client
	tableName string
}

func NewSnapshotStore(ctx context.Context, region, tableName string) (*SnapshotStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	awsv2xray.AWSV2Instrumentor(&cfg.APIOptions)
	client := awsv2dynamodb.NewFromConfig(cfg)
	return &SnapshotStore{db: client, tableName: tableName}, nil
}

func storePK(key string) string { return "STORE#" + key }
func snapshotSK() string        { return "SNAPSHOT" }

func (s *SnapshotStore) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := map[string]any{
		"PK":         storePK(key),
		"SK":         snapshotSK(),
		"EntityType": "SNAPSHOT",
		"StoreKey":   key,
		"Data":       string(data),
		"UpdatedAt":  time.Now().UTC().Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	return xray.Capture(ctx, "DynamoDB.SaveSnapshot", func(ctx context.Context) error {
		_, err := s.db.PutItem(ctx, &awsv2dynamodb.PutItemInput{
			TableName: aws.String(s.tableName),
			Item:      av,
		})
		return err
	})
}

func (s *SnapshotStore) Load(ctx context.Context, key string, out any) error {
	var outItem *awsv2dynamodb.GetItemOutput
	err := xray.Capture(ctx, "DynamoDB.LoadSnapshot", func(ctx context.Context) error {
		var e error
		outItem, e = s.db.GetItem(ctx, &awsv2dynamodb.GetItemInput{
			TableName: aws.String(s.tableName),
			Key: map[string]awsv2types.AttributeValue{
				"PK": &awsv2types.AttributeValueMemberS{Value: storePK(key)},
				"SK": &awsv2types.AttributeValueMemberS{Value: snapshotSK()},
			},
		})
		return e
	})
	if err != nil {
		return err
	}
	if outItem.Item == nil {
		return domain.ErrNotFound
	}
	raw := struct {
		Data string `dynamodbav:"Data"`
	}{}
	if err := attributevalue.UnmarshalMap(outItem.Item, &raw); err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw.Data), out)
}
