// Where: internal/store/dynamodb.go
// What: DynamoDB-backed server list.
// Why: Resolve server names to their running task ids.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/poruru/stop-server/internal/taskstop"
)

const (
	// KeyAttribute is the partition key of the server list table.
	KeyAttribute  = "name"
	TaskAttribute = "task"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type serverItem struct {
	Name string `dynamodbav:"name"`
	Task string `dynamodbav:"task,omitempty"`
}

// DynamoStore reads server records from a DynamoDB table.
type DynamoStore struct {
	client DynamoDBAPI
	table  string
}

// NewDynamoStore returns a store reading from table.
func NewDynamoStore(client DynamoDBAPI, table string) (*DynamoStore, error) {
	if client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	return &DynamoStore{client: client, table: table}, nil
}

// Table returns the table name the store reads from.
func (s *DynamoStore) Table() string {
	return s.table
}

// Get fetches the record for name. The boolean is false when no item exists.
func (s *DynamoStore) Get(ctx context.Context, name string) (taskstop.Record, bool, error) {
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			KeyAttribute: &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return taskstop.Record{}, false, err
	}
	if len(resp.Item) == 0 {
		return taskstop.Record{}, false, nil
	}

	var item serverItem
	if err := attributevalue.UnmarshalMap(resp.Item, &item); err != nil {
		return taskstop.Record{}, false, fmt.Errorf("decode server %q: %w", name, err)
	}
	if item.Name == "" {
		item.Name = name
	}
	return taskstop.Record{Name: item.Name, Task: item.Task}, true, nil
}

// List scans the whole table and returns records sorted by name.
func (s *DynamoStore) List(ctx context.Context) ([]taskstop.Record, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:            aws.String(s.table),
		ProjectionExpression: aws.String("#n, #t"),
		ExpressionAttributeNames: map[string]string{
			"#n": KeyAttribute,
			"#t": TaskAttribute,
		},
	})

	var records []taskstop.Record
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []serverItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("decode servers: %w", err)
		}
		for _, item := range items {
			if item.Name == "" {
				continue
			}
			records = append(records, taskstop.Record{Name: item.Name, Task: item.Task})
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}
