// Where: internal/store/dynamodb_test.go
// What: Tests for the DynamoDB server list adapter.
// Why: Ensure items map to records and missing items are reported as absent.
package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type mockDynamo struct {
	GetItemFn func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	ScanFn    func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

func (m mockDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFn(ctx, params, optFns...)
}

func (m mockDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return m.ScanFn(ctx, params, optFns...)
}

func str(value string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: value}
}

func TestGetReturnsRecordWithTask(t *testing.T) {
	var captured *dynamodb.GetItemInput
	client := mockDynamo{
		GetItemFn: func(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			captured = params
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"name": str("api-2"),
				"task": str("arn:aws:ecs:us-east-1:123:task/game/abc123"),
			}}, nil
		},
	}
	s, err := NewDynamoStore(client, "serverlist")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	record, ok, err := s.Get(context.Background(), "api-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected record found")
	}
	if record.Task != "arn:aws:ecs:us-east-1:123:task/game/abc123" {
		t.Fatalf("unexpected task: %s", record.Task)
	}
	if aws.ToString(captured.TableName) != "serverlist" {
		t.Fatalf("unexpected table: %s", aws.ToString(captured.TableName))
	}
	key, ok := captured.Key["name"].(*types.AttributeValueMemberS)
	if !ok || key.Value != "api-2" {
		t.Fatalf("unexpected key: %#v", captured.Key)
	}
}

func TestGetMissingItem(t *testing.T) {
	client := mockDynamo{
		GetItemFn: func(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	s, _ := NewDynamoStore(client, "serverlist")

	_, ok, err := s.Get(context.Background(), "api-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected record absent")
	}
}

func TestGetItemWithoutTask(t *testing.T) {
	client := mockDynamo{
		GetItemFn: func(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"name": str("idle"),
			}}, nil
		},
	}
	s, _ := NewDynamoStore(client, "serverlist")

	record, ok, err := s.Get(context.Background(), "idle")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if record.HasTask() {
		t.Fatalf("expected record without task, got %q", record.Task)
	}
}

func TestGetPropagatesClientError(t *testing.T) {
	client := mockDynamo{
		GetItemFn: func(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			return nil, errors.New("boom")
		},
	}
	s, _ := NewDynamoStore(client, "serverlist")

	if _, _, err := s.Get(context.Background(), "api-2"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListSortsAcrossPages(t *testing.T) {
	calls := 0
	client := mockDynamo{
		ScanFn: func(_ context.Context, params *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			calls++
			if params.ExpressionAttributeNames["#n"] != "name" {
				t.Fatalf("unexpected projection names: %v", params.ExpressionAttributeNames)
			}
			if params.ExclusiveStartKey == nil {
				return &dynamodb.ScanOutput{
					Items: []map[string]types.AttributeValue{
						{"name": str("zeta"), "task": str("t-1")},
					},
					LastEvaluatedKey: map[string]types.AttributeValue{"name": str("zeta")},
				}, nil
			}
			return &dynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{"name": str("alpha")},
				},
			}, nil
		},
	}
	s, _ := NewDynamoStore(client, "serverlist")

	records, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two scan pages, got %d", calls)
	}
	if len(records) != 2 || records[0].Name != "alpha" || records[1].Name != "zeta" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[1].Task != "t-1" {
		t.Fatalf("unexpected task: %s", records[1].Task)
	}
}

func TestNewDynamoStoreRequiresTable(t *testing.T) {
	if _, err := NewDynamoStore(mockDynamo{}, " "); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := NewDynamoStore(nil, "serverlist"); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
