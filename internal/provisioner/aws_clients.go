// Where: internal/provisioner/aws_clients.go
// What: AWS SDK adapter for DynamoDB table provisioning.
// Why: Keep SDK request shapes out of the provisioning flow.
package provisioner

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/poruru/stop-server/internal/store"
)

// DynamoTablesAPI is the subset of *dynamodb.Client used for provisioning.
type DynamoTablesAPI interface {
	dynamodb.ListTablesAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// NewAWSDynamoClient adapts an SDK client to DynamoDBAPI.
func NewAWSDynamoClient(client DynamoTablesAPI) DynamoDBAPI {
	return awsDynamoClient{client: client}
}

type awsDynamoClient struct {
	client DynamoTablesAPI
}

func (c awsDynamoClient) ListTables(ctx context.Context) ([]string, error) {
	if c.client == nil {
		return nil, fmt.Errorf("dynamodb client is nil")
	}
	var names []string
	paginator := dynamodb.NewListTablesPaginator(c.client, &dynamodb.ListTablesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		names = append(names, page.TableNames...)
	}
	return names, nil
}

func (c awsDynamoClient) CreateServerTable(ctx context.Context, table string) error {
	if c.client == nil {
		return fmt.Errorf("dynamodb client is nil")
	}
	_, err := c.client.CreateTable(ctx, serverTableInput(table))
	return err
}

// serverTableInput describes the table the stop service reads from:
// a string partition key billed per request.
func serverTableInput(table string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(store.KeyAttribute), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(store.KeyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
