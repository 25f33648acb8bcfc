// Where: internal/provisioner/dynamodb.go
// What: DynamoDB provisioning helpers.
// Why: Create the server list table in a local DynamoDB.
package provisioner

import (
	"context"
	"fmt"
	"strings"
)

type DynamoDBAPI interface {
	ListTables(ctx context.Context) ([]string, error)
	CreateServerTable(ctx context.Context, table string) error
}

// ensureTable creates the server list table unless it already exists.
// It reports whether a table was created.
func ensureTable(ctx context.Context, client DynamoDBAPI, table string) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("dynamodb client is nil")
	}
	name := strings.TrimSpace(table)
	if name == "" {
		return false, fmt.Errorf("table name is required")
	}

	names, err := client.ListTables(ctx)
	if err != nil {
		return false, fmt.Errorf("list tables: %w", err)
	}
	for _, existing := range names {
		if existing == name {
			return false, nil
		}
	}

	if err := client.CreateServerTable(ctx, name); err != nil {
		return false, fmt.Errorf("create table %s: %w", name, err)
	}
	return true, nil
}
