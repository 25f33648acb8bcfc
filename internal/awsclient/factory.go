// Where: internal/awsclient/factory.go
// What: AWS client factory for DynamoDB and ECS.
// Why: Encapsulate SDK configuration, including endpoint overrides for local stacks.
package awsclient

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
)

const defaultAWSRegion = "us-east-1"

// Settings selects region and optional endpoint overrides.
type Settings struct {
	Region           string
	DynamoDBEndpoint string
	ECSEndpoint      string
	// AccessKey/SecretKey are used only for the DynamoDB endpoint override.
	AccessKey string
	SecretKey string
}

// Factory builds SDK clients from Settings.
type Factory struct {
	Settings Settings
}

// DynamoDB returns a DynamoDB client. With an endpoint override the client
// uses static credentials, as local DynamoDB accepts any key pair.
func (f Factory) DynamoDB(ctx context.Context) (*dynamodb.Client, error) {
	endpoint := strings.TrimSpace(f.Settings.DynamoDBEndpoint)
	var creds aws.CredentialsProvider
	if endpoint != "" {
		creds = credentials.NewStaticCredentialsProvider(
			valueOr(f.Settings.AccessKey, "dummy"),
			valueOr(f.Settings.SecretKey, "dummy"),
			"",
		)
	}
	cfg, err := loadAWSConfig(ctx, f.Settings.Region, creds)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// ECS returns an ECS client using the default credential chain.
func (f Factory) ECS(ctx context.Context) (*ecs.Client, error) {
	endpoint := strings.TrimSpace(f.Settings.ECSEndpoint)
	cfg, err := loadAWSConfig(ctx, f.Settings.Region, nil)
	if err != nil {
		return nil, err
	}
	return ecs.NewFromConfig(cfg, func(options *ecs.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func loadAWSConfig(
	ctx context.Context,
	region string,
	creds aws.CredentialsProvider,
) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region = strings.TrimSpace(region); region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if creds != nil {
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.Region == "" {
		cfg.Region = defaultAWSRegion
	}
	return cfg, nil
}

func valueOr(value, fallback string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return fallback
}
