// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Stop Service Configuration
	EnvServerListTable = "SERVERLIST_TABLE"
	EnvCluster         = "CLUSTER"
	EnvStopReason      = "STOP_REASON"

	// AWS Configuration
	EnvAWSRegion         = "AWS_REGION"
	EnvDynamoDBEndpoint  = "DYNAMODB_ENDPOINT"
	EnvECSEndpoint       = "ECS_ENDPOINT"
	EnvDynamoDBAccessKey = "DYNAMODB_ACCESS_KEY"
	EnvDynamoDBSecretKey = "DYNAMODB_SECRET_KEY"

	// Logging Configuration
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Host-level suffixes, combined with the CLI prefix by envutil.HostEnvKey.
const (
	HostSuffixConfig       = "CONFIG"
	HostSuffixPortDatabase = "PORT_DATABASE"
	HostSuffixProject      = "PROJECT"
)
