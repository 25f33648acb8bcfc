// Where: internal/config/config.go
// What: Stop service configuration from YAML, environment, and defaults.
// Why: Share one configuration model between the Lambda entrypoint and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/stop-server/internal/constants"
	"github.com/poruru/stop-server/internal/envutil"
	"github.com/poruru/stop-server/internal/meta"
	"gopkg.in/yaml.v3"
)

// Config holds everything needed to build a stop service.
type Config struct {
	Table            string `yaml:"table"`
	Cluster          string `yaml:"cluster"`
	StopReason       string `yaml:"stop_reason,omitempty"`
	Region           string `yaml:"region,omitempty"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint,omitempty"`
	ECSEndpoint      string `yaml:"ecs_endpoint,omitempty"`
	LogLevel         string `yaml:"log_level,omitempty"`
	LogFormat        string `yaml:"log_format,omitempty"`

	// Static credentials, only used together with an endpoint override.
	LocalAccessKey string `yaml:"-"`
	LocalSecretKey string `yaml:"-"`
}

// Default returns a Config with logging defaults applied.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "json",
		LocalAccessKey: "dummy",
		LocalSecretKey: "dummy",
	}
}

// Load builds the configuration for the Lambda runtime: defaults overlaid
// with environment variables, then validated.
func Load() (Config, error) {
	cfg := ApplyEnv(Default())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays non-empty environment variables onto cfg.
func ApplyEnv(cfg Config) Config {
	overlay := []struct {
		key    string
		target *string
	}{
		{constants.EnvServerListTable, &cfg.Table},
		{constants.EnvCluster, &cfg.Cluster},
		{constants.EnvStopReason, &cfg.StopReason},
		{constants.EnvAWSRegion, &cfg.Region},
		{constants.EnvDynamoDBEndpoint, &cfg.DynamoDBEndpoint},
		{constants.EnvECSEndpoint, &cfg.ECSEndpoint},
		{constants.EnvDynamoDBAccessKey, &cfg.LocalAccessKey},
		{constants.EnvDynamoDBSecretKey, &cfg.LocalSecretKey},
		{constants.EnvLogLevel, &cfg.LogLevel},
		{constants.EnvLogFormat, &cfg.LogFormat},
	}
	for _, item := range overlay {
		if value, ok := envutil.Lookup(item.key); ok {
			*item.target = value
		}
	}
	return cfg
}

// Merge returns base with every non-empty field of override applied.
func Merge(base, override Config) Config {
	pick := func(current, next string) string {
		if strings.TrimSpace(next) != "" {
			return strings.TrimSpace(next)
		}
		return current
	}
	base.Table = pick(base.Table, override.Table)
	base.Cluster = pick(base.Cluster, override.Cluster)
	base.StopReason = pick(base.StopReason, override.StopReason)
	base.Region = pick(base.Region, override.Region)
	base.DynamoDBEndpoint = pick(base.DynamoDBEndpoint, override.DynamoDBEndpoint)
	base.ECSEndpoint = pick(base.ECSEndpoint, override.ECSEndpoint)
	base.LogLevel = pick(base.LogLevel, override.LogLevel)
	base.LogFormat = pick(base.LogFormat, override.LogFormat)
	base.LocalAccessKey = pick(base.LocalAccessKey, override.LocalAccessKey)
	base.LocalSecretKey = pick(base.LocalSecretKey, override.LocalSecretKey)
	return base
}

// Validate checks that the required settings are present.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Table) == "" {
		errs = append(errs, fmt.Errorf("%s is required", constants.EnvServerListTable))
	}
	if strings.TrimSpace(c.Cluster) == "" {
		errs = append(errs, fmt.Errorf("%s is required", constants.EnvCluster))
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format: %s", c.LogFormat))
	}
	return errors.Join(errs...)
}

// FilePath returns the path of the CLI config file.
// TASKSTOP_CONFIG overrides the default ~/.taskstop/config.yaml.
func FilePath() (string, error) {
	if override := strings.TrimSpace(envutil.GetHostEnv(constants.HostSuffixConfig)); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveFile writes cfg as YAML to path.
func SaveFile(path string, cfg Config) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// LoadLayered resolves CLI configuration: defaults, then the YAML file, then
// the environment. An explicit path must exist; the default path is optional.
func LoadLayered(path string) (Config, error) {
	return LoadLayeredFrom(Default(), path)
}

// LoadLayeredFrom is LoadLayered with base in place of Default.
func LoadLayeredFrom(base Config, path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		resolved, err := FilePath()
		if err != nil {
			return Config{}, err
		}
		path = resolved
	}

	cfg := base
	fileCfg, err := LoadFile(path)
	switch {
	case err == nil:
		cfg = Merge(cfg, fileCfg)
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, err
	}
	return ApplyEnv(cfg), nil
}
