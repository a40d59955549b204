package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the worker and the driver
type Config struct {
	// Server configuration
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Model       string `mapstructure:"model"`
	BatchSize   int    `mapstructure:"batch_size"`
	Redis       string `mapstructure:"redis"`

	// Worker fleet for the driver side. Empty means "discover via Redis".
	Workers []string `mapstructure:"workers"`

	// Engine configuration. OutputDims holds the trailing dims of each
	// model output, one entry per output name.
	OrtLibrary  string    `mapstructure:"ort_library"`
	InputNames  []string  `mapstructure:"input_names"`
	OutputNames []string  `mapstructure:"output_names"`
	OutputDims  [][]int64 `mapstructure:"output_dims"`

	// OpenTelemetry configuration
	OTELEnabled  bool   `mapstructure:"otel_enabled"`
	OTELEndpoint string `mapstructure:"otel_endpoint"`

	// Feature flags
	UseMockEngine bool `mapstructure:"use_mock_engine"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 50051)
	v.SetDefault("metrics_port", 9100)
	v.SetDefault("model", "model.xml")
	v.SetDefault("batch_size", 0)
	v.SetDefault("redis", "localhost:6379")
	v.SetDefault("workers", []string{})
	v.SetDefault("ort_library", "")
	v.SetDefault("input_names", []string{"input"})
	v.SetDefault("output_names", []string{"output"})
	v.SetDefault("output_dims", [][]int64{})
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("use_mock_engine", false)
}

// Load loads configuration from environment variables and an optional
// config file. Priority (highest to lowest): env vars > config file >
// defaults. Flag overrides are the binary's business.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INFERGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The standard OTEL env var enables tracing on its own.
	if otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); otelEndpoint != "" {
		v.Set("otel_endpoint", otelEndpoint)
		v.Set("otel_enabled", true)
	}

	v.BindEnv("port", "INFERGRID_PORT")
	v.BindEnv("metrics_port", "INFERGRID_METRICS_PORT")
	v.BindEnv("model", "INFERGRID_MODEL")
	v.BindEnv("batch_size", "INFERGRID_BATCH_SIZE")
	v.BindEnv("redis", "INFERGRID_REDIS")
	v.BindEnv("ort_library", "INFERGRID_ORT_LIBRARY")
	v.BindEnv("otel_enabled", "INFERGRID_OTEL_ENABLED")
	v.BindEnv("otel_endpoint", "INFERGRID_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("use_mock_engine", "INFERGRID_USE_MOCK")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/infergrid/")
	v.AddConfigPath("$HOME/.infergrid")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; ignore
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadWithConfigFile loads configuration from a specific config file
func LoadWithConfigFile(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("INFERGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MetricsPort <= 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}
	if c.Port == c.MetricsPort {
		return fmt.Errorf("port and metrics_port must be different")
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("invalid batch size: %d", c.BatchSize)
	}
	if c.Model == "" && !c.UseMockEngine {
		return fmt.Errorf("model path is required when not using the mock engine")
	}
	if !c.UseMockEngine && len(c.OutputDims) == 0 {
		return fmt.Errorf("output_dims is required when not using the mock engine")
	}
	if !c.UseMockEngine && len(c.OutputNames) > 0 && len(c.OutputDims) != len(c.OutputNames) {
		return fmt.Errorf("got %d output_dims entries for %d output names", len(c.OutputDims), len(c.OutputNames))
	}
	return nil
}
