// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire static configuration of the agent. It is resolved
// once at startup from config.yaml, FRANZ_* environment variables and
// command-line flags; there is no runtime reconfiguration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Model   ModelConfig   `mapstructure:"model" yaml:"model"`
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture"`
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
}

// LoggerConfig controls the zap logger and the optional rotated log file.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// ModelConfig describes the vision-language model endpoint and the sampling
// parameters sent with every completion request.
type ModelConfig struct {
	Endpoint    string        `mapstructure:"endpoint" yaml:"endpoint"`
	Name        string        `mapstructure:"name" yaml:"name"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature"`
	TopP        float64       `mapstructure:"top_p" yaml:"top_p"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CaptureConfig fixes the output resolution every screen capture is
// downsampled to before encoding.
type CaptureConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// AgentConfig controls the orchestrator loop.
type AgentConfig struct {
	// RunsDir is the parent directory for timestamped run directories.
	RunsDir string `mapstructure:"runs_dir" yaml:"runs_dir"`
	// CycleDelay is the only inter-cycle throttle.
	CycleDelay time.Duration `mapstructure:"cycle_delay" yaml:"cycle_delay"`
	// RetryPause is the fixed pause after a failed capture or model call
	// before the loop restarts from the capture stage.
	RetryPause time.Duration `mapstructure:"retry_pause" yaml:"retry_pause"`
}

// SetDefaults registers the default configuration values on the given viper
// instance. Flags and environment variables override these.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "franz")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)

	v.SetDefault("model.endpoint", "http://localhost:1234/v1/chat/completions")
	v.SetDefault("model.name", "qwen3-vl-2b-instruct-1m")
	v.SetDefault("model.temperature", 0.7)
	v.SetDefault("model.top_p", 0.9)
	v.SetDefault("model.max_tokens", 400)
	v.SetDefault("model.timeout", 2*time.Minute)

	v.SetDefault("capture.width", 536)
	v.SetDefault("capture.height", 364)

	v.SetDefault("agent.runs_dir", "dump")
	v.SetDefault("agent.cycle_delay", 500*time.Millisecond)
	v.SetDefault("agent.retry_pause", time.Second)
}

// Load unmarshals and validates the configuration from the given viper
// instance.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the agent cannot run with.
func (c *Config) Validate() error {
	if c.Model.Endpoint == "" {
		return fmt.Errorf("model.endpoint must not be empty")
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model.name must not be empty")
	}
	if c.Model.MaxTokens <= 0 {
		return fmt.Errorf("model.max_tokens must be positive, got %d", c.Model.MaxTokens)
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("model.timeout must be positive, got %s", c.Model.Timeout)
	}
	if c.Capture.Width < 1 || c.Capture.Height < 1 {
		return fmt.Errorf("capture resolution must be at least 1x1, got %dx%d", c.Capture.Width, c.Capture.Height)
	}
	if c.Agent.RunsDir == "" {
		return fmt.Errorf("agent.runs_dir must not be empty")
	}
	if c.Agent.CycleDelay < 0 || c.Agent.RetryPause < 0 {
		return fmt.Errorf("agent delays must not be negative")
	}
	return nil
}
