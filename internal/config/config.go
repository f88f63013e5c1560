package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Execution ExecutionConfig `yaml:"execution"`
	Limits    LimitsConfig    `yaml:"limits"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	PathPrefix string `yaml:"path_prefix"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxSteps  int    `yaml:"max_steps"`
	StepDelay string `yaml:"step_delay"`
}

type ExecutionConfig struct {
	RequestTimeout string `yaml:"request_timeout"`
	MaxOutputSize  int    `yaml:"max_output_size"`
}

type LimitsConfig struct {
	BodyBytes        int64 `yaml:"body_bytes"`
	ExecutePerMinute int   `yaml:"execute_per_minute"`
}

// GetAPIKey returns the configured key, falling back to the
// GEMINI_API_KEY environment variable.
func (c *LLMConfig) GetAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

func (c *LLMConfig) GetStepDelay() time.Duration {
	d, err := time.ParseDuration(c.StepDelay)
	if err != nil {
		return 250 * time.Millisecond
	}
	return d
}

func (c *ExecutionConfig) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaults(&cfg)

	return &cfg, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7860
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/airemote.db"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.0-flash"
	}
	if cfg.LLM.MaxSteps == 0 {
		cfg.LLM.MaxSteps = 10
	}
	if cfg.LLM.StepDelay == "" {
		cfg.LLM.StepDelay = "250ms"
	}
	if cfg.Execution.RequestTimeout == "" {
		cfg.Execution.RequestTimeout = "5m"
	}
	if cfg.Execution.MaxOutputSize == 0 {
		cfg.Execution.MaxOutputSize = 1048576
	}
	if cfg.Limits.BodyBytes == 0 {
		cfg.Limits.BodyBytes = 64 << 10
	}
	if cfg.Limits.ExecutePerMinute == 0 {
		cfg.Limits.ExecutePerMinute = 30
	}
}
