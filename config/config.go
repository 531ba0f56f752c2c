package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Redis   RedisConfig   `yaml:"redis"`
}

type ScoringConfig struct {
	ArtifactPath string `yaml:"artifact_path"`
	ModelEnabled bool   `yaml:"model_enabled"`
	RandomSeed   uint64 `yaml:"random_seed"` // 0 seeds from the clock
}

type BatchConfig struct {
	WorkerCount int     `yaml:"worker_count"`
	RateLimit   float64 `yaml:"rate_limit"` // titles per second, 0 = unlimited
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type RedisConfig struct {
	URL             string        `yaml:"url"` // empty disables stats sharing
	KeyPrefix       string        `yaml:"key_prefix"`
	PublishInterval time.Duration `yaml:"publish_interval"`
	TTL             time.Duration `yaml:"ttl"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Scoring: ScoringConfig{
			ArtifactPath: "sustain_model.json",
			ModelEnabled: true,
		},
		Batch: BatchConfig{
			WorkerCount: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Redis: RedisConfig{
			KeyPrefix:       "ecotide:stats",
			PublishInterval: 30 * time.Second,
			TTL:             5 * time.Minute,
		},
	}
}

// Load builds configuration from defaults, the optional YAML file named by
// ECOTIDE_CONFIG, and environment variables, in that order of precedence
func Load() (*Config, error) {
	return LoadFile(os.Getenv("ECOTIDE_CONFIG"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Scoring.ArtifactPath = getEnv("ECOTIDE_ARTIFACT_PATH", c.Scoring.ArtifactPath)
	c.Scoring.ModelEnabled = getEnvBool("ECOTIDE_MODEL_ENABLED", c.Scoring.ModelEnabled)
	c.Scoring.RandomSeed = getEnvUint("ECOTIDE_RANDOM_SEED", c.Scoring.RandomSeed)

	c.Batch.WorkerCount = getEnvInt("BATCH_WORKER_COUNT", c.Batch.WorkerCount)
	c.Batch.RateLimit = getEnvFloat("BATCH_RATE_LIMIT", c.Batch.RateLimit)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getEnv("LOG_FORMAT", c.Logging.Format)

	c.Metrics.Enabled = getEnvBool("METRICS_ENABLED", c.Metrics.Enabled)

	c.Redis.URL = getEnv("REDIS_URL", c.Redis.URL)
	c.Redis.KeyPrefix = getEnv("REDIS_KEY_PREFIX", c.Redis.KeyPrefix)
	c.Redis.PublishInterval = getEnvDuration("STATS_PUBLISH_INTERVAL", c.Redis.PublishInterval)
	c.Redis.TTL = getEnvDuration("STATS_TTL", c.Redis.TTL)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Batch.WorkerCount < 1 {
		return fmt.Errorf("batch worker count must be at least 1")
	}
	if c.Batch.RateLimit < 0 {
		return fmt.Errorf("batch rate limit must not be negative: %v", c.Batch.RateLimit)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	if c.Redis.URL != "" {
		if c.Redis.PublishInterval <= 0 {
			return fmt.Errorf("stats publish interval must be positive when redis is configured")
		}
		if c.Redis.KeyPrefix == "" {
			return fmt.Errorf("redis key prefix must not be empty")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
