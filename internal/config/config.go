package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the scheduling service.
type Config struct {
	Environment string
	Port        int
	LogLevel    string
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Optimizer   OptimizerConfig
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL string
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string
}

// OptimizerConfig holds the knobs that shape a solve but are not part of any
// single request (solve time budget, default wait/buffer policy).
type OptimizerConfig struct {
	SolveTimeLimit           time.Duration
	DefaultMaxCustomerWait   time.Duration
	DefaultBufferBetween     time.Duration
	NightlyReoptimizeCron    string
}

// Load loads configuration from the defaults below, overridden by an
// optional YAML file, overridden by environment variables. Environment
// variables win over the file; the file wins over defaults. A nested key
// such as database.url is read from SCHEDULING_DATABASE_URL.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCHEDULING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("database.url", "postgres://localhost:5432/salon_scheduling?sslmode=disable")
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("optimizer.solve_time_limit", "0s")
	v.SetDefault("optimizer.default_max_customer_wait", "30m")
	v.SetDefault("optimizer.default_buffer_between", "15m")
	v.SetDefault("optimizer.nightly_reoptimize_cron", "0 2 * * *")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", configFile, err)
		}
	}

	solveTimeLimit, err := time.ParseDuration(v.GetString("optimizer.solve_time_limit"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid optimizer.solve_time_limit: %w", err)
	}
	maxWait, err := time.ParseDuration(v.GetString("optimizer.default_max_customer_wait"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid optimizer.default_max_customer_wait: %w", err)
	}
	buffer, err := time.ParseDuration(v.GetString("optimizer.default_buffer_between"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid optimizer.default_buffer_between: %w", err)
	}

	return &Config{
		Environment: v.GetString("environment"),
		Port:        v.GetInt("port"),
		LogLevel:    v.GetString("log_level"),
		Database:    DatabaseConfig{URL: v.GetString("database.url")},
		Redis:       RedisConfig{URL: v.GetString("redis.url")},
		NATS:        NATSConfig{URL: v.GetString("nats.url")},
		Optimizer: OptimizerConfig{
			SolveTimeLimit:         solveTimeLimit,
			DefaultMaxCustomerWait: maxWait,
			DefaultBufferBetween:   buffer,
			NightlyReoptimizeCron:  v.GetString("optimizer.nightly_reoptimize_cron"),
		},
	}, nil
}
