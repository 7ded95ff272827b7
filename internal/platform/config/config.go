// Package config loads process configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends selectable via CHRONICLE_STORE.
const (
	StoreMemory     = "memory"
	StorePostgres   = "postgres"
	StoreCloudWatch = "cloudwatch"
)

// Config source backends selectable via CHRONICLE_CONFIG_SOURCE.
const (
	ConfigStatic    = "static"
	ConfigRedis     = "redis"
	ConfigAppConfig = "appconfig"
)

// Server captures everything the process needs at startup.
type Server struct {
	Addr string

	StoreBackend  string
	ConfigBackend string

	// StaticTarget backs the static config source and local runs.
	StaticTarget string

	PostgresURL string

	Redis          RedisConfig
	RedisConfigKey string

	AppConfig AppConfigIDs

	PollInterval  time.Duration
	SearchTimeout time.Duration
}

// RedisConfig carries connection settings for the Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AppConfigIDs names the AppConfig application, environment, and profile.
// The variable names match the original deployment so existing parameter
// stores keep working.
type AppConfigIDs struct {
	Application string
	Environment string
	Profile     string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:          envOr("CHRONICLE_ADDR", ":8080"),
		StoreBackend:  envOr("CHRONICLE_STORE", StoreMemory),
		ConfigBackend: envOr("CHRONICLE_CONFIG_SOURCE", ConfigStatic),
		StaticTarget:  envOr("CHRONICLE_LOG_GROUP", "service-history"),
		PostgresURL:   os.Getenv("CHRONICLE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("CHRONICLE_REDIS_URL"),
			PoolSize:     envIntOr("CHRONICLE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("CHRONICLE_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDurationOr("CHRONICLE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("CHRONICLE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("CHRONICLE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RedisConfigKey: envOr("CHRONICLE_CONFIG_KEY", "chronicle:config"),
		AppConfig: AppConfigIDs{
			Application: envOr("APPCONFIG_APP_ID", "ServiceHistoryApp"),
			Environment: envOr("APPCONFIG_ENV_ID", "Production"),
			Profile:     envOr("APPCONFIG_CONFIG_PROFILE_ID", "ServiceHistoryConfig"),
		},
		PollInterval:  envDurationOr("CHRONICLE_POLL_INTERVAL", 500*time.Millisecond),
		SearchTimeout: envDurationOr("CHRONICLE_SEARCH_TIMEOUT", 30*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
