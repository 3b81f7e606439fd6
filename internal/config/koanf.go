// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moodreel/config.yaml",
	"/etc/moodreel/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		OpenAI: OpenAIConfig{
			BaseURL:     "https://api.openai.com",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   500,
			Temperature: 0.7,
			Timeout:     20 * time.Second,
		},
		TMDB: TMDBConfig{
			BaseURL:       "https://api.themoviedb.org",
			ImageBaseURL:  "https://image.tmdb.org/t/p/w500",
			Language:      "en-US",
			MinVoteCount:  1000,
			Timeout:       10 * time.Second,
			RatePerSecond: 40,
			RateBurst:     10,
		},
		Secrets: SecretsConfig{
			Mode:    "static",
			Timeout: 5 * time.Second,
		},
		Recommend: RecommendConfig{
			BatchSize:      10,
			MaxCandidates:  15,
			ResolveLimit:   8,
			Concurrency:    8,
			CallTimeout:    5 * time.Second,
			PersistTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Backend:     "duckdb",
			Path:        "/data/moodreel.duckdb",
			MaxMemory:   "512MB",
			MaxOpenConn: 10,

			CheckpointInterval: 5 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       6 * time.Hour,
			Capacity:  5000,
			BadgerDir: "/data/cache",
			KeyPrefix: "moodreel:",
		},
		Events: EventsConfig{
			Backend:     "channel",
			NATSURL:     "nats://127.0.0.1:4222",
			TopicPrefix: "moodreel",
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf builds the Config from defaults, the optional YAML file and
// the environment, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
// Values coming from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config keys.
// Anything not listed is ignored so unrelated process env never leaks in.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"auth_disabled":       "security.auth_disabled",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"openai_base_url":    "openai.base_url",
	"openai_api_key":     "openai.api_key",
	"openai_model":       "openai.model",
	"openai_max_tokens":  "openai.max_tokens",
	"openai_temperature": "openai.temperature",
	"openai_timeout":     "openai.timeout",

	"tmdb_base_url":        "tmdb.base_url",
	"tmdb_image_base_url":  "tmdb.image_base_url",
	"tmdb_api_key":         "tmdb.api_key",
	"tmdb_language":        "tmdb.language",
	"tmdb_min_vote_count":  "tmdb.min_vote_count",
	"tmdb_timeout":         "tmdb.timeout",
	"tmdb_rate_per_second": "tmdb.rate_per_second",
	"tmdb_rate_burst":      "tmdb.rate_burst",

	"secrets_mode":       "secrets.mode",
	"secrets_remote_url": "secrets.remote_url",
	"secrets_timeout":    "secrets.timeout",

	"recommend_batch_size":      "recommend.batch_size",
	"recommend_max_candidates":  "recommend.max_candidates",
	"recommend_resolve_limit":   "recommend.resolve_limit",
	"recommend_concurrency":     "recommend.concurrency",
	"recommend_call_timeout":    "recommend.call_timeout",
	"recommend_persist_timeout": "recommend.persist_timeout",

	"database_backend":  "database.backend",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"postgres_dsn":      "database.postgres_dsn",
	"db_max_open_conns": "database.max_open_conns",
	"db_log_queries":    "database.log_queries",

	"duckdb_checkpoint_interval": "database.checkpoint_interval",

	"cache_backend":    "cache.backend",
	"cache_ttl":        "cache.ttl",
	"cache_capacity":   "cache.capacity",
	"cache_badger_dir": "cache.badger_dir",
	"redis_addr":       "cache.redis_addr",
	"redis_db":         "cache.redis_db",
	"cache_key_prefix": "cache.key_prefix",

	"events_backend":      "events.backend",
	"nats_url":            "events.nats_url",
	"events_topic_prefix": "events.topic_prefix",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc returns "" for unmapped variables, which koanf skips.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
