// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package config loads MoodReel configuration.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML file
// (CONFIG_PATH or one of DefaultConfigPaths), then environment variables.
// A Config is immutable once LoadWithKoanf returns it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the root of the configuration tree.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	OpenAI     OpenAIConfig     `koanf:"openai"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Secrets    SecretsConfig    `koanf:"secrets"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Events     EventsConfig     `koanf:"events"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds token verification and edge protection settings.
// Tokens are minted by the external identity provider; MoodReel only
// verifies them with the shared secret.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	AuthDisabled      bool          `koanf:"auth_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// OpenAIConfig configures the text-generation source.
type OpenAIConfig struct {
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
}

// TMDBConfig configures the metadata source.
type TMDBConfig struct {
	BaseURL       string        `koanf:"base_url"`
	ImageBaseURL  string        `koanf:"image_base_url"`
	APIKey        string        `koanf:"api_key"`
	Language      string        `koanf:"language"`
	MinVoteCount  int           `koanf:"min_vote_count"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	RateBurst     int           `koanf:"rate_burst"`
}

// SecretsConfig selects where API credentials come from.
// Mode "static" uses the keys from the openai and tmdb sections; mode
// "remote" fetches them per call from RemoteURL with the caller's token.
type SecretsConfig struct {
	Mode      string        `koanf:"mode"`
	RemoteURL string        `koanf:"remote_url"`
	Timeout   time.Duration `koanf:"timeout"`
}

// RecommendConfig tunes the assembly pipeline.
type RecommendConfig struct {
	BatchSize      int           `koanf:"batch_size"`
	MaxCandidates  int           `koanf:"max_candidates"`
	ResolveLimit   int           `koanf:"resolve_limit"`
	Concurrency    int           `koanf:"concurrency"`
	CallTimeout    time.Duration `koanf:"call_timeout"`
	PersistTimeout time.Duration `koanf:"persist_timeout"`
}

// DatabaseConfig selects the persistence backend.
type DatabaseConfig struct {
	Backend     string `koanf:"backend"` // duckdb or postgres
	Path        string `koanf:"path"`
	MaxMemory   string `koanf:"max_memory"`
	Threads     int    `koanf:"threads"`
	PostgresDSN string `koanf:"postgres_dsn"`
	MaxOpenConn int    `koanf:"max_open_conns"`
	LogQueries  bool   `koanf:"log_queries"`

	// CheckpointInterval is how often the DuckDB WAL is folded into the
	// database file. Default: 5m
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// CacheConfig selects the metadata cache tier.
type CacheConfig struct {
	Backend   string        `koanf:"backend"` // memory, badger, redis, none
	TTL       time.Duration `koanf:"ttl"`
	Capacity  int           `koanf:"capacity"`
	BadgerDir string        `koanf:"badger_dir"`
	RedisAddr string        `koanf:"redis_addr"`
	RedisDB   int           `koanf:"redis_db"`
	KeyPrefix string        `koanf:"key_prefix"`
}

// EventsConfig selects the domain event transport.
type EventsConfig struct {
	Backend     string `koanf:"backend"` // channel, nats, none
	NATSURL     string `koanf:"nats_url"`
	TopicPrefix string `koanf:"topic_prefix"`
}

type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Validate checks the loaded configuration for values the process cannot
// run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if !c.Security.AuthDisabled && len(c.Security.JWTSecret) < 32 {
		errs = append(errs, errors.New("security.jwt_secret must be at least 32 characters (or set security.auth_disabled)"))
	}
	if err := validateURL("openai.base_url", c.OpenAI.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("tmdb.base_url", c.TMDB.BaseURL); err != nil {
		errs = append(errs, err)
	}

	switch c.Secrets.Mode {
	case "static":
	case "remote":
		if err := validateURL("secrets.remote_url", c.Secrets.RemoteURL); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("secrets.mode %q must be static or remote", c.Secrets.Mode))
	}

	if c.Recommend.BatchSize <= 0 {
		errs = append(errs, errors.New("recommend.batch_size must be positive"))
	}
	if c.Recommend.ResolveLimit <= 0 || c.Recommend.ResolveLimit > c.Recommend.MaxCandidates {
		errs = append(errs, errors.New("recommend.resolve_limit must be in 1..max_candidates"))
	}
	if c.Recommend.CallTimeout <= 0 {
		errs = append(errs, errors.New("recommend.call_timeout must be positive"))
	}

	switch c.Database.Backend {
	case "duckdb":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for duckdb"))
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			errs = append(errs, errors.New("database.postgres_dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.backend %q must be duckdb or postgres", c.Database.Backend))
	}

	switch c.Cache.Backend {
	case "memory", "none":
	case "badger":
		if c.Cache.BadgerDir == "" {
			errs = append(errs, errors.New("cache.badger_dir is required for badger"))
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend %q is not supported", c.Cache.Backend))
	}

	switch c.Events.Backend {
	case "channel", "none":
	case "nats":
		if c.Events.NATSURL == "" {
			errs = append(errs, errors.New("events.nats_url is required for nats"))
		}
	default:
		errs = append(errs, fmt.Errorf("events.backend %q is not supported", c.Events.Backend))
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}

	return errors.Join(errs...)
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q is not an absolute URL", field, raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	return nil
}
