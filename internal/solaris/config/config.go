// Package config loads the Solaris moderator service configuration.
package config

import (
	"fmt"

	commonconfig "github.com/css-solaris/solaris-bot-go/internal/common/config"
)

// ServerConfig: HTTP server settings.
type ServerConfig = commonconfig.ServerConfig

// ServerTuningConfig: server tuning knobs.
type ServerTuningConfig = commonconfig.ServerTuningConfig

// RedisConfig: Valkey data store settings.
type RedisConfig = commonconfig.RedisConfig

// PostgresConfig: game directory database settings.
type PostgresConfig = commonconfig.PostgresConfig

// LogConfig: file logging settings.
type LogConfig = commonconfig.LogConfig

// ModerationConfig: who may manage games besides their creators.
type ModerationConfig struct {
	ModeratorIDs []int64 // platform user ids with global moderator rights
}

// Config: the whole service configuration.
type Config struct {
	Server       ServerConfig
	ServerTuning ServerTuningConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
	Moderation   ModerationConfig
	Log          LogConfig
	Telemetry    commonconfig.TelemetryConfig
}

// LoadFromEnv reads the whole configuration from the environment.
func LoadFromEnv() (*Config, error) {
	server, err := commonconfig.ReadServerConfigFromEnv(DefaultServerPort)
	if err != nil {
		return nil, fmt.Errorf("read server config failed: %w", err)
	}

	serverTuning, err := commonconfig.ReadServerTuningConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read server tuning config failed: %w", err)
	}

	redis, err := commonconfig.ReadRedisConfigFromEnv(
		[]string{"REDIS_HOST", "CACHE_HOST"},
		[]string{"REDIS_PORT", "CACHE_PORT"},
		[]string{"REDIS_PASSWORD", "CACHE_PASSWORD"},
		"localhost",
		6379,
		"",
	)
	if err != nil {
		return nil, fmt.Errorf("read redis config failed: %w", err)
	}

	postgres, err := commonconfig.ReadPostgresConfigFromEnv("solaris", "solaris")
	if err != nil {
		return nil, fmt.Errorf("read postgres config failed: %w", err)
	}

	moderation, err := readModerationConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := commonconfig.ReadLogConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("read log config failed: %w", err)
	}

	telemetry, err := commonconfig.ReadTelemetryConfigFromEnv("solaris-moderator")
	if err != nil {
		return nil, fmt.Errorf("read telemetry config failed: %w", err)
	}

	return &Config{
		Server:       server,
		ServerTuning: serverTuning,
		Redis:        redis,
		Postgres:     postgres,
		Moderation:   moderation,
		Log:          logCfg,
		Telemetry:    telemetry,
	}, nil
}

func readModerationConfig() (ModerationConfig, error) {
	ids, err := commonconfig.Int64ListFromEnvFirstNonEmpty(
		[]string{"SOLARIS_MODERATOR_IDS", "MODERATOR_IDS"},
		nil,
	)
	if err != nil {
		return ModerationConfig{}, fmt.Errorf("read moderator ids failed: %w", err)
	}
	return ModerationConfig{ModeratorIDs: ids}, nil
}
