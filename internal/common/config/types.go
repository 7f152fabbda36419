package config

import "time"

// ServerConfig: HTTP server bind address.
type ServerConfig struct {
	Host string // bind host
	Port int    // listen port
}

// ServerTuningConfig: HTTP server tuning knobs (timeouts, limits).
type ServerTuningConfig struct {
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
}

// RedisConfig: Redis/Valkey connection settings.
type RedisConfig struct {
	Host     string // server host
	Port     int    // server port
	Password string // auth password
	DB       int    // database number

	DialTimeout  time.Duration // connect timeout
	ReadTimeout  time.Duration // read timeout
	WriteTimeout time.Duration // write timeout

	PoolSize     int // connection pool size
	MinIdleConns int // minimum idle connections
}

// PostgresConfig: PostgreSQL database settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// LogConfig: file log rotation settings.
type LogConfig struct {
	Dir string // log file directory; empty disables file logging

	MaxSizeMB  int  // max size of a single file (MB)
	MaxBackups int  // number of rotated files to keep
	MaxAgeDays int  // retention of rotated files (days)
	Compress   bool // compress rotated files
}

// TelemetryConfig: OpenTelemetry tracing settings.
type TelemetryConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRate     float64
}
