package config

import "time"

// Server defaults.
const (
	// DefaultServerPort: default listen port for the moderator service.
	DefaultServerPort = 40290
	// ShutdownTimeout: graceful shutdown budget.
	ShutdownTimeout = 10 * time.Second
)

// Valkey key prefixes. Keys are built as prefix:id (valkeyx.BuildKey).
const (
	// GameCacheKeyPrefix: hot game record cache.
	GameCacheKeyPrefix = "solaris:game"
	// BallotKeyPrefix: current-day ballots, suffixed with game and day.
	BallotKeyPrefix = "solaris:ballot"
	// ProcessingKeyPrefix: per-game action lock.
	ProcessingKeyPrefix = "solaris:processing"
)

// TTLs.
const (
	// GameCacheTTL: cached game records; the database stays authoritative.
	GameCacheTTL = 6 * time.Hour
	// BallotTTL: a day's ballots; refreshed on every cast.
	BallotTTL = 48 * time.Hour
	// ProcessingLockTTL: upper bound on one moderator action.
	ProcessingLockTTL = 30 * time.Second
)

// Platform limits.
const (
	// MaxMessageLength: chat platform message size cap.
	MaxMessageLength = 2000
	// MaxGameNameLength: sanity cap on game names.
	MaxGameNameLength = 100
	// MaxRequestBodyBytes: JSON request body read limit.
	MaxRequestBodyBytes = 64 << 10
)
