// Package redis holds the Valkey-backed stores of the Solaris game:
// the current-day ballot box and the hot game cache.
package redis

import (
	"strconv"

	"github.com/css-solaris/solaris-bot-go/internal/common/valkeyx"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/config"
)

// BallotKey: solaris:ballot:{game}:{day}
func BallotKey(gameName string, day int) string {
	return valkeyx.BuildKey2(config.BallotKeyPrefix, gameName, strconv.Itoa(day))
}

// GameCacheKey: solaris:game:{game}
func GameCacheKey(gameName string) string {
	return valkeyx.BuildKey(config.GameCacheKeyPrefix, gameName)
}

// ProcessingKey: solaris:processing:{game}
func ProcessingKey(gameName string) string {
	return valkeyx.BuildKey(config.ProcessingKeyPrefix, gameName)
}
