package redis

import (
	"context"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/css-solaris/solaris-bot-go/internal/common/gamesession"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/model"
)

// GameCache keeps hot game records in Valkey in front of the game directory.
// The database stays authoritative; the cache is write-through with a TTL.
type GameCache struct {
	store *gamesession.Store[model.Game]
}

// NewGameCache creates a GameCache.
func NewGameCache(client valkey.Client, logger *slog.Logger) *GameCache {
	store := gamesession.NewStore[model.Game](client, logger, gamesession.Config{
		KeyFunc: GameCacheKey,
		TTL:     config.GameCacheTTL,
	})
	return &GameCache{store: store}
}

// Get returns the cached game or nil on a miss.
func (c *GameCache) Get(ctx context.Context, gameName string) (*model.Game, error) {
	return c.store.Load(ctx, gameName)
}

// Put writes the game through to the cache.
func (c *GameCache) Put(ctx context.Context, game *model.Game) error {
	return c.store.Save(ctx, game.Name, *game)
}

// Invalidate drops the cached game.
func (c *GameCache) Invalidate(ctx context.Context, gameName string) error {
	return c.store.Delete(ctx, gameName)
}
