// Package app assembles the Solaris moderator service.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/css-solaris/solaris-bot-go/internal/common/bootstrap"
	"github.com/css-solaris/solaris-bot-go/internal/common/di"
	"github.com/css-solaris/solaris-bot-go/internal/common/health"
	"github.com/css-solaris/solaris-bot-go/internal/common/httpserver"
	"github.com/css-solaris/solaris-bot-go/internal/common/messageprovider"
	"github.com/css-solaris/solaris-bot-go/internal/common/processinglock"
	"github.com/css-solaris/solaris-bot-go/internal/common/telemetry"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/assets"
	solconfig "github.com/css-solaris/solaris-bot-go/internal/solaris/config"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/httpapi"
	solredis "github.com/css-solaris/solaris-bot-go/internal/solaris/redis"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/repository"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/security"
	"github.com/css-solaris/solaris-bot-go/internal/solaris/service"
)

// Version is stamped at build time.
var Version = "dev"

type solarisStores struct {
	gameCache   *solredis.GameCache
	ballotStore *solredis.BallotStore
	lockService *processinglock.Service
}

func newSolarisStores(client di.DataValkeyClient, logger *slog.Logger) *solarisStores {
	return &solarisStores{
		gameCache:   solredis.NewGameCache(client.Client, logger),
		ballotStore: solredis.NewBallotStore(client.Client, logger),
		lockService: processinglock.New(client.Client, logger, solredis.ProcessingKey, solconfig.ProcessingLockTTL),
	}
}

func newSolarisMessageProvider() (*messageprovider.Provider, error) {
	provider, err := messageprovider.NewFromYAML(assets.GameMessagesYAML)
	if err != nil {
		return nil, fmt.Errorf("load messages failed: %w", err)
	}
	return provider, nil
}

func newSolarisRepository(ctx context.Context, cfg *solconfig.Config, logger *slog.Logger) (*repository.Repository, *sql.DB, error) {
	db, sqlDB, err := repository.OpenPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres failed: %w", err)
	}

	repo := repository.New(db)
	if err := repo.AutoMigrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return repo, sqlDB, nil
}

func newSolarisServices(
	ctx context.Context,
	cfg *solconfig.Config,
	repo *repository.Repository,
	stores *solarisStores,
	msgs *messageprovider.Provider,
	logger *slog.Logger,
) (*service.ModeratorService, *service.NPCService, error) {
	games := service.NewModeratorService(
		repo,
		stores.gameCache,
		stores.ballotStore,
		stores.lockService,
		security.New(cfg.Moderation),
		msgs,
		logger,
		nil,
	)

	npcs, err := service.NewNPCService(ctx, repo, games, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init npc service failed: %w", err)
	}
	return games, npcs, nil
}

func newSolarisHTTPServer(
	cfg *solconfig.Config,
	games *service.ModeratorService,
	npcs *service.NPCService,
	logger *slog.Logger,
) *http.Server {
	mux := http.NewServeMux()
	httpapi.Register(mux, games, npcs, logger)

	handler := otelhttp.NewHandler(mux, "solaris-moderator-http")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return httpserver.NewServer(addr, handler, httpserver.ServerOptions{
		UseH2C:            true,
		ReadHeaderTimeout: cfg.ServerTuning.ReadHeaderTimeout,
		IdleTimeout:       cfg.ServerTuning.IdleTimeout,
		MaxHeaderBytes:    cfg.ServerTuning.MaxHeaderBytes,
	})
}

// Initialize builds the ServerApp and returns a cleanup that releases every
// acquired resource in reverse order.
func Initialize(ctx context.Context, cfg *solconfig.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	health.Init(Version)

	tracing, err := telemetry.NewProvider(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("init telemetry failed: %w", err)
	}

	msgs, err := newSolarisMessageProvider()
	if err != nil {
		return nil, nil, err
	}

	valkeyClient, cleanupValkey, err := bootstrap.NewAndPingDataValkeyClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init valkey failed: %w", err)
	}

	repo, sqlDB, err := newSolarisRepository(ctx, cfg, logger)
	if err != nil {
		cleanupValkey()
		return nil, nil, err
	}

	stores := newSolarisStores(valkeyClient, logger)
	games, npcs, err := newSolarisServices(ctx, cfg, repo, stores, msgs, logger)
	if err != nil {
		_ = sqlDB.Close()
		cleanupValkey()
		return nil, nil, err
	}

	httpServer := newSolarisHTTPServer(cfg, games, npcs, logger)
	serverApp := bootstrap.NewServerApp("solaris", logger, httpServer, solconfig.ShutdownTimeout)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("db_close_failed", "err", err)
		}
		cleanupValkey()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry_shutdown_failed", "err", err)
		}
	}

	return serverApp, cleanup, nil
}
