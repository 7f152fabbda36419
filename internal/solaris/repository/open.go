package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	commonconfig "github.com/css-solaris/solaris-bot-go/internal/common/config"
	"github.com/css-solaris/solaris-bot-go/internal/common/dbutil"
)

// OpenPostgres connects to the directory database with startup retries and
// returns the gorm handle plus the raw sql.DB for lifecycle management.
func OpenPostgres(
	ctx context.Context,
	cfg commonconfig.PostgresConfig,
	logger *slog.Logger,
) (*gorm.DB, *sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	openFn := func(ctx context.Context) (*gorm.DB, *sql.DB, error) {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("gorm open failed: %w", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql db failed: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("db ping failed: %w", err)
		}
		return db, sqlDB, nil
	}

	return dbutil.OpenWithRetry(ctx, openFn, dbutil.DefaultRetryConfig(), logger)
}
