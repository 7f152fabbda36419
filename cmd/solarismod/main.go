package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/css-solaris/solaris-bot-go/internal/common/bootstrap"
	solapp "github.com/css-solaris/solaris-bot-go/internal/solaris/app"
	solconfig "github.com/css-solaris/solaris-bot-go/internal/solaris/config"
)

func main() {
	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunBotEntrypoint(
		context.Background(),
		logger,
		"solaris.log",
		solconfig.LoadFromEnv,
		func(cfg *solconfig.Config) solconfig.LogConfig { return cfg.Log },
		solapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
