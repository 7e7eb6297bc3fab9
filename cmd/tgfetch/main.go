package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tgfetch/tgfetch/internal/bot"
	"github.com/tgfetch/tgfetch/internal/config"
	"github.com/tgfetch/tgfetch/internal/download"
	"github.com/tgfetch/tgfetch/internal/logging"
	"github.com/tgfetch/tgfetch/internal/platform"
	"github.com/tgfetch/tgfetch/internal/session"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	fmt.Printf("tgfetch v%s starting...\n", version)

	settings, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	logger := logging.New(settings.LogFilePath, settings.IsProduction())
	defer func() { _ = logger.Sync() }()

	if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
		logger.Fatal("downloads dir unavailable", zap.String("dir", settings.DownloadDir), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fetch the engine binary up front so the first request never pays for it
	if err := download.EnsureEngine(ctx); err != nil {
		logger.Fatal("engine unavailable", zap.Error(err))
	}

	client, err := bot.NewClient(settings.BotToken, settings.UploadTimeout)
	if err != nil {
		logger.Fatal("telegram authorization failed", zap.Error(err))
	}
	logger.Info("bot authorized",
		zap.String("username", client.Username()),
		zap.String("version", version))

	b := bot.New(client, download.NewService(logger), session.NewStore(), settings, logger)

	// Close the update stream on shutdown so Run can drain and return
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		client.Stop()
	}()

	b.Run(ctx, client.Updates(0, settings.PollTimeoutSec))
	logger.Info("bot stopped")
}
