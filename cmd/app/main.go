package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"restobot/internal/config"
	"restobot/pkg/log"
	"restobot/pkg/redis"
	"restobot/pkg/s3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	options := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithAppConfig(cfg),
		config.WithValidator(config.NewValidator()),
		config.WithDatabase(),
	}
	if cfg.SessionStore == config.SessionStoreRedis {
		options = append(options, config.WithRedisServer(redis.New()))
	}
	if usesBucket(cfg) {
		options = append(options, config.WithS3Client())
	}
	options = append(options,
		config.WithMiddleware(),
		config.WithDialogueEngine(ctx),
		config.WithWhatsappClient(ctx),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(ctx); err != nil {
		logger.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.WithField("port", cfg.Port).Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	cancel()
	if err := server.Shutdown(shutdownTimeout); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}

func usesBucket(cfg config.AppConfig) bool {
	for _, path := range []string{cfg.CatalogPath, cfg.DialoguesPath, cfg.AdsPath, cfg.IntentModelPath, cfg.HintModelPath} {
		if s3.IsURL(path) {
			return true
		}
	}
	return false
}
