package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/thereayou/trail-service/internal/config"
	"github.com/thereayou/trail-service/internal/logger"
)

func main() {
	envLoaded := config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if !envLoaded {
		log.Info(".env not found, using environment variables")
	}

	srv, err := NewServer(cfg, log)
	if err != nil {
		log.Fatalf("server init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = srv.Run(ctx)
	stop()
	srv.Close()

	if err != nil {
		log.Errorf("Server run error: %v", err)
		os.Exit(1)
	}
}
